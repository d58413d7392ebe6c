package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/tebita/resourcehub/internal/mne/repository"
	"github.com/tebita/resourcehub/internal/mne/service"
)

// RequestHandler 服务请求处理器
type RequestHandler struct {
	svc *service.RequestService
}

// NewRequestHandler 创建服务请求处理器
func NewRequestHandler(svc *service.RequestService) *RequestHandler {
	return &RequestHandler{svc: svc}
}

// Create 创建请求
// POST /api/v1/requests
func (h *RequestHandler) Create(c *gin.Context) {
	var in service.CreateRequestInput
	if err := c.ShouldBindJSON(&in); err != nil {
		BadRequest(c, "invalid request payload: "+err.Error())
		return
	}
	in.RequesterID = GetUserID(c)

	req, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			BadRequest(c, err.Error())
			return
		}
		InternalError(c, "create request failed: "+err.Error())
		return
	}
	Created(c, req)
}

// Get 请求详情
// GET /api/v1/requests/:id
func (h *RequestHandler) Get(c *gin.Context) {
	req, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "request not found")
			return
		}
		InternalError(c, err.Error())
		return
	}
	Success(c, req)
}

// List 请求列表
// GET /api/v1/requests
func (h *RequestHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)
	filter := repository.RequestFilter{
		Status:       c.Query("status"),
		ResourceType: c.Query("resource_type"),
		Priority:     c.Query("priority"),
		DivisionID:   c.Query("division_id"),
		DepartmentID: c.Query("department_id"),
		RequesterID:  c.Query("requester_id"),
		AssignedTo:   c.Query("assigned_to"),
		Keyword:      c.Query("keyword"),
		Page:         page,
		PageSize:     pageSize,
	}

	requests, total, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		InternalError(c, "list requests failed: "+err.Error())
		return
	}

	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}
	Success(c, gin.H{
		"items": requests,
		"pagination": Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      int(total),
			TotalPages: totalPages,
		},
	})
}

// Acknowledge 受理请求
// POST /api/v1/requests/:id/acknowledge
func (h *RequestHandler) Acknowledge(c *gin.Context) {
	req, err := h.svc.Acknowledge(c.Request.Context(), c.Param("id"), GetUserID(c))
	if err != nil {
		h.writeActionError(c, err)
		return
	}
	Success(c, req)
}

// Complete 完成请求
// POST /api/v1/requests/:id/complete
func (h *RequestHandler) Complete(c *gin.Context) {
	var in service.CompleteRequestInput
	if err := c.ShouldBindJSON(&in); err != nil {
		BadRequest(c, "invalid completion payload: "+err.Error())
		return
	}

	req, err := h.svc.Complete(c.Request.Context(), c.Param("id"), GetUserID(c), in)
	if err != nil {
		h.writeActionError(c, err)
		return
	}
	Success(c, req)
}

type reasonBody struct {
	Reason string `json:"reason"`
}

// Reject 拒绝请求
// POST /api/v1/requests/:id/reject
func (h *RequestHandler) Reject(c *gin.Context) {
	var body reasonBody
	_ = c.ShouldBindJSON(&body)

	req, err := h.svc.Reject(c.Request.Context(), c.Param("id"), GetUserID(c), body.Reason)
	if err != nil {
		h.writeActionError(c, err)
		return
	}
	Success(c, req)
}

// Cancel 取消请求
// POST /api/v1/requests/:id/cancel
func (h *RequestHandler) Cancel(c *gin.Context) {
	var body reasonBody
	_ = c.ShouldBindJSON(&body)

	req, err := h.svc.Cancel(c.Request.Context(), c.Param("id"), GetUserID(c), body.Reason)
	if err != nil {
		h.writeActionError(c, err)
		return
	}
	Success(c, req)
}

// Rate 满意度评价
// POST /api/v1/requests/:id/rate
func (h *RequestHandler) Rate(c *gin.Context) {
	var in service.RateRequestInput
	if err := c.ShouldBindJSON(&in); err != nil {
		BadRequest(c, "invalid rating payload: "+err.Error())
		return
	}

	req, err := h.svc.Rate(c.Request.Context(), c.Param("id"), GetUserID(c), in)
	if err != nil {
		h.writeActionError(c, err)
		return
	}
	Success(c, req)
}

// SLAStatus 请求SLA状态
// GET /api/v1/requests/:id/sla
func (h *RequestHandler) SLAStatus(c *gin.Context) {
	view, err := h.svc.SLAStatus(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "request not found")
			return
		}
		InternalError(c, err.Error())
		return
	}
	Success(c, view)
}

func (h *RequestHandler) writeActionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		NotFound(c, "request not found")
	case errors.Is(err, service.ErrInvalidInput):
		BadRequest(c, err.Error())
	case errors.Is(err, service.ErrInvalidState):
		Conflict(c, err.Error())
	default:
		InternalError(c, err.Error())
	}
}
