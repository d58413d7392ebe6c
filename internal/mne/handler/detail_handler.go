package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/tebita/resourcehub/internal/mne/entity"
	"github.com/tebita/resourcehub/internal/mne/repository"
	"github.com/tebita/resourcehub/internal/mne/service"
)

// DetailHandler 资源明细处理器
type DetailHandler struct {
	svc *service.DetailService
}

// NewDetailHandler 创建资源明细处理器
func NewDetailHandler(svc *service.DetailService) *DetailHandler {
	return &DetailHandler{svc: svc}
}

// UpsertFleet 写入车队明细
// PUT /api/v1/requests/:id/details/fleet
func (h *DetailHandler) UpsertFleet(c *gin.Context) {
	var in entity.FleetDetail
	if err := c.ShouldBindJSON(&in); err != nil {
		BadRequest(c, "invalid detail payload: "+err.Error())
		return
	}
	detail, err := h.svc.UpsertFleet(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		h.writeError(c, err)
		return
	}
	Success(c, detail)
}

// GetFleet 查询车队明细
// GET /api/v1/requests/:id/details/fleet
func (h *DetailHandler) GetFleet(c *gin.Context) {
	detail, err := h.svc.GetFleet(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	Success(c, detail)
}

// UpsertHR 写入人力派遣明细
// PUT /api/v1/requests/:id/details/hr
func (h *DetailHandler) UpsertHR(c *gin.Context) {
	var in entity.HRDeployment
	if err := c.ShouldBindJSON(&in); err != nil {
		BadRequest(c, "invalid detail payload: "+err.Error())
		return
	}
	detail, err := h.svc.UpsertHR(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		h.writeError(c, err)
		return
	}
	Success(c, detail)
}

// GetHR 查询人力派遣明细
// GET /api/v1/requests/:id/details/hr
func (h *DetailHandler) GetHR(c *gin.Context) {
	detail, err := h.svc.GetHR(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	Success(c, detail)
}

// UpsertFinance 写入财务处理明细
// PUT /api/v1/requests/:id/details/finance
func (h *DetailHandler) UpsertFinance(c *gin.Context) {
	var in entity.FinanceTransaction
	if err := c.ShouldBindJSON(&in); err != nil {
		BadRequest(c, "invalid detail payload: "+err.Error())
		return
	}
	detail, err := h.svc.UpsertFinance(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		h.writeError(c, err)
		return
	}
	Success(c, detail)
}

// GetFinance 查询财务处理明细
// GET /api/v1/requests/:id/details/finance
func (h *DetailHandler) GetFinance(c *gin.Context) {
	detail, err := h.svc.GetFinance(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	Success(c, detail)
}

// UpsertICT 写入ICT工单明细
// PUT /api/v1/requests/:id/details/ict
func (h *DetailHandler) UpsertICT(c *gin.Context) {
	var in entity.ICTTicket
	if err := c.ShouldBindJSON(&in); err != nil {
		BadRequest(c, "invalid detail payload: "+err.Error())
		return
	}
	detail, err := h.svc.UpsertICT(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		h.writeError(c, err)
		return
	}
	Success(c, detail)
}

// GetICT 查询ICT工单明细
// GET /api/v1/requests/:id/details/ict
func (h *DetailHandler) GetICT(c *gin.Context) {
	detail, err := h.svc.GetICT(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	Success(c, detail)
}

// UpsertLogistics 写入物流明细
// PUT /api/v1/requests/:id/details/logistics
func (h *DetailHandler) UpsertLogistics(c *gin.Context) {
	var in entity.LogisticsDetail
	if err := c.ShouldBindJSON(&in); err != nil {
		BadRequest(c, "invalid detail payload: "+err.Error())
		return
	}
	detail, err := h.svc.UpsertLogistics(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		h.writeError(c, err)
		return
	}
	Success(c, detail)
}

// GetLogistics 查询物流明细
// GET /api/v1/requests/:id/details/logistics
func (h *DetailHandler) GetLogistics(c *gin.Context) {
	detail, err := h.svc.GetLogistics(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	Success(c, detail)
}

func (h *DetailHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		NotFound(c, "detail not found")
	case errors.Is(err, service.ErrInvalidInput):
		BadRequest(c, err.Error())
	default:
		InternalError(c, err.Error())
	}
}
