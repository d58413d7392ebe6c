package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/tebita/resourcehub/internal/mne/repository"
	"github.com/tebita/resourcehub/internal/mne/service"
)

// PolicyHandler SLA策略处理器
type PolicyHandler struct {
	svc *service.PolicyService
}

// NewPolicyHandler 创建SLA策略处理器
func NewPolicyHandler(svc *service.PolicyService) *PolicyHandler {
	return &PolicyHandler{svc: svc}
}

// Create 创建策略
// POST /api/v1/sla-policies
func (h *PolicyHandler) Create(c *gin.Context) {
	var in service.PolicyInput
	if err := c.ShouldBindJSON(&in); err != nil {
		BadRequest(c, "invalid policy payload: "+err.Error())
		return
	}

	policy, err := h.svc.Create(c.Request.Context(), in, GetUserID(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	Created(c, policy)
}

// Update 更新策略
// PUT /api/v1/sla-policies/:id
func (h *PolicyHandler) Update(c *gin.Context) {
	var in service.PolicyInput
	if err := c.ShouldBindJSON(&in); err != nil {
		BadRequest(c, "invalid policy payload: "+err.Error())
		return
	}

	policy, err := h.svc.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		h.writeError(c, err)
		return
	}
	Success(c, policy)
}

// Get 策略详情
// GET /api/v1/sla-policies/:id
func (h *PolicyHandler) Get(c *gin.Context) {
	policy, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	Success(c, policy)
}

// Delete 删除策略
// DELETE /api/v1/sla-policies/:id
func (h *PolicyHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	Success(c, nil)
}

// List 策略列表
// GET /api/v1/sla-policies
func (h *PolicyHandler) List(c *gin.Context) {
	activeOnly := c.Query("active") == "true"
	policies, err := h.svc.List(c.Request.Context(), c.Query("resource_type"), activeOnly)
	if err != nil {
		InternalError(c, "list policies failed: "+err.Error())
		return
	}
	Success(c, gin.H{"items": policies})
}

// SeedDefaults 内置默认策略落库
// POST /api/v1/sla-policies/seed-defaults
func (h *PolicyHandler) SeedDefaults(c *gin.Context) {
	created, err := h.svc.SeedDefaults(c.Request.Context(), GetUserID(c))
	if err != nil {
		InternalError(c, "seed defaults failed: "+err.Error())
		return
	}
	Success(c, gin.H{"created": created})
}

func (h *PolicyHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		NotFound(c, "policy not found")
	case errors.Is(err, service.ErrInvalidInput):
		BadRequest(c, err.Error())
	case errors.Is(err, service.ErrDuplicatePolicy):
		Conflict(c, err.Error())
	default:
		InternalError(c, err.Error())
	}
}
