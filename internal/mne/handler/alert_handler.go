package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/tebita/resourcehub/internal/mne/repository"
	"github.com/tebita/resourcehub/internal/mne/service"
)

// AlertHandler SLA告警处理器
type AlertHandler struct {
	svc *service.MonitorService
}

// NewAlertHandler 创建SLA告警处理器
func NewAlertHandler(svc *service.MonitorService) *AlertHandler {
	return &AlertHandler{svc: svc}
}

// List 告警列表
// GET /api/v1/sla-alerts
func (h *AlertHandler) List(c *gin.Context) {
	unreadOnly := c.Query("unread") == "true"
	alerts, err := h.svc.ListAlerts(c.Request.Context(), c.Query("request_id"), unreadOnly)
	if err != nil {
		InternalError(c, "list alerts failed: "+err.Error())
		return
	}
	Success(c, gin.H{"items": alerts})
}

// Acknowledge 确认告警
// POST /api/v1/sla-alerts/:id/acknowledge
func (h *AlertHandler) Acknowledge(c *gin.Context) {
	err := h.svc.AcknowledgeAlert(c.Request.Context(), c.Param("id"), GetUserID(c))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "alert not found or already acknowledged")
			return
		}
		InternalError(c, err.Error())
		return
	}
	Success(c, nil)
}

// Sweep 手动触发一轮巡检
// POST /api/v1/sla-alerts/sweep
func (h *AlertHandler) Sweep(c *gin.Context) {
	if err := h.svc.Sweep(c.Request.Context()); err != nil {
		InternalError(c, "sweep failed: "+err.Error())
		return
	}
	Success(c, nil)
}
