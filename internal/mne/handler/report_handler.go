package handler

import (
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tebita/resourcehub/internal/mne/entity"
	"github.com/tebita/resourcehub/internal/mne/repository"
	"github.com/tebita/resourcehub/internal/mne/service"
)

// ReportHandler 报表处理器
type ReportHandler struct {
	svc       *service.ReportService
	exportSvc *service.ExportService
}

// NewReportHandler 创建报表处理器
func NewReportHandler(svc *service.ReportService, exportSvc *service.ExportService) *ReportHandler {
	return &ReportHandler{svc: svc, exportSvc: exportSvc}
}

// reportFilter 从查询参数解析报表过滤条件
func reportFilter(c *gin.Context) repository.ReportFilter {
	var filter repository.ReportFilter
	if v := c.Query("division_id"); v != "" {
		filter.DivisionID = &v
	}
	if v := c.Query("department_id"); v != "" {
		filter.DepartmentID = &v
	}
	filter.ResourceType = c.Query("resource_type")
	if v := c.Query("start"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			filter.Start = &t
		}
	}
	if v := c.Query("end"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			filter.End = &t
		}
	}
	return filter
}

// Compliance 合规率报表
// GET /api/v1/reports/compliance
func (h *ReportHandler) Compliance(c *gin.Context) {
	result, err := h.svc.Compliance(c.Request.Context(), reportFilter(c))
	if err != nil {
		InternalError(c, "compliance report failed: "+err.Error())
		return
	}
	Success(c, result)
}

// Dashboard 仪表盘
// GET /api/v1/reports/dashboard
func (h *ReportHandler) Dashboard(c *gin.Context) {
	d, err := h.svc.GetDashboard(c.Request.Context(), reportFilter(c))
	if err != nil {
		InternalError(c, "dashboard failed: "+err.Error())
		return
	}
	Success(c, d)
}

// Scorecard 生成记分卡
// POST /api/v1/reports/scorecard
func (h *ReportHandler) Scorecard(c *gin.Context) {
	sc, result, err := h.svc.GenerateScorecard(c.Request.Context(), reportFilter(c), GetUserID(c))
	if err != nil {
		InternalError(c, "scorecard failed: "+err.Error())
		return
	}
	Success(c, gin.H{
		"scorecard": sc,
		"breakdown": result,
	})
}

// ListScorecards 记分卡历史
// GET /api/v1/reports/scorecards
func (h *ReportHandler) ListScorecards(c *gin.Context) {
	_, pageSize := GetPagination(c)
	cards, err := h.svc.ListScorecards(c.Request.Context(), c.Query("division_id"), pageSize)
	if err != nil {
		InternalError(c, "list scorecards failed: "+err.Error())
		return
	}
	Success(c, gin.H{"items": cards})
}

// Trend 趋势报表
// GET /api/v1/reports/trend?period=daily
func (h *ReportHandler) Trend(c *gin.Context) {
	period := entity.TrendPeriod(c.DefaultQuery("period", "daily"))
	if !period.Valid() {
		BadRequest(c, "invalid trend period: "+string(period))
		return
	}

	report, err := h.svc.Trend(c.Request.Context(), period, reportFilter(c))
	if err != nil {
		InternalError(c, "trend report failed: "+err.Error())
		return
	}
	Success(c, report)
}

// ResourceKPIs 各资源类型专项KPI
// GET /api/v1/reports/resources
func (h *ReportHandler) ResourceKPIs(c *gin.Context) {
	report, err := h.svc.ResourceKPIs(c.Request.Context(), reportFilter(c))
	if err != nil {
		InternalError(c, "resource kpi report failed: "+err.Error())
		return
	}
	Success(c, report)
}

// ByDivision 战区维度汇总
// GET /api/v1/reports/divisions
func (h *ReportHandler) ByDivision(c *gin.Context) {
	summaries, err := h.svc.ByDivision(c.Request.Context(), reportFilter(c))
	if err != nil {
		InternalError(c, "division report failed: "+err.Error())
		return
	}
	Success(c, gin.H{"items": summaries})
}

// ExportCompliance 导出合规明细
// GET /api/v1/reports/compliance/export
func (h *ReportHandler) ExportCompliance(c *gin.Context) {
	f, filename, err := h.exportSvc.ExportCompliance(c.Request.Context(), reportFilter(c))
	if err != nil {
		InternalError(c, "export failed: "+err.Error())
		return
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", `attachment; filename="`+url.PathEscape(filename)+`"`)
	if err := f.Write(c.Writer); err != nil {
		c.Status(http.StatusInternalServerError)
	}
}

// ExportScorecards 导出记分卡历史
// GET /api/v1/reports/scorecards/export
func (h *ReportHandler) ExportScorecards(c *gin.Context) {
	cards, err := h.svc.ListScorecards(c.Request.Context(), c.Query("division_id"), 100)
	if err != nil {
		InternalError(c, "list scorecards failed: "+err.Error())
		return
	}

	f, filename, err := h.exportSvc.ExportScorecard(c.Request.Context(), cards)
	if err != nil {
		InternalError(c, "export failed: "+err.Error())
		return
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", `attachment; filename="`+url.PathEscape(filename)+`"`)
	if err := f.Write(c.Writer); err != nil {
		c.Status(http.StatusInternalServerError)
	}
}
