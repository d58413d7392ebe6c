package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/tebita/resourcehub/internal/config"
	"github.com/tebita/resourcehub/internal/middleware"
)

// RegisterRoutes 注册全部路由
func RegisterRoutes(r *gin.Engine, h *Handlers, cfg *config.Config, version string) {
	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/version", func(c *gin.Context) {
		c.JSON(200, gin.H{"version": version})
	})

	api := r.Group("/api/v1")

	// 认证（无需token）
	auth := api.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.Refresh)
	}

	// 业务接口（需要token）
	authed := api.Group("")
	authed.Use(middleware.JWTAuth(cfg.JWT.Secret))
	{
		authed.GET("/auth/me", h.Auth.Me)

		// 服务请求
		requests := authed.Group("/requests")
		{
			requests.POST("", h.Request.Create)
			requests.GET("", h.Request.List)
			requests.GET("/:id", h.Request.Get)
			requests.GET("/:id/sla", h.Request.SLAStatus)
			requests.POST("/:id/acknowledge", h.Request.Acknowledge)
			requests.POST("/:id/complete", h.Request.Complete)
			requests.POST("/:id/reject", h.Request.Reject)
			requests.POST("/:id/cancel", h.Request.Cancel)
			requests.POST("/:id/rate", h.Request.Rate)

			requests.PUT("/:id/details/fleet", h.Detail.UpsertFleet)
			requests.GET("/:id/details/fleet", h.Detail.GetFleet)
			requests.PUT("/:id/details/hr", h.Detail.UpsertHR)
			requests.GET("/:id/details/hr", h.Detail.GetHR)
			requests.PUT("/:id/details/finance", h.Detail.UpsertFinance)
			requests.GET("/:id/details/finance", h.Detail.GetFinance)
			requests.PUT("/:id/details/ict", h.Detail.UpsertICT)
			requests.GET("/:id/details/ict", h.Detail.GetICT)
			requests.PUT("/:id/details/logistics", h.Detail.UpsertLogistics)
			requests.GET("/:id/details/logistics", h.Detail.GetLogistics)
		}

		// SLA策略（仅管理员可写）
		policies := authed.Group("/sla-policies")
		{
			policies.GET("", h.Policy.List)
			policies.GET("/:id", h.Policy.Get)
			policies.POST("", middleware.RequireRole("ADMIN"), h.Policy.Create)
			policies.PUT("/:id", middleware.RequireRole("ADMIN"), h.Policy.Update)
			policies.DELETE("/:id", middleware.RequireRole("ADMIN"), h.Policy.Delete)
			policies.POST("/seed-defaults", middleware.RequireRole("ADMIN"), h.Policy.SeedDefaults)
		}

		// SLA告警
		alerts := authed.Group("/sla-alerts")
		{
			alerts.GET("", h.Alert.List)
			alerts.POST("/:id/acknowledge", h.Alert.Acknowledge)
			alerts.POST("/sweep", middleware.RequireRole("ADMIN"), h.Alert.Sweep)
		}

		// 报表
		reports := authed.Group("/reports")
		{
			reports.GET("/compliance", h.Report.Compliance)
			reports.GET("/compliance/export", h.Report.ExportCompliance)
			reports.GET("/dashboard", h.Report.Dashboard)
			reports.POST("/scorecard", h.Report.Scorecard)
			reports.GET("/scorecards", h.Report.ListScorecards)
			reports.GET("/scorecards/export", h.Report.ExportScorecards)
			reports.GET("/trend", h.Report.Trend)
			reports.GET("/resources", h.Report.ResourceKPIs)
			reports.GET("/divisions", h.Report.ByDivision)
		}

		// 附件
		uploads := authed.Group("/uploads")
		{
			uploads.POST("", h.Upload.Upload)
			uploads.GET("/*object", h.Upload.Download)
		}

		// SSE
		authed.GET("/sse/events", h.SSE.Stream)
	}
}
