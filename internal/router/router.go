package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"rentdesk/internal/handler"
	"rentdesk/internal/middleware"
)

// Handlers groups the HTTP handlers mounted by Setup.
type Handlers struct {
	Report    *handler.ReportHandler
	Generated *handler.GeneratedReportHandler
	Invoice   *handler.InvoiceHandler
	Health    *handler.HealthHandler
}

// Setup configures the Gin engine with all routes and middleware.
func Setup(h Handlers, allowedOrigins []string, log *zap.Logger) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(log))
	r.Use(middleware.Logger(log))
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks
	r.GET("/healthz", h.Health.Liveness)
	r.GET("/readyz", h.Health.Readiness)

	v1 := r.Group("/api/v1")

	reports := v1.Group("/reports")
	reports.POST("/payments/data", h.Report.PaymentsData)
	reports.POST("/payments/export", h.Report.PaymentsExport)
	reports.POST("/vehicle-usage/data", h.Report.VehicleUsageData)
	reports.POST("/vehicle-usage/export", h.Report.VehicleUsageExport)
	reports.POST("/vehicle-usage/summary", h.Report.VehicleUsageSummary)
	reports.GET("/monthly-revenue/:year/data", h.Report.MonthlyRevenueData)
	reports.GET("/monthly-revenue/:year/export", h.Report.MonthlyRevenueExport)
	reports.POST("/revenue/data", h.Report.RevenueData)
	reports.POST("/revenue/export", h.Report.RevenueExport)

	// Generated report log
	generated := reports.Group("/generated")
	generated.GET("", h.Generated.List)
	generated.GET("/latest", h.Generated.Latest)
	generated.GET("/range", h.Generated.ListByRange)
	generated.GET("/type/:type", h.Generated.ListByType)
	generated.GET("/:id", h.Generated.GetByID)
	generated.GET("/:id/url", h.Generated.DownloadURL)

	invoices := v1.Group("/invoices")
	invoices.POST("", h.Invoice.Generate)
	invoices.POST("/range", h.Invoice.InvoicesInRange)
	invoices.GET("/contract/:contractId", h.Invoice.GetByContract)
	invoices.GET("/:id", h.Invoice.GetByID)
	invoices.PUT("/:id/void", h.Invoice.Void)

	return r
}
