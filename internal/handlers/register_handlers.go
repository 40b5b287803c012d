package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/renovation_backoffice/internal/core/ports/services"
	"github.com/SscSPs/renovation_backoffice/internal/middleware"
	"github.com/SscSPs/renovation_backoffice/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces.
// gatherer backs /metrics; nil means the default registry.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	gatherer prometheus.Gatherer,
) {
	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	setupAPIV1Routes(r, cfg, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
) {
	// API keys are checked first; AuthMiddleware skips requests they already authenticated
	v1 := r.Group("/api/v1", middleware.APIKeyAuth(cfg.APIKeys), middleware.AuthMiddleware(cfg.JWTSecret))

	invoice := v1.Group("/invoices/:invoiceID")
	registerLineItemRoutes(invoice, service.LineItem)
	registerTemplateRoutes(v1, invoice, service.Template)
	registerExportRoutes(invoice, service.LineItem)
	registerTaskRoutes(v1, service.Task)
	registerExpenseRoutes(v1, service.Expense)
}
