package router

import (
	"github.com/gin-gonic/gin"

	"rfpflow/internal/domain"
	"rfpflow/internal/handler"
	"rfpflow/internal/middleware"
	"rfpflow/internal/service"
)

// Handlers groups the HTTP handlers mounted by Setup.
type Handlers struct {
	Auth    *handler.AuthHandler
	RFP     *handler.RFPHandler
	Run     *handler.RunHandler
	Product *handler.ProductHandler
	Stats   *handler.StatsHandler
	Health  *handler.HealthHandler
}

// Setup configures the Gin engine with all routes and middleware.
func Setup(authSvc service.AuthService, h Handlers, allowedOrigins []string) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(allowedOrigins))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())

	// Health checks
	r.GET("/healthz", h.Health.Liveness)
	r.GET("/readyz", h.Health.Readiness)

	v1 := r.Group("/api/v1")

	v1.POST("/auth/token", h.Auth.IssueToken)

	v1.POST("/rfp/process", h.RFP.Process)
	v1.GET("/runs/:id", h.Run.GetByID)
	v1.GET("/runs/:id/export", h.Run.Export)
	v1.GET("/products", h.Product.List)

	// Admin routes
	admin := v1.Group("/admin")
	admin.Use(middleware.AuthMiddleware(authSvc))
	admin.Use(middleware.RequireRole(domain.RoleAdmin))
	admin.GET("/stats", h.Stats.GetStats)
	admin.POST("/products", h.Product.Create)
	admin.PATCH("/runs/:id/status", h.Run.UpdateStatus)

	return r
}
