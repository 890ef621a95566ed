package handlers

import (
	"github.com/SscSPs/records_management_app/cmd/docs"
	portssvc "github.com/SscSPs/records_management_app/internal/core/ports/services"
	"github.com/SscSPs/records_management_app/internal/middleware"
	"github.com/SscSPs/records_management_app/internal/platform/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
)

// RouteDeps are the collaborators routes need beyond the services.
type RouteDeps struct {
	// Capabilities gates route groups by role.
	Capabilities middleware.CapabilityChecker
	// LoginLimiter throttles the login route per client IP; nil disables it.
	LoginLimiter *limiter.Limiter
	// DB is pinged by /health when set.
	DB Pinger
}

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	deps RouteDeps,
) {
	registerValidators()

	r.GET("/health", health(deps.DB))

	var loginLimit gin.HandlerFunc
	if deps.LoginLimiter != nil {
		loginLimit = middleware.RateLimit(deps.LoginLimiter)
	}
	registerAuthRoutes(r, services.Auth, loginLimit)

	setupAPIV1Routes(r, cfg, services, deps.Capabilities)

	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
	checker middleware.CapabilityChecker,
) {
	// Every v1 route resolves the principal against the stored account
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer, service.User))

	registerRegionRoutes(v1, checker, service.Aggregation, service.Scope, service.Export)
	registerRecordRoutes(v1, checker, service.Record, service.Export)
	registerUserRoutes(v1, checker, service.User)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
