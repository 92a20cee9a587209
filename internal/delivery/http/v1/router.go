package v1

import (
	"log/slog"

	"dental-smile-backend/config"
	"dental-smile-backend/internal/delivery/http/middleware"
	"dental-smile-backend/internal/domain"
	"dental-smile-backend/internal/usecase"
	"dental-smile-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	ContactUC domain.ContactUsecase
	HealthUC  usecase.HealthUsecase
	Config    *config.Config
	Logger    *slog.Logger
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.AllowedOrigins)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.ErrorHandler(deps.Logger))

	api := r.Group("/api")

	endpoints := map[string]string{
		"POST /api/contact": "Submit contact form",
		"GET /api/health":   "Health check",
	}

	NewContactHandler(api, deps.ContactUC)

	if deps.Config.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
		endpoints["GET /swagger/index.html"] = "API documentation"
	}

	NewHealthHandler(r, api, deps.HealthUC, ServiceInfo{
		Name:      deps.Config.AppName,
		Version:   deps.Config.AppVersion,
		Endpoints: endpoints,
	})

	r.NoRoute(func(c *gin.Context) {
		c.Error(apperror.NotFound("Route not found"))
	})

	return r
}
