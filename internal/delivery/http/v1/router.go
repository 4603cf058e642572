package v1

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"go-careers-backend/config"
	"go-careers-backend/internal/delivery/http/middleware"
	"go-careers-backend/internal/domain"
	"go-careers-backend/pkg/validation"
)

type RouterDeps struct {
	AuthUC        domain.AuthUsecase
	JobUC         domain.JobUsecase
	TemplateUC    domain.TemplateUsecase
	ApplicationUC domain.ApplicationUsecase
	BulkUC        domain.BulkUsecase
	HealthUC      domain.HealthUsecase
	SeedUC        domain.SeedUsecase // nil disables POST /seed
	Tokens        middleware.TokenParser
	RateLimiter   *middleware.RateLimiter
	Config        *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		validation.RegisterValidators(v)
	}

	cfg := deps.Config
	window := time.Duration(cfg.RateLimitWindowSeconds) * time.Second

	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(cfg.FrontendURL, cfg.AllowedOrigins, cfg.IsProduction())) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware(cfg.IsProduction()))
	r.Use(deps.RateLimiter.Middleware(middleware.GlobalRateLimitConfig(cfg.RateLimitGlobalThreshold, window)))
	r.Use(middleware.ErrorHandler())

	v1 := r.Group("/v1")

	system := &SystemHandler{healthUC: deps.HealthUC, seedUC: deps.SeedUC}
	v1.GET("/health", system.Health)

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.Tokens))
	{
		loginLimit := deps.RateLimiter.Middleware(middleware.LoginRateLimitConfig(cfg.RateLimitLoginThreshold, window))
		NewAuthHandler(v1, protected, deps.AuthUC, loginLimit, cfg.IsProduction())
		NewJobHandler(v1, protected, deps.JobUC)
		NewTemplateHandler(protected, deps.TemplateUC, deps.JobUC)
		NewBulkHandler(protected, deps.BulkUC)
		NewApplicationHandler(v1, protected, deps.ApplicationUC)

		if deps.SeedUC != nil && cfg.SeedEnabled && !cfg.IsProduction() {
			protected.POST("/seed", middleware.RequireRole(domain.RoleAdmin), system.Seed)
		}
	}

	return r
}
