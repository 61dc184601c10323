package routes

import (
	"net/http"

	"talenthub_backend/internal/auth"
	"talenthub_backend/internal/config"
	"talenthub_backend/internal/handlers"
	"talenthub_backend/internal/middleware"
	"talenthub_backend/internal/models"
	"talenthub_backend/internal/services"
	"talenthub_backend/internal/validator"

	"github.com/gin-gonic/gin"
)

// Setup mounts the whole HTTP surface on the engine. Access tiers:
// public (register, login, health), authenticated (profile, job
// browsing, candidate submission and reads), staff = admin|hr (job and
// candidate writes), admin only (user directory, cloud proxy).
func Setup(r *gin.Engine, cfg *config.Config, issuer *auth.TokenIssuer, svcs *services.Container) {
	base := handlers.NewBaseHandler(validator.New())

	authHandler := handlers.NewAuthHandler(base, svcs.AuthService)
	userHandler := handlers.NewUserHandler(base, svcs.UserService)
	jobHandler := handlers.NewJobHandler(base, svcs.JobService)
	candidateHandler := handlers.NewCandidateHandler(base, svcs.CandidateService, cfg.Upload.MaxResumeSize)
	cloudHandler := handlers.NewCloudHandler(base, svcs.CloudService, cfg.Upload.MaxCloudSize)

	if cfg.Storage.Type == "local" {
		r.Static("/uploads", cfg.Storage.BasePath)
	}

	api := r.Group("/api")

	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authHandler.RegisterRoutes(api)

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(issuer))
	authHandler.RegisterProtectedRoutes(protected)
	jobHandler.RegisterRoutes(protected)
	candidateHandler.RegisterRoutes(protected)

	staff := protected.Group("")
	staff.Use(middleware.RequireRoles(models.UserRoleAdmin, models.UserRoleHR))
	jobHandler.RegisterStaffRoutes(staff)
	candidateHandler.RegisterStaffRoutes(staff)

	admin := protected.Group("")
	admin.Use(middleware.RequireRoles(models.UserRoleAdmin))
	userHandler.RegisterRoutes(admin)
	cloudHandler.RegisterRoutes(admin)
}
