package app

import (
	"fmt"

	"talenthub_backend/internal/ai"
	"talenthub_backend/internal/auth"
	"talenthub_backend/internal/cloud"
	"talenthub_backend/internal/config"
	"talenthub_backend/internal/logger"
	"talenthub_backend/internal/middleware"
	"talenthub_backend/internal/models"
	"talenthub_backend/internal/routes"
	"talenthub_backend/internal/services"
	"talenthub_backend/internal/storage"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Run wires the whole application and blocks serving HTTP.
func Run() error {
	config.LoadConfig()
	cfg := config.GetConfig()

	logger.Init(cfg.Server.Env)

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := AutoMigrate(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := seedFirstAdmin(db, cfg); err != nil {
		return fmt.Errorf("failed to seed first admin: %w", err)
	}

	issuer := auth.NewTokenIssuer(cfg.JWT.Secret, cfg.JWT.TTL)
	aiClient := ai.NewOpenAIClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model)

	store, err := storage.NewStorage(storage.Config{
		Type:      cfg.Storage.Type,
		BasePath:  cfg.Storage.BasePath,
		BaseURL:   cfg.Storage.BaseURL,
		Bucket:    cfg.AWS.Bucket,
		Region:    cfg.AWS.Region,
		AccessKey: cfg.AWS.AccessKey,
		SecretKey: cfg.AWS.SecretKey,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	awsClient, err := cloud.NewAWSClient(cloud.Config{
		Region:    cfg.AWS.Region,
		AccessKey: cfg.AWS.AccessKey,
		SecretKey: cfg.AWS.SecretKey,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize AWS client: %w", err)
	}

	svcs := services.NewContainer(issuer, aiClient, store, awsClient, awsClient, cfg.AWS.Bucket)

	router := SetupRouter(cfg, db, issuer, svcs)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("server listening", "addr", addr, "env", cfg.Server.Env)
	return router.Run(addr)
}

// SetupRouter builds the gin engine with the full middleware chain. Kept
// separate from Run so tests can mount the router on their own DB handle.
func SetupRouter(cfg *config.Config, db *gorm.DB, issuer *auth.TokenIssuer, svcs *services.Container) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggingMiddleware())
	r.Use(middleware.CORSMiddleware(cfg.CORS.ClientOrigin))
	r.Use(middleware.DBMiddleware(db))

	routes.Setup(r, cfg, issuer, svcs)
	return r
}

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Job{},
		&models.Candidate{},
	)
}

// seedFirstAdmin creates the bootstrap admin account on first start. It is
// a no-op unless both FIRST_ADMIN_EMAIL and FIRST_ADMIN_PASSWORD are set
// and no admin exists yet.
func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	if cfg.FirstAdminEmail == "" || cfg.FirstAdminPassword == "" {
		return nil
	}

	var count int64
	if err := db.Model(&models.User{}).Where("role = ?", models.UserRoleAdmin).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword(cfg.FirstAdminPassword)
	if err != nil {
		return err
	}

	admin := &models.User{
		Name:         "Administrator",
		Email:        cfg.FirstAdminEmail,
		PasswordHash: hash,
		Role:         models.UserRoleAdmin,
	}
	if err := db.Create(admin).Error; err != nil {
		return err
	}

	logger.Info("seeded first admin account", "email", cfg.FirstAdminEmail)
	return nil
}
