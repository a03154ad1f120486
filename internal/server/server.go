package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Gaur10/taskpilot/internal/ai"
	"github.com/Gaur10/taskpilot/internal/cache"
	"github.com/Gaur10/taskpilot/internal/config"
	"github.com/Gaur10/taskpilot/internal/handler"
	"github.com/Gaur10/taskpilot/internal/identity"
	"github.com/Gaur10/taskpilot/internal/middleware"
	"github.com/Gaur10/taskpilot/internal/model"
	"github.com/Gaur10/taskpilot/internal/repository"
)

type Server struct {
	Engine *gin.Engine
	DB     *gorm.DB
	Config *config.Config
	Log    *zap.SugaredLogger
}

func Init(cfg *config.Config, log *zap.SugaredLogger) (*Server, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName,
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("❌ failed to connect to DB: %w", err)
	}
	log.Infow("✅ Connected to database", "host", cfg.DBHost, "db", cfg.DBName)

	if err := db.AutoMigrate(
		&model.Task{},
		&model.Project{},
		&model.FamilySettings{},
		&model.UserProfile{},
	); err != nil {
		return nil, fmt.Errorf("❌ failed to migrate schema: %w", err)
	}

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.RequestLogger(log), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Mock-Email", "X-Mock-Name", "X-Mock-Tenant"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Per-tenant list caches. Entries are cloned on both set and get so
	// handlers never share slices with the cache.
	taskCache := cache.New("tasks", cfg.CacheTTL, cfg.CacheSweep, model.Task.Clone)
	projectCache := cache.New("projects", cfg.CacheTTL, cfg.CacheSweep, model.Project.Clone)

	taskRepo := repository.NewTaskRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	profileRepo := repository.NewProfileRepository(db)

	suggester := ai.NewSuggester(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel, log)

	taskHandler := handler.NewTaskHandler(taskRepo, taskCache, log)
	projectHandler := handler.NewProjectHandler(projectRepo, projectCache, log)
	settingsHandler := handler.NewSettingsHandler(settingsRepo, log)
	profileHandler := handler.NewProfileHandler(profileRepo, log)
	aiHandler := handler.NewAIHandler(suggester, settingsRepo, log)
	healthHandler := handler.NewHealthHandler(taskCache)

	var resolver identity.Resolver
	if cfg.AuthMode == "mock" {
		log.Warnw("⚠️  Mock auth enabled, do not use in production", "tenant", cfg.MockTenant)
		resolver = &identity.MockResolver{Tenant: cfg.MockTenant}
	} else {
		resolver = identity.NewTokenResolver(cfg.JWTSecret, cfg.ClaimNamespace)
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")
	api.GET("/health", healthHandler.Health)

	authorized := api.Group("/")
	authorized.Use(middleware.Authenticate(resolver))
	{
		authorized.GET("/tenant-info", healthHandler.TenantInfo)
		authorized.GET("/admin", middleware.RequireRole("admin"), healthHandler.AdminInfo)

		authorized.POST("/tasks", taskHandler.Create)
		authorized.GET("/tasks", taskHandler.List)
		authorized.GET("/tasks/:id", taskHandler.GetByID)
		authorized.PUT("/tasks/:id", taskHandler.Update)
		authorized.DELETE("/tasks/:id", taskHandler.Delete)

		authorized.POST("/projects", projectHandler.Create)
		authorized.GET("/projects", projectHandler.List)
		authorized.DELETE("/projects/:id", projectHandler.Delete)

		authorized.GET("/settings", settingsHandler.Get)
		authorized.PUT("/settings", settingsHandler.Update)
		authorized.DELETE("/settings", settingsHandler.Reset)

		authorized.GET("/profile", profileHandler.Get)
		authorized.PUT("/profile", profileHandler.Update)
		authorized.GET("/profile/family", profileHandler.Family)

		authorized.POST("/ai/suggest-description", aiHandler.SuggestDescription)
	}

	return &Server{
		Engine: r,
		DB:     db,
		Config: cfg,
		Log:    log,
	}, nil
}

func (s *Server) Run() {
	srv := &http.Server{
		Addr:    ":" + s.Config.ServerPort,
		Handler: s.Engine,
	}

	go func() {
		s.Log.Infow("🚀 Server running", "port", s.Config.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.Log.Fatalw("❌ Failed to listen", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	s.Log.Info("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		s.Log.Fatalw("❌ Server forced to shutdown", "error", err)
	}

	s.Log.Info("✅ Server exited properly")
}
