package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vibealong/internal/auth"
	"vibealong/internal/authflow"
	"vibealong/internal/chat"
	"vibealong/internal/checklist"
	"vibealong/internal/config"
	"vibealong/internal/demo"
	"vibealong/internal/estimate"
	"vibealong/internal/handler"
	"vibealong/internal/localstore"
	"vibealong/internal/middleware"
	"vibealong/internal/migrations"
	"vibealong/internal/repository"
	"vibealong/internal/tasks"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Server struct {
	Engine *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client
	Config *config.Config
	Log    *zap.Logger

	demo *demo.Scheduler
}

func Init(cfg *config.Config, log *zap.Logger) (*Server, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("❌ failed to connect to DB: %w", err)
	}
	log.Info("✅ Connected to database")

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	store := localstore.New(rdb)

	runner := migrations.NewRunner(cfg.MigrateURL(), log)
	if err := runner.Up(); err != nil {
		// Task listing retries setup on demand and falls back to sample data.
		log.Warn("⚠️  Migrations failed at startup", zap.Error(err))
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	stepRepo := repository.NewStepRepository(db)
	projectRepo := repository.NewProjectRepository(db)

	// Initialize services
	taskSvc := tasks.NewService(taskRepo, runner, store, log)
	remoteSteps := checklist.NewService(checklist.NewDBStepStore(stepRepo))
	localSteps := checklist.NewService(checklist.NewLocalStepStore(store))
	estimator := estimate.MockEstimator{Delay: cfg.MockAIDelay}
	generator := estimate.MockStepGenerator{Delay: cfg.MockAIDelay}
	hub := chat.NewHub()
	scheduler := demo.NewScheduler(cfg.DemoStepInterval, log)
	scheduler.Start()

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTExpiry)
	cookies := handler.Cookies{Secure: cfg.Environment == "production"}

	var flow handler.CallbackFlow
	if cfg.OAuthEnabled() {
		flow = authflow.NewFlow(authflow.NewOAuthExchanger(cfg), userRepo, profileRepo, log)
	} else {
		log.Warn("⚠️  OAuth provider not configured, only password login is available")
	}

	// Initialize handlers
	userHandler := handler.NewUserHandler(userRepo, profileRepo, tokens, cookies, log)
	authHandler := handler.NewAuthHandler(flow, tokens, cookies, log)
	onboardingHandler := handler.NewOnboardingHandler(profileRepo, log)
	taskHandler := handler.NewTaskHandler(taskSvc, log)
	stepHandler := handler.NewStepHandler(remoteSteps, localSteps, taskSvc, generator, log)
	estimateHandler := handler.NewEstimateHandler(estimator, generator, log)
	chatHandler := handler.NewChatHandler(hub, taskSvc, log)
	demoHandler := handler.NewDemoHandler(scheduler)
	contentHandler := handler.NewContentHandler()
	projectHandler := handler.NewProjectHandler(projectRepo, log)
	healthHandler := handler.NewHealthHandler(map[string]handler.Pinger{
		"postgres": handler.PingFunc(func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}),
		"redis": store,
	}, log)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(log), middleware.CORS(cfg.CORSOrigins))

	limiter := middleware.RateLimit(middleware.NewIPRateLimiter(cfg.AuthRateLimit, cfg.AuthRateBurst))

	// Public routes
	r.GET("/", contentHandler.Landing)
	r.GET("/health", healthHandler.Health)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.GET("/auth/login", limiter, authHandler.Login)
	r.GET("/auth/callback", limiter, authHandler.Callback)

	api := r.Group("/api")
	{
		api.GET("/pages", contentHandler.Pages)
		api.GET("/pages/:slug", contentHandler.Page)

		api.POST("/auth/login", limiter, userHandler.Login)
		api.POST("/auth/logout", userHandler.Logout)
		api.GET("/auth/session", middleware.OptionalAuth(tokens), userHandler.Session)

		api.POST("/signup/developer", limiter, userHandler.Signup)
		api.POST("/signup/developer/steps/:step", limiter, userHandler.SignupStep)

		api.GET("/tasks", taskHandler.List)
		api.GET("/tasks/:id", taskHandler.GetByID)

		api.POST("/ai/estimate", estimateHandler.Estimate)
		api.POST("/ai/steps", estimateHandler.GenerateSteps)

		api.POST("/demo/sessions", demoHandler.Create)
		api.GET("/demo/sessions/:id", demoHandler.Get)
		api.POST("/demo/sessions/:id/play", demoHandler.Play)
		api.POST("/demo/sessions/:id/pause", demoHandler.Pause)
		api.POST("/demo/sessions/:id/reset", demoHandler.Reset)
		api.POST("/demo/sessions/:id/goto", demoHandler.GoTo)

		api.GET("/vibe-coders/:id/projects", projectHandler.List)
		api.GET("/vibe-coders/:id/projects/latest", projectHandler.Latest)
	}

	// Protected routes - require authentication
	authorized := api.Group("/")
	authorized.Use(middleware.JWTAuthMiddleware(tokens))
	{
		authorized.POST("/tasks", taskHandler.Create)
		authorized.PATCH("/tasks/:id/status", taskHandler.UpdateStatus)
		authorized.PATCH("/tasks/:id/progress", taskHandler.UpdateProgress)

		authorized.GET("/tasks/:id/steps", stepHandler.List)
		authorized.POST("/tasks/:id/steps", stepHandler.Add)
		authorized.POST("/tasks/:id/steps/generate", stepHandler.Generate)
		authorized.POST("/tasks/:id/steps/:stepId/toggle", stepHandler.Toggle)

		authorized.GET("/tasks/:id/messages", chatHandler.Messages)
		authorized.POST("/tasks/:id/messages", chatHandler.Post)
		authorized.GET("/tasks/:id/messages/pinned", chatHandler.Pinned)
		authorized.POST("/tasks/:id/messages/:messageId/pin", chatHandler.TogglePin)
		authorized.GET("/tasks/:id/typing", chatHandler.Typing)
		authorized.PUT("/tasks/:id/typing", chatHandler.SetTyping)

		authorized.GET("/tasks/:id/setup-steps", stepHandler.ListSetup)
		authorized.POST("/tasks/:id/setup-steps", stepHandler.AddSetup)
		authorized.POST("/tasks/:id/setup-steps/:stepId/toggle", stepHandler.ToggleSetup)

		authorized.POST("/onboarding/:role/steps/:step", onboardingHandler.Step)
		authorized.POST("/onboarding/:role", onboardingHandler.Submit)

		authorized.GET("/dashboard/earnings", contentHandler.Earnings)
		authorized.GET("/dashboard/analytics", contentHandler.Analytics)
	}

	return &Server{
		Engine: r,
		DB:     db,
		Redis:  rdb,
		Config: cfg,
		Log:    log,
		demo:   scheduler,
	}, nil
}

func (s *Server) Run() {
	srv := &http.Server{
		Addr:    ":" + s.Config.ServerPort,
		Handler: s.Engine,
	}

	go func() {
		s.Log.Info("🚀 Server running", zap.String("port", s.Config.ServerPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.Log.Fatal("❌ Failed to listen", zap.Error(err))
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
		s.Log.Fatal("❌ Server forced to shutdown", zap.Error(err))
	}
	s.close()

	s.Log.Info("✅ Server exited properly")
}

func (s *Server) close() {
	s.demo.Stop()
	if err := s.Redis.Close(); err != nil {
		s.Log.Warn("redis close failed", zap.Error(err))
	}
	if sqlDB, err := s.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
