package http

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"echome-server/internal/ai"
	appsvc "echome-server/internal/app"
	"echome-server/internal/bootstrap"
	"echome-server/internal/cache"
	"echome-server/internal/platform/rabbitmq"
	"echome-server/internal/repository"
	"echome-server/internal/transport/http/handler"
	"echome-server/internal/transport/http/middleware"
)

func NewRouter(app *bootstrap.App) (*gin.Engine, error) {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery(), middleware.RequestID())

	userRepo := repository.NewUserRepository(app.MySQL)
	entryRepo := repository.NewEntryRepository(app.MySQL)

	historyCache := cache.NewHistoryCache(
		app.Redis,
		time.Duration(app.Config.Redis.HistoryTTLSeconds)*time.Second,
		time.Duration(app.Config.Redis.HistoryDirtyTTLSeconds)*time.Second,
	)
	eventPublisher := rabbitmq.NewEntryEventPublisher(app.MQConn, app.Config.RabbitMQ.EntryEventQueue)

	authService := appsvc.NewAuthService(
		userRepo,
		app.Config.Auth.JWTSecret,
		time.Duration(app.Config.Auth.JWTExpireMinute)*time.Minute,
	)
	entryService := appsvc.NewEntryService(
		entryRepo,
		historyCache,
		eventPublisher,
		ai.ChatConfig{
			BaseURL: app.Config.LLM.BaseURL,
			APIKey:  app.Config.LLM.APIKey,
			Model:   app.Config.LLM.Model,
		},
		app.Config.LLM.MaxContextMessage,
	)

	verifier, err := appsvc.NewIdentityVerifier(app.Config.Auth.VerifyStrategy, app.Config.Auth.JWTSecret, userRepo)
	if err != nil {
		return nil, fmt.Errorf("build identity verifier failed: %w", err)
	}

	healthHandler := handler.NewHealthHandler(app)
	authHandler := handler.NewAuthHandler(authService)
	entryHandler := handler.NewEntryHandler(entryService)
	memoryHandler := handler.NewMemoryHandler(entryService)

	router.GET("/", healthHandler.Alive)
	router.GET("/healthz", healthHandler.Check)

	api := router.Group("/api")
	api.POST("/message", entryHandler.SubmitMessage)
	api.GET("/memories/:userId", entryHandler.ListMemories)
	api.GET("/sessions/:userId", entryHandler.ListSessions)
	api.GET("/chats/:userId/:sessionId", entryHandler.SessionChat)

	authGroup := api.Group("/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)

	memories := router.Group("/memories")
	memories.Use(middleware.AuthBearer(verifier))
	memories.POST("", memoryHandler.Create)
	memories.GET("", memoryHandler.List)

	return router, nil
}
