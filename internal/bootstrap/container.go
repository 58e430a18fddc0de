package bootstrap

import (
	"context"
	"log"

	"ai-webchat-be/internal/config"
	"ai-webchat-be/internal/controller"
	"ai-webchat-be/internal/pkg/logger"
	"ai-webchat-be/internal/pkg/serverutils"
	"ai-webchat-be/internal/service"
	"ai-webchat-be/internal/session"
	"ai-webchat-be/pkg/llm/gemini"

	"github.com/redis/go-redis/v9"
)

type Container struct {
	// Controllers
	AuthController controller.IAuthController
	ChatController controller.IChatController

	// Shared infrastructure
	Sessions *serverutils.SessionManager
	Logger   logger.ILogger
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.IsProduction())

	// 2. Session store
	var store session.Store
	if cfg.Session.Backend == "redis" {
		opt, err := redis.ParseURL(cfg.Session.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{Addr: cfg.Session.RedisURL}
		}
		rdb := redis.NewClient(opt)
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v", err)
		}
		store = session.NewRedisStore(rdb)
		log.Printf("[INFO] Using Session Store: REDIS")
	} else {
		store = session.NewMemoryStore()
		log.Printf("[INFO] Using Session Store: MEMORY")
	}

	sessions := serverutils.NewSessionManager(store, cfg.Session.Secret, cfg.App.IsProduction())

	// 3. Services
	llmProvider := gemini.NewProvider(cfg.Gemini.APIKey, cfg.Gemini.Model)
	gateway := service.NewLLMGatewayService(llmProvider, sysLogger)
	oauthService := service.NewOAuthService(cfg.OAuth, sysLogger)
	chatService := service.NewChatService(gateway, sysLogger)

	// 4. Controllers
	return &Container{
		AuthController: controller.NewAuthController(oauthService, sessions, sysLogger),
		ChatController: controller.NewChatController(chatService, gateway, sessions),
		Sessions:       sessions,
		Logger:         sysLogger,
	}
}
