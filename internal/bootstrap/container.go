package bootstrap

import (
	"context"
	"log"
	"time"

	"ai-docchat-be/internal/config"
	"ai-docchat-be/internal/controller"
	"ai-docchat-be/internal/pkg/logger"
	"ai-docchat-be/internal/repository/contract"
	"ai-docchat-be/internal/repository/memory"
	redisrepo "ai-docchat-be/internal/repository/redis"
	"ai-docchat-be/internal/service"
	"ai-docchat-be/pkg/genai"

	pktNats "ai-docchat-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
)

type Container struct {
	// Controllers
	ChatController controller.IChatController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// Session storage backend
	sessionTTL := time.Duration(cfg.Session.TTLMinutes) * time.Minute
	var sessionRepo contract.SessionRepository
	if cfg.Session.Backend == "redis" {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{
				Addr: cfg.App.RedisURL,
			}
		}
		rdb := redis.NewClient(opt)
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v", err)
		}
		sessionRepo = redisrepo.NewSessionRepository(rdb, sessionTTL)
		log.Printf("[INFO] Using Session Backend: REDIS")
	} else {
		sessionRepo = memory.NewSessionRepository(sessionTTL)
		log.Printf("[INFO] Using Session Backend: MEMORY")
	}

	// Generative API client
	genaiClient := genai.NewClient(cfg.GenAI.BaseURL, cfg.GenAI.Model)
	log.Printf("[INFO] Using Generative Model: %s", genaiClient.Model)

	// 3. Services
	publisherService := service.NewPublisherService(cfg.Session.EventsTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Session.EventsTopic,
		natsPub,
	)

	chatService := service.NewChatService(
		sessionRepo,
		genaiClient,
		publisherService,
		sysLogger,
		cfg.Keys.GoogleGemini,
		time.Duration(cfg.GenAI.ImportPollSeconds)*time.Second,
		time.Duration(cfg.GenAI.ImportMaxWaitSeconds)*time.Second,
	)

	// 4. Controllers
	return &Container{
		ChatController:  controller.NewChatController(chatService),
		ConsumerService: consumerService,
	}
}
