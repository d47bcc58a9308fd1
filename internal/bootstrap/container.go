package bootstrap

import (
	"context"
	"log"

	"hustle-mentor-be/internal/config"
	"hustle-mentor-be/internal/controller"
	"hustle-mentor-be/internal/pkg/logger"
	"hustle-mentor-be/internal/repository/memory"
	"hustle-mentor-be/internal/repository/unitofwork"
	"hustle-mentor-be/internal/service"
	"hustle-mentor-be/pkg/guidancecache"
	"hustle-mentor-be/pkg/llm/factory"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	GuidanceController controller.IGuidanceController
	JourneyController  controller.IJourneyController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 Infrastructure
	// Redis backs the guidance cache. The service tolerates a missing
	// connection, so connect failures downgrade to a warning.
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
		rdb = nil
	}

	// 3. Services
	// Initialize LLM Provider based on Config
	modelName := cfg.Ai.OpenAIModel
	if cfg.Ai.LLMProvider == "ollama" {
		modelName = cfg.Ai.OllamaModel
	}
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		modelName,
		cfg.Ai.OpenAIAPIKey,
		cfg.Ai.OpenAIBaseURL,
		cfg.Ai.OllamaBaseURL,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, modelName)

	// Initialize In-Memory Session Storage
	sessionRepo := memory.NewSessionRepository()

	publisherService := service.NewPublisherService(cfg.Events.JourneyTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Events.JourneyTopic,
		uowFactory,
		sysLogger,
	)

	guidanceService := service.NewGuidanceService(
		llmProvider,
		guidancecache.New(rdb),
		cfg.Ai,
		sysLogger,
	)
	journeyService := service.NewJourneyService(
		uowFactory,
		sessionRepo,
		guidanceService,
		publisherService,
		sysLogger,
	)

	// 4. Controllers
	return &Container{
		GuidanceController: controller.NewGuidanceController(guidanceService),
		JourneyController:  controller.NewJourneyController(journeyService),
		ConsumerService:    consumerService,
		Logger:             sysLogger,
	}
}
