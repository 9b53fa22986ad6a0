package bootstrap

import (
	"context"
	"log"

	"ai-roadmap-be/internal/config"
	"ai-roadmap-be/internal/controller"
	"ai-roadmap-be/internal/handler"
	"ai-roadmap-be/internal/pkg/logger"
	"ai-roadmap-be/internal/repository/memory"
	"ai-roadmap-be/internal/repository/unitofwork"
	"ai-roadmap-be/internal/service"
	"ai-roadmap-be/internal/websocket"
	"ai-roadmap-be/pkg/embedding"
	"ai-roadmap-be/pkg/llm/factory"
	"ai-roadmap-be/pkg/vectorindex"

	pktNats "ai-roadmap-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	CourseController     controller.ICourseController
	VideoController      controller.IVideoController
	RoadmapController    controller.IRoadmapController
	SuggestionController controller.ISuggestionController
	EmbeddingController  controller.IEmbeddingController
	HealthController     controller.IHealthController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets & Notification
	StatusHandler *handler.StatusHandler
	WebSocketHub  *websocket.Hub
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

	// 3. AI Backends
	var embeddingProvider embedding.Provider
	embeddingConfigured := true
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaModel,
			cfg.Ai.RequestTimeout,
		)
		sysLogger.Info("Bootstrap", "Using Embedding Provider: OLLAMA", map[string]interface{}{"model": cfg.Ai.OllamaModel})
	} else {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Keys.GoogleGemini, cfg.Ai.RequestTimeout)
		embeddingConfigured = cfg.Keys.GoogleGemini != ""
		sysLogger.Info("Bootstrap", "Using Embedding Provider: GEMINI", nil)
	}

	var indexClient vectorindex.Client
	indexConfigured := true
	if cfg.Ai.VectorBackend == "pinecone" {
		indexClient = vectorindex.NewPineconeClient(cfg.Keys.Pinecone, cfg.Keys.PineconeHost, cfg.Ai.RequestTimeout)
		indexConfigured = cfg.Keys.Pinecone != "" && cfg.Keys.PineconeHost != ""
		sysLogger.Info("Bootstrap", "Using Vector Backend: PINECONE", nil)
	} else {
		indexClient = vectorindex.NewPostgresClient(db)
		sysLogger.Info("Bootstrap", "Using Vector Backend: POSTGRES (pgvector)", nil)
	}

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Keys.GoogleGemini,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	sysLogger.Info("Bootstrap", "Using LLM Provider: "+cfg.Ai.LLMProvider, map[string]interface{}{"model": cfg.Ai.LLMModel})

	// In-memory query vector cache
	queryCache := memory.NewQueryEmbeddingCache()

	// 4. Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// Redis
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

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/status.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 5. Services
	publisherService := service.NewPublisherService(cfg.Keys.EmbedEntityTopic, pubSub)
	embeddingService := service.NewEmbeddingService(
		uowFactory,
		embeddingProvider,
		indexClient,
		cfg.Ai.EmbeddingDimension,
		natsPub,
	)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Keys.EmbedEntityTopic,
		embeddingService,
	)

	courseService := service.NewCourseService(uowFactory, publisherService, natsPub)
	videoService := service.NewVideoService(uowFactory, publisherService, natsPub)
	roadmapService := service.NewRoadmapService(uowFactory, publisherService, llmProvider, natsPub)
	suggestionService := service.NewSuggestionService(uowFactory, embeddingProvider, indexClient, queryCache, cfg.Ai.SuggestionTopK)
	healthService := service.NewHealthService(embeddingProvider, indexClient, embeddingConfigured, indexConfigured)

	// Status push bridge: bus events -> websocket
	if natsSub != nil {
		notifierService := service.NewNotifierService(natsSub, wsHub, wsLogger)
		notifierService.Start()
	}

	statusHandler := handler.NewStatusHandler(wsHub, wsLogger)

	return &Container{
		CourseController:     controller.NewCourseController(courseService),
		VideoController:      controller.NewVideoController(videoService),
		RoadmapController:    controller.NewRoadmapController(roadmapService),
		SuggestionController: controller.NewSuggestionController(suggestionService),
		EmbeddingController:  controller.NewEmbeddingController(embeddingService, publisherService),
		HealthController:     controller.NewHealthController(healthService),

		ConsumerService: consumerService,

		StatusHandler: statusHandler,
		WebSocketHub:  wsHub,
	}
}
