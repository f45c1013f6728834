package bootstrap

import (
	"log"

	"helpdesk-ai-be/internal/config"
	"helpdesk-ai-be/internal/controller"
	"helpdesk-ai-be/internal/pkg/logger"
	"helpdesk-ai-be/internal/pkg/mailer"
	"helpdesk-ai-be/internal/repository/implementation"
	"helpdesk-ai-be/internal/service"
	"helpdesk-ai-be/pkg/classifier"
	"helpdesk-ai-be/pkg/embedding"
	"helpdesk-ai-be/pkg/escalation"
	"helpdesk-ai-be/pkg/knowledge"
	"helpdesk-ai-be/pkg/llm/factory"
	"helpdesk-ai-be/pkg/response"

	pktNats "helpdesk-ai-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	HelpdeskController controller.IHelpdeskController
	RuleController     controller.IRuleController
	KBController       controller.IKBController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// Shared infra exposed for shutdown
	Logger  logger.ILogger
	NatsPub *pktNats.Publisher
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	var emailService mailer.IEmailService
	if cfg.SMTP.Host != "" {
		emailService = mailer.NewEmailService(
			cfg.SMTP.Host,
			cfg.SMTP.Port,
			cfg.SMTP.Email,
			cfg.SMTP.Password,
			cfg.SMTP.SenderName,
		)
	} else {
		log.Printf("[WARN] SMTP not configured, escalation emails disabled")
	}

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// NATS (optional: a missing broker only disables event fan-out)
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		natsPub = nil
	}

	// 3. AI Providers
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
	} else {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Keys.GoogleGemini)
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
	}

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 4. Classification + Escalation Core
	patternTable := classifier.PatternTable(nil)
	if cfg.Helpdesk.PatternsFilePath != "" {
		patternTable, err = classifier.LoadPatternTable(cfg.Helpdesk.PatternsFilePath)
		if err != nil {
			log.Fatalf("[FATAL] Failed to load classifier patterns: %v", err)
		}
	}
	cls, err := classifier.New(patternTable, cfg.Helpdesk.MinConfidence)
	if err != nil {
		log.Fatalf("[FATAL] Failed to build classifier: %v", err)
	}

	ruleStore := escalation.NewStore()
	ruleService, err := service.NewRuleService(ruleStore, cfg.Helpdesk.RulesFilePath, sysLogger)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize escalation rules: %v", err)
	}

	hours := escalation.BusinessHours{
		StartHour: cfg.Helpdesk.BusinessHoursStart,
		EndHour:   cfg.Helpdesk.BusinessHoursEnd,
	}
	engine := escalation.NewEngine(ruleStore, hours, log.Default())

	// 5. Repositories
	ticketRepo := implementation.NewTicketRepository(db)
	kbDocumentRepo := implementation.NewKBDocumentRepository(db)
	kbEmbeddingRepo := implementation.NewKBEmbeddingRepository(db)

	// 6. Services
	retriever := knowledge.NewRetriever(embeddingProvider, kbEmbeddingRepo, cfg.Ai.SimilarityThreshold, log.Default())
	generator := response.NewGenerator(llmProvider, log.Default())

	metricsService := service.NewMetricsService()
	publisherService := service.NewPublisherService(cfg.Helpdesk.EmbedTopicName, pubSub)
	consumerService := service.NewConsumerService(pubSub, cfg.Helpdesk.EmbedTopicName, kbDocumentRepo, kbEmbeddingRepo, embeddingProvider)

	helpdeskService := service.NewHelpdeskService(
		cls,
		engine,
		retriever,
		generator,
		ticketRepo,
		metricsService,
		natsPub,
		emailService,
		sysLogger,
		cfg.Ai.TopK,
	)
	kbService := service.NewKBService(kbDocumentRepo, retriever, publisherService)

	// 7. Controllers
	helpdeskController := controller.NewHelpdeskController(helpdeskService, metricsService, sysLogger)
	ruleController := controller.NewRuleController(ruleService)
	kbController := controller.NewKBController(kbService)

	return &Container{
		HelpdeskController: helpdeskController,
		RuleController:     ruleController,
		KBController:       kbController,
		ConsumerService:    consumerService,
		Logger:             sysLogger,
		NatsPub:            natsPub,
	}
}
