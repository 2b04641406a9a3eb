package bootstrap

import (
	"log"

	"conversational-rag-be/internal/config"
	"conversational-rag-be/internal/controller"
	"conversational-rag-be/internal/pkg/logger"
	"conversational-rag-be/internal/repository/implementation"
	"conversational-rag-be/internal/repository/memory"
	"conversational-rag-be/internal/service"
	"conversational-rag-be/pkg/agent"
	"conversational-rag-be/pkg/embedding"
	"conversational-rag-be/pkg/ingest"
	"conversational-rag-be/pkg/llm/factory"
	"conversational-rag-be/pkg/rag/history"
	"conversational-rag-be/pkg/rag/indexer"
	"conversational-rag-be/pkg/rag/memstore"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	RagController controller.IRagController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

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
		cfg.Keys.GoogleGemini,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 4. Repositories
	chatTurnRepo := implementation.NewChatTurnRepository(db)
	documentRepo := implementation.NewDocumentEmbeddingRepository(db)
	memoryRepo := implementation.NewMemoryEntryRepository(db)
	retrieverRegistry := memory.NewRetrieverRegistry()

	// 5. RAG Pipeline
	loader := ingest.NewLoader(sysLogger)
	docIndexer := indexer.New(embeddingProvider, documentRepo, sysLogger, indexer.Config{
		ChunkSize:    cfg.Rag.ChunkSize,
		ChunkOverlap: cfg.Rag.ChunkOverlap,
		TopK:         cfg.Rag.RetrieverTopK,
	})
	historyStore := history.NewStore(chatTurnRepo, sysLogger)
	memoryStore := memstore.NewStore(embeddingProvider, memoryRepo, sysLogger, cfg.Rag.MemoryTopK)

	// The reasoning loop logs full prompts and model steps; keep that noise in
	// its own file instead of the main application log.
	llmTraceLogger := logger.NewIsolatedLogger(cfg.App.LlmLogFilePath)
	agentBuilder, err := agent.NewBuilder(llmProvider, llmTraceLogger)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize Agent Builder: %v", err)
	}

	// 6. Services
	publisherService := service.NewMemoryPublisherService(pubSub, cfg.Rag.MemoryTopic)
	consumerService := service.NewConsumerService(pubSub, cfg.Rag.MemoryTopic, memoryStore, sysLogger)

	documentService := service.NewDocumentService(loader, docIndexer, documentRepo, retrieverRegistry, sysLogger)
	chatService := service.NewChatService(
		retrieverRegistry,
		agentBuilder,
		historyStore,
		memoryStore,
		publisherService,
		sysLogger,
		cfg.Rag.ChatHistoryLimit,
		cfg.Rag.MemoryTopK,
	)

	// 7. Controllers
	ragController := controller.NewRagController(documentService, chatService, cfg.Rag.ChatHistoryLimit)

	return &Container{
		RagController:   ragController,
		ConsumerService: consumerService,
		Logger:          sysLogger,
	}
}
