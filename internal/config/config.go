package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Keys     APIKeys
	Ai       AIConfig
	Rag      RagConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	LlmLogFilePath     string
	CorsAllowedOrigins string
}

type DatabaseConfig struct {
	Connection string
}

type APIKeys struct {
	GoogleGemini string
}

type AIConfig struct {
	EmbeddingProvider string // "gemini" or "ollama"
	OllamaBaseURL     string
	OllamaModel       string
	LLMProvider       string // "ollama" or "gemini"
	LLMModel          string // e.g. "llama3", "gemini-2.5-flash"
}

// RagConfig holds the retrieval pipeline tuning knobs. Every field has a
// default so a bare environment still produces a working pipeline.
type RagConfig struct {
	ChunkSize        int    // characters per chunk window
	ChunkOverlap     int    // characters shared between adjacent chunks
	RetrieverTopK    int    // chunks returned per document search
	ChatHistoryLimit int    // recent turns injected into the prompt
	MemoryTopK       int    // long-term memories returned per query
	MemoryTopic      string // pub/sub topic for post-answer memory writes
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "8000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:8000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			LlmLogFilePath:     getEnv("LLM_LOG_FILE_PATH", "logs/llm.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:8501"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Keys: APIKeys{
			GoogleGemini: getEnv("GOOGLE_GEMINI_API_KEY", ""),
		},
		Ai: AIConfig{
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "ollama"),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaModel:       getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
			LLMProvider:       getEnv("LLM_PROVIDER", "ollama"),
			LLMModel:          getEnv("LLM_MODEL", "llama3"),
		},
		Rag: RagConfig{
			ChunkSize:        getEnvAsInt("RAG_CHUNK_SIZE", 1000),
			ChunkOverlap:     getEnvAsInt("RAG_CHUNK_OVERLAP", 150),
			RetrieverTopK:    getEnvAsInt("RAG_RETRIEVER_TOP_K", 5),
			ChatHistoryLimit: getEnvAsInt("CHAT_HISTORY_LIMIT", 5),
			MemoryTopK:       getEnvAsInt("MEMORY_TOP_K", 5),
			MemoryTopic:      getEnv("MEMORY_TOPIC_NAME", "STORE_LONG_TERM_MEMORY"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
