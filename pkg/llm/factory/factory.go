package factory

import (
	"fmt"

	"conversational-rag-be/pkg/llm"
	"conversational-rag-be/pkg/llm/gemini"
	"conversational-rag-be/pkg/llm/ollama"
)

// NewLLMProvider wires the configured reasoning backend. Missing credentials
// are fatal here, at startup, not on the first chat request.
func NewLLMProvider(providerType, modelName, baseURL, geminiApiKey string) (llm.LLMProvider, error) {
	switch providerType {
	case "ollama":
		if baseURL == "" {
			baseURL = "http://localhost:11434"
		}
		return ollama.NewOllamaProvider(baseURL, modelName), nil
	case "gemini":
		if geminiApiKey == "" {
			return nil, fmt.Errorf("gemini provider selected but GOOGLE_GEMINI_API_KEY is empty")
		}
		return gemini.NewGeminiProvider(geminiApiKey, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
