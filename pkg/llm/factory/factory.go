package factory

import (
	"fmt"

	"hustle-mentor-be/pkg/llm"
	"hustle-mentor-be/pkg/llm/ollama"
	"hustle-mentor-be/pkg/llm/openai"
)

func NewLLMProvider(providerType, modelName, apiKey, openaiBaseURL, ollamaBaseURL string) (llm.LLMProvider, error) {
	switch providerType {
	case "openai":
		return openai.NewOpenAIProvider(apiKey, openaiBaseURL, modelName), nil
	case "ollama":
		if ollamaBaseURL == "" {
			ollamaBaseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(ollamaBaseURL, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
