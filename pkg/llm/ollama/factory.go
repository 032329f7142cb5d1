package ollama

import (
	"log/slog"

	"axle/pkg/config"
	"axle/pkg/llm"
)

// OllamaFactory handles creation of Ollama-backed deciders.
type OllamaFactory struct{}

// Create implements llm.ProviderFactory.
func (f *OllamaFactory) Create(cfg llm.ProviderGroupConfig, sys *config.SystemConfig) ([]llm.Decider, error) {
	var deciders []llm.Decider

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = sys.OllamaDefaultURL
	}

	for _, model := range cfg.Models {
		client, err := NewOllamaClient(model, baseURL, cfg.Options)
		if err != nil {
			slog.Error("Failed to create Ollama client", "model", model, "error", err)
			continue
		}
		client.SetDebug(sys.DebugExchanges)
		slog.Info("Ollama client initialized", "model", model, "base_url", baseURL)
		deciders = append(deciders, client)
	}
	return deciders, nil
}

func init() {
	llm.RegisterProvider("ollama", &OllamaFactory{})
}
