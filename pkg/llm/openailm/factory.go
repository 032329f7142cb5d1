package openailm

import (
	"log/slog"

	"axle/pkg/config"
	"axle/pkg/llm"
)

// OpenAIFactory handles creation of OpenAI-backed deciders.
type OpenAIFactory struct{}

// Create implements llm.ProviderFactory.
func (f *OpenAIFactory) Create(cfg llm.ProviderGroupConfig, sys *config.SystemConfig) ([]llm.Decider, error) {
	var deciders []llm.Decider

	apiKey := ""
	if len(cfg.APIKeys) > 0 {
		apiKey = cfg.APIKeys[0]
	}

	for _, model := range cfg.Models {
		client, err := NewClient("openai", apiKey, model, cfg.BaseURL, cfg.Options)
		if err != nil {
			slog.Error("Failed to create OpenAI client", "model", model, "error", err)
			continue
		}
		client.SetDebug(sys.DebugExchanges)
		deciders = append(deciders, client)
	}
	return deciders, nil
}

func init() {
	llm.RegisterProvider("openai", &OpenAIFactory{})
}
