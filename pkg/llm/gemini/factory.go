package gemini

import (
	"log/slog"

	"axle/pkg/config"
	"axle/pkg/llm"
)

// GeminiFactory handles creation of Gemini-backed deciders.
type GeminiFactory struct{}

// Create implements llm.ProviderFactory.
func (f *GeminiFactory) Create(cfg llm.ProviderGroupConfig, sys *config.SystemConfig) ([]llm.Decider, error) {
	var deciders []llm.Decider

	apiKey := ""
	if len(cfg.APIKeys) > 0 {
		apiKey = cfg.APIKeys[0]
	}

	for _, model := range cfg.Models {
		client, err := NewGeminiClient(apiKey, model)
		if err != nil {
			slog.Error("Failed to create Gemini client", "model", model, "error", err)
			continue
		}
		client.SetDebug(sys.DebugExchanges)
		deciders = append(deciders, client)
	}
	return deciders, nil
}

func init() {
	llm.RegisterProvider("gemini", &GeminiFactory{})
}
