package llm

import (
	"fmt"
	"log/slog"
	"time"

	"axle/pkg/config"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// NewFromConfig 根據設定檔建立 Decider。
// 單一 provider 直接回傳；多個 provider 包裹在 FallbackDecider 中。
func NewFromConfig(rawLLM jsoniter.RawMessage, system *config.SystemConfig) (Decider, error) {
	if rawLLM == nil {
		return nil, fmt.Errorf("missing 'llm' config")
	}

	var groups []ProviderGroupConfig
	if err := json.Unmarshal(rawLLM, &groups); err != nil {
		return nil, fmt.Errorf("failed to parse 'llm' config: %v", err)
	}

	var all []Decider
	for _, group := range groups {
		slog.Info("Loading provider group", "type", group.Type, "models", len(group.Models))

		factory, ok := GetProviderFactory(group.Type)
		if !ok {
			slog.Warn("Unknown provider type", "type", group.Type)
			continue
		}

		deciders, err := factory.Create(group, system)
		if err != nil {
			slog.Warn("Failed to create deciders", "type", group.Type, "error", err)
			continue
		}

		all = append(all, deciders...)
	}

	if len(all) == 0 {
		return nil, fmt.Errorf("no decision providers could be initialized")
	}

	slog.Info("Decision providers initialized", "count", len(all))

	if len(all) == 1 {
		return all[0], nil
	}

	return &FallbackDecider{
		Deciders:   all,
		MaxRetries: system.MaxRetries,
		RetryDelay: time.Duration(system.RetryDelayMs) * time.Millisecond,
	}, nil
}
