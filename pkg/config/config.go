package config

import (
	"fmt"
	"os"

	jsoniter "github.com/json-iterator/go"
)

// Config defines the application configuration structure. It maps directly
// to the config.json file and holds business-level settings: the decision
// provider stack and the assistant persona.
type Config struct {
	// LLM holds the configuration for the decision providers in raw JSON;
	// the llm package parses it into provider groups.
	LLM jsoniter.RawMessage `json:"llm"`
	// SystemPrompt is the persona/instruction string seeded into every
	// conversation as the initial system message.
	SystemPrompt string `json:"system_prompt"`
}

// Validate ensures the configuration contains all mandatory fields.
func (c *Config) Validate() error {
	if len(c.LLM) == 0 {
		return fmt.Errorf("mandatory 'llm' configuration is missing or empty")
	}
	return nil
}

// SystemConfig defines engine-level technical parameters, usually stored in
// system.json. These control the execution loop's bounds and reliability
// behavior rather than business settings.
type SystemConfig struct {
	// MaxCycles bounds the number of decide/dispatch cycles in one run.
	// Exceeding it terminates the run with a cycle-limit error instead of
	// looping forever on a non-converging provider.
	MaxCycles int `json:"max_cycles"`
	// CycleTimeoutMs is the per-cycle deadline (in milliseconds) applied
	// uniformly to the decide call and the dispatch join. Zero disables it.
	CycleTimeoutMs int `json:"cycle_timeout_ms"`
	// MaxRetries is the number of times the fallback decider retries a
	// transient provider error before moving to the next provider.
	MaxRetries int `json:"max_retries"`
	// RetryDelayMs is the base delay (in milliseconds) between retries.
	RetryDelayMs int `json:"retry_delay_ms"`
	// OllamaDefaultURL is the fallback endpoint for a local Ollama instance
	// when the provider group specifies none.
	OllamaDefaultURL string `json:"ollama_default_url"`
	// SessionStorage is the directory for persisted conversation histories.
	// Empty disables persistence.
	SessionStorage string `json:"session_storage"`
	// LogLevel sets the minimum severity for log output.
	// Accepted values: "debug", "info", "warn", "error". Default: "info".
	LogLevel string `json:"log_level"`
	// EnableTools globally toggles tool calling. If false, the decider is
	// offered no schemas and every run terminates after one decision.
	EnableTools bool `json:"enable_tools"`
	// DebugExchanges enables dumping raw provider requests/responses to the
	// /debug folder for troubleshooting.
	DebugExchanges bool `json:"debug_exchanges"`
}

// DefaultSystemConfig returns a SystemConfig with safe defaults, used as a
// fallback when system.json is missing or corrupt so the engine can always
// start.
func DefaultSystemConfig() *SystemConfig {
	return &SystemConfig{
		MaxCycles:        10,
		CycleTimeoutMs:   120000,
		MaxRetries:       3,
		RetryDelayMs:     500,
		OllamaDefaultURL: "http://localhost:11434",
		SessionStorage:   "sessions",
		LogLevel:         "info",
		EnableTools:      true,
	}
}

// Load reads and parses the JSON configuration files. The app config is
// mandatory; the system config falls back to defaults.
func Load(appPath, sysPath string) (*Config, *SystemConfig, error) {
	if _, err := os.Stat(appPath); os.IsNotExist(err) {
		return nil, nil, fmt.Errorf("config file '%s' not found. please create one", appPath)
	}

	appFile, err := os.ReadFile(appPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(appFile, &cfg); err != nil {
		return nil, nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	return &cfg, LoadSystemConfig(sysPath), nil
}

// LoadSystemConfig attempts to load system settings, returns defaults if it fails.
func LoadSystemConfig(path string) *SystemConfig {
	cfg := DefaultSystemConfig()

	file, err := os.ReadFile(path)
	if err != nil {
		return cfg // File not found, use defaults
	}

	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(file, cfg); err != nil {
		return cfg // Parse failed, use defaults
	}

	return cfg
}
