package config

import "github.com/polishedai/polished/internal/polish"

// QualityTier controls the model selection and trade-off between speed/cost and quality.
type QualityTier string

const (
	QualityLite   QualityTier = "lite"
	QualityNormal QualityTier = "normal"
	QualityMax    QualityTier = "max"
)

// ProviderType identifies an LLM provider.
type ProviderType string

const (
	ProviderAnthropic  ProviderType = "anthropic"
	ProviderOpenAI     ProviderType = "openai"
	ProviderGoogle     ProviderType = "google"
	ProviderOllama     ProviderType = "ollama"
	ProviderMiniMax    ProviderType = "minimax"
	ProviderOpenRouter ProviderType = "openrouter"
)

// Config is the top-level polished configuration, corresponding to .polished.yml.
type Config struct {
	Provider        ProviderType    `yaml:"provider" koanf:"provider"`
	Model           string          `yaml:"model" koanf:"model"`
	Quality         QualityTier     `yaml:"quality" koanf:"quality"`
	Port            int             `yaml:"port" koanf:"port"`
	BackendURL      string          `yaml:"backend_url" koanf:"backend_url"`
	DefaultTone     polish.Tone     `yaml:"default_tone" koanf:"default_tone"`
	RateLimitRPM    int             `yaml:"rate_limit_rpm" koanf:"rate_limit_rpm"`
	AllowAllOrigins bool            `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	Extension       ExtensionConfig `yaml:"extension" koanf:"extension"`
}

// ExtensionConfig holds the generated browser extension's identity.
type ExtensionConfig struct {
	Name    string `yaml:"name" koanf:"name"`
	Version string `yaml:"version" koanf:"version"`
}
