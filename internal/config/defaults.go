package config

import (
	"github.com/polishedai/polished/internal/extension"
	"github.com/polishedai/polished/internal/polish"
)

// DefaultPath is where init writes the configuration.
const DefaultPath = ".polished.yml"

// qualityPresets maps each provider+quality combination to its model.
// Polishing is a short single-turn rewrite, so even the max tier stays on
// mid-sized models.
var qualityPresets = map[ProviderType]map[QualityTier]string{
	ProviderGoogle: {
		QualityLite:   "gemini-2.5-flash-lite",
		QualityNormal: "gemini-2.5-flash",
		QualityMax:    "gemini-2.5-pro",
	},
	ProviderAnthropic: {
		QualityLite:   "claude-haiku-4-5-20251001",
		QualityNormal: "claude-haiku-4-5-20251001",
		QualityMax:    "claude-sonnet-4-5-20250929",
	},
	ProviderOpenAI: {
		QualityLite:   "gpt-4o-mini",
		QualityNormal: "gpt-4o-mini",
		QualityMax:    "gpt-4o",
	},
	ProviderOllama: {
		QualityLite:   "llama3.2",
		QualityNormal: "llama3.1",
		QualityMax:    "llama3.1:70b",
	},
	ProviderMiniMax: {
		QualityLite:   "MiniMax-M2.5-highspeed",
		QualityNormal: "MiniMax-M2.5",
		QualityMax:    "MiniMax-M2.5",
	},
	ProviderOpenRouter: {
		QualityLite:   "google/gemini-2.5-flash-lite",
		QualityNormal: "google/gemini-2.5-flash",
		QualityMax:    "google/gemini-2.5-pro",
	},
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Provider:        ProviderGoogle,
		Model:           "gemini-2.5-flash",
		Quality:         QualityNormal,
		Port:            8080,
		BackendURL:      "http://localhost:8080",
		DefaultTone:     polish.DefaultTone,
		RateLimitRPM:    60,
		AllowAllOrigins: true,
		Extension: ExtensionConfig{
			Name:    extension.DefaultName,
			Version: extension.DefaultVersion,
		},
	}
}

// GetPreset returns the model for the given provider and tier.
// Returns the Normal Google model if the combination is not found.
func GetPreset(provider ProviderType, tier QualityTier) string {
	if tiers, ok := qualityPresets[provider]; ok {
		if model, ok := tiers[tier]; ok {
			return model
		}
	}
	return qualityPresets[ProviderGoogle][QualityNormal]
}
