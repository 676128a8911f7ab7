package cmd

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/polishedai/polished/internal/config"
	"github.com/polishedai/polished/internal/extension"
	"github.com/polishedai/polished/internal/improve"
	"github.com/polishedai/polished/internal/llm"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `polished init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// newService creates the rate-limited improvement service for the
// configured provider.
func newService(cfg *config.Config, logger *zap.Logger) (*improve.Service, error) {
	provider, err := llm.NewProvider(string(cfg.Provider), cfg.Model)
	if err != nil {
		if envVar := config.APIKeyEnvVar(cfg.Provider); envVar != "" {
			return nil, fmt.Errorf("creating LLM provider: %w (set %s)", err, envVar)
		}
		return nil, fmt.Errorf("creating LLM provider: %w", err)
	}
	provider = llm.NewRateLimitedProvider(provider, cfg.RateLimitRPM)
	return improve.NewService(provider, cfg.Model, logger), nil
}

// buildBundle generates the extension for the configured backend. A
// non-empty backend overrides cfg.BackendURL.
func buildBundle(cfg *config.Config, backend string) (*extension.Bundle, error) {
	if backend == "" {
		backend = cfg.BackendURL
	}
	return extension.Build(extension.Options{
		BackendURL:  backend,
		Name:        cfg.Extension.Name,
		Version:     cfg.Extension.Version,
		DefaultTone: cfg.DefaultTone,
	})
}
