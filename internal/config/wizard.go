package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/manifoldco/promptui"

	"github.com/polishedai/polished/internal/polish"
)

var providerItems = []string{"google", "anthropic", "openai", "ollama", "openrouter", "minimax"}

// RunWizard runs an interactive configuration wizard, saves the result to
// path and returns it.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to polished! Let's configure your backend.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Provider selection.
	providerPrompt := promptui.Select{
		Label: "Select LLM provider",
		Items: providerItems,
	}
	_, providerStr, err := providerPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("provider selection: %w", err)
	}
	cfg.Provider = ProviderType(providerStr)

	// 2. Quality tier.
	qualityPrompt := promptui.Select{
		Label: "Select quality tier",
		Items: []string{
			"lite   (fastest, cheapest)",
			"normal (balanced)",
			"max    (best rewrites)",
		},
		CursorPos: 1,
	}
	qualityIdx, _, err := qualityPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("quality selection: %w", err)
	}
	tiers := []QualityTier{QualityLite, QualityNormal, QualityMax}
	cfg.Quality = tiers[qualityIdx]
	cfg.Model = GetPreset(cfg.Provider, cfg.Quality)

	// 3. Default tone.
	tones := polish.Tones()
	toneItems := make([]string, len(tones))
	cursor := 0
	for i, t := range tones {
		toneItems[i] = t.String()
		if t == polish.DefaultTone {
			cursor = i
		}
	}
	tonePrompt := promptui.Select{
		Label:     "Default tone",
		Items:     toneItems,
		CursorPos: cursor,
	}
	toneIdx, _, err := tonePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("tone selection: %w", err)
	}
	cfg.DefaultTone = tones[toneIdx]

	// 4. Port.
	portPrompt := promptui.Prompt{
		Label:    "Port to listen on",
		Default:  strconv.Itoa(cfg.Port),
		Validate: validatePort,
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Port, _ = strconv.Atoi(portStr)
	cfg.BackendURL = fmt.Sprintf("http://localhost:%d", cfg.Port)

	// 5. Public backend URL baked into the extension.
	urlPrompt := promptui.Prompt{
		Label:   "Backend URL the extension should call",
		Default: cfg.BackendURL,
	}
	cfg.BackendURL, err = urlPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("backend url: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if envVar := APIKeyEnvVar(cfg.Provider); envVar != "" && os.Getenv(envVar) == "" {
		fmt.Printf("\nNote: Set %s in your environment before running polished serve.\n", envVar)
	}

	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

func validatePort(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("port must be a number")
	}
	if n <= 0 || n > 65535 {
		return fmt.Errorf("port must be between 1 and 65535")
	}
	return nil
}
