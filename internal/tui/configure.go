// Package tui implements the interactive configuration wizard behind
// `asrclient configure`.
package tui

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/FloatbotAI/unimrcp/internal/config"
)

// ConfigureResult holds the configuration result from the wizard
type ConfigureResult struct {
	Config    *config.Config
	Cancelled bool
}

var styleHeader = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("205")).
	MarginBottom(1)

// Run starts the configuration wizard over the given config (defaults when
// nil) and returns the edited copy.
func Run(existing *config.Config) (*ConfigureResult, error) {
	cfg := config.DefaultConfig()
	if existing != nil {
		copied := *existing
		cfg = &copied
	}

	fmt.Println(styleHeader.Render("asrclient configuration"))

	version := strconv.Itoa(cfg.Client.Version)
	resultTimeout := cfg.Recognition.ResultTimeout.String()
	llmAPIKey := ""

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Client profile").
				Description("Profile name sessions are created on").
				Value(&cfg.Client.Profile).
				Validate(notEmpty("profile")),
			huh.NewSelect[string]().
				Title("Protocol version").
				Options(
					huh.NewOption("Version 2", "2"),
					huh.NewOption("Version 1", "1"),
				).
				Value(&version),
			huh.NewInput().
				Title("Result timeout").
				Description("How long to wait for the recognition result (e.g. 60s)").
				Value(&resultTimeout).
				Validate(validDuration),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Title("LLM post-processing").
				Description("Clean up recognized input text with a language model").
				Value(&cfg.LLM.Enabled),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("LLM provider").
				Options(
					huh.NewOption("OpenAI", "openai"),
					huh.NewOption("Groq", "groq"),
				).
				Value(&cfg.LLM.Provider),
			huh.NewInput().
				Title("Model").
				Description("Empty uses the provider default").
				Value(&cfg.LLM.Model),
			huh.NewInput().
				Title("API key").
				Description("Stored in the config file; empty keeps the current key or the environment variable").
				EchoMode(huh.EchoModePassword).
				Value(&llmAPIKey),
		).WithHideFunc(func() bool { return !cfg.LLM.Enabled }),
	)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return &ConfigureResult{Cancelled: true}, nil
		}
		return nil, fmt.Errorf("configuration wizard: %w", err)
	}

	cfg.Client.Version, _ = strconv.Atoi(version)
	cfg.Recognition.ResultTimeout, _ = time.ParseDuration(resultTimeout)
	if cfg.LLM.Enabled && llmAPIKey != "" {
		if cfg.Providers == nil {
			cfg.Providers = make(map[string]config.ProviderConfig)
		}
		cfg.Providers[cfg.LLM.Provider] = config.ProviderConfig{APIKey: llmAPIKey}
	}

	return &ConfigureResult{Config: cfg}, nil
}

func notEmpty(field string) func(string) error {
	return func(s string) error {
		if s == "" {
			return fmt.Errorf("%s must not be empty", field)
		}
		return nil
	}
}

func validDuration(s string) error {
	d, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration")
	}
	if d <= 0 {
		return fmt.Errorf("must be positive")
	}
	return nil
}
