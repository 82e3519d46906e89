package config

import (
	"fmt"
	"os"
)

func (c *Config) Validate() error {
	if c.Client.Profile == "" {
		return fmt.Errorf("invalid client.profile: empty")
	}
	if c.Client.Version != 1 && c.Client.Version != 2 {
		return fmt.Errorf("invalid client.version: %d (must be 1 or 2)", c.Client.Version)
	}

	if c.Recognition.ResultTimeout <= 0 {
		return fmt.Errorf("invalid recognition.result_timeout: %v", c.Recognition.ResultTimeout)
	}
	if c.Recognition.FrameSize <= 0 {
		return fmt.Errorf("invalid recognition.frame_size: %d", c.Recognition.FrameSize)
	}
	if c.Recognition.FramePeriod <= 0 {
		return fmt.Errorf("invalid recognition.frame_period: %v", c.Recognition.FramePeriod)
	}

	if c.LLM.Enabled {
		switch c.LLM.Provider {
		case "openai":
			if c.ResolveAPIKey("openai") == "" {
				return fmt.Errorf("OpenAI API key required: not found in config (providers.openai.api_key) or environment variable (OPENAI_API_KEY)")
			}
		case "groq":
			if c.ResolveAPIKey("groq") == "" {
				return fmt.Errorf("Groq API key required: not found in config (providers.groq.api_key) or environment variable (GROQ_API_KEY)")
			}
		case "":
			return fmt.Errorf("invalid llm.provider: empty")
		default:
			return fmt.Errorf("invalid llm.provider: %s (must be openai or groq)", c.LLM.Provider)
		}
	}

	return nil
}

// ResolveAPIKey looks up a provider API key in the config, then in the
// conventional environment variable.
func (c *Config) ResolveAPIKey(provider string) string {
	if p, ok := c.Providers[provider]; ok && p.APIKey != "" {
		return p.APIKey
	}
	switch provider {
	case "openai":
		return os.Getenv("OPENAI_API_KEY")
	case "groq":
		return os.Getenv("GROQ_API_KEY")
	}
	return ""
}
