package config

import "time"

type Config struct {
	Client      ClientConfig              `toml:"client"`
	Recognition RecognitionConfig         `toml:"recognition"`
	LLM         LLMConfig                 `toml:"llm"`
	Providers   map[string]ProviderConfig `toml:"providers"`
}

// ClientConfig selects the protocol client stack profile.
type ClientConfig struct {
	Profile string `toml:"profile"`
	Version int    `toml:"version"` // protocol major version, 1 or 2
}

type RecognitionConfig struct {
	// ResultTimeout bounds the wait for the recognition result.
	ResultTimeout time.Duration `toml:"result_timeout"`
	// FrameSize and FramePeriod set the media pump cadence of the
	// in-process stack.
	FrameSize   int           `toml:"frame_size"`
	FramePeriod time.Duration `toml:"frame_period"`
}

// LLMConfig configures optional post-processing of the recognized input text.
type LLMConfig struct {
	Enabled  bool   `toml:"enabled"`
	Provider string `toml:"provider"`
	Model    string `toml:"model"`
}

// ProviderConfig holds the API key for a post-processing provider.
type ProviderConfig struct {
	APIKey string `toml:"api_key"`
}
