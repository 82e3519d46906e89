package config

import "time"

// DefaultConfig returns the configuration used before any file exists.
// Frame defaults match 8 kHz telephony audio: 160 bytes every 20 ms.
func DefaultConfig() *Config {
	return &Config{
		Client: ClientConfig{
			Profile: "uni2",
			Version: 2,
		},
		Recognition: RecognitionConfig{
			ResultTimeout: 60 * time.Second,
			FrameSize:     160,
			FramePeriod:   20 * time.Millisecond,
		},
		LLM: LLMConfig{
			Enabled: false,
		},
		Providers: make(map[string]ProviderConfig),
	}
}

func (c *Config) applyDefaults() {
	def := DefaultConfig()
	if c.Client.Profile == "" {
		c.Client.Profile = def.Client.Profile
	}
	if c.Client.Version == 0 {
		c.Client.Version = def.Client.Version
	}
	if c.Recognition.ResultTimeout == 0 {
		c.Recognition.ResultTimeout = def.Recognition.ResultTimeout
	}
	if c.Recognition.FrameSize == 0 {
		c.Recognition.FrameSize = def.Recognition.FrameSize
	}
	if c.Recognition.FramePeriod == 0 {
		c.Recognition.FramePeriod = def.Recognition.FramePeriod
	}
	if c.Providers == nil {
		c.Providers = make(map[string]ProviderConfig)
	}
}
