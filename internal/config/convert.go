package config

import (
	"github.com/FloatbotAI/unimrcp/internal/asr"
	"github.com/FloatbotAI/unimrcp/internal/llm"
	"github.com/FloatbotAI/unimrcp/internal/mrcp"
)

func (c *Config) ToEngineConfig() asr.Config {
	return asr.Config{
		Profile:       c.Client.Profile,
		ResultTimeout: c.Recognition.ResultTimeout,
	}
}

func (c *Config) ToLoopbackConfig() mrcp.LoopbackConfig {
	return mrcp.LoopbackConfig{
		Version:     mrcp.Version(c.Client.Version),
		FrameSize:   c.Recognition.FrameSize,
		FramePeriod: c.Recognition.FramePeriod,
	}
}

func (c *Config) ToLLMConfig() llm.Config {
	return llm.Config{
		Provider: c.LLM.Provider,
		APIKey:   c.ResolveAPIKey(c.LLM.Provider),
		Model:    c.LLM.Model,
	}
}
