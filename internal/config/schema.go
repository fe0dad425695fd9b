package config

import (
	"fmt"
	"time"
)

// Config holds fintab configuration.
// Stored at: {home}/config.yaml
type Config struct {
	Server    ServerCfg    `mapstructure:"server" yaml:"server"`
	Extractor ExtractorCfg `mapstructure:"extractor" yaml:"extractor"`
	Storage   StorageCfg   `mapstructure:"storage" yaml:"storage"`
	History   HistoryCfg   `mapstructure:"history" yaml:"history"`
}

// ServerCfg configures the HTTP listener.
type ServerCfg struct {
	Host string `mapstructure:"host" yaml:"host"`
	Port int    `mapstructure:"port" yaml:"port"`
}

// ExtractorCfg configures the upstream model call.
type ExtractorCfg struct {
	APIKey          string  `mapstructure:"api_key" yaml:"api_key"` // API key (supports ${ENV_VAR} syntax)
	BaseURL         string  `mapstructure:"base_url" yaml:"base_url"` // Optional API base URL override
	Model           string  `mapstructure:"model" yaml:"model"`
	MaxOutputTokens int64   `mapstructure:"max_output_tokens" yaml:"max_output_tokens"`
	Temperature     float64 `mapstructure:"temperature" yaml:"temperature"`
	TopP            float64 `mapstructure:"top_p" yaml:"top_p"`
	Store           bool    `mapstructure:"store" yaml:"store"` // Ask the API to retain the response
	TimeoutSeconds  int     `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
}

// StorageCfg configures where generated artifacts land.
type StorageCfg struct {
	PublicDir   string `mapstructure:"public_dir" yaml:"public_dir"` // Empty means {home}/public
	UniqueNames bool   `mapstructure:"unique_names" yaml:"unique_names"`
}

// HistoryCfg bounds the in-memory extraction history.
type HistoryCfg struct {
	Limit int `mapstructure:"limit" yaml:"limit"`
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerCfg{
			Host: "0.0.0.0",
			Port: 8000,
		},
		Extractor: ExtractorCfg{
			APIKey:          "${OPENAI_API_KEY}",
			Model:           "gpt-4o",
			MaxOutputTokens: 4982,
			Temperature:     1.0,
			TopP:            1.0,
			Store:           true,
			TimeoutSeconds:  120,
		},
		Storage: StorageCfg{
			PublicDir:   "",
			UniqueNames: false,
		},
		History: HistoryCfg{
			Limit: 100,
		},
	}
}

// ListenAddr returns the host:port the server binds.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// ResolvedAPIKey returns the API key with ${ENV_VAR} references expanded.
func (e ExtractorCfg) ResolvedAPIKey() string {
	return ResolveEnvVars(e.APIKey)
}

// Timeout returns the upstream call timeout as a duration.
func (e ExtractorCfg) Timeout() time.Duration {
	if e.TimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(e.TimeoutSeconds) * time.Second
}
