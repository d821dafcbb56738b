package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	AI         AIConfig         `yaml:"ai"`
	YouTube    YouTubeConfig    `yaml:"youtube"`
	Transcript TranscriptConfig `yaml:"transcript"`
	Sponsors   SponsorsConfig   `yaml:"sponsors"`
	Monitoring MonitoringConfig `yaml:"monitoring"`
}

type AIConfig struct {
	GeminiAPIKey string `yaml:"gemini_api_key" env:"GEMINI_API_KEY"`
	Model        string `yaml:"model"`
	// MaxOutputTokens bounds the completion; TranscriptCharBudget bounds the
	// transcript text placed into the user message (prefix-keep truncation).
	MaxOutputTokens      int `yaml:"max_output_tokens"`
	TranscriptCharBudget int `yaml:"transcript_char_budget"`
	// TimeoutSeconds bounds the completion call end to end.
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

type YouTubeConfig struct {
	// APIKey is optional. When set, batch headers are enriched with video
	// title and channel from the YouTube Data API.
	APIKey string `yaml:"api_key" env:"YOUTUBE_API_KEY"`
}

type TranscriptConfig struct {
	// CookieFile points at a Netscape-format cookie export. A missing file is
	// tolerated; the cookie-session strategy is skipped.
	CookieFile     string   `yaml:"cookie_file"`
	Languages      []string `yaml:"languages"`
	TimeoutSeconds int      `yaml:"timeout_seconds"`
}

type SponsorsConfig struct {
	DatabaseFile string `yaml:"database_file"`
}

type MonitoringConfig struct {
	HealthPort int `yaml:"health_port"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	configFile := os.Getenv("CONFIG_FILE")
	if configFile == "" {
		configFile = "config.yaml"
	}

	var cfg Config
	data, err := os.ReadFile(configFile)
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", configFile, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
	}

	if cfg.AI.GeminiAPIKey == "" {
		cfg.AI.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.YouTube.APIKey == "" {
		cfg.YouTube.APIKey = os.Getenv("YOUTUBE_API_KEY")
	}

	if cfg.AI.Model == "" {
		cfg.AI.Model = "gemini-2.5-flash"
	}
	if cfg.AI.MaxOutputTokens == 0 {
		cfg.AI.MaxOutputTokens = 1024
	}
	if cfg.AI.TranscriptCharBudget == 0 {
		cfg.AI.TranscriptCharBudget = 16000
	}
	if cfg.AI.TimeoutSeconds == 0 {
		cfg.AI.TimeoutSeconds = 120
	}
	if cfg.Transcript.CookieFile == "" {
		cfg.Transcript.CookieFile = "cookies.txt"
	}
	if len(cfg.Transcript.Languages) == 0 {
		cfg.Transcript.Languages = []string{"en"}
	}
	if cfg.Transcript.TimeoutSeconds == 0 {
		cfg.Transcript.TimeoutSeconds = 30
	}
	if cfg.Sponsors.DatabaseFile == "" {
		cfg.Sponsors.DatabaseFile = "data/sponsors.csv"
	}
	if cfg.Monitoring.HealthPort == 0 {
		cfg.Monitoring.HealthPort = 8080
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.AI.GeminiAPIKey == "" {
		return fmt.Errorf("Gemini API key is required (set GEMINI_API_KEY or ai.gemini_api_key)")
	}
	if c.AI.TranscriptCharBudget < 1000 {
		return fmt.Errorf("transcript character budget must be at least 1000, got %d", c.AI.TranscriptCharBudget)
	}
	if c.AI.MaxOutputTokens < 1 {
		return fmt.Errorf("max output tokens must be positive, got %d", c.AI.MaxOutputTokens)
	}
	if c.AI.TimeoutSeconds < 1 {
		return fmt.Errorf("completion timeout must be positive, got %d", c.AI.TimeoutSeconds)
	}
	if c.Transcript.TimeoutSeconds < 1 {
		return fmt.Errorf("transcript timeout must be positive, got %d", c.Transcript.TimeoutSeconds)
	}
	return nil
}
