package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ConfigPath is the default config file location.
const ConfigPath = "config.yaml"

// FileConfig represents configuration loaded from YAML plus env overrides.
type FileConfig struct {
	Port            string `yaml:"port"`
	LogLevel        string `yaml:"logLevel"`
	DatabaseURL     string `yaml:"databaseURL"`
	SecretKey       string `yaml:"secretKey"`
	LLMProvider     string `yaml:"llmProvider"`
	LLMBaseURL      string `yaml:"llmBaseURL"`
	LLMAPIKey       string `yaml:"llmAPIKey"`
	LLMModel        string `yaml:"llmModel"`
	TokenTTLMinutes int    `yaml:"tokenTTLMinutes"`
	DevMode         bool   `yaml:"devMode"`
}

// Load reads config from path (defaults to config.yaml). A missing file is
// fine; secrets normally arrive through the environment.
func Load(path string) (FileConfig, error) {
	cfg := FileConfig{
		Port:            "8000",
		LogLevel:        "info",
		LLMProvider:     "openai",
		LLMBaseURL:      "https://api.openai.com/v1",
		LLMModel:        "gpt-4o-mini",
		TokenTTLMinutes: 60,
	}
	if path == "" {
		path = ConfigPath
	}
	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
	}

	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = strings.TrimSpace(v)
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = strings.TrimSpace(v)
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.DatabaseURL = v
	}
	if v := os.Getenv("SECRET_KEY"); v != "" {
		cfg.SecretKey = v
	}
	if v := os.Getenv("LLM_PROVIDER"); v != "" {
		cfg.LLMProvider = strings.TrimSpace(v)
	}
	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		cfg.LLMBaseURL = strings.TrimSpace(v)
	}
	if v := os.Getenv("LLM_API_KEY"); v != "" {
		cfg.LLMAPIKey = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		cfg.LLMModel = strings.TrimSpace(v)
	}
	if v := os.Getenv("TOKEN_TTL_MINUTES"); v != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			cfg.TokenTTLMinutes = n
		}
	}
	if v := os.Getenv("DEV_MODE"); v != "" {
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			cfg.DevMode = b
		}
	}

	if err := validateConfig(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func validateConfig(cfg FileConfig) error {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		return errors.New("config: databaseURL is required (set in config.yaml or DATABASE_URL)")
	}
	if strings.TrimSpace(cfg.SecretKey) == "" {
		return errors.New("config: secretKey is required (set in config.yaml or SECRET_KEY)")
	}
	switch strings.ToLower(strings.TrimSpace(cfg.LLMProvider)) {
	case "openai", "ollama":
	default:
		return fmt.Errorf("config: unknown llmProvider %q", cfg.LLMProvider)
	}
	if cfg.TokenTTLMinutes <= 0 {
		return errors.New("config: tokenTTLMinutes must be > 0")
	}
	return nil
}
