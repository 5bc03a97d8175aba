package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type fileConfig struct {
	Port             string   `yaml:"port"`
	CORSAllowOrigins []string `yaml:"cors_allow_origins"`
	DatabaseURL      string   `yaml:"database_url"`
	Gemini           struct {
		APIKey string `yaml:"api_key"`
		Model  string `yaml:"model"`
	} `yaml:"gemini"`
	MaxContentLength int `yaml:"max_content_length"`
}

// applyFile overlays non-empty values from a YAML config file onto cfg.
// Environment variables still win for values they already set.
func applyFile(cfg *Config, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var fc fileConfig
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return fmt.Errorf("parse yaml: %w", err)
	}

	if cfg.Port == "8080" && fc.Port != "" {
		cfg.Port = fc.Port
	}
	if len(fc.CORSAllowOrigins) > 0 && os.Getenv("CORS_ALLOW_ORIGINS") == "" {
		cfg.CORSAllowOrigin = fc.CORSAllowOrigins
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = fc.DatabaseURL
	}
	if cfg.GeminiAPIKey == "" {
		cfg.GeminiAPIKey = fc.Gemini.APIKey
	}
	if os.Getenv("GEMINI_MODEL") == "" && fc.Gemini.Model != "" {
		cfg.GeminiModel = fc.Gemini.Model
	}
	if os.Getenv("MAX_CONTENT_LENGTH") == "" && fc.MaxContentLength > 0 {
		cfg.MaxContentLength = fc.MaxContentLength
	}
	return nil
}
