package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
)

// Config holds application configuration from ~/.reelmcp/config.json
type Config struct {
	SuggestionProvider string         `json:"suggestion_provider,omitempty"` // "gemini" or "lmstudio"
	DataDir            string         `json:"data_dir,omitempty"`
	AdminSecret        string         `json:"admin_secret,omitempty"`
	Gemini             GeminiConfig   `json:"gemini,omitempty"`
	LMStudio           LMStudioConfig `json:"lmstudio,omitempty"`
}

// GeminiConfig holds Gemini model settings.
type GeminiConfig struct {
	APIKey         string `json:"api_key,omitempty"`
	EmbeddingModel string `json:"embedding_model,omitempty"`
	LLMModel       string `json:"llm_model,omitempty"`
}

// LMStudioConfig holds LM Studio connection settings.
type LMStudioConfig struct {
	BaseURL  string `json:"base_url,omitempty"`
	LLMModel string `json:"llm_model,omitempty"`
}

// applyEnvOverrides layers environment variables over whatever the config
// file (or its absence) produced.
func (cfg *Config) applyEnvOverrides() {
	if provider := os.Getenv("SUGGESTION_PROVIDER"); provider != "" {
		cfg.SuggestionProvider = provider
	}
	if dataDir := os.Getenv("REELMCP_DATA_DIR"); dataDir != "" {
		cfg.DataDir = dataDir
	}
	if secret := os.Getenv("ADMIN_PASSWORD"); secret != "" {
		cfg.AdminSecret = secret
	}
	if geminiKey := os.Getenv("GEMINI_API_KEY"); geminiKey != "" {
		cfg.Gemini.APIKey = geminiKey
	}
	if embModel := os.Getenv("GEMINI_EMBEDDING_MODEL"); embModel != "" {
		cfg.Gemini.EmbeddingModel = embModel
	}
	if llmModel := os.Getenv("GEMINI_LLM_MODEL"); llmModel != "" {
		cfg.Gemini.LLMModel = llmModel
	}
	if baseURL := os.Getenv("LMSTUDIO_BASE_URL"); baseURL != "" {
		cfg.LMStudio.BaseURL = baseURL
	}
	if model := os.Getenv("LMSTUDIO_LLM_MODEL"); model != "" {
		cfg.LMStudio.LLMModel = model
	}
}

// applyDefaults fills unset fields with defaults.
func (cfg *Config) applyDefaults() error {
	if cfg.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		cfg.DataDir = filepath.Join(home, ".reelmcp")
	}
	if cfg.AdminSecret == "" {
		cfg.AdminSecret = DefaultAdminSecret
	}
	if cfg.SuggestionProvider == "" {
		cfg.SuggestionProvider = "gemini"
	}
	if cfg.Gemini.EmbeddingModel == "" {
		cfg.Gemini.EmbeddingModel = DefaultEmbeddingModel
	}
	if cfg.Gemini.LLMModel == "" {
		cfg.Gemini.LLMModel = DefaultLLMModel
	}
	if cfg.SuggestionProvider == "lmstudio" {
		if cfg.LMStudio.BaseURL == "" {
			cfg.LMStudio.BaseURL = "http://localhost:1234/v1"
		}
		if cfg.LMStudio.LLMModel == "" {
			cfg.LMStudio.LLMModel = "qwen2.5-7b-instruct"
		}
	}
	return nil
}

// LoadConfig reads configuration from ~/.reelmcp/config.json
func LoadConfig(logger *log.Logger) (*Config, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}

	cfg := &Config{}
	configPath := filepath.Join(homeDir, ".reelmcp", "config.json")
	data, err := os.ReadFile(configPath)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config.json: %w", err)
		}
		logger.Printf("Loaded config from %s", configPath)
	case os.IsNotExist(err):
		// Config file doesn't exist, use defaults and environment variables
		logger.Printf("Config file not found at %s, using defaults and environment variables", configPath)
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg.applyEnvOverrides()
	if err := cfg.applyDefaults(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveConfig writes configuration to ~/.reelmcp/config.json
func SaveConfig(cfg *Config, logger *log.Logger) error {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}

	reelDir := filepath.Join(homeDir, ".reelmcp")
	if err := os.MkdirAll(reelDir, 0755); err != nil {
		return fmt.Errorf("failed to create .reelmcp directory: %w", err)
	}

	configPath := filepath.Join(reelDir, "config.json")
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config.json: %w", err)
	}

	logger.Printf("Saved config to %s", configPath)
	return nil
}
