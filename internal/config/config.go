package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Default candidate models, tried in order. N >= 1 by construction.
var defaultModels = []string{"gemini-2.0-flash"}

type Config struct {
	Port string

	APIKey string
	Models []string

	StorageBackend string // "file", "sqlite" or "memory"
	DataDir        string

	UseMockLLM bool
}

// fileConfig is the optional TOML overlay. Every field is a pointer so an
// absent key leaves the env-derived value alone.
type fileConfig struct {
	Port           *string  `toml:"port"`
	Models         []string `toml:"models"`
	StorageBackend *string  `toml:"storage_backend"`
	DataDir        *string  `toml:"data_dir"`
	UseMockLLM     *bool    `toml:"use_mock_llm"`
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getBoolEnv(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v == "1" || v == "true" || v == "TRUE"
}

// Load reads env vars, then overlays the TOML config file when one exists
// (CHATBOT_CONFIG, or ~/.config/chatbot/config.toml).
func Load() (*Config, error) {
	cfg := &Config{
		Port:           getEnv("CHATBOT_PORT", "8080"),
		APIKey:         os.Getenv("GEMINI_API_KEY"),
		Models:         splitModels(os.Getenv("CHATBOT_MODELS")),
		StorageBackend: getEnv("CHATBOT_STORAGE_BACKEND", "file"),
		DataDir:        os.Getenv("CHATBOT_DATA_DIR"),
		UseMockLLM:     getBoolEnv("CHATBOT_USE_MOCK_LLM", false),
	}

	if err := cfg.overlayFile(configPath()); err != nil {
		return nil, err
	}

	if len(cfg.Models) == 0 {
		cfg.Models = defaultModels
	}
	if cfg.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		cfg.DataDir = filepath.Join(home, ".local", "share", "chatbot")
	}

	switch cfg.StorageBackend {
	case "file", "sqlite", "memory":
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}

	return cfg, nil
}

func (c *Config) overlayFile(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("stat config file: %w", err)
	}

	var fc fileConfig
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	if fc.Port != nil {
		c.Port = *fc.Port
	}
	if len(fc.Models) > 0 {
		c.Models = fc.Models
	}
	if fc.StorageBackend != nil {
		c.StorageBackend = *fc.StorageBackend
	}
	if fc.DataDir != nil {
		c.DataDir = *fc.DataDir
	}
	if fc.UseMockLLM != nil {
		c.UseMockLLM = *fc.UseMockLLM
	}
	return nil
}

func configPath() string {
	if p := os.Getenv("CHATBOT_CONFIG"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "chatbot", "config.toml")
}

func splitModels(raw string) []string {
	if raw == "" {
		return nil
	}
	var models []string
	for _, m := range strings.Split(raw, ",") {
		if m = strings.TrimSpace(m); m != "" {
			models = append(models, m)
		}
	}
	return models
}
