// Package config loads Tianya configuration from .env files and environment
// variables. Every knob has a TIANYA_-prefixed environment variable; a .env
// file in the working directory is loaded first so local setups stay out of
// the shell profile.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"tianya/internal/logger"
)

// Store backend selectors accepted by TIANYA_STORE.
const (
	StoreBackendFile   = "file"
	StoreBackendMemory = "memory"
	StoreBackendRedis  = "redis"
)

// Config holds the resolved runtime configuration for the client core.
type Config struct {
	// Chat transport
	ChatBaseURL string
	ChatAPIKey  string
	ChatModel   string

	// Conferencing component
	ConferenceServerURL string

	// Key-value store
	StoreBackend string
	StorePath    string
	RedisAddr    string

	// Deterministic IDs and timestamps for the test harness
	TestMode bool
}

// Load resolves configuration with precedence: environment variables over
// .env file over built-in defaults. A missing .env file is not an error.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Debug("No .env file loaded", "error", err)
	}

	v := viper.New()
	v.SetEnvPrefix("TIANYA")
	v.AutomaticEnv()

	v.SetDefault("chat_base_url", "https://dashscope.aliyuncs.com/compatible-mode/v1")
	v.SetDefault("chat_model", "qwen-omni-turbo")
	v.SetDefault("conference_url", "https://gibranzhang.xyz/")
	v.SetDefault("store", StoreBackendFile)
	v.SetDefault("redis_addr", "localhost:6379")

	cfg := &Config{
		ChatBaseURL:         v.GetString("chat_base_url"),
		ChatAPIKey:          v.GetString("chat_api_key"),
		ChatModel:           v.GetString("chat_model"),
		ConferenceServerURL: v.GetString("conference_url"),
		StoreBackend:        v.GetString("store"),
		StorePath:           v.GetString("store_path"),
		RedisAddr:           v.GetString("redis_addr"),
		TestMode:            v.GetBool("test_mode"),
	}

	switch cfg.StoreBackend {
	case StoreBackendFile, StoreBackendMemory, StoreBackendRedis:
	default:
		return nil, fmt.Errorf("unknown store backend %q (want file, memory, or redis)", cfg.StoreBackend)
	}

	if cfg.StorePath == "" && cfg.StoreBackend == StoreBackendFile {
		path, err := defaultStorePath()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve store path: %w", err)
		}
		cfg.StorePath = path
	}

	return cfg, nil
}

// defaultStorePath places the file store under the user config directory,
// e.g. ~/.config/tianya/store.json on Linux.
func defaultStorePath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "tianya", "store.json"), nil
}
