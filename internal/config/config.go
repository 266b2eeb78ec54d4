// Package config loads settings from the environment and an optional config
// file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/leonardcser/xai-web-search/internal/livesearch"
)

const (
	DefaultPort          = 9876
	DefaultTimeout       = 60 * time.Second
	DefaultFetchCacheTTL = 15 * time.Minute
	DefaultLogLevel      = "info"

	appDirName = "xai-web-search"
)

// Config holds every setting the binaries use.
type Config struct {
	APIKey        string        `mapstructure:"api_key"`
	BaseURL       string        `mapstructure:"base_url"`
	Model         string        `mapstructure:"model"`
	DefaultMode   string        `mapstructure:"default_mode"`
	Timeout       time.Duration `mapstructure:"timeout"`
	Port          int           `mapstructure:"port"`
	LogPath       string        `mapstructure:"log_path"`
	LogLevel      string        `mapstructure:"log_level"`
	CacheSock     string        `mapstructure:"cache_sock"`
	CacheDB       string        `mapstructure:"cache_db"`
	FetchCacheTTL time.Duration `mapstructure:"fetch_cache_ttl"`
}

// envBindings maps config keys to the environment variables they are read from.
var envBindings = map[string]string{
	"api_key":         "XAI_API_KEY",
	"base_url":        "XAI_BASE_URL",
	"model":           "XAI_MODEL",
	"default_mode":    "XAI_SEARCH_MODE",
	"timeout":         "XAI_TIMEOUT",
	"port":            "PORT",
	"log_path":        "XAI_WEB_SEARCH_LOG",
	"log_level":       "XAI_WEB_SEARCH_LOG_LEVEL",
	"cache_sock":      "XAI_WEB_SEARCH_CACHE_SOCK",
	"cache_db":        "XAI_WEB_SEARCH_CACHE_DB",
	"fetch_cache_ttl": "XAI_WEB_SEARCH_FETCH_TTL",
}

// Load reads the environment and, when path is not empty, the config file at
// path. Environment variables win over file values.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if filepath.Base(path) == ".env" || filepath.Ext(path) == ".env" {
			v.SetConfigType("env")
		}
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		// .env style files use the environment variable names as keys.
		for key, env := range envBindings {
			fileKey := strings.ToLower(env)
			if os.Getenv(env) == "" && v.InConfig(fileKey) {
				v.Set(key, v.Get(fileKey))
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid port %d", cfg.Port)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("base_url", "")
	v.SetDefault("model", "")
	v.SetDefault("default_mode", "")
	v.SetDefault("timeout", DefaultTimeout)
	v.SetDefault("port", DefaultPort)
	v.SetDefault("log_path", defaultLogPath())
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("cache_sock", filepath.Join(cacheDir(), "cache.sock"))
	v.SetDefault("cache_db", filepath.Join(cacheDir(), "cache.bbolt"))
	v.SetDefault("fetch_cache_ttl", DefaultFetchCacheTTL)
}

// Search returns the settings record for live search calls. Model and mode
// fallbacks are left to the livesearch package.
func (c *Config) Search() livesearch.Config {
	return livesearch.Config{
		APIKey:      c.APIKey,
		BaseURL:     c.BaseURL,
		Model:       c.Model,
		DefaultMode: livesearch.Mode(c.DefaultMode),
	}
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func defaultLogPath() string {
	// Next to the executable, like the cache binary lookup.
	if exePath, err := os.Executable(); err == nil {
		return filepath.Join(filepath.Dir(exePath), appDirName+".log")
	}
	return "./" + appDirName + ".log"
}

func cacheDir() string {
	home, _ := os.UserHomeDir()
	if home == "" {
		home = "."
	}
	return filepath.Join(home, ".cache", appDirName)
}
