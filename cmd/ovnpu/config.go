package main

import (
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// Config represents the ovnpu configuration file (~/.config/ovnpu/config.yaml).
type Config struct {
	LibraryPath string `yaml:"library_path"`
	Device      string `yaml:"device"`
	CacheDir    string `yaml:"cache_dir"`

	// Output
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	// Server
	ServerAddress string   `yaml:"server_address"`
	PoolSize      *int64   `yaml:"pool_size"`
	RateLimit     *float64 `yaml:"rate_limit"`
}

func configPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "ovnpu", "config.yaml")
}

// applyRuntimeConfig applies config file defaults to the shared runtime
// flags when the corresponding CLI flag was not explicitly set.
func applyRuntimeConfig(c *cli.Command, cfg Config) {
	if cfg.LibraryPath != "" && !c.IsSet("library") {
		libraryPath = cfg.LibraryPath
	}
	if cfg.Device != "" && !c.IsSet("device") {
		device = cfg.Device
	}
	if cfg.CacheDir != "" && !c.IsSet("cache-dir") {
		cacheDir = cfg.CacheDir
	}
	if cfg.LogLevel != "" && !c.IsSet("log-level") {
		logLevel = cfg.LogLevel
	}
	if cfg.LogFormat != "" && !c.IsSet("log-format") {
		logFormat = cfg.LogFormat
	}
}

// applyServeConfig applies config file defaults to serve command variables.
func applyServeConfig(c *cli.Command, cfg Config, addr *string, poolSize *int64, rateLimit *float64) {
	if cfg.ServerAddress != "" && !c.IsSet("addr") {
		*addr = cfg.ServerAddress
	}
	if cfg.PoolSize != nil && !c.IsSet("pool-size") {
		*poolSize = *cfg.PoolSize
	}
	if cfg.RateLimit != nil && !c.IsSet("rate-limit") {
		*rateLimit = *cfg.RateLimit
	}
}

// LoadConfig reads the config file. Returns a zero Config if the file doesn't exist.
func LoadConfig() Config {
	path := configPath()
	if path == "" {
		return Config{}
	}
	return loadConfigFrom(path)
}

func loadConfigFrom(path string) Config {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}
	}
	return cfg
}
