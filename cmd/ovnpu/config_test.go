package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigFrom(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
library_path: /opt/openvino/libopenvino_c.so
device: NPU
cache_dir: /var/cache/ov
log_level: debug
server_address: 0.0.0.0:9090
pool_size: 8
rate_limit: 50.5
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg := loadConfigFrom(path)
	if cfg.LibraryPath != "/opt/openvino/libopenvino_c.so" {
		t.Errorf("library_path: got %q", cfg.LibraryPath)
	}
	if cfg.Device != "NPU" {
		t.Errorf("device: got %q", cfg.Device)
	}
	if cfg.CacheDir != "/var/cache/ov" {
		t.Errorf("cache_dir: got %q", cfg.CacheDir)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("log_level: got %q", cfg.LogLevel)
	}
	if cfg.ServerAddress != "0.0.0.0:9090" {
		t.Errorf("server_address: got %q", cfg.ServerAddress)
	}
	if cfg.PoolSize == nil || *cfg.PoolSize != 8 {
		t.Errorf("pool_size: got %v", cfg.PoolSize)
	}
	if cfg.RateLimit == nil || *cfg.RateLimit != 50.5 {
		t.Errorf("rate_limit: got %v", cfg.RateLimit)
	}
}

func TestLoadConfigFromMissingFile(t *testing.T) {
	cfg := loadConfigFrom(filepath.Join(t.TempDir(), "nope.yaml"))
	if cfg != (Config{}) {
		t.Errorf("Expected zero config, got %+v", cfg)
	}
}

func TestLoadConfigFromInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("{{not yaml"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg := loadConfigFrom(path)
	if cfg != (Config{}) {
		t.Errorf("Expected zero config, got %+v", cfg)
	}
}
