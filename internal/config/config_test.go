package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Location.Source != SourceIP {
		t.Errorf("Location.Source = %q, want %q", cfg.Location.Source, SourceIP)
	}
	if cfg.Location.TimeoutSeconds != 10 {
		t.Errorf("Location.TimeoutSeconds = %v, want 10", cfg.Location.TimeoutSeconds)
	}
	if cfg.Map.Zoom != 13 {
		t.Errorf("Map.Zoom = %v, want 13", cfg.Map.Zoom)
	}
	if cfg.Map.Layer != "street" {
		t.Errorf("Map.Layer = %q, want %q", cfg.Map.Layer, "street")
	}
	if cfg.Storage.Backend != BackendSQLite {
		t.Errorf("Storage.Backend = %q, want %q", cfg.Storage.Backend, BackendSQLite)
	}
	if cfg.Display.Locale != "en" {
		t.Errorf("Display.Locale = %q, want %q", cfg.Display.Locale, "en")
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name        string
		modify      func(*Config)
		expectError bool
		errContains string
	}{
		{
			name:   "valid static location",
			modify: func(c *Config) { c.Location = LocationConfig{Source: SourceStatic, Latitude: 51.5, Longitude: -0.1} },
		},
		{
			name:        "unknown source",
			modify:      func(c *Config) { c.Location.Source = "gps" },
			expectError: true,
			errContains: "location.source",
		},
		{
			name:        "latitude out of range",
			modify:      func(c *Config) { c.Location = LocationConfig{Source: SourceStatic, Latitude: 95} },
			expectError: true,
			errContains: "location.latitude",
		},
		{
			name:        "longitude out of range",
			modify:      func(c *Config) { c.Location = LocationConfig{Source: SourceStatic, Longitude: -181} },
			expectError: true,
			errContains: "location.longitude",
		},
		{
			name:        "zoom too large",
			modify:      func(c *Config) { c.Map.Zoom = 30 },
			expectError: true,
			errContains: "map.zoom",
		},
		{
			name:        "unknown layer",
			modify:      func(c *Config) { c.Map.Layer = "satellite" },
			expectError: true,
			errContains: "map.layer",
		},
		{
			name:        "redis without address",
			modify:      func(c *Config) { c.Storage.Backend = BackendRedis },
			expectError: true,
			errContains: "redis_addr",
		},
		{
			name: "redis with address",
			modify: func(c *Config) {
				c.Storage.Backend = BackendRedis
				c.Storage.RedisAddr = "localhost:6379"
			},
		},
		{
			name:        "unknown backend",
			modify:      func(c *Config) { c.Storage.Backend = "postgres" },
			expectError: true,
			errContains: "storage.backend",
		},
		{
			name:        "unknown log level",
			modify:      func(c *Config) { c.Log.Level = "trace" },
			expectError: true,
			errContains: "log.level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			err := cfg.Validate()
			if tt.expectError {
				if err == nil {
					t.Error("expected error, got nil")
				} else if tt.errContains != "" && !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("error %q should contain %q", err.Error(), tt.errContains)
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestLoadFromAppliesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	data := `{"location":{"source":"static","latitude":45.25,"longitude":19.85},"storage":{"backend":"memory"}}`
	if err := os.WriteFile(path, []byte(data), 0600); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.Location.Latitude != 45.25 || cfg.Location.Longitude != 19.85 {
		t.Errorf("location = %v/%v, want 45.25/19.85", cfg.Location.Latitude, cfg.Location.Longitude)
	}
	if cfg.Storage.Backend != BackendMemory {
		t.Errorf("Storage.Backend = %q, want memory", cfg.Storage.Backend)
	}
	if cfg.Map.Zoom != 13 || cfg.Map.Layer != "street" {
		t.Errorf("map defaults not applied: %+v", cfg.Map)
	}
	if cfg.Location.TimeoutSeconds != 10 {
		t.Errorf("Location.TimeoutSeconds = %d, want 10", cfg.Location.TimeoutSeconds)
	}
}

func TestLoadFromMissing(t *testing.T) {
	_, err := LoadFrom(filepath.Join(t.TempDir(), "nope.json"))
	if !errors.Is(err, ErrNoConfig) {
		t.Errorf("LoadFrom(missing) error = %v, want ErrNoConfig", err)
	}
}

func TestLoadFromInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{"), 0600); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	if _, err := LoadFrom(path); err == nil || errors.Is(err, ErrNoConfig) {
		t.Errorf("LoadFrom(invalid) error = %v, want parse error", err)
	}
}

func TestCreateExampleAndLoad(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	if _, err := Load(); !errors.Is(err, ErrNoConfig) {
		t.Fatalf("Load() before CreateExample error = %v, want ErrNoConfig", err)
	}
	if err := CreateExample(); err != nil {
		t.Fatalf("CreateExample() error = %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Storage.Backend != BackendSQLite {
		t.Errorf("Storage.Backend = %q, want sqlite", cfg.Storage.Backend)
	}

	// CreateExample must not overwrite an existing file
	cfg.Map.Layer = "terrain"
	if err := Save(cfg); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := CreateExample(); err != nil {
		t.Fatalf("CreateExample() error = %v", err)
	}
	cfg, err = Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Map.Layer != "terrain" {
		t.Errorf("Map.Layer = %q, want terrain", cfg.Map.Layer)
	}
}
