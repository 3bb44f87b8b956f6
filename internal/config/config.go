package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"workoutmap/internal/mapview"
)

// Config represents the application configuration
type Config struct {
	Location LocationConfig `json:"location"`
	Map      MapConfig      `json:"map"`
	Storage  StorageConfig  `json:"storage"`
	Display  DisplayConfig  `json:"display"`
	Log      LogConfig      `json:"log"`
}

// LocationConfig selects where the starting position comes from
type LocationConfig struct {
	Source         string  `json:"source"` // "ip" or "static"
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	Endpoint       string  `json:"endpoint"`
	TimeoutSeconds int     `json:"timeout_seconds"`
}

// MapConfig holds map preferences
type MapConfig struct {
	Zoom  int    `json:"zoom"`
	Layer string `json:"layer"` // "street" or "terrain"
}

// StorageConfig selects the persistence backend
type StorageConfig struct {
	Backend       string `json:"backend"` // "sqlite", "redis" or "memory"
	Path          string `json:"path"`
	RedisAddr     string `json:"redis_addr"`
	RedisPassword string `json:"redis_password"`
	RedisDB       int    `json:"redis_db"`
	RedisPrefix   string `json:"redis_prefix"`
}

// DisplayConfig holds display preferences
type DisplayConfig struct {
	Locale string `json:"locale"` // BCP 47 tag used for number formatting
}

// LogConfig controls the log file
type LogConfig struct {
	Path  string `json:"path"`
	Level string `json:"level"`
}

// ErrNoConfig is returned when the config file doesn't exist
var ErrNoConfig = errors.New("config file not found")

const (
	SourceIP     = "ip"
	SourceStatic = "static"

	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		Location: LocationConfig{
			Source:         SourceIP,
			TimeoutSeconds: 10,
		},
		Map: MapConfig{
			Zoom:  mapview.DefaultZoom,
			Layer: "street",
		},
		Storage: StorageConfig{
			Backend: BackendSQLite,
		},
		Display: DisplayConfig{
			Locale: "en",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads the configuration from ~/.workoutmap/config.json
func Load() (*Config, error) {
	path, err := getConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads the configuration from path
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, ErrNoConfig
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// Apply defaults for missing values
	defaults := DefaultConfig()
	if cfg.Location.Source == "" {
		cfg.Location.Source = defaults.Location.Source
	}
	if cfg.Location.TimeoutSeconds == 0 {
		cfg.Location.TimeoutSeconds = defaults.Location.TimeoutSeconds
	}
	if cfg.Map.Zoom == 0 {
		cfg.Map.Zoom = defaults.Map.Zoom
	}
	if cfg.Map.Layer == "" {
		cfg.Map.Layer = defaults.Map.Layer
	}
	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = defaults.Storage.Backend
	}
	if cfg.Display.Locale == "" {
		cfg.Display.Locale = defaults.Display.Locale
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = defaults.Log.Level
	}

	return &cfg, nil
}

// Save writes the configuration to ~/.workoutmap/config.json
func Save(cfg *Config) error {
	path, err := getConfigPath()
	if err != nil {
		return err
	}
	return SaveTo(path, cfg)
}

// SaveTo writes the configuration to path
func SaveTo(path string, cfg *Config) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// CreateExample creates an example config file if none exists
func CreateExample() error {
	path, err := getConfigPath()
	if err != nil {
		return err
	}

	// Check if config already exists
	if _, err := os.Stat(path); err == nil {
		return nil // Config exists, don't overwrite
	}

	example := DefaultConfig()
	return SaveTo(path, &example)
}

// Validate checks that the config values are usable
func (c *Config) Validate() error {
	switch c.Location.Source {
	case SourceIP:
	case SourceStatic:
		if c.Location.Latitude < -90 || c.Location.Latitude > 90 {
			return fmt.Errorf("location.latitude must be between -90 and 90, got %v", c.Location.Latitude)
		}
		if c.Location.Longitude < -180 || c.Location.Longitude > 180 {
			return fmt.Errorf("location.longitude must be between -180 and 180, got %v", c.Location.Longitude)
		}
	default:
		return fmt.Errorf("location.source must be \"ip\" or \"static\", got %q", c.Location.Source)
	}
	if c.Location.TimeoutSeconds < 0 {
		return fmt.Errorf("location.timeout_seconds must not be negative, got %d", c.Location.TimeoutSeconds)
	}

	if c.Map.Zoom != 0 && (c.Map.Zoom < mapview.MinZoom || c.Map.Zoom > mapview.MaxZoom) {
		return fmt.Errorf("map.zoom must be between %d and %d, got %d", mapview.MinZoom, mapview.MaxZoom, c.Map.Zoom)
	}
	if _, err := mapview.ParseLayer(c.Map.Layer); err != nil {
		return fmt.Errorf("map.layer: %w", err)
	}

	switch c.Storage.Backend {
	case "", BackendSQLite, BackendMemory:
	case BackendRedis:
		if c.Storage.RedisAddr == "" {
			return errors.New("storage.redis_addr is required when storage.backend is \"redis\"")
		}
	default:
		return fmt.Errorf("storage.backend must be \"sqlite\", \"redis\" or \"memory\", got %q", c.Storage.Backend)
	}

	switch c.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error, got %q", c.Log.Level)
	}

	return nil
}

// LocationTimeout returns the position request deadline
func (c *Config) LocationTimeout() time.Duration {
	return time.Duration(c.Location.TimeoutSeconds) * time.Second
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// GetConfigDir returns the path to the config directory
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".workoutmap"), nil
}
