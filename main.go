package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"workoutmap/internal/config"
	"workoutmap/internal/locate"
	"workoutmap/internal/mapview"
	"workoutmap/internal/session"
	"workoutmap/internal/store"
	"workoutmap/internal/tui"
	"workoutmap/internal/workout"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to config.json (default ~/.workoutmap/config.json)")
	flag.Parse()

	ctx := context.Background()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		configDir, _ := config.GetConfigDir()
		fmt.Printf("Config validation failed: %v\n\n", err)
		fmt.Printf("Please edit the config file at:\n  %s/config.json\n", configDir)
		return nil
	}

	logger, closeLog, err := openLogger(cfg.Log)
	if err != nil {
		return fmt.Errorf("opening log: %w", err)
	}
	defer closeLog()
	slog.SetDefault(logger)

	kv, closeKV, err := openKV(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("opening storage: %w", err)
	}
	defer closeKV()

	layer, err := mapview.ParseLayer(cfg.Map.Layer)
	if err != nil {
		return err
	}

	app := tui.NewApp(ctx, newLocator(cfg.Location, cfg.LocationTimeout()), kv, tui.Options{
		Zoom:    cfg.Map.Zoom,
		Layer:   layer,
		Display: cfg.Display,
		Logger:  logger,
	})
	p := tea.NewProgram(app, tea.WithAltScreen())

	logger.Info("starting", "backend", cfg.Storage.Backend, "location", cfg.Location.Source)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}

	return nil
}

func loadConfig(path string) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if path != "" {
		cfg, err = config.LoadFrom(path)
	} else {
		cfg, err = config.Load()
	}

	if errors.Is(err, config.ErrNoConfig) {
		if path != "" {
			return nil, fmt.Errorf("config file %s not found", path)
		}
		// First run: write the defaults so the user has something to edit
		if err := config.CreateExample(); err != nil {
			return nil, fmt.Errorf("creating example config: %w", err)
		}
		defaults := config.DefaultConfig()
		return &defaults, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

func openLogger(cfg config.LogConfig) (*slog.Logger, func(), error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = slog.LevelInfo
	}

	path := cfg.Path
	if path == "" {
		dir, err := config.GetConfigDir()
		if err != nil {
			return nil, nil, err
		}
		path = filepath.Join(dir, "workoutmap.log")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, nil, err
	}

	// The terminal belongs to the TUI, so logs go to a file
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, err
	}

	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
	return logger, func() { f.Close() }, nil
}

func openKV(ctx context.Context, cfg config.StorageConfig) (store.KV, func(), error) {
	switch cfg.Backend {
	case config.BackendRedis:
		r, err := store.ConnectRedis(ctx, store.RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Prefix:   cfg.RedisPrefix,
		})
		if err != nil {
			return nil, nil, err
		}
		return r, func() { r.Close() }, nil
	case config.BackendMemory:
		return store.NewMemory(), func() {}, nil
	default:
		db, err := store.Open(cfg.Path)
		if err != nil {
			return nil, nil, err
		}
		return db, func() { db.Close() }, nil
	}
}

func newLocator(cfg config.LocationConfig, timeout time.Duration) session.Locator {
	if cfg.Source == config.SourceStatic {
		return locate.Static{Coords: workout.Coords{Lat: cfg.Latitude, Lng: cfg.Longitude}}
	}
	return locate.NewIP(cfg.Endpoint, timeout)
}
