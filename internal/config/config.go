// Package config loads the desktop shell configuration from the environment.
package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

const envPrefix = "GEN3D_"

type Config struct {
	App      AppConfig      `env:", prefix=APP_"`
	Window   WindowConfig   `env:", prefix=WINDOW_"`
	Log      LogConfig      `env:", prefix=LOG_"`
	Events   EventsConfig   `env:", prefix=EVENT_"`
	Bridge   BridgeConfig   `env:", prefix=BRIDGE_"`
	Shutdown ShutdownConfig `env:", prefix=SHUTDOWN_"`

	// Unmapped menu identifiers are logged as warnings instead of debug lines.
	StrictActions bool `env:"STRICT_ACTIONS, default=false"`
}

type AppConfig struct {
	ID   string `env:"ID, default=com.gen3d.desktop"`
	Name string `env:"NAME, default=3D Gen"`
}

type WindowConfig struct {
	Width  float32 `env:"WIDTH, default=1200"`
	Height float32 `env:"HEIGHT, default=800"`
}

type LogConfig struct {
	Level string `env:"LEVEL, default=info"`
	JSON  bool   `env:"JSON, default=false"`
}

type EventsConfig struct {
	BufferSize int `env:"BUFFER, default=64"`
}

type BridgeConfig struct {
	// Empty disables the WebSocket bridge.
	Addr string `env:"ADDR"`
}

type ShutdownConfig struct {
	Timeout time.Duration `env:"TIMEOUT, default=10s"`
}

// Load reads an optional .env file and decodes GEN3D_* variables.
func Load(ctx context.Context) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("loading .env: %w", err)
	}
	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadWith decodes configuration from an arbitrary lookuper.
func LoadWith(ctx context.Context, lookuper envconfig.Lookuper) (Config, error) {
	var cfg Config
	err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: envconfig.PrefixLookuper(envPrefix, lookuper),
	})
	if err != nil {
		return Config{}, fmt.Errorf("decoding environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.App.ID == "" {
		return errors.New("app id must not be empty")
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("invalid window size %.0fx%.0f", c.Window.Width, c.Window.Height)
	}
	if c.Events.BufferSize <= 0 {
		return fmt.Errorf("event buffer must be positive, got %d", c.Events.BufferSize)
	}
	if c.Shutdown.Timeout <= 0 {
		return fmt.Errorf("shutdown timeout must be positive, got %s", c.Shutdown.Timeout)
	}
	return nil
}
