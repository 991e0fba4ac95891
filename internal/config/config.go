package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config defines server configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	DB        DBConfig        `yaml:"db"`
	Data      DataConfig      `yaml:"data"`
	Renderer  RendererConfig  `yaml:"renderer"`
	Transport TransportConfig `yaml:"transport"`
	Log       LogConfig       `yaml:"log"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type DBConfig struct {
	Path string `yaml:"path"`
}

// DataConfig locates durable project storage (rendered artifacts are copied
// under Dir, one subdirectory per project).
type DataConfig struct {
	Dir string `yaml:"dir"`
}

// RendererConfig describes how to invoke the external manim CLI.
type RendererConfig struct {
	// Command is the renderer executable plus leading arguments; the render
	// subcommand and per-job flags are appended to it.
	Command []string `yaml:"command"`
	// Quality is the default quality preset (low, medium, high, ultra).
	Quality string `yaml:"quality"`
	// Format is the default output container (mp4, gif, webm, mov).
	Format string `yaml:"format"`
	// TimeoutSeconds is the default wall-clock render timeout.
	TimeoutSeconds int `yaml:"timeout_seconds"`
	// DisableCaching passes --disable_caching to the renderer.
	DisableCaching bool `yaml:"disable_caching"`
}

type TransportConfig struct {
	Mode string `yaml:"mode"` // "stdio" or "http"
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Timeout returns the default render timeout as a duration.
func (r RendererConfig) Timeout() time.Duration {
	return time.Duration(r.TimeoutSeconds) * time.Second
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	home, _ := os.UserHomeDir()
	dataDir := filepath.Join(home, ".sceneforge")

	cfg := Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		DB: DBConfig{
			Path: filepath.Join(dataDir, "sceneforge.db"),
		},
		Data: DataConfig{
			Dir: filepath.Join(dataDir, "projects"),
		},
		Renderer: RendererConfig{
			Command:        []string{"python3", "-m", "manim"},
			Quality:        "low",
			Format:         "mp4",
			TimeoutSeconds: 30,
			DisableCaching: true,
		},
		Transport: TransportConfig{
			Mode: "stdio",
		},
		Log: LogConfig{
			Level: "info",
		},
	}

	if path := os.Getenv("SCENEFORGE_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if host := os.Getenv("SCENEFORGE_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("SCENEFORGE_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid SCENEFORGE_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if dbPath := os.Getenv("SCENEFORGE_DB_PATH"); dbPath != "" {
		cfg.DB.Path = dbPath
	}
	if dir := os.Getenv("SCENEFORGE_DATA_DIR"); dir != "" {
		cfg.Data.Dir = dir
	}
	if mode := os.Getenv("SCENEFORGE_TRANSPORT_MODE"); mode != "" {
		cfg.Transport.Mode = mode
	}
	if level := os.Getenv("SCENEFORGE_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if timeoutStr := os.Getenv("SCENEFORGE_RENDER_TIMEOUT"); timeoutStr != "" {
		seconds, err := strconv.Atoi(timeoutStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid SCENEFORGE_RENDER_TIMEOUT: %w", err)
		}
		cfg.Renderer.TimeoutSeconds = seconds
	}

	if cfg.Transport.Mode != "stdio" && cfg.Transport.Mode != "http" {
		return Config{}, fmt.Errorf("invalid transport mode %q (want stdio or http)", cfg.Transport.Mode)
	}

	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
