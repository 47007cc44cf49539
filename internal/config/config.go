package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Engine backend names accepted in configuration and flags.
const (
	BackendONNX   = "onnx"
	BackendRemote = "remote"
	BackendNaive  = "naive"
)

// Config holds the application configuration
type Config struct {
	Server ServerConfig `json:"server"`
	Engine EngineConfig `json:"engine"`
}

// ServerConfig holds configuration for the HTTP API surface
type ServerConfig struct {
	Addr        string `json:"addr"`
	MaxUploadMB int64  `json:"max_upload_mb"`
}

// EngineConfig holds configuration for the super-resolution engine
type EngineConfig struct {
	Backend     string `json:"backend"`
	ModelPath   string `json:"model_path"`
	URL         string `json:"url"`
	LibraryPath string `json:"library_path"`
}

// Default returns a configuration with default values
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:        ":8000",
			MaxUploadMB: 32,
		},
		Engine: EngineConfig{
			Backend:   BackendONNX,
			ModelPath: "models/realesrgan-x4.onnx",
		},
	}
}

// LoadFromFile loads configuration from a JSON file
func LoadFromFile(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr cannot be empty")
	}

	if c.Server.MaxUploadMB < 1 {
		return fmt.Errorf("server.max_upload_mb must be positive")
	}

	switch c.Engine.Backend {
	case BackendONNX:
		if c.Engine.ModelPath == "" {
			return fmt.Errorf("engine.model_path is required for the onnx backend")
		}
	case BackendRemote, BackendNaive:
	default:
		return fmt.Errorf("engine.backend must be one of onnx, remote, naive")
	}

	return nil
}

// GetConfigPath returns the default configuration file path
func GetConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./config.json"
	}
	return filepath.Join(home, ".config", "image-upscaler", "config.json")
}
