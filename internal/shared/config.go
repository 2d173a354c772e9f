package shared

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	API      APIConfig      `toml:"api"`
	Detector DetectorConfig `toml:"detector"`
	Database DatabaseConfig `toml:"database"`
	Server   ServerConfig   `toml:"server"`
}

// APIConfig contains catalog API connection settings.
type APIConfig struct {
	BaseURL string `toml:"base_url"`
}

// DetectorConfig contains expression detector and camera settings.
type DetectorConfig struct {
	ProxyURL    string `toml:"proxy_url"`
	SnapshotURL string `toml:"snapshot_url"`
	FramesPath  string `toml:"frames_path"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// ServerConfig contains HTTP server settings for the local catalog server.
type ServerConfig struct {
	Host          string  `toml:"host"`
	Port          int     `toml:"port"`
	RatePerSecond float64 `toml:"rate_per_second"`
	RateBurst     int     `toml:"rate_burst"`
}

// LoadConfig reads and parses a TOML configuration file from the specified
// path, then applies SOUNDHIVE_* environment overrides on top.
//
// A .env file in the working directory is loaded first if present.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	config.applyEnv()

	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	config.applyEnv()
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	// Check if file already exists
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s: %w", path, ErrInvalidInput)
	}

	// Write the embedded example config to the file
	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func (c *Config) applyEnv() {
	_ = godotenv.Load()

	if v := os.Getenv("SOUNDHIVE_API_URL"); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv("SOUNDHIVE_DETECTOR_URL"); v != "" {
		c.Detector.ProxyURL = v
	}
	if v := os.Getenv("SOUNDHIVE_DB_PATH"); v != "" {
		c.Database.Path = v
	}
	if v := os.Getenv("SOUNDHIVE_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		}
	}
}
