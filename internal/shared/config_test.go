package shared

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.API.BaseURL != "http://localhost:1337" {
			t.Errorf("expected api base URL http://localhost:1337, got %s", config.API.BaseURL)
		}

		if config.Database.Path != "soundhive.db" {
			t.Errorf("expected database path soundhive.db, got %s", config.Database.Path)
		}

		if config.Server.Port != 1337 {
			t.Errorf("expected server port 1337, got %d", config.Server.Port)
		}

		if config.Detector.ProxyURL != "http://localhost:8081" {
			t.Errorf("expected detector proxy URL http://localhost:8081, got %s", config.Detector.ProxyURL)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		if _, err := os.Stat(configPath); err != nil {
			t.Fatalf("config file should exist: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		defaultConfig := DefaultConfig()
		if config.Database.Path != defaultConfig.Database.Path {
			t.Errorf("created config database path doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		testConfig := `[api]
base_url = "https://catalog.example.com"

[detector]
proxy_url = "http://localhost:9090"
snapshot_url = "http://camera.local/shot.jpg"

[database]
path = "/custom/path.db"
max_open_conns = 20
max_idle_conns = 10

[server]
host = "0.0.0.0"
port = 8080
rate_per_second = 10.0
rate_burst = 20
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.API.BaseURL != "https://catalog.example.com" {
			t.Errorf("expected api base URL https://catalog.example.com, got %s", config.API.BaseURL)
		}

		if config.Database.Path != "/custom/path.db" {
			t.Errorf("expected database path /custom/path.db, got %s", config.Database.Path)
		}

		if config.Server.Port != 8080 {
			t.Errorf("expected server port 8080, got %d", config.Server.Port)
		}
	})

	t.Run("EnvOverrides", func(t *testing.T) {
		t.Setenv("SOUNDHIVE_API_URL", "http://override:4000")
		t.Setenv("SOUNDHIVE_PORT", "4001")

		config := DefaultConfig()

		if config.API.BaseURL != "http://override:4000" {
			t.Errorf("expected env override for api base URL, got %s", config.API.BaseURL)
		}

		if config.Server.Port != 4001 {
			t.Errorf("expected env override for server port, got %d", config.Server.Port)
		}
	})
}
