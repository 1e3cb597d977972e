package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ServerURL != "http://localhost:8000" {
		t.Errorf("unexpected default server url: %s", cfg.ServerURL)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("unexpected default log level: %s", cfg.LogLevel)
	}

	// Defaults file was written, so a second load round-trips.
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("defaults should be written: %v", err)
	}
	again, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if again.ServerURL != cfg.ServerURL {
		t.Error("reload should match defaults")
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	data, _ := json.Marshal(map[string]any{
		"server_url": "https://cerina.example.com",
		"user_id":    "user-42",
		"transcript": true,
	})
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ServerURL != "https://cerina.example.com" {
		t.Errorf("unexpected server url: %s", cfg.ServerURL)
	}
	if cfg.UserID != "user-42" {
		t.Errorf("unexpected user id: %s", cfg.UserID)
	}
	if !cfg.Transcript {
		t.Error("transcript capture should be enabled")
	}
}

func TestEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	t.Setenv("CERINA_SERVER_URL", "http://10.0.0.5:8000")
	t.Setenv("CERINA_USER_ID", "env-user")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ServerURL != "http://10.0.0.5:8000" {
		t.Errorf("env should win: %s", cfg.ServerURL)
	}
	if cfg.UserID != "env-user" {
		t.Errorf("env should win: %s", cfg.UserID)
	}
}
