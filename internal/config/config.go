package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

type Config struct {
	ServerURL  string `json:"server_url"`
	UserID     string `json:"user_id"`
	DataDir    string `json:"data_dir"`
	LogLevel   string `json:"log_level"`
	Transcript bool   `json:"transcript"`
}

func Load(path string) (*Config, error) {
	cfg := &Config{
		ServerURL: "http://localhost:8000",
		DataDir:   filepath.Join(os.Getenv("HOME"), ".cerina"),
		LogLevel:  "info",
	}

	// Load from file if exists, otherwise write defaults
	if _, err := os.Stat(path); err == nil {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	} else if os.IsNotExist(err) {
		if err := writeDefaults(path, cfg); err != nil {
			return nil, err
		}
	}

	// Override from env (highest precedence)
	if url := os.Getenv("CERINA_SERVER_URL"); url != "" {
		cfg.ServerURL = url
	}
	if uid := os.Getenv("CERINA_USER_ID"); uid != "" {
		cfg.UserID = uid
	}
	if dir := os.Getenv("CERINA_DATA_DIR"); dir != "" {
		cfg.DataDir = dir
	}

	return cfg, nil
}

func writeDefaults(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal default config: %w", err)
	}
	data = append(data, '\n')
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("write default config: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename default config: %w", err)
	}
	return nil
}
