package config

import (
	"path/filepath"
	"testing"
)

func TestListValues(t *testing.T) {
	cfg := &Config{ServerURL: "http://example.com", UserID: "u1", LogLevel: "debug"}
	flat, err := ListValues(cfg)
	if err != nil {
		t.Fatalf("ListValues failed: %v", err)
	}
	if flat["server_url"] != "http://example.com" {
		t.Errorf("server_url = %v, want http://example.com", flat["server_url"])
	}
	if flat["log_level"] != "debug" {
		t.Errorf("log_level = %v, want debug", flat["log_level"])
	}
}

func TestGetValue_ExistingKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if _, err := Load(path); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	v, err := GetValue(path, "log_level")
	if err != nil {
		t.Fatalf("GetValue failed: %v", err)
	}
	if v != "info" {
		t.Errorf("log_level = %v, want info", v)
	}
}

func TestGetValue_UnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if _, err := Load(path); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if _, err := GetValue(path, "nonexistent_key"); err == nil {
		t.Fatal("expected error for unknown key")
	}
}

func TestSetValue_String(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if _, err := Load(path); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if err := SetValue(path, "log_level", "debug"); err != nil {
		t.Fatalf("SetValue failed: %v", err)
	}

	v, err := GetValue(path, "log_level")
	if err != nil {
		t.Fatalf("GetValue failed: %v", err)
	}
	if v != "debug" {
		t.Errorf("log_level = %v, want debug", v)
	}
}

func TestSetValue_Boolean(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if _, err := Load(path); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if err := SetValue(path, "transcript", "true"); err != nil {
		t.Fatalf("SetValue failed: %v", err)
	}

	v, err := GetValue(path, "transcript")
	if err != nil {
		t.Fatalf("GetValue failed: %v", err)
	}
	if v != true {
		t.Errorf("transcript = %v, want true", v)
	}
}

func TestSetValue_UnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if _, err := Load(path); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if err := SetValue(path, "not_a_key", "x"); err == nil {
		t.Fatal("expected error for unknown key")
	}
}

func TestSetValue_NonexistentFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.json")
	if err := SetValue(path, "log_level", "debug"); err == nil {
		t.Fatal("expected error for nonexistent file")
	}
}
