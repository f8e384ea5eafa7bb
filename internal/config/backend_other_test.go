//go:build !darwin

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileBackend_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "compass", "config.json")

	b := newFileBackend(path)
	if _, ok, _ := b.GetString("api.base_url"); ok {
		t.Fatal("fresh backend has a value")
	}
	if err := b.SetString("api.base_url", "http://10.0.0.2:5000"); err != nil {
		t.Fatalf("SetString: %v", err)
	}

	reopened := newFileBackend(path)
	v, ok, err := reopened.GetString("api.base_url")
	if err != nil || !ok || v != "http://10.0.0.2:5000" {
		t.Errorf("GetString = %q, %v, %v", v, ok, err)
	}

	if err := reopened.Delete("api.base_url"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := newFileBackend(path).GetString("api.base_url"); ok {
		t.Error("value survived Delete")
	}
}

func TestFileBackend_NonStringValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"ui.no_color": true}`), 0o600); err != nil {
		t.Fatal(err)
	}

	v, ok, err := newFileBackend(path).GetString("ui.no_color")
	if err != nil || !ok || v != "true" {
		t.Errorf("GetString = %q, %v, %v", v, ok, err)
	}
}

func TestFileBackend_CorruptFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	os.WriteFile(path, []byte(`{not json`), 0o600)

	clearEnv(t)
	cfg, err := loadWith(newFileBackend(path))
	if err != nil {
		t.Fatalf("loadWith: %v", err)
	}
	if cfg.API.BaseURL != DefaultBaseURL {
		t.Errorf("API.BaseURL = %q", cfg.API.BaseURL)
	}
}
