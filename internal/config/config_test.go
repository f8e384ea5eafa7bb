package config

import (
	"errors"
	"log/slog"
	"strings"
	"testing"
)

// mockBackend is an in-memory ConfigBackend.
type mockBackend struct {
	data   map[string]string
	getErr error
}

func newMockBackend(kv ...string) *mockBackend {
	m := &mockBackend{data: make(map[string]string)}
	for i := 0; i+1 < len(kv); i += 2 {
		m.data[kv[i]] = kv[i+1]
	}
	return m
}

func (m *mockBackend) GetString(key string) (string, bool, error) {
	if m.getErr != nil {
		return "", false, m.getErr
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *mockBackend) SetString(key, val string) error {
	m.data[key] = val
	return nil
}

func (m *mockBackend) Delete(key string) error {
	delete(m.data, key)
	return nil
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, s := range specs {
		t.Setenv(s.env, "")
	}
}

// TestDefaults verifies all default values are applied with an empty backend.
func TestDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := loadWith(newMockBackend())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.API.BaseURL != "http://127.0.0.1:5000" {
		t.Errorf("API.BaseURL = %q", cfg.API.BaseURL)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want info", cfg.Log.Level)
	}
	if !strings.HasSuffix(cfg.Storage.DataDir, "compass") {
		t.Errorf("Storage.DataDir = %q, want .../compass", cfg.Storage.DataDir)
	}
	if cfg.UI.NoColor {
		t.Error("UI.NoColor should default to false")
	}
}

// TestBackendValues verifies that all keys are read from the backend.
func TestBackendValues(t *testing.T) {
	clearEnv(t)

	b := newMockBackend(
		"api.base_url", "https://compass.example.com/",
		"storage.data_dir", "/tmp/compass-test",
		"log.level", "DEBUG",
		"ui.no_color", "true",
	)
	cfg, err := loadWith(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.API.BaseURL != "https://compass.example.com" {
		t.Errorf("API.BaseURL = %q, want trailing slash trimmed", cfg.API.BaseURL)
	}
	if cfg.Storage.DataDir != "/tmp/compass-test" {
		t.Errorf("Storage.DataDir = %q", cfg.Storage.DataDir)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q", cfg.Log.Level)
	}
	if !cfg.UI.NoColor {
		t.Error("UI.NoColor = false")
	}
}

// TestEnvOverride verifies that environment variables override backend values.
func TestEnvOverride(t *testing.T) {
	clearEnv(t)
	t.Setenv("COMPASS_API_BASE_URL", "http://env:9000")
	t.Setenv("COMPASS_UI_NO_COLOR", "1")

	cfg, err := loadWith(newMockBackend("api.base_url", "http://file:5000"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.API.BaseURL != "http://env:9000" {
		t.Errorf("API.BaseURL = %q, want env value", cfg.API.BaseURL)
	}
	if !cfg.UI.NoColor {
		t.Error("UI.NoColor env override ignored")
	}
}

func TestBadBoolFallsBackToDefault(t *testing.T) {
	clearEnv(t)
	t.Setenv("COMPASS_UI_NO_COLOR", "sometimes")

	cfg, err := loadWith(newMockBackend("ui.no_color", "maybe"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.UI.NoColor {
		t.Error("unparseable bool should keep the default")
	}
}

func TestInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		backend *mockBackend
		wantKey string
	}{
		{"bad url scheme", newMockBackend("api.base_url", "ftp://x"), "api.base_url"},
		{"not a url", newMockBackend("api.base_url", "localhost"), "api.base_url"},
		{"bad level", newMockBackend("log.level", "verbose"), "log.level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			_, err := loadWith(tt.backend)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantKey) {
				t.Errorf("error %q does not name %s", err, tt.wantKey)
			}
		})
	}
}

func TestBackendError(t *testing.T) {
	clearEnv(t)
	b := newMockBackend()
	b.getErr = errors.New("defaults unavailable")

	if _, err := loadWith(b); err == nil {
		t.Error("expected backend error to propagate")
	}
}

func TestSetKey(t *testing.T) {
	b := newMockBackend()

	if err := setKeyWith(b, "api.base_url", "http://10.0.0.2:5000"); err != nil {
		t.Fatalf("setKeyWith: %v", err)
	}
	if b.data["api.base_url"] != "http://10.0.0.2:5000" {
		t.Errorf("stored = %q", b.data["api.base_url"])
	}

	if err := setKeyWith(b, "ui.no_color", "1"); err != nil {
		t.Fatalf("setKeyWith bool: %v", err)
	}
	if b.data["ui.no_color"] != "true" {
		t.Errorf("bool stored as %q, want canonical true", b.data["ui.no_color"])
	}

	for _, bad := range [][2]string{
		{"server.port", "4000"},
		{"ui.no_color", "perhaps"},
		{"log.level", "loud"},
		{"api.base_url", "not a url"},
	} {
		if err := setKeyWith(b, bad[0], bad[1]); err == nil {
			t.Errorf("setKeyWith(%q, %q) accepted", bad[0], bad[1])
		}
	}
}

func TestUnsetKey(t *testing.T) {
	b := newMockBackend("log.level", "debug")
	if err := unsetKeyWith(b, "log.level"); err != nil {
		t.Fatalf("unsetKeyWith: %v", err)
	}
	if _, ok := b.data["log.level"]; ok {
		t.Error("key still present")
	}
	if err := unsetKeyWith(b, "nope"); err == nil {
		t.Error("unknown key accepted")
	}
}

func TestShowAll(t *testing.T) {
	clearEnv(t)
	cfg, _ := loadWith(newMockBackend())

	infos := ShowAll(cfg)
	if len(infos) != len(ValidKeys()) {
		t.Fatalf("ShowAll returned %d keys, want %d", len(infos), len(ValidKeys()))
	}
	for _, ki := range infos {
		if !strings.HasPrefix(ki.EnvVar, "COMPASS_") {
			t.Errorf("%s env var = %q", ki.Key, ki.EnvVar)
		}
	}
	if infos[0].Key != "api.base_url" || infos[0].Value != DefaultBaseURL {
		t.Errorf("first entry = %+v", infos[0])
	}
}

func TestSlogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
		"":      slog.LevelInfo,
	}
	for in, want := range tests {
		if got := (LogConfig{Level: in}).SlogLevel(); got != want {
			t.Errorf("SlogLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
