package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func loadTestConfig(t *testing.T, yaml string) *Config {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}
	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	return config
}

func TestConfigAccessors(t *testing.T) {
	config := loadTestConfig(t, "name: diffspot\ncount: 3\nratio: 0.5\ntimeout: 1500\n")
	if got := config.GetString("name"); got != "diffspot" {
		t.Fatalf("GetString: expected \"diffspot\", got %q", got)
	}
	if got := config.GetString("missing"); got != "" {
		t.Fatalf("GetString for a missing key: expected empty, got %q", got)
	}
	if got := config.GetStringOrDefault("missing", "fallback"); got != "fallback" {
		t.Fatalf("GetStringOrDefault: expected \"fallback\", got %q", got)
	}
	if got := config.GetIntOrDefault("count", 0); got != 3 {
		t.Fatalf("GetIntOrDefault: expected 3, got %d", got)
	}
	if got := config.GetIntOrDefault("name", 7); got != 7 {
		t.Fatalf("GetIntOrDefault for a mistyped key: expected 7, got %d", got)
	}
	if got := config.GetFloatOrDefault("ratio", 0); got != 0.5 {
		t.Fatalf("GetFloatOrDefault: expected 0.5, got %f", got)
	}
	if got := config.GetFloatOrDefault("count", 0); got != 3 {
		t.Fatalf("GetFloatOrDefault should widen integers: expected 3, got %f", got)
	}
	if got := config.GetDurationOrDefault("timeout", 0); got != 1500*time.Millisecond {
		t.Fatalf("GetDurationOrDefault: expected 1.5s, got %v", got)
	}
	if got := config.GetDurationOrDefault("missing", time.Minute); got != time.Minute {
		t.Fatalf("GetDurationOrDefault for a missing key: expected 1m, got %v", got)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected an error for a missing config file")
	}
}
