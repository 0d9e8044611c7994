package cfg

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jessevdk/go-flags"
)

func TestGetVersion(t *testing.T) {
	// Test default version
	if GetVersion() == "" {
		t.Error("GetVersion should never return empty string")
	}

	// Test that version is at least "dev" or "unknown"
	version := GetVersion()
	if version != "dev" && version != "unknown" {
		// This is fine, version could be set at build time
		t.Logf("Version: %s", version)
	}
}

func TestOptionDefaults(t *testing.T) {
	for _, key := range []string{"DB_PATH", "DATA_DIR", "PORT", "CORS_ORIGINS", "TOKEN_TTL", "TZ"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	var opts Options
	if _, err := flags.NewParser(&opts, flags.Default).ParseArgs([]string{}); err != nil {
		t.Fatalf("Failed to parse options: %v", err)
	}

	if opts.DBPath != "./data/bap.db" {
		t.Errorf("Expected default db path './data/bap.db', got '%s'", opts.DBPath)
	}
	if opts.Port != "8080" {
		t.Errorf("Expected default port '8080', got '%s'", opts.Port)
	}
	if opts.TokenTTL != 24*time.Hour {
		t.Errorf("Expected default token TTL 24h, got %v", opts.TokenTTL)
	}
	if len(opts.CORSOrigins) != 1 || opts.CORSOrigins[0] != "*" {
		t.Errorf("Expected default CORS origins [*], got %v", opts.CORSOrigins)
	}
}

func TestOptionsFromEnvironment(t *testing.T) {
	t.Setenv("DB_PATH", "/tmp/test.db")
	t.Setenv("CORS_ORIGINS", "https://a.example.com,https://b.example.com")
	t.Setenv("TOKEN_TTL", "2h")
	t.Setenv("DEBUG", "true")

	var opts Options
	if _, err := flags.NewParser(&opts, flags.Default).ParseArgs([]string{"--port", "9090"}); err != nil {
		t.Fatalf("Failed to parse options: %v", err)
	}

	if opts.DBPath != "/tmp/test.db" {
		t.Errorf("Expected db path from env, got '%s'", opts.DBPath)
	}
	if opts.Port != "9090" {
		t.Errorf("Expected port from flag, got '%s'", opts.Port)
	}
	if len(opts.CORSOrigins) != 2 {
		t.Errorf("Expected 2 CORS origins, got %v", opts.CORSOrigins)
	}
	if opts.TokenTTL != 2*time.Hour {
		t.Errorf("Expected token TTL 2h, got %v", opts.TokenTTL)
	}
	if !opts.Debug {
		t.Error("Expected debug from env")
	}
}

func TestLoad(t *testing.T) {
	oldLocal := time.Local
	defer func() { time.Local = oldLocal }()

	cfg, err := Load(&Options{
		DBPath:      "test.db",
		Port:        "8080",
		CORSOrigins: []string{" https://site.example.com ", ""},
		TokenTTL:    time.Hour,
		Timezone:    "Europe/Madrid",
	})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "https://site.example.com" {
		t.Errorf("Expected trimmed CORS origins, got %v", cfg.CORSOrigins)
	}
	if cfg.Version == "" {
		t.Error("Expected version to be set")
	}
	if time.Local.String() != "Europe/Madrid" {
		t.Errorf("Expected time.Local Europe/Madrid, got %s", time.Local)
	}

	if _, err := Load(&Options{}); err == nil {
		t.Error("Expected error for empty database path")
	}
}

func TestApplyTimezone(t *testing.T) {
	oldLocal := time.Local
	defer func() { time.Local = oldLocal }()

	if err := applyTimezone("Invalid/Zone"); err == nil {
		t.Error("Expected error for invalid timezone")
	}
	if err := applyTimezone(""); err != nil {
		t.Errorf("Expected empty timezone to be ignored, got %v", err)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("BAP_TEST_SECRET=from-file\nBAP_TEST_PRESET=from-file\n"), 0644); err != nil {
		t.Fatalf("Failed to write .env: %v", err)
	}

	t.Setenv("BAP_TEST_PRESET", "from-env")
	t.Setenv("BAP_TEST_SECRET", "")
	os.Unsetenv("BAP_TEST_SECRET")

	if err := LoadDotEnv(path, filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("LoadDotEnv failed: %v", err)
	}

	if got := os.Getenv("BAP_TEST_SECRET"); got != "from-file" {
		t.Errorf("Expected BAP_TEST_SECRET from file, got '%s'", got)
	}
	if got := os.Getenv("BAP_TEST_PRESET"); got != "from-env" {
		t.Errorf("Expected existing env to win, got '%s'", got)
	}
}
