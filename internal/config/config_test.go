package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeDotEnv(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write dotenv: %v", err)
	}
	return path
}

func TestLoadFrom_Defaults(t *testing.T) {
	for _, k := range []string{"APP_ENV", "DB_PATH", "PORT", "METRICS_ENABLED", "SHUTDOWN_TIMEOUT"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	cfg := LoadFrom(filepath.Join(t.TempDir(), "missing.env"))

	if cfg.DBPath != defaultDBPath {
		t.Fatalf("DBPath=%q, want %q", cfg.DBPath, defaultDBPath)
	}
	if cfg.Port != defaultPort {
		t.Fatalf("Port=%q, want %q", cfg.Port, defaultPort)
	}
	if cfg.IsDev() {
		t.Fatalf("expected non-dev default env, got %q", cfg.Env)
	}
	if !cfg.MetricsEnabled {
		t.Fatalf("expected metrics enabled by default")
	}
	if cfg.ShutdownTimeout != defaultShutdownTimeout {
		t.Fatalf("ShutdownTimeout=%v, want %v", cfg.ShutdownTimeout, defaultShutdownTimeout)
	}
}

func TestLoadFrom_ReadsDotEnv(t *testing.T) {
	for _, k := range []string{"APP_ENV", "PORT", "ADMIN_EMAIL", "METRICS_ENABLED", "SHUTDOWN_TIMEOUT"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	path := writeDotEnv(t, `
# comment
APP_ENV=dev
export PORT=9090
ADMIN_EMAIL="owner@shop.in"
METRICS_ENABLED=false
SHUTDOWN_TIMEOUT=3s
`)

	cfg := LoadFrom(path)

	if !cfg.IsDev() {
		t.Fatalf("Env=%q, want dev", cfg.Env)
	}
	if cfg.Port != "9090" {
		t.Fatalf("Port=%q, want 9090", cfg.Port)
	}
	if cfg.AdminEmail != "owner@shop.in" {
		t.Fatalf("AdminEmail=%q", cfg.AdminEmail)
	}
	if cfg.MetricsEnabled {
		t.Fatalf("expected metrics disabled")
	}
	if cfg.ShutdownTimeout != 3*time.Second {
		t.Fatalf("ShutdownTimeout=%v, want 3s", cfg.ShutdownTimeout)
	}
}

func TestLoadFrom_DoesNotOverwriteExistingEnv(t *testing.T) {
	t.Setenv("PORT", "7000")

	cfg := LoadFrom(writeDotEnv(t, "PORT=9999\n"))

	if cfg.Port != "7000" {
		t.Fatalf("Port=%q, want 7000", cfg.Port)
	}
}
