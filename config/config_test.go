package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeEnvFile(t *testing.T, content string) {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write .env: %v", err)
	}
	t.Chdir(dir)
}

func TestLoadConfig(t *testing.T) {
	writeEnvFile(t, `APP_PORT=8080
APP_ENV=test
DB_HOST=localhost
DB_PORT=5432
DB_USER=postgres
DB_PASSWORD=postgres
DB_NAME=hospital
REDIS_HOST=localhost
REDIS_PORT=6379
JWT_SECRET=test-secret
JWT_ACCESS_EXPIRY=30m
JWT_REFRESH_EXPIRY=48h
SEED_ADMIN_USERNAME=root
SEED_ADMIN_EMAIL=root@hospital.com
SEED_ADMIN_PASSWORD=changeme
`)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}

	if cfg.App.Port != "8080" {
		t.Errorf("App.Port = %s, want 8080", cfg.App.Port)
	}
	if cfg.DB.Name != "hospital" {
		t.Errorf("DB.Name = %s, want hospital", cfg.DB.Name)
	}
	if cfg.JWT.AccessExpiry != 30*time.Minute {
		t.Errorf("JWT.AccessExpiry = %s, want 30m", cfg.JWT.AccessExpiry)
	}
	if cfg.JWT.RefreshExpiry != 48*time.Hour {
		t.Errorf("JWT.RefreshExpiry = %s, want 48h", cfg.JWT.RefreshExpiry)
	}
	if cfg.Seed.AdminUsername != "root" {
		t.Errorf("Seed.AdminUsername = %s, want root", cfg.Seed.AdminUsername)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	writeEnvFile(t, `APP_PORT=3000
JWT_SECRET=test-secret
`)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}

	if cfg.JWT.AccessExpiry != 15*time.Minute {
		t.Errorf("JWT.AccessExpiry = %s, want 15m default", cfg.JWT.AccessExpiry)
	}
	if cfg.JWT.RefreshExpiry != 7*24*time.Hour {
		t.Errorf("JWT.RefreshExpiry = %s, want 168h default", cfg.JWT.RefreshExpiry)
	}
	if cfg.Seed.AdminUsername != "admin" {
		t.Errorf("Seed.AdminUsername = %s, want admin default", cfg.Seed.AdminUsername)
	}
	if cfg.Seed.AdminEmail != "admin@hospital.com" {
		t.Errorf("Seed.AdminEmail = %s, want default", cfg.Seed.AdminEmail)
	}
}
