package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/webert/crm/internal/config"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := config.LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	if cfg.Addr != ":5000" {
		t.Fatalf("default addr: got %q", cfg.Addr)
	}
	if cfg.DatabasePath != "crm.db" {
		t.Fatalf("default database path: got %q", cfg.DatabasePath)
	}
	if cfg.TokenDuration != 7200*time.Second {
		t.Fatalf("default token duration: got %v", cfg.TokenDuration)
	}
}

func TestLoadConfigEnv(t *testing.T) {
	t.Setenv("CRM_ADDR", ":9999")
	t.Setenv("CRM_TOKEN_DURATION", "60")

	cfg, err := config.LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	if cfg.Addr != ":9999" {
		t.Fatalf("env addr: got %q", cfg.Addr)
	}
	if cfg.TokenDuration != time.Minute {
		t.Fatalf("env token duration: got %v", cfg.TokenDuration)
	}
}

func TestLoadConfigYAMLOverridesEnv(t *testing.T) {
	t.Setenv("CRM_ADDR", ":9999")

	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "addr: \":7000\"\njwt_secret: filekey\ndatabase_path: other.db\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	if cfg.Addr != ":7000" {
		t.Fatalf("yaml addr: got %q", cfg.Addr)
	}
	if cfg.JWTSecret != "filekey" {
		t.Fatalf("yaml secret: got %q", cfg.JWTSecret)
	}
	if cfg.DatabasePath != "other.db" {
		t.Fatalf("yaml database path: got %q", cfg.DatabasePath)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := config.LoadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected an error for a missing config file")
	}
}
