package config

import (
	"os"
	"path/filepath"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, v := range []string{
		"XGLAB_CONFIG",
		"XGLAB_LOG_LEVEL",
		"XGLAB_FEED_URL",
		"XGLAB_API_BASE_URL",
		"XGLAB_API_KEY",
		"XGLAB_DATA_DIR",
		"XGLAB_REPORT_DIR",
		"XGLAB_POSTGRES_DSN",
		"XGLAB_CLICKHOUSE_DSN",
		"XGLAB_METRICS_ADDR",
	} {
		t.Setenv(v, "")
		os.Unsetenv(v)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.LogLevel != "info" {
		t.Errorf("expected log_level info, got %s", cfg.LogLevel)
	}
	if cfg.MetricsAddr != ":9090" {
		t.Errorf("expected metrics_addr :9090, got %s", cfg.MetricsAddr)
	}
	if cfg.FeedURL == "" || cfg.PostgresDSN == "" {
		t.Errorf("expected non-empty defaults: %+v", cfg)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("XGLAB_FEED_URL", "ws://feed.example.com/shots")
	t.Setenv("XGLAB_LOG_LEVEL", "debug")
	t.Setenv("XGLAB_POSTGRES_DSN", "postgres://example/db")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.FeedURL != "ws://feed.example.com/shots" {
		t.Errorf("expected env feed_url, got %s", cfg.FeedURL)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected env log_level, got %s", cfg.LogLevel)
	}
	if cfg.PostgresDSN != "postgres://example/db" {
		t.Errorf("expected env postgres_dsn, got %s", cfg.PostgresDSN)
	}
	// Untouched fields keep defaults
	if cfg.MetricsAddr != ":9090" {
		t.Errorf("expected default metrics_addr, got %s", cfg.MetricsAddr)
	}
}

func TestLoad_FileThenEnv(t *testing.T) {
	clearEnv(t)

	yamlContent := `
log_level: warn
feed_url: "ws://file.example.com/feed"
metrics_addr: ":9100"
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	t.Setenv("XGLAB_CONFIG", path)
	// Env wins over file
	t.Setenv("XGLAB_LOG_LEVEL", "error")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.LogLevel != "error" {
		t.Errorf("expected env to override file, got %s", cfg.LogLevel)
	}
	if cfg.FeedURL != "ws://file.example.com/feed" {
		t.Errorf("expected file feed_url, got %s", cfg.FeedURL)
	}
	if cfg.MetricsAddr != ":9100" {
		t.Errorf("expected file metrics_addr, got %s", cfg.MetricsAddr)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("XGLAB_CONFIG", "/non/existent/config.yaml")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestLoad_EmptyOverridesKeepEmpty(t *testing.T) {
	clearEnv(t)
	// t.Setenv with empty string still sets the variable, so an explicitly
	// empty override clears the default instead of restoring it.
	t.Setenv("XGLAB_POSTGRES_DSN", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.PostgresDSN != "" {
		t.Errorf("expected empty postgres_dsn, got %s", cfg.PostgresDSN)
	}
}
