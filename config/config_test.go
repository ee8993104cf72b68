package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"studentenfutter/config"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := config.Parse([]byte("skill:\n  app_id: amzn1.ask.skill.test\n"))
	if err != nil {
		t.Fatalf("parsing: %v", err)
	}

	if cfg.Skill.HTTPAddr != ":8080" {
		t.Errorf("http_addr: got %q", cfg.Skill.HTTPAddr)
	}
	if cfg.Menu.BaseURL != "https://api.studentenfutter-os.de" {
		t.Errorf("base_url: got %q", cfg.Menu.BaseURL)
	}
	if cfg.MenuTimeout() != 8*time.Second {
		t.Errorf("timeout: got %s", cfg.MenuTimeout())
	}
	if cfg.Locale.Default != "en-US" {
		t.Errorf("default locale: got %q", cfg.Locale.Default)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "text" {
		t.Errorf("log: got %+v", cfg.Log)
	}
	if cfg.Pushover.Enabled || cfg.Events.Enabled || cfg.Database.Enabled {
		t.Error("optional integrations should default to disabled")
	}
}

func TestParse_ExpandsEnvironment(t *testing.T) {
	t.Setenv("APP_ID", "amzn1.ask.skill.env")
	t.Setenv("AUTH_STRATEGY", "Bearer from-env")

	cfg, err := config.Parse([]byte(`
skill:
  app_id: ${APP_ID}
menu:
  auth_token: ${AUTH_STRATEGY}
  timeout: 3s
`))
	if err != nil {
		t.Fatalf("parsing: %v", err)
	}

	if cfg.Skill.AppID != "amzn1.ask.skill.env" {
		t.Errorf("app_id: got %q", cfg.Skill.AppID)
	}
	if cfg.Menu.AuthToken != "Bearer from-env" {
		t.Errorf("auth_token: got %q", cfg.Menu.AuthToken)
	}
	if cfg.MenuTimeout() != 3*time.Second {
		t.Errorf("timeout: got %s", cfg.MenuTimeout())
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"bad timeout", "menu:\n  timeout: soon\n"},
		{"negative timeout", "menu:\n  timeout: -1s\n"},
		{"events without url", "events:\n  enabled: true\n"},
		{"database without url", "database:\n  enabled: true\n"},
		{"not yaml", "skill: [unterminated\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := config.Parse([]byte(tt.yaml)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("skill:\n  http_addr: \":9090\"\nlog:\n  format: json\n"), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("loading: %v", err)
	}

	if cfg.Skill.HTTPAddr != ":9090" || cfg.Log.Format != "json" {
		t.Errorf("unexpected config: %+v", cfg)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
