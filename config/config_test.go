package config

import (
	"testing"
	"time"
)

func TestValidateYAMLContent_DefaultsApply(t *testing.T) {
	t.Parallel()

	cfg, err := ValidateYAMLContent([]byte(`{}`))
	if err != nil {
		t.Fatalf("validate empty config: %v", err)
	}

	if cfg.HTTP.Port != 8080 {
		t.Fatalf("expected default port 8080, got %d", cfg.HTTP.Port)
	}
	if cfg.DB.Path != "./hourdesk.db" {
		t.Fatalf("expected default db path, got %q", cfg.DB.Path)
	}
	if cfg.Session.TTL() != 12*time.Hour {
		t.Fatalf("expected default session ttl 12h, got %s", cfg.Session.TTL())
	}
	if cfg.Admin.Username != "admin" {
		t.Fatalf("expected default admin username, got %q", cfg.Admin.Username)
	}
}

func TestValidateYAMLContent_OverridesDefaults(t *testing.T) {
	t.Parallel()

	content := []byte(`
http:
  port: 9090

session:
  secret: "rotating-secret"
  ttl_hours: 1

admin:
  username: "chief"
  password: "letmein"
`)

	cfg, err := ValidateYAMLContent(content)
	if err != nil {
		t.Fatalf("validate config: %v", err)
	}

	if cfg.HTTP.Port != 9090 {
		t.Fatalf("expected port 9090, got %d", cfg.HTTP.Port)
	}
	if cfg.Session.Secret != "rotating-secret" {
		t.Fatalf("expected overridden secret, got %q", cfg.Session.Secret)
	}
	if cfg.Session.TTL() != time.Hour {
		t.Fatalf("expected ttl 1h, got %s", cfg.Session.TTL())
	}
	if cfg.Admin.Username != "chief" {
		t.Fatalf("expected admin username chief, got %q", cfg.Admin.Username)
	}
}

func TestValidateYAMLContent_RejectsBadValues(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		content string
	}{
		{name: "port out of range", content: "http:\n  port: 70000\n"},
		{name: "blank session secret", content: "session:\n  secret: \"\"\n"},
		{name: "zero ttl", content: "session:\n  ttl_hours: 0\n"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if _, err := ValidateYAMLContent([]byte(tc.content)); err == nil {
				t.Fatalf("expected validation failure for %s", tc.name)
			}
		})
	}
}
