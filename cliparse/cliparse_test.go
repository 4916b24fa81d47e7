// cliparse/cliparse_test.go
package cliparse

import (
	"testing"
	"time"
)

func TestParseFlags_EnvVars(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_URL", "postgres://test")
	t.Setenv("DATABASE_TYPE", "postgres")
	t.Setenv("PUBLIC_ORIGIN", "https://triddle.app")
	t.Setenv("SESSION_TTL", "1h")

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.DatabaseType != "postgres" {
		t.Errorf("expected postgres, got %s", cfg.DatabaseType)
	}
	if cfg.PublicOrigin != "https://triddle.app" {
		t.Errorf("expected origin from env, got %s", cfg.PublicOrigin)
	}
	if cfg.SessionTTL != time.Hour {
		t.Errorf("expected 1h TTL, got %s", cfg.SessionTTL)
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	t.Setenv("PORT", "9000")

	cfg, err := ParseFlags([]string{"-p", "8080", "-d", "test.db", "-origin", "http://example.com"})
	if err != nil {
		t.Fatal(err)
	}

	// CLI should override env
	if cfg.Port != 8080 {
		t.Errorf("CLI should override env: expected 8080, got %d", cfg.Port)
	}
	if cfg.DatabaseURL != "test.db" {
		t.Errorf("expected test.db, got %s", cfg.DatabaseURL)
	}
	if cfg.PublicOrigin != "http://example.com" {
		t.Errorf("expected origin from flag, got %s", cfg.PublicOrigin)
	}
}

func TestParseFlags_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DATABASE_TYPE", "")
	t.Setenv("PUBLIC_ORIGIN", "")
	t.Setenv("SESSION_TTL", "")

	cfg, err := ParseFlags(nil)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != DefaultPort {
		t.Errorf("expected default port %d, got %d", DefaultPort, cfg.Port)
	}
	if cfg.DatabaseType != "sqlite" || cfg.DatabaseURL != DefaultSQLitePath {
		t.Errorf("expected sqlite at %s, got %s at %s", DefaultSQLitePath, cfg.DatabaseType, cfg.DatabaseURL)
	}
	if cfg.SessionTTL != DefaultSessionTTL {
		t.Errorf("expected default TTL, got %s", cfg.SessionTTL)
	}
}

func TestParseFlags_Errors(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	tests := []struct {
		name string
		env  map[string]string
		args []string
	}{
		{"postgres without url", nil, []string{"-t", "postgres"}},
		{"unknown db type", nil, []string{"-t", "mysql"}},
		{"bad port env", map[string]string{"PORT": "abc"}, nil},
		{"bad ttl env", map[string]string{"SESSION_TTL": "forever"}, nil},
		{"unknown flag", nil, []string{"-x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := ParseFlags(tt.args); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadClientConfig(t *testing.T) {
	t.Setenv("TRIDDLE_API_URL", "http://api.test/api")
	t.Setenv("TRIDDLE_ORIGIN", "")
	t.Setenv("TRIDDLE_SESSION_FILE", "/tmp/triddle-session.json")

	cfg, err := LoadClientConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.APIURL != "http://api.test/api" {
		t.Errorf("expected API URL from env, got %s", cfg.APIURL)
	}
	if cfg.Origin != DefaultOrigin {
		t.Errorf("expected default origin, got %s", cfg.Origin)
	}
	if cfg.SessionFile != "/tmp/triddle-session.json" {
		t.Errorf("expected session file from env, got %s", cfg.SessionFile)
	}
}
