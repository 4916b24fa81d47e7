package cliparse

import (
	"errors"
	"flag"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Defaults shared by the server and the CLI
const (
	DefaultPort       = 5000
	DefaultAPIURL     = "http://localhost:5000/api"
	DefaultOrigin     = "http://localhost:3000"
	DefaultSQLitePath = "triddle.db"
	DefaultSessionTTL = 30 * 24 * time.Hour
)

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string
	PublicOrigin string
	SessionTTL   time.Duration
}

// ParseFlags validates flags and sets port number
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("triddle", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL (file path for sqlite)")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fs.StringVar(&cfg.PublicOrigin, "origin", "", "Public origin used in share links")
	fs.DurationVar(&cfg.SessionTTL, "session-ttl", 0, "Login session lifetime")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = DefaultPort
		}
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, errors.New("database type must be sqlite or postgres")
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		if cfg.DatabaseType == "postgres" {
			return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
		}
		cfg.DatabaseURL = DefaultSQLitePath
	}

	if cfg.PublicOrigin == "" {
		cfg.PublicOrigin = os.Getenv("PUBLIC_ORIGIN")
		if cfg.PublicOrigin == "" {
			cfg.PublicOrigin = DefaultOrigin
		}
	}

	if cfg.SessionTTL == 0 {
		if ttl := os.Getenv("SESSION_TTL"); ttl != "" {
			d, err := time.ParseDuration(ttl)
			if err != nil {
				return Config{}, errors.New("invalid SESSION_TTL env variable")
			}
			cfg.SessionTTL = d
		} else {
			cfg.SessionTTL = DefaultSessionTTL
		}
	}
	if cfg.SessionTTL < 0 {
		return Config{}, errors.New("session TTL must be positive")
	}

	return cfg, nil
}

// ClientConfig configures the triddle CLI
type ClientConfig struct {
	APIURL      string
	Origin      string
	SessionFile string
}

// LoadClientConfig reads the CLI settings from the environment
func LoadClientConfig() (ClientConfig, error) {
	cfg := ClientConfig{
		APIURL:      os.Getenv("TRIDDLE_API_URL"),
		Origin:      os.Getenv("TRIDDLE_ORIGIN"),
		SessionFile: os.Getenv("TRIDDLE_SESSION_FILE"),
	}
	if cfg.APIURL == "" {
		cfg.APIURL = DefaultAPIURL
	}
	if cfg.Origin == "" {
		cfg.Origin = DefaultOrigin
	}
	if cfg.SessionFile == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return ClientConfig{}, errors.New("cannot locate config dir (set TRIDDLE_SESSION_FILE)")
		}
		cfg.SessionFile = filepath.Join(dir, "triddle", "session.json")
	}
	return cfg, nil
}
