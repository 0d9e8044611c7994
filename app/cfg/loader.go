package cfg

import (
	"cmp"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

// Options are the global flags shared by every subcommand.
type Options struct {
	// Storage
	DBPath  string `long:"db-path" env:"DB_PATH" default:"./data/bap.db" description:"Path to the sqlite database file"`
	DataDir string `long:"data-dir" env:"DATA_DIR" default:"./data" description:"Directory holding articles.json and projects/"`

	// HTTP server
	Port        string   `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	BaseUrl     string   `long:"base-url" env:"BASE_URL" description:"Public base URL for the service (e.g., https://api.example.com)"`
	CORSOrigins []string `long:"cors-origin" env:"CORS_ORIGINS" env-delim:"," default:"*" description:"Allowed CORS origin (repeatable)"`

	// Authentication
	JWTSecret string        `long:"jwt-secret" env:"JWT_SECRET" description:"Secret used to sign access tokens"`
	TokenTTL  time.Duration `long:"token-ttl" env:"TOKEN_TTL" default:"24h" description:"Lifetime of issued access tokens"`

	// Bootstrap administrator
	AdminEmail    string `long:"admin-email" env:"ADMIN_EMAIL" description:"Administrator email created by init-data"`
	AdminUsername string `long:"admin-username" env:"ADMIN_USERNAME" default:"admin" description:"Administrator username created by init-data"`
	AdminLastName string `long:"admin-last-name" env:"ADMIN_LAST_NAME" description:"Administrator last name created by init-data"`
	AdminPassword string `long:"admin-password" env:"ADMIN_PASSWORD" description:"Administrator password created by init-data"`

	// Application metadata
	Timezone string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, Europe/Madrid)"`
	Debug    bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

// LoadDotEnv populates the environment from .env files before flags are
// parsed. Variables already set in the environment win; a missing file is
// not an error.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
		slog.Debug("Loaded environment file", "path", path)
	}
	return nil
}

// Load builds the runtime configuration from parsed options.
func Load(raw *Options) (*Cfg, error) {
	if raw.DBPath == "" {
		return nil, fmt.Errorf("database path must not be empty")
	}

	origins := make([]string, 0, len(raw.CORSOrigins))
	for _, o := range raw.CORSOrigins {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}

	cfg := &Cfg{
		DBPath:        raw.DBPath,
		DataDir:       raw.DataDir,
		Port:          raw.Port,
		BaseUrl:       raw.BaseUrl,
		CORSOrigins:   origins,
		JWTSecret:     raw.JWTSecret,
		TokenTTL:      raw.TokenTTL,
		AdminEmail:    raw.AdminEmail,
		AdminUsername: raw.AdminUsername,
		AdminLastName: raw.AdminLastName,
		AdminPassword: raw.AdminPassword,
		Timezone:      raw.Timezone,
		Debug:         raw.Debug,
		Version:       GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	return cfg, nil
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		loc, err := time.LoadLocation(timezone)
		if err != nil {
			return err
		}
		time.Local = loc
	}
	return nil
}
