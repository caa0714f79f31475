package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "SHOPSMART"

// DefaultBadges are the badge rules used when none are configured.
var DefaultBadges = map[string]string{
	"low-stock": "Stock <= 5",
	"new":       "IsNew",
}

// Config holds the runtime configuration of the storefront.
type Config struct {
	Port               string
	BaseURL            string
	CatalogSource      string
	CatalogWatch       bool
	DBDriver           string
	DBURL              string
	DriveCreds         string
	ThemeStore         string
	ChromePath         string
	MediaCacheDir      string
	SessionIdleTimeout time.Duration
	MaxSessions        int
	LogLevel           string
	Badges             map[string]string
}

// SourceKind identifies where the catalog is loaded from.
type SourceKind string

const (
	SourceFile  SourceKind = "file"
	SourceSQL   SourceKind = "sql"
	SourceDrive SourceKind = "drive"
)

// CatalogSourceRef is a parsed catalog.source value.
type CatalogSourceRef struct {
	Kind SourceKind
	// Path for files, file id for Drive, empty for SQL.
	Value string
}

// ParseCatalogSource parses "sql", "drive:<fileID>" or a file path.
func ParseCatalogSource(s string) (CatalogSourceRef, error) {
	s = strings.TrimSpace(s)
	switch {
	case s == "":
		return CatalogSourceRef{}, errors.New("catalog source is empty")
	case strings.EqualFold(s, "sql"):
		return CatalogSourceRef{Kind: SourceSQL}, nil
	case strings.HasPrefix(s, "drive:"):
		id := strings.TrimSpace(strings.TrimPrefix(s, "drive:"))
		if id == "" {
			return CatalogSourceRef{}, fmt.Errorf("catalog source %q has no Drive file id", s)
		}
		return CatalogSourceRef{Kind: SourceDrive, Value: id}, nil
	default:
		return CatalogSourceRef{Kind: SourceFile, Value: s}, nil
	}
}

// Source returns the parsed catalog source.
func (c *Config) Source() (CatalogSourceRef, error) {
	return ParseCatalogSource(c.CatalogSource)
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	// PORT from hosting platforms doesn't include the colon
	return "0.0.0.0:" + strings.TrimPrefix(c.Port, ":")
}

// LoadDotEnv loads .env outside production. A missing file is not an error.
func LoadDotEnv(path string) error {
	if os.Getenv("ENV") == "production" {
		return nil
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// Load reads .env, the optional YAML config file at path, and SHOPSMART_*
// environment variables, in increasing precedence.
func Load(path string) (*Config, error) {
	if err := LoadDotEnv(".env"); err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindFallbackEnv(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else {
		v.SetConfigName("shopsmart")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	cfg := &Config{
		Port:               v.GetString("port"),
		BaseURL:            strings.TrimRight(v.GetString("base_url"), "/"),
		CatalogSource:      v.GetString("catalog.source"),
		CatalogWatch:       v.GetBool("catalog.watch"),
		DBDriver:           v.GetString("database.driver"),
		DBURL:              v.GetString("database.url"),
		DriveCreds:         v.GetString("drive.credentials"),
		ThemeStore:         v.GetString("theme.store_path"),
		ChromePath:         v.GetString("chrome_path"),
		MediaCacheDir:      v.GetString("media.cache_dir"),
		SessionIdleTimeout: v.GetDuration("session.idle_timeout"),
		MaxSessions:        v.GetInt("session.max"),
		LogLevel:           v.GetString("log.level"),
		Badges:             v.GetStringMapString("badges"),
	}
	if len(cfg.Badges) == 0 {
		cfg.Badges = DefaultBadges
	}
	if _, err := cfg.Source(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("base_url", "")
	v.SetDefault("catalog.source", "data/catalog.json")
	v.SetDefault("catalog.watch", false)
	v.SetDefault("database.driver", "pgx")
	v.SetDefault("database.url", "")
	v.SetDefault("drive.credentials", "")
	v.SetDefault("theme.store_path", "")
	v.SetDefault("chrome_path", "")
	v.SetDefault("media.cache_dir", "cache/media")
	v.SetDefault("session.idle_timeout", "30m")
	v.SetDefault("session.max", 10000)
	v.SetDefault("log.level", "info")
	v.SetDefault("badges", DefaultBadges)
}

// bindFallbackEnv keeps the unprefixed variables hosting platforms and
// Google tooling set.
func bindFallbackEnv(v *viper.Viper) {
	_ = v.BindEnv("port", EnvPrefix+"_PORT", "PORT")
	_ = v.BindEnv("database.url", EnvPrefix+"_DATABASE_URL", "DATABASE_URL")
	_ = v.BindEnv("drive.credentials", EnvPrefix+"_DRIVE_CREDENTIALS", "GOOGLE_APPLICATION_CREDENTIALS")
	_ = v.BindEnv("chrome_path", EnvPrefix+"_CHROME_PATH", "CHROME_PATH")
}
