// Package config loads process configuration from the environment and flags.
package config

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/thiccmc/renskin/internal/blend"
)

// DefaultSkinURL is the classic default skin, served when a lookup fails.
const DefaultSkinURL = "http://textures.minecraft.net/texture/1a4af718455d4aab528e7a61f86fa25e6a369d1768dcb13f7df319a713eb810b"

// Config holds renskin process configuration.
type Config struct {
	Bind            string        `env:"RENSKIN_BIND" envDefault:"127.0.0.1:3727"`
	CacheDir        string        `env:"RENSKIN_CACHE_DIR" envDefault:".cache"`
	DBPath          string        `env:"RENSKIN_DB_PATH" envDefault:"renskin.db"`
	DefaultSkinURL  string        `env:"RENSKIN_DEFAULT_SKIN_URL"`
	NoFallback      bool          `env:"RENSKIN_NO_FALLBACK" envDefault:"false"`
	Blender         string        `env:"RENSKIN_BLENDER" envDefault:"batch"`
	UserAgent       string        `env:"RENSKIN_USER_AGENT" envDefault:"ThiccMC/renskin"`
	FetchTimeout    time.Duration `env:"RENSKIN_FETCH_TIMEOUT" envDefault:"10s"`
	MaxTextureBytes int64         `env:"RENSKIN_MAX_TEXTURE_BYTES" envDefault:"1048576"`
	ShutdownTimeout time.Duration `env:"RENSKIN_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	OTelEndpoint    string        `env:"RENSKIN_OTEL_ENDPOINT"`
	LogLevel        string        `env:"RENSKIN_LOG_LEVEL" envDefault:"info"`
	LogFormat       string        `env:"RENSKIN_LOG_FORMAT" envDefault:"text"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// ParseConfig parses environment and flags into a Config. Flags override
// the environment. DefaultSkinURL applies when neither sets a default skin.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	cfg := Config{DefaultSkinURL: DefaultSkinURL}
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.Bind, "bind", cfg.Bind, "Address the HTTP server listens on")
	fs.StringVar(&cfg.CacheDir, "cache-dir", cfg.CacheDir, "Root directory of the tier cache")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "Path of the SQLite profile database")
	fs.StringVar(&cfg.DefaultSkinURL, "default-skin", cfg.DefaultSkinURL, "Texture rendered when a lookup fails (%s expands to the identity)")
	fs.BoolVar(&cfg.NoFallback, "no-fallback", cfg.NoFallback, "Answer failed lookups with the placeholder instead of the default texture")
	fs.StringVar(&cfg.Blender, "blender", cfg.Blender, "Blending strategy: scalar or batch")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn or error")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format: text or json")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports settings that cannot work.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Bind) == "" {
		return fmt.Errorf("bind address is required")
	}
	if strings.TrimSpace(c.CacheDir) == "" {
		return fmt.Errorf("cache dir is required")
	}
	if strings.TrimSpace(c.DBPath) == "" {
		return fmt.Errorf("db path is required")
	}
	if _, ok := blend.ByName(c.Blender); !ok {
		return fmt.Errorf("unknown blender %q", c.Blender)
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}
	return nil
}

// FallbackURL returns the default texture template, or "" when the
// fallback is disabled.
func (c Config) FallbackURL() string {
	if c.NoFallback {
		return ""
	}
	return strings.TrimSpace(c.DefaultSkinURL)
}

// NewLogger builds the process logger described by c, writing to w.
func (c Config) NewLogger(w io.Writer) (*slog.Logger, error) {
	level, err := parseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	switch strings.ToLower(c.LogFormat) {
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	case "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", c.LogFormat)
	}
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("log level %q: %w", s, err)
	}
	return level, nil
}
