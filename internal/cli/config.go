package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/joeshaw/envdecode"
)

// Config holds CLI defaults read from the environment. Flags override every
// field.
type Config struct {
	// Output is the default output format. ENV: FORMOPTIONS_FORMAT
	Output string `env:"FORMOPTIONS_FORMAT,default=json"`
	// LogLevel is one of debug, info, warn, error. ENV: FORMOPTIONS_LOG_LEVEL
	LogLevel string `env:"FORMOPTIONS_LOG_LEVEL,default=warn"`
	// HTTPTimeout bounds remote document fetches. ENV: FORMOPTIONS_HTTP_TIMEOUT
	HTTPTimeout time.Duration `env:"FORMOPTIONS_HTTP_TIMEOUT,default=10s"`
	// AllowHTTP enables http(s) sources. ENV: FORMOPTIONS_ALLOW_HTTP
	AllowHTTP bool `env:"FORMOPTIONS_ALLOW_HTTP,default=false"`
}

// DefaultConfig returns the values used when the environment is empty.
func DefaultConfig() Config {
	return Config{
		Output:      formatJSON,
		LogLevel:    "warn",
		HTTPTimeout: 10 * time.Second,
	}
}

// LoadConfig decodes Config from the environment.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return Config{}, fmt.Errorf("cli: read environment: %w", err)
	}
	return cfg, nil
}

func parseLogLevel(raw string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(raw))); err != nil {
		return slog.LevelWarn, fmt.Errorf("cli: invalid log level %q", raw)
	}
	return level, nil
}

func newLogger(w io.Writer, raw string) (*slog.Logger, error) {
	level, err := parseLogLevel(raw)
	if err != nil {
		return nil, err
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), nil
}
