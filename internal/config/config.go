package config

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hay-kot/criterio"
	toml "github.com/pelletier/go-toml/v2"
)

// Config holds the client settings for todoterm.
type Config struct {
	APIURL         string
	UserID         int64
	RequestTimeout time.Duration
	ErrorTimeout   time.Duration
	LogFile        string
}

const (
	defaultConfigPath     = "~/.config/todoterm/config.toml"
	defaultAPIURL         = "http://127.0.0.1:3005"
	defaultUserID         = 1
	defaultRequestTimeout = 5 * time.Second
	defaultErrorTimeout   = 3 * time.Second
	defaultLogFile        = "~/.local/state/todoterm/todoterm.log"
)

// DefaultPath returns the config file used when none is given.
func DefaultPath() string {
	return defaultConfigPath
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		APIURL:         defaultAPIURL,
		UserID:         defaultUserID,
		RequestTimeout: defaultRequestTimeout,
		ErrorTimeout:   defaultErrorTimeout,
		LogFile:        mustExpand(defaultLogFile),
	}
}

// Load locates and parses the config file, falling back to defaults when it
// is missing. Empty values keep their defaults.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIURL         string `toml:"api_url"`
		UserID         int64  `toml:"user_id"`
		RequestTimeout string `toml:"request_timeout"`
		ErrorTimeout   string `toml:"error_timeout"`
		LogFile        string `toml:"log_file"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.APIURL); v != "" {
		cfg.APIURL = v
	}
	if raw.UserID != 0 {
		cfg.UserID = raw.UserID
	}
	if v := strings.TrimSpace(raw.LogFile); v != "" {
		cfg.LogFile = mustExpand(v)
	}

	var errs criterio.FieldErrorsBuilder
	if d, err := parseDuration(raw.RequestTimeout, defaultRequestTimeout); err != nil {
		errs = errs.Append("request_timeout", err)
	} else {
		cfg.RequestTimeout = d
	}
	if d, err := parseDuration(raw.ErrorTimeout, defaultErrorTimeout); err != nil {
		errs = errs.Append("error_timeout", err)
	} else {
		cfg.ErrorTimeout = d
	}
	if err := errs.ToError(); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	return cfg, nil
}

// Validate reports every invalid field at once.
func (c Config) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("api_url", c.APIURL, validURL),
		criterio.Run("user_id", c.UserID, positive[int64]),
		criterio.Run("request_timeout", c.RequestTimeout, positive[time.Duration]),
		criterio.Run("error_timeout", c.ErrorTimeout, positive[time.Duration]),
	)
}

func validURL(raw string) error {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("missing host")
	}
	return nil
}

func positive[T int64 | time.Duration](v T) error {
	if v <= 0 {
		return fmt.Errorf("must be greater than zero")
	}
	return nil
}

func parseDuration(raw string, fallback time.Duration) (time.Duration, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(trimmed)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q", raw)
	}
	return d, nil
}

// ExpandPath resolves a leading tilde and makes path absolute.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
