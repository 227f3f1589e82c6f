// Package config reads repobrowse settings from viper: config file,
// REPOBROWSE_* environment variables and command line flags.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/log"
	"github.com/gerunddev/repobrowse/api"
	"github.com/spf13/viper"
)

// Keys.
const (
	KeyServerURL      = "server.url"
	KeyServerTimeout  = "server.timeout"
	KeyLogFile        = "log.file"
	KeyLogLevel       = "log.level"
	KeyHighlightStyle = "ui.highlight_style"
	KeyMouse          = "ui.mouse"
)

// DefaultHighlightStyle is the chroma style used for file contents.
const DefaultHighlightStyle = "monokai"

// EnvPrefix prefixes the environment variables, e.g. REPOBROWSE_SERVER_URL.
const EnvPrefix = "REPOBROWSE"

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Config is the validated configuration.
type Config struct {
	ServerURL      string
	Timeout        time.Duration
	LogFile        string
	LogLevel       log.Level
	HighlightStyle string
	Mouse          bool
}

// SetDefaults registers the default of every key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyServerURL, api.DefaultURL)
	v.SetDefault(KeyServerTimeout, api.DefaultTimeout)
	v.SetDefault(KeyLogFile, "")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyHighlightStyle, DefaultHighlightStyle)
	v.SetDefault(KeyMouse, true)
}

// BindEnv makes REPOBROWSE_SERVER_URL and friends override the file.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load reads and validates the configuration held by v.
func Load(v *viper.Viper) (Config, error) {
	cfg := Config{
		ServerURL:      strings.TrimSpace(v.GetString(KeyServerURL)),
		Timeout:        v.GetDuration(KeyServerTimeout),
		LogFile:        v.GetString(KeyLogFile),
		HighlightStyle: v.GetString(KeyHighlightStyle),
		Mouse:          v.GetBool(KeyMouse),
	}

	u, err := url.Parse(cfg.ServerURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return Config{}, fmt.Errorf("%w: %s must be an http or https URL, got %q", ErrInvalid, KeyServerURL, cfg.ServerURL)
	}

	if cfg.Timeout < 0 {
		return Config{}, fmt.Errorf("%w: %s must not be negative, got %s", ErrInvalid, KeyServerTimeout, cfg.Timeout)
	}

	cfg.LogLevel, err = log.ParseLevel(v.GetString(KeyLogLevel))
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s: %v", ErrInvalid, KeyLogLevel, err)
	}

	if cfg.HighlightStyle == "" {
		cfg.HighlightStyle = DefaultHighlightStyle
	}
	style, ok := canonicalStyle(cfg.HighlightStyle)
	if !ok {
		return Config{}, fmt.Errorf("%w: %s: unknown style %q", ErrInvalid, KeyHighlightStyle, cfg.HighlightStyle)
	}
	cfg.HighlightStyle = style

	return cfg, nil
}

// canonicalStyle returns the registered spelling of a chroma style name.
// chroma looks styles up by exact name.
func canonicalStyle(name string) (string, bool) {
	for _, s := range styles.Names() {
		if strings.EqualFold(s, name) {
			return s, true
		}
	}
	return "", false
}
