package cmd

import (
	"errors"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gerunddev/repobrowse/app"
	"github.com/gerunddev/repobrowse/config"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func loadWithFlags(t *testing.T, args ...string) (config.Config, error) {
	t.Helper()
	fs := pflag.NewFlagSet("repobrowse", pflag.ContinueOnError)
	registerFlags(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	v := viper.New()
	config.SetDefaults(v)
	if err := bindFlags(v, fs); err != nil {
		t.Fatalf("bindFlags failed: %v", err)
	}
	return config.Load(v)
}

func TestFlagsOverrideDefaults(t *testing.T) {
	cfg, err := loadWithFlags(t,
		"--url", "http://git.example.com:3001/api",
		"--timeout", "5s",
		"--log-file", "/tmp/api.log",
		"--log-level", "debug",
		"--style", "dracula",
		"--mouse=false",
	)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	want := config.Config{
		ServerURL:      "http://git.example.com:3001/api",
		Timeout:        5 * time.Second,
		LogFile:        "/tmp/api.log",
		LogLevel:       log.DebugLevel,
		HighlightStyle: "dracula",
		Mouse:          false,
	}
	if cfg != want {
		t.Errorf("got %+v, want %+v", cfg, want)
	}
}

func TestUnsetFlagsKeepDefaults(t *testing.T) {
	cfg, err := loadWithFlags(t)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.HighlightStyle != "monokai" || !cfg.Mouse {
		t.Errorf("unexpected defaults %+v", cfg)
	}
}

func TestInvalidFlag(t *testing.T) {
	_, err := loadWithFlags(t, "--url", "not a url")
	if !errors.Is(err, config.ErrInvalid) {
		t.Errorf("expected ErrInvalid, got %v", err)
	}
}

func TestParseRouteArg(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    string
		wantErr bool
	}{
		{"no argument", nil, "/", false},
		{"repository", []string{"/repo/demo"}, "/repo/demo", false},
		{"file", []string{"/repo/demo/abc123/src/main.go"}, "/repo/demo/abc123/src/main.go", false},
		{"unknown", []string{"/settings"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := parseRoute(tt.args)
			if tt.wantErr {
				if !errors.Is(err, app.ErrBadRoute) {
					t.Fatalf("expected ErrBadRoute, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if r.String() != tt.want {
				t.Errorf("route = %q, want %q", r.String(), tt.want)
			}
		})
	}
}

func TestProgramOptions(t *testing.T) {
	if got := len(programOptions(config.Config{Mouse: true})); got != 2 {
		t.Errorf("expected alt screen and mouse, got %d options", got)
	}
	if got := len(programOptions(config.Config{})); got != 1 {
		t.Errorf("expected alt screen only, got %d options", got)
	}
}
