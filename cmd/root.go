package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gerunddev/repobrowse/api"
	"github.com/gerunddev/repobrowse/app"
	"github.com/gerunddev/repobrowse/config"
	"github.com/gerunddev/repobrowse/interactive"
	"github.com/gerunddev/repobrowse/ui"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var (
	cfgFile   string
	configErr error
)

var rootCmd = &cobra.Command{
	Use:   "repobrowse [route]",
	Short: "Browse the repositories of a git server from the terminal",
	Long: `repobrowse lists the repositories of a git server, shows commit logs
and diffs, browses the directory tree of any commit and opens files.

An optional route opens the browser at a location:
  /repo/<name>
  /repo/<name>/<sha1>
  /repo/<name>/<sha1>/<path>`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

// flagKeys maps command line flags to configuration keys.
var flagKeys = map[string]string{
	"url":       config.KeyServerURL,
	"timeout":   config.KeyServerTimeout,
	"log-file":  config.KeyLogFile,
	"log-level": config.KeyLogLevel,
	"style":     config.KeyHighlightStyle,
	"mouse":     config.KeyMouse,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/repobrowse/config.toml)")
	rootCmd.Flags().BoolP("interactive", "i", false, "Run in interactive mode (quick actions)")
	registerFlags(rootCmd.Flags())
	if err := bindFlags(viper.GetViper(), rootCmd.Flags()); err != nil {
		panic(err)
	}
}

func registerFlags(fs *pflag.FlagSet) {
	fs.String("url", api.DefaultURL, "backend API base URL")
	fs.Duration("timeout", api.DefaultTimeout, "timeout of a single request, 0 for none")
	fs.String("log-file", "", "append the request log to this file")
	fs.String("log-level", "info", "log level: debug, info, warn or error")
	fs.String("style", "", "chroma style for file contents")
	fs.Bool("mouse", true, "enable mouse support")
}

func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for name, key := range flagKeys {
		if err := v.BindPFlag(key, fs.Lookup(name)); err != nil {
			return fmt.Errorf("failed to bind --%s: %w", name, err)
		}
	}
	return nil
}

func initConfig() {
	config.SetDefaults(viper.GetViper())
	config.BindEnv(viper.GetViper())

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			configErr = err
			return
		}

		configDir := filepath.Join(home, ".config", "repobrowse")
		viper.AddConfigPath(configDir)
		viper.SetConfigType("toml")
		viper.SetConfigName("config")
	}

	if err := viper.ReadInConfig(); err != nil {
		// A missing default config file is fine; an explicit one is not.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || cfgFile != "" {
			configErr = fmt.Errorf("failed to read config: %w", err)
		}
	}
}

func run(cmd *cobra.Command, args []string) error {
	if configErr != nil {
		return configErr
	}
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return err
	}
	route, err := parseRoute(args)
	if err != nil {
		return err
	}

	if err := api.InitLogger(cfg.LogFile, cfg.LogLevel); err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	client, err := api.NewClient(cfg.ServerURL, api.WithTimeout(cfg.Timeout))
	if err != nil {
		return err
	}

	if quick, _ := cmd.Flags().GetBool("interactive"); quick {
		return interactive.Run(cmd.Context(), client)
	}

	// Full TUI mode (default)
	browser := ui.NewApp(client,
		ui.WithRoute(route),
		ui.WithHighlightStyle(cfg.HighlightStyle),
	)

	p := tea.NewProgram(browser, programOptions(cfg)...)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func parseRoute(args []string) (app.Route, error) {
	if len(args) == 0 {
		return app.Route{}, nil
	}
	return app.ParseRoute(args[0])
}

func programOptions(cfg config.Config) []tea.ProgramOption {
	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	return opts
}
