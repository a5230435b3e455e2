package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/karsow/sessionreel"
)

var (
	verbose    bool
	configPath string
	userFlag   string
	watchDirs  bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "reel",
	Short: "Browse and manage recorded screen sessions stored in an object store",
	Long: `Reel assembles sessions out of the video, metadata, and annotation
artifacts a recorder uploads independently, recovering videos from the
local disk when an upload never made it.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path (default ~/.sessionreel.yaml)")
	rootCmd.PersistentFlags().StringVarP(&userFlag, "user", "u", "", "Username namespace (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&watchDirs, "watch", false, "Keep a filesystem watcher on the local search directories")
}

// setup loads config, resolves the username, and wires the engine.
func setup(cmd *cobra.Command) (*sessionreel.Service, string) {
	path := configPath
	if path == "" {
		path = sessionreel.DefaultConfigPath()
	}

	cfg, err := sessionreel.LoadConfig(path)
	if err != nil {
		fatal("Error loading config", err)
	}

	username := userFlag
	if username == "" {
		username = cfg.Username
	}
	if username == "" {
		fatal("Error resolving user", fmt.Errorf("set --user, REEL_USERNAME, or username in %s", path))
	}

	svc, err := sessionreel.New(cmd.Context(), cfg,
		sessionreel.WithLogger(slog.Default()),
		sessionreel.WithWatch(watchDirs),
	)
	if err != nil {
		fatal("Error initializing engine", err)
	}

	return svc, username
}
