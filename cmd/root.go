package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/orbitrest/internal/config"
	"github.com/abhisek/orbitrest/internal/logging"
	"github.com/abhisek/orbitrest/internal/store"
)

var (
	cfg    config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "orbitrest",
	Short: "Learn REST by exploring the solar system",
	Long: "OrbitREST serves a planets API to practise HTTP methods on, with " +
		"concept lessons, quizzes and progress tracking.",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "SQLite path or postgres:// DSN (overrides ORBITREST_DB env var)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (overrides ORBITREST_LOG_LEVEL)")
	rootCmd.PersistentFlags().String("env-file", ".env", "Optional dotenv file loaded before reading the environment")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(conceptsCmd)
	rootCmd.AddCommand(questionsCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(versionCmd)
}

// setup loads configuration and installs the process logger.
func setup(cmd *cobra.Command, _ []string) error {
	envFile, _ := cmd.Flags().GetString("env-file")
	loaded, err := config.Load(envFile)
	if err != nil {
		return err
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		loaded.LogLevel = lvl
	}
	if err := loaded.Validate(); err != nil {
		return err
	}
	level, _ := logging.ParseLevel(loaded.LogLevel)

	cfg = loaded
	logger = logging.New(os.Stderr, level, loaded.LogFormat)
	slog.SetDefault(logger)
	return nil
}

// resolveDBPath returns the database location using --db flag (highest
// priority), then ORBITREST_DB, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg.DB != "" {
		return cfg.DB, store.EnsureDir(cfg.DB)
	}
	return store.DefaultDBPath()
}

func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return st, nil
}
