package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/gochijan/gochijan/game/config"
	"github.com/gochijan/gochijan/game/kv"
)

const (
	envDBPath     = "GOCHIJAN_DB"
	defaultDBPath = "gochijan.db"
)

var (
	logLevel string // Log verbosity level
	dbPath   string // SQLite file holding saved configurations
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "gochijan",
	Short: "Food janken: rock-paper-scissors where the loser's hand picks the dish",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			return fmt.Errorf("invalid log level %q", logLevel)
		}
		logrus.SetLevel(level)
		return nil
	},
	SilenceUsage: true,
}

// openConfigStore opens the database and hydrates a config store from it.
// The returned close func releases the database.
func openConfigStore(ctx context.Context, withDefault bool) (*config.Store, func(), error) {
	db, err := kv.OpenSQLite(dbPath)
	if err != nil {
		return nil, nil, err
	}
	store := config.NewStore(db)
	if err := store.Hydrate(ctx, withDefault); err != nil {
		db.Close()
		return nil, nil, err
	}
	logrus.Debugf("using database %s", dbPath)
	return store, func() {
		if err := db.Close(); err != nil {
			logrus.Warnf("closing %s: %v", dbPath, err)
		}
	}, nil
}

// withConfig hydrates the store (with defaults), runs fn and saves the
// result as the last used configuration.
func withConfig(ctx context.Context, fn func(*config.Store) error) error {
	store, closeDB, err := openConfigStore(ctx, true)
	if err != nil {
		return err
	}
	defer closeDB()
	if err := fn(store); err != nil {
		return err
	}
	return store.SaveAsLast(ctx)
}

// dbPathFromEnv returns the database path set in the environment, or
// defaultDBPath.
func dbPathFromEnv() string {
	if p := os.Getenv(envDBPath); p != "" {
		return p
	}
	return defaultDBPath
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	// A missing .env is fine; the environment alone is used.
	_ = godotenv.Load()
	defaultDB := dbPathFromEnv()

	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", defaultDB, "SQLite database for saved configurations (env "+envDBPath+")")
}
