package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/phenrril/bfguitars/internal/adapters/repo/sqlstore"
	"github.com/phenrril/bfguitars/internal/app"
	"github.com/phenrril/bfguitars/internal/config"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var cfg config.Config
	root := &cobra.Command{
		Use:          "bfguitars",
		Short:        "BF Guitars storefront",
		SilenceUsage: true,
	}
	root.PersistentPreRun = func(*cobra.Command, []string) {
		cfg = config.Load()
		setupLogging(cfg)
	}
	root.AddCommand(
		serveCmd(&cfg),
		migrateCmd(&cfg),
		seedCmd(&cfg),
		shopCmd(&cfg),
	)
	return root
}

func setupLogging(cfg config.Config) {
	zerolog.TimeFieldFormat = time.RFC3339
	if cfg.IsDev() {
		zlog.Logger = zlog.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zlog.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	zerolog.DefaultContextLogger = &zlog.Logger
}

func openApp(cfg config.Config) (*app.App, error) {
	return app.Open(cfg, sqlstore.Open)
}
