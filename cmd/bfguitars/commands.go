package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/phenrril/bfguitars/internal/adapters/terminal"
	"github.com/phenrril/bfguitars/internal/config"
	"github.com/phenrril/bfguitars/internal/storefront"
	"github.com/phenrril/bfguitars/internal/storefront/apiclient"
)

func serveCmd(cfg *config.Config) *cobra.Command {
	var migrate bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the storefront API and static pages",
		RunE: func(cmd *cobra.Command, _ []string) error {
			application, err := openApp(*cfg)
			if err != nil {
				return fmt.Errorf("connect to database: %w", err)
			}
			defer application.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if migrate {
				if err := application.MigrateAndSeed(ctx); err != nil {
					return fmt.Errorf("migrate and seed: %w", err)
				}
			}

			ln, port, err := listen(cfg.Port)
			if err != nil {
				return err
			}
			server := &http.Server{
				Handler:           application.HTTPHandler(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				zlog.Info().Str("port", port).Str("api", cfg.APIBase).Msg("listening")
				if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			zlog.Info().Msg("shutting down")
			return server.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", true, "create tables and seed an empty catalog on start")
	return cmd
}

// listen binds the configured port, trying the next few when it is taken.
func listen(port string) (net.Listener, string, error) {
	ln, err := net.Listen("tcp", ":"+port)
	if err == nil {
		return ln, port, nil
	}
	first, convErr := strconv.Atoi(port)
	if convErr != nil {
		return nil, "", err
	}
	for p := first + 1; p <= first+10; p++ {
		if l2, err2 := net.Listen("tcp", ":"+strconv.Itoa(p)); err2 == nil {
			zlog.Warn().Err(err).Int("port", p).Msg("configured port busy, using fallback")
			return l2, strconv.Itoa(p), nil
		}
	}
	return nil, "", fmt.Errorf("listen on %s: %w", port, err)
}

func migrateCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the products, diy_orders and feedbacks tables",
		RunE: func(cmd *cobra.Command, _ []string) error {
			application, err := openApp(*cfg)
			if err != nil {
				return err
			}
			defer application.Close()
			return application.MigrateAndSeed(cmd.Context())
		},
	}
}

func seedCmd(cfg *config.Config) *cobra.Command {
	var xlsx string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load products from a spreadsheet, or the default guitars into an empty catalog",
		RunE: func(cmd *cobra.Command, _ []string) error {
			application, err := openApp(*cfg)
			if err != nil {
				return err
			}
			defer application.Close()
			if err := application.MigrateAndSeed(cmd.Context()); err != nil {
				return err
			}
			if xlsx == "" {
				return nil
			}
			created, updated, err := application.ImportXLSX(cmd.Context(), xlsx)
			if err != nil {
				return fmt.Errorf("import %s: %w", xlsx, err)
			}
			zlog.Info().Int("created", created).Int("updated", updated).Str("file", xlsx).Msg("catalog imported")
			return nil
		},
	}
	cmd.Flags().StringVar(&xlsx, "xlsx", "", "spreadsheet with category, name, color, price, img, description columns")
	return cmd
}

func shopCmd(cfg *config.Config) *cobra.Command {
	var base, categories string
	cmd := &cobra.Command{
		Use:   "shop",
		Short: "Browse a running storefront from the terminal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			// keep request logs out of the interactive page
			zerolog.SetGlobalLevel(zerolog.WarnLevel)
			if base == "" {
				base = "http://localhost:" + cfg.Port + cfg.APIBase
			}
			client, err := apiclient.New(base, nil)
			if err != nil {
				return err
			}
			session := storefront.NewSession(client, storefront.WithResetDelay(cfg.ResetDelay))
			shell := terminal.NewShell(session, cmd.OutOrStdout(), config.SplitList(categories))
			return shell.Run(cmd.Context(), historyFile())
		},
	}
	cmd.Flags().StringVar(&base, "base", "", "API base URL (default http://localhost:$PORT$API_BASE)")
	cmd.Flags().StringVar(&categories, "categories", "all,electric,acoustic,bass,classical", "comma separated product tabs")
	return cmd
}

func historyFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".bfguitars_history")
}

