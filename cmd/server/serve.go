package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"impostor/internal/app"
	"impostor/internal/config"
	"impostor/internal/domain"
	httpTransport "impostor/internal/transport/http"
	"impostor/internal/words"
)

const shutdownTimeout = 30 * time.Second

// newCmd builds the root command. Flags default to the values loaded from
// the environment and win over them when set.
func newCmd(cfg *config.Config, web fs.FS) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "impostor-server",
		Short:         "Serves the single-device impostor party game.",
		Args:          cobra.ExactArgs(0),
		SilenceErrors: true,
		SilenceUsage:  true,
		Version:       version,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Validate(); err != nil {
				return err
			}
			return run(cmd.Context(), cfg, web)
		},
	}

	flags := cmd.Flags()

	flags.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	flags.StringVarP(&cfg.Server.Host, "host", "b", cfg.Server.Host, "address to bind to (env: HOST)")
	flags.StringVarP(&cfg.Server.Port, "port", "p", cfg.Server.Port, "port to listen on (env: PORT)")
	flags.StringVar(&cfg.Server.Env, "env", cfg.Server.Env, "development or production (env: ENV)")
	flags.BoolVar(&cfg.Game.StrictRules, "strict", cfg.Game.StrictRules, "reject actions that do not fit the current phase (env: STRICT_RULES)")
	flags.IntVar(&cfg.Game.MaxTables, "max-tables", cfg.Game.MaxTables, "maximum number of open tables, 0 for no limit (env: MAX_TABLES)")
	flags.DurationVar(&cfg.Game.StaleTableTimeout, "stale-table-timeout", cfg.Game.StaleTableTimeout, "time before idle tables are closed (env: STALE_TABLE_TIMEOUT)")
	flags.StringVarP(&cfg.Words.File, "words", "w", cfg.Words.File, "extra word pack file, yaml/json/toml (env: WORDS_FILE)")
	flags.StringVar(&cfg.Logging.Level, "log-level", cfg.Logging.Level, "debug, info, warn or error (env: LOG_LEVEL)")
	flags.StringVar(&cfg.Logging.Format, "log-format", cfg.Logging.Format, "text or json (env: LOG_FORMAT)")

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})

	return cmd
}

func run(ctx context.Context, cfg *config.Config, web fs.FS) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	logger.Info("starting impostor game server",
		"version", version,
		"env", cfg.Server.Env,
		"port", cfg.Server.Port,
		"strict", cfg.Game.StrictRules,
	)

	categories, err := words.Load(cfg.Words.File)
	if err != nil {
		return fmt.Errorf("loading words: %w", err)
	}
	provider, err := words.NewProvider(categories, words.WithRecentSize(cfg.Words.RecentSize))
	if err != nil {
		return fmt.Errorf("building word provider: %w", err)
	}
	logger.Info("words loaded", "categories", len(categories), "file", cfg.Words.File)

	var opts []domain.Option
	if cfg.Game.StrictRules {
		opts = append(opts, domain.WithStrictRules())
	}
	engine := domain.NewEngine(provider, opts...)

	hub := app.NewHub(engine, app.HubOptions{
		CodeLength:      cfg.Game.TableCodeLength,
		MaxTables:       cfg.Game.MaxTables,
		StaleTimeout:    cfg.Game.StaleTableTimeout,
		CleanupInterval: cfg.Game.CleanupInterval,
	}, logger)
	defer hub.Close()

	server := httpTransport.NewServer(cfg, hub, provider, logger, web)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		return hub.Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server...")

		// Graceful shutdown with timeout
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("server forced to shutdown", "error", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	logger.Info("server stopped")
	return nil
}
