package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/presence-server/internal/app"
	"github.com/vovakirdan/presence-server/internal/config"
	"github.com/vovakirdan/presence-server/internal/core"
	"github.com/vovakirdan/presence-server/internal/log"
	"github.com/vovakirdan/presence-server/internal/store/sqlite"
)

type rootFlags struct {
	configPath string
	overrides  config.Config
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:          "presence-server",
		Short:        "Multi-room presence server",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServer(cmd.Context(), flags)
		},
	}

	cmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "path to config file")
	cmd.Flags().StringVar(&flags.overrides.Addr, "addr", "", "HTTP listen address")
	cmd.Flags().StringVar(&flags.overrides.LogLevel, "log-level", "", "log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&flags.overrides.JournalPath, "journal", "", "SQLite journal path")
	cmd.Flags().BoolVar(&flags.overrides.EnforceCapacity, "enforce-capacity", false, "reject joins to full rooms")

	cmd.AddCommand(newJournalCmd(flags))
	return cmd
}

func loadConfig(flags *rootFlags) (config.Config, error) {
	bootstrap := log.New("info", "console")

	cfg, path, err := config.Load(bootstrap, flags.configPath)
	if err != nil {
		return cfg, err
	}
	cfg.UpdateFrom(flags.overrides)
	bootstrap.Debug().Str("path", path).Msg("config loaded")
	return cfg, nil
}

func runServer(parent context.Context, flags *rootFlags) error {
	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}
	logger := log.New(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.New(&cfg, logger)
	if err != nil {
		logger.Error().Err(err).Msg("failed to initialize")
		return err
	}

	if err := application.Run(ctx); err != nil {
		logger.Error().Err(err).Msg("server exited with error")
		return err
	}
	logger.Info().Msg("server stopped")
	return nil
}

func newJournalCmd(flags *rootFlags) *cobra.Command {
	var room string

	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Print the membership journal of a room",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, err := core.ParseRoomID(room)
			if err != nil {
				return fmt.Errorf("invalid room id %q: %w", room, err)
			}
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			if cfg.JournalPath == "" {
				return fmt.Errorf("journal_path is not configured")
			}

			journal, err := sqlite.New(cfg.JournalPath)
			if err != nil {
				return err
			}
			defer journal.Close()

			records, err := journal.ListRoom(cmd.Context(), uint64(id))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, rec := range records {
				fmt.Fprintf(out, "%s\t%s\tuser=%d\tnick=%q", rec.CreatedAt.Format(time.RFC3339), rec.Kind, rec.UserID, rec.Nick)
				if rec.Capacity != 0 {
					fmt.Fprintf(out, "\tcapacity=%d", rec.Capacity)
				}
				fmt.Fprintln(out)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&room, "room", "", "room id")
	_ = cmd.MarkFlagRequired("room")
	return cmd
}
