package app

import (
	"context"
	"errors"
	"fmt"
	stdhttp "net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/presence-server/internal/auth"
	"github.com/vovakirdan/presence-server/internal/config"
	"github.com/vovakirdan/presence-server/internal/core"
	"github.com/vovakirdan/presence-server/internal/identity"
	"github.com/vovakirdan/presence-server/internal/service/rooms"
	"github.com/vovakirdan/presence-server/internal/store"
	"github.com/vovakirdan/presence-server/internal/store/sqlite"
	transporthttp "github.com/vovakirdan/presence-server/internal/transport/http"
)

const sessionIssuer = "presence-server"

// App wires together core and transport layers.
type App struct {
	server          *stdhttp.Server
	shutdownTimeout time.Duration
	recorder        *store.Recorder
	journal         store.Journal
	log             *zerolog.Logger
}

// New constructs the application with provided configuration.
func New(cfg *config.Config, logger *zerolog.Logger) (*App, error) {
	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	if cfg.SessionSecret == "" {
		logger.Warn().Msg("session_secret is empty, sessions will not survive a restart")
	}
	key, err := auth.DeriveKey(cfg.SessionSecret)
	if err != nil {
		return nil, fmt.Errorf("derive session key: %w", err)
	}
	sessions := auth.NewService(&auth.JWTConfig{
		Secret: key,
		Issuer: sessionIssuer,
		TTL:    cfg.SessionTTL,
	})

	var journal store.Journal = store.Nop{}
	if cfg.JournalPath != "" {
		st, err := sqlite.New(cfg.JournalPath)
		if err != nil {
			return nil, fmt.Errorf("init journal: %w", err)
		}
		journal = st
		logger.Info().Str("journal_path", cfg.JournalPath).Msg("journal initialized")
	}
	recorder := store.NewRecorder(journal, cfg.JournalBuffer, logger)

	registry := core.NewRegistry(
		core.WithMaxIDAttempts(cfg.MaxIDAttempts),
		core.WithCapacityEnforcement(cfg.EnforceCapacity),
	)
	svc := rooms.New(registry, core.NewHub(), recorder, logger)
	server := transporthttp.NewServer(svc, sessions, identity.NewResolver(nil), cfg, logger)

	return &App{
		server:          server,
		shutdownTimeout: cfg.ShutdownTimeout,
		recorder:        recorder,
		journal:         journal,
		log:             logger,
	}, nil
}

// Handler exposes the HTTP handler, mostly for tests.
func (a *App) Handler() stdhttp.Handler {
	return a.server.Handler
}

// Run starts the HTTP server and blocks until context cancellation or fatal error.
func (a *App) Run(ctx context.Context) error {
	defer a.cleanup()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return a.recorder.Run(gctx)
	})

	g.Go(func() error {
		a.log.Info().Str("addr", a.server.Addr).Msg("starting presence server")
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
		defer cancel()

		a.log.Info().Msg("shutting down http server")
		return a.server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// cleanup closes the journal once the recorder has flushed.
func (a *App) cleanup() {
	if err := a.journal.Close(); err != nil {
		a.log.Warn().Err(err).Msg("failed to close journal")
		return
	}
	a.log.Debug().Msg("journal closed")
}
