// Package server assembles the running bot: the Telegram poller and a small
// ops HTTP surface for deployment probes.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"

	"github.com/coffeops/genkabot/internal/profile"
	"github.com/coffeops/genkabot/plugin/telegram"
	"github.com/coffeops/genkabot/store"
)

const shutdownTimeout = 10 * time.Second

type Server struct {
	profile *profile.Profile
	store   *store.Store
	poller  *telegram.Poller
	echo    *echo.Echo
	logger  *slog.Logger
}

func New(profile *profile.Profile, st *store.Store, poller *telegram.Poller, logger *slog.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		profile: profile,
		store:   st,
		poller:  poller,
		echo:    e,
		logger:  logger,
	}

	e.GET("/healthz", s.healthz)
	e.GET("/readyz", s.readyz)

	return s
}

// Start runs the poller and the ops listener until ctx is cancelled or one
// of them fails; the first error tears both down.
func (s *Server) Start(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return s.poller.Run(gctx)
	})

	g.Go(func() error {
		addr := fmt.Sprintf("%s:%d", s.profile.Addr, s.profile.Port)
		s.logger.Info("ops server listening", slog.String("addr", addr))
		if err := s.echo.Start(addr); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return s.echo.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func (s *Server) healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "ok",
		"version": s.profile.Version,
	})
}

func (s *Server) readyz(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := s.store.Ping(ctx); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status": "unavailable",
			"error":  err.Error(),
		})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ready"})
}
