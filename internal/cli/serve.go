package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/julianstephens/tend/internal/logger"
	"github.com/julianstephens/tend/internal/server"
)

type ServeCmd struct {
	Addr string `short:"a" help:"Listen address. Defaults to the configured address."`
}

func (c *ServeCmd) Run(ctx *Context) error {
	addr := c.Addr
	if addr == "" {
		addr = ctx.Config.HTTP.Addr
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           server.New(ctx.Habits, ctx.Wellness, ctx.Game, ctx.Insights).Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	case <-stop:
		logger.Info("shutting down http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
