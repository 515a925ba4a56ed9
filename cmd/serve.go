package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/liftlog/internal/server"
	"github.com/desertthunder/liftlog/internal/shared"
	"github.com/urfave/cli/v3"
)

// Serve runs the in-memory stub backend until interrupted.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	cfg := r.config.Server
	if cmd.IsSet("host") {
		cfg.Host = cmd.String("host")
	}
	if cmd.IsSet("port") {
		cfg.Port = int(cmd.Int("port"))
	}
	if cfg.Port < 0 || cfg.Port > 65535 {
		return fmt.Errorf("%w: port out of range: %d", shared.ErrInvalidArgument, cfg.Port)
	}

	logger := shared.WithLogger(r.logger, "component", "server")

	router := server.NewBasicRouter()
	router.Use(
		server.RequestID(),
		server.Recoverer(logger),
		server.RequestLogger(logger),
	)
	router.Handler(server.NewLiftHandler(server.LiftHandlerOpts{
		Store:          server.NewLiftStore(),
		Logger:         logger,
		MaxUploadBytes: cfg.MaxUploadMB << 20,
	}))

	ready := make(chan string, 1)
	go func() {
		if addr, ok := <-ready; ok {
			r.writePlain("✓ Stub backend listening on http://%s\n", addr)
			for _, route := range router.Routes() {
				r.writePlain("  %s\n", route)
			}
		}
	}()

	err := server.Serve(ctx, cfg.Addr(), router, logger, ready)
	close(ready)
	return err
}
