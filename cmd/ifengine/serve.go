package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/sbenjam1n/ifengine/internal/cliconfig"
	"github.com/sbenjam1n/ifengine/internal/enginebuild"
	"github.com/sbenjam1n/ifengine/internal/engine/state"
	"github.com/sbenjam1n/ifengine/internal/hostmetrics"
	"github.com/sbenjam1n/ifengine/internal/hostserver"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve [world-file]",
		Short: "Serve a world over the REST/websocket host transport",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := cliconfig.Resolve()
			logger := cliconfig.NewLogger(cfg.LogLevel)

			path := worldPathArg(args)
			if path == "" {
				return fmt.Errorf("no world file given (pass a path or set --world)")
			}
			listen := cfg.ListenAddr
			if listen == "" {
				listen = ":8080"
			}

			world, err := enginebuild.LoadWorldFile(path)
			if err != nil {
				return err
			}

			savePath := path
			save := func() (string, error) {
				data, err := state.SaveWorld(world)
				if err != nil {
					return "", err
				}
				if err := os.WriteFile(savePath, data, 0o644); err != nil {
					return "", err
				}
				return savePath, nil
			}
			load := func() error {
				reloaded, err := enginebuild.LoadWorldFile(savePath)
				if err != nil {
					return err
				}
				*world = *reloaded
				return nil
			}

			engine, err := enginebuild.Build(world, save, load)
			if err != nil {
				return fmt.Errorf("serve: %w", err)
			}

			// No span exporter is wired: this host has no multi-backend
			// tracing requirement, so spans are recorded (attributes and
			// status) by this provider and then dropped rather than
			// pulling in an exporter the spec doesn't call for.
			tp := sdktrace.NewTracerProvider()
			otel.SetTracerProvider(tp)
			defer func() { _ = tp.Shutdown(context.Background()) }()

			metrics := hostmetrics.New()
			srv := hostserver.New(engine, logger, metrics)

			httpServer := &http.Server{Addr: listen, Handler: srv.Router()}

			logger.Info("ifengine: serving", "world", path, "listen", listen)

			errCh := make(chan error, 1)
			go func() { errCh <- httpServer.ListenAndServe() }()

			sig := make(chan os.Signal, 1)
			signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

			select {
			case err := <-errCh:
				if err != nil && err != http.ErrServerClosed {
					return fmt.Errorf("serve: %w", err)
				}
			case <-sig:
				logger.Info("ifengine: shutting down")
				ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				return httpServer.Shutdown(ctx)
			}
			return nil
		},
	}
}
