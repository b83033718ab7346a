package cli

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexanderramin/leadtime/internal/config"
	"github.com/alexanderramin/leadtime/internal/httpapi"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve schedules as read-only JSON over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			httpCfg := serverConfig(app.Config)
			if cmd.Flags().Changed("addr") {
				httpCfg.Address = addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServer(ctx, app, httpCfg)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides config)")

	return cmd
}

func serverConfig(cfg *config.Config) config.HTTPServer {
	if cfg != nil {
		return cfg.HTTPServer
	}
	return config.HTTPServer{
		Address:     "localhost:4001",
		Timeout:     4 * time.Second,
		IdleTimeout: 60 * time.Second,
	}
}

// runServer serves the API until ctx is cancelled, then drains in-flight
// requests.
func runServer(ctx context.Context, app *App, cfg config.HTTPServer) error {
	log := app.logger().With(slog.String("component", "http"))

	router := httpapi.NewRouter(log, httpapi.Deps{
		Programs: app.Programs,
		Schedule: app.Schedule,
	}, httpapi.RouterConfig{
		AllowedOrigins: cfg.CORSOrigins,
		RequestTimeout: cfg.Timeout,
	})

	srv := &http.Server{
		Addr:         cfg.Address,
		Handler:      router,
		ReadTimeout:  cfg.Timeout,
		WriteTimeout: cfg.Timeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("server started", slog.String("address", cfg.Address))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		err := srv.Shutdown(shutdownCtx)
		log.Info("server stopped")
		return err
	})
	return g.Wait()
}
