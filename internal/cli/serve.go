package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/errgroup"

	"github.com/crackit360/crackit360-api/internal/config"
	"github.com/crackit360/crackit360-api/internal/container"
	"github.com/crackit360/crackit360-api/internal/observability"
)

const shutdownTimeout = 10 * time.Second

// NewServeCmd builds the CLI subcommand to start the HTTP server.
func NewServeCmd(port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *port)
		},
	}
}

func runServer(ctx context.Context, port string) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	s, err := container.Bootstrap(ctx)
	if err != nil {
		return err
	}
	log := config.WithContext(ctx)

	shutdownTracing := observability.Init(ctx, s)

	c, err := container.New(config.DB, s)
	if err != nil {
		return err
	}

	if port == "" {
		port = s.Port
	}
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      otelhttp.NewHandler(c.Router(), observability.ServiceName),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.WithField("addr", server.Addr).Info("Starting CrackIt360 API")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		err := server.Shutdown(shutdownCtx)
		if cerr := c.Close(); cerr != nil {
			log.WithError(cerr).Warn("Closing container")
		}
		if terr := shutdownTracing(shutdownCtx); terr != nil {
			log.WithError(terr).Warn("Flushing traces")
		}
		return err
	})

	return g.Wait()
}
