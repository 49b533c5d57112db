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

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ibeckermayer/syndicate/internal/app"
	"github.com/ibeckermayer/syndicate/internal/linkedin"
	"github.com/ibeckermayer/syndicate/internal/scheduler"
)

const shutdownTimeout = 10 * time.Second

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the LinkedIn OAuth and REST façade.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return withApp(ctx, func(a *app.App, logger *slog.Logger) error {
			return serve(ctx, a, logger)
		})
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default server.addr)")
	rootCmd.AddCommand(serveCmd)
}

// NewMux returns the façade routes plus /healthz
func NewMux(a *app.App, logger *slog.Logger) *http.ServeMux {
	mux := http.NewServeMux()
	linkedin.NewHandler(a.LinkedIn(), a.Sessions(), logger).Register(mux)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	return mux
}

func serve(ctx context.Context, a *app.App, logger *slog.Logger) error {
	cfg := a.Config()
	addr := serveAddr
	if addr == "" {
		addr = cfg.Server.Addr
	}

	if !cfg.Server.WriteThrough {
		sched, err := scheduler.New(cfg.Server.Timezone, logger)
		if err != nil {
			return err
		}
		if err := sched.AddFlushJob("session-flush", cfg.Server.FlushSchedule, a.Sessions().Flush); err != nil {
			return err
		}
		sched.Start()
		defer func() { <-sched.Stop().Done() }()
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           NewMux(a, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening", "addr", addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
