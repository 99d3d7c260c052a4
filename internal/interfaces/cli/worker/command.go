package worker

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/creatorhub/creatorhub/internal/infrastructure/database"
	"github.com/creatorhub/creatorhub/internal/infrastructure/metrics"
	"github.com/creatorhub/creatorhub/internal/infrastructure/scheduler"
	httpRouter "github.com/creatorhub/creatorhub/internal/interfaces/http"
	"github.com/creatorhub/creatorhub/internal/interfaces/cli/bootstrap"
)

func NewCommand(opts *bootstrap.Options) *cobra.Command {
	var metricsAddr string

	cmd := &cobra.Command{
		Use:   "worker",
		Short: "Run the token reset and plan sync jobs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts, metricsAddr)
		},
	}
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", ":9091", "Address for the /metrics endpoint; empty disables it")
	return cmd
}

func run(parent context.Context, opts *bootstrap.Options, metricsAddr string) error {
	cfg, log, db, err := opts.InitWithDatabase()
	if err != nil {
		return err
	}
	defer database.Close()

	container, err := httpRouter.NewContainer(db, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to build container: %w", err)
	}
	defer container.Shutdown()

	sched, err := scheduler.NewSchedulerManager(log)
	if err != nil {
		return err
	}
	if err := container.RegisterJobs(sched); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		sched.Start()
		log.Infow("worker started", "jobs", len(sched.Jobs()))
		<-ctx.Done()
		return sched.Stop()
	})

	if metricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler())
		srv := &http.Server{Addr: metricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

		g.Go(func() error {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("metrics server: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	}

	err = g.Wait()
	log.Infow("worker stopped")
	return err
}
