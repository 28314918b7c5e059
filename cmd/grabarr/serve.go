package main

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vmunix/grabarr/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Poll continuously, running a cycle per instance on its interval",
	RunE:  runServeCmd,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServeCmd(cmd *cobra.Command, args []string) error {
	a, err := setup(configPath, instanceName)
	if err != nil {
		return err
	}
	defer a.close()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	for _, r := range a.runners {
		g.Go(func() error {
			a.runLoop(ctx, r)
			return nil
		})
	}

	a.log.Info("grabarr started", "instances", len(a.runners))
	_ = g.Wait()
	a.log.Info("grabarr stopped")
	return nil
}

// runLoop runs cycles for one instance until the context is cancelled.
// Each instance gets its own goroutine, so only one cycle per instance
// is ever in flight. Cycle errors are logged, never fatal.
func (a *app) runLoop(ctx context.Context, r *instanceRunner) {
	interval := store.ClampInterval(r.interval)
	log := a.log.With("instance", r.name)
	log.Info("loop started", "interval", interval.String())

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	a.runOnce(ctx, r, log)
	for {
		select {
		case <-ctx.Done():
			log.Info("loop stopped")
			return
		case <-ticker.C:
			a.runOnce(ctx, r, log)
		}
	}
}

func (a *app) runOnce(ctx context.Context, r *instanceRunner, log *slog.Logger) {
	summary, err := r.engine.RunCycle(ctx, r.name, r.typ)
	if err != nil {
		log.Error("cycle failed", "error", err)
		return
	}
	log.Info("cycle complete",
		"processed", summary.Processed,
		"grabbed", summary.Grabbed,
		"skipped", summary.Skipped,
	)
}
