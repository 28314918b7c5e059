package main

import (
	"errors"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var errCycleFailed = errors.New("one or more cycles failed")

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one decision cycle and exit",
	RunE:  runRunCmd,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runRunCmd(cmd *cobra.Command, args []string) error {
	a, err := setup(configPath, instanceName)
	if err != nil {
		return err
	}
	defer a.close()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var failed bool
	for _, r := range a.runners {
		summary, err := r.engine.RunCycle(ctx, r.name, r.typ)
		if err != nil {
			a.log.Error("cycle failed", "instance", r.name, "error", err)
			failed = true
			continue
		}
		a.log.Info("cycle complete",
			"instance", r.name,
			"processed", summary.Processed,
			"grabbed", summary.Grabbed,
			"skipped", summary.Skipped,
		)
	}
	if failed {
		return errCycleFailed
	}
	return nil
}
