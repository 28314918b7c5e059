package grab

import (
	"context"
	"log/slog"

	"github.com/vmunix/grabarr/pkg/release"
)

// DryRun logs grab decisions without submitting anything. It stands in
// for a real download client when none is configured.
type DryRun struct {
	log *slog.Logger
}

// NewDryRun creates a grabber that only logs.
func NewDryRun(log *slog.Logger) *DryRun {
	if log == nil {
		log = slog.Default()
	}
	return &DryRun{log: log.With("component", "dryrun")}
}

// Grab records what would have been submitted.
func (d *DryRun) Grab(_ context.Context, rel release.Release) error {
	d.log.Info("dry run grab",
		"title", rel.Title,
		"indexer", rel.Indexer,
		"size", rel.Size,
	)
	return nil
}
