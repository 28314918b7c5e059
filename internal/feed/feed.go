// Package feed polls configured indexers and merges their recent releases
// into one batch for the decision engine.
package feed

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vmunix/grabarr/internal/library"
	"github.com/vmunix/grabarr/pkg/newznab"
	"github.com/vmunix/grabarr/pkg/release"
)

// ErrNoIndexers is returned when an instance has no indexers configured.
var ErrNoIndexers = errors.New("no indexers configured")

// Pool polls multiple indexers in parallel. A failing indexer is logged
// and skipped; the cycle proceeds with whatever the others returned.
type Pool struct {
	clients []*newznab.Client
	log     *slog.Logger
}

// NewPool creates a pool over the given indexer clients.
func NewPool(clients []*newznab.Client, log *slog.Logger) *Pool {
	if log == nil {
		log = slog.Default()
	}
	return &Pool{clients: clients, log: log.With("component", "feed")}
}

// Fetch polls every indexer's recent-release feed and merges the results.
// It implements the engine's Fetcher contract.
func (p *Pool) Fetch(ctx context.Context, instance string, typ library.ManagedType) ([]release.Release, error) {
	if len(p.clients) == 0 {
		return nil, ErrNoIndexers
	}

	categories := newznab.MovieCategories
	if typ == library.TypeSeries {
		categories = newznab.SeriesCategories
	}

	start := time.Now()
	var (
		mu       sync.Mutex
		releases []release.Release
		failed   int
	)

	g, ctx := errgroup.WithContext(ctx)
	for _, client := range p.clients {
		g.Go(func() error {
			items, err := client.Recent(ctx, categories)
			if err != nil {
				p.log.Warn("indexer poll failed", "indexer", client.Name(), "error", err)
				mu.Lock()
				failed++
				mu.Unlock()
				return nil // keep polling the rest
			}

			mu.Lock()
			for _, item := range items {
				releases = append(releases, release.Release{
					Title:       item.Title,
					GUID:        item.GUID,
					ExternalID:  item.ExternalID,
					Size:        item.Size,
					Season:      item.Season,
					Episode:     item.Episode,
					DownloadURL: item.DownloadURL,
					Indexer:     client.Name(),
					Priority:    client.Priority(),
				})
			}
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// All indexers down is a cycle failure; partial results are not.
	if failed == len(p.clients) {
		return nil, errors.New("all indexers failed")
	}

	p.log.Debug("feed poll merged", "instance", instance, "type", string(typ),
		"indexers", len(p.clients), "failed", failed, "releases", len(releases),
		"duration_ms", time.Since(start).Milliseconds())
	return releases, nil
}
