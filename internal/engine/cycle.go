package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/vmunix/grabarr/internal/library"
	"github.com/vmunix/grabarr/internal/profile"
	"github.com/vmunix/grabarr/internal/store"
	"github.com/vmunix/grabarr/pkg/release"
)

// Fetcher supplies the releases discovered on indexer feeds for one cycle.
type Fetcher interface {
	Fetch(ctx context.Context, instance string, typ library.ManagedType) ([]release.Release, error)
}

// CollectionSource supplies the collection snapshot for one instance.
type CollectionSource interface {
	Entries(ctx context.Context, instance string, typ library.ManagedType) ([]library.Entry, error)
}

// Grabber submits a chosen release to a download client.
type Grabber interface {
	Grab(ctx context.Context, rel release.Release) error
}

// Summary reports what one cycle did.
type Summary struct {
	Processed int // newly considered releases (post-dedup)
	Grabbed   int
	Skipped   int
}

// Engine runs the fetch-match-evaluate-rank-grab-record cycle for one
// managed instance. It is synchronous and holds no locks; the caller
// ensures only one cycle per instance runs at a time.
type Engine struct {
	store      *store.Store
	processed  *store.ProcessedStore
	fetcher    Fetcher
	collection CollectionSource
	grabber    Grabber
	interval   time.Duration
	log        *slog.Logger
}

// New creates an engine over its collaborators. interval is the configured
// sync interval used for the next-sync status record.
func New(s *store.Store, fetcher Fetcher, collection CollectionSource, grabber Grabber,
	interval time.Duration, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.Default()
	}
	return &Engine{
		store:      s,
		processed:  store.NewProcessedStore(s),
		fetcher:    fetcher,
		collection: collection,
		grabber:    grabber,
		interval:   interval,
		log:        log,
	}
}

// rankedCandidate is an approved pair awaiting grab, ordered by score.
type rankedCandidate struct {
	pair     Pair
	decision Decision
}

// RunCycle executes one full decision cycle for an instance and managed
// type. All considered release GUIDs are recorded in the dedup store
// whether they were grabbed, rejected, or unmatched; the sync status
// record is written even when the cycle fails partway.
func (e *Engine) RunCycle(ctx context.Context, instance string, typ library.ManagedType) (Summary, error) {
	log := e.log.With("instance", instance, "type", string(typ))
	start := time.Now()
	var summary Summary

	// The last/next sync record is written regardless of outcome so other
	// surfaces always see when this type was last attempted.
	defer func() {
		if err := e.store.SaveSyncStatus(ctx, instance, typ, e.interval); err != nil {
			log.Error("sync status write failed", "error", err)
		}
	}()

	active, seen, err := e.processed.Active(ctx, instance, typ)
	if err != nil {
		return summary, fmt.Errorf("read processed ids: %w", err)
	}

	fetched, err := e.fetcher.Fetch(ctx, instance, typ)
	if err != nil {
		return summary, fmt.Errorf("fetch releases: %w", err)
	}

	// Dedup gate: anything considered inside the TTL window is skipped
	// before matching. Releases without a GUID cannot be deduplicated and
	// always pass through.
	fresh := make([]release.Release, 0, len(fetched))
	for _, rel := range fetched {
		if rel.GUID != "" {
			if _, dup := active[rel.GUID]; dup {
				continue
			}
		}
		fresh = append(fresh, rel)
	}
	summary.Processed = len(fresh)
	log.Debug("releases fetched", "total", len(fetched), "new", len(fresh))

	if len(fresh) > 0 {
		if err := e.evaluateAndGrab(ctx, instance, typ, fresh, &summary, log); err != nil {
			return summary, err
		}
	}

	// Every fresh release is marked processed, grabbed or not, so the next
	// cycle does not re-evaluate it.
	now := time.Now()
	for _, rel := range fresh {
		if rel.GUID != "" {
			seen[rel.GUID] = now
		}
	}
	if err := e.processed.Record(ctx, instance, typ, seen); err != nil {
		return summary, fmt.Errorf("record processed ids: %w", err)
	}

	log.Info("cycle complete", "processed", summary.Processed, "grabbed", summary.Grabbed,
		"skipped", summary.Skipped, "duration_ms", time.Since(start).Milliseconds())
	return summary, nil
}

func (e *Engine) evaluateAndGrab(ctx context.Context, instance string, typ library.ManagedType,
	fresh []release.Release, summary *Summary, log *slog.Logger) error {

	entries, err := e.collection.Entries(ctx, instance, typ)
	if err != nil {
		return fmt.Errorf("collection snapshot: %w", err)
	}

	resolver, err := profile.LoadResolver(ctx, e.store, instance)
	if err != nil {
		return fmt.Errorf("load profiles: %w", err)
	}
	formats, err := profile.LoadCustomFormats(ctx, e.store, instance)
	if err != nil {
		return fmt.Errorf("load custom formats: %w", err)
	}
	limits, err := profile.LoadSizeLimits(ctx, e.store, instance)
	if err != nil {
		return fmt.Errorf("load size limits: %w", err)
	}
	scorer := profile.NewFormatScorer(formats)

	pairs := Match(fresh, entries, typ)
	log.Debug("releases matched", "pairs", len(pairs), "unmatched", len(fresh)-len(pairs))

	var ranked []rankedCandidate
	for _, pair := range pairs {
		prof := resolver.Resolve(pair.Entry.QualityProfile)
		decision := Evaluate(pair.Release, pair.Entry, prof, scorer, limits, typ)
		if !decision.Approved {
			log.Debug("release rejected", "release", pair.Release.Title,
				"entry", pair.Entry.Title, "reason", decision.Reason, "score", decision.Score)
			continue
		}
		log.Debug("release approved", "release", pair.Release.Title, "entry", pair.Entry.Title,
			"reason", decision.Reason, "score", decision.Score,
			"confidence", pair.Confidence, "formats", decision.Breakdown)
		ranked = append(ranked, rankedCandidate{pair: pair, decision: decision})
	}

	// Grab in ranked order, best score first; input order breaks ties.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].decision.Score > ranked[j].decision.Score
	})

	grabbed := make(map[string]struct{})
	for _, cand := range ranked {
		key := cand.pair.Entry.Key()
		if _, done := grabbed[key]; done {
			summary.Skipped++
			continue
		}
		if err := e.grabber.Grab(ctx, cand.pair.Release); err != nil {
			// Non-fatal: the entry stays a candidate for the next cycle,
			// possibly with a different winning release.
			log.Warn("grab failed", "release", cand.pair.Release.Title,
				"entry", cand.pair.Entry.Title, "error", err)
			summary.Skipped++
			continue
		}
		grabbed[key] = struct{}{}
		summary.Grabbed++
		log.Info("release grabbed", "release", cand.pair.Release.Title,
			"entry", cand.pair.Entry.Title, "score", cand.decision.Score,
			"reason", cand.decision.Reason, "indexer", cand.pair.Release.Indexer)
	}
	return nil
}
