package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/vmunix/grabarr/internal/config"
	"github.com/vmunix/grabarr/internal/engine"
	"github.com/vmunix/grabarr/internal/feed"
	"github.com/vmunix/grabarr/internal/grab"
	"github.com/vmunix/grabarr/internal/library"
	"github.com/vmunix/grabarr/internal/store"
	"github.com/vmunix/grabarr/pkg/newznab"
)

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// instanceRunner binds one configured instance to its engine and cadence.
type instanceRunner struct {
	name     string
	typ      library.ManagedType
	interval time.Duration
	engine   *engine.Engine
}

// app holds everything shared across commands: the open blob store and
// one runner per configured instance.
type app struct {
	store   *store.Store
	runners []*instanceRunner
	log     *slog.Logger
}

func (a *app) close() {
	if a.store != nil {
		_ = a.store.Close()
	}
}

// setup loads the config, opens the store, and wires an engine for each
// instance. When onlyInstance is non-empty, other instances are skipped.
func setup(configPath, onlyInstance string) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}))

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	st, err := store.Open(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	a := &app{store: st, log: logger}

	for _, inst := range cfg.Instances {
		if onlyInstance != "" && inst.Name != onlyInstance {
			continue
		}

		var clients []*newznab.Client
		for _, idx := range inst.Indexers {
			clients = append(clients, newznab.NewClient(
				idx.Name, idx.URL, idx.APIKey, idx.Priority,
				logger.With("component", "newznab", "indexer", idx.Name),
			))
		}
		pool := feed.NewPool(clients, logger.With("component", "feed", "instance", inst.Name))

		var grabber engine.Grabber
		if inst.SABnzbd != nil {
			grabber = grab.NewSABnzbd(inst.SABnzbd.URL, inst.SABnzbd.APIKey, inst.SABnzbd.Category,
				logger.With("instance", inst.Name))
		} else {
			logger.Warn("no download client configured, grabs will be logged only",
				"instance", inst.Name)
			grabber = grab.NewDryRun(logger.With("instance", inst.Name))
		}

		eng := engine.New(st, pool, store.NewCollectionStore(st), grabber,
			inst.SyncInterval(), logger.With("component", "engine"))

		a.runners = append(a.runners, &instanceRunner{
			name:     inst.Name,
			typ:      inst.Type,
			interval: inst.SyncInterval(),
			engine:   eng,
		})
	}

	if len(a.runners) == 0 {
		a.close()
		if onlyInstance != "" {
			return nil, fmt.Errorf("no instance named %q in config", onlyInstance)
		}
		return nil, fmt.Errorf("no instances configured")
	}
	return a, nil
}
