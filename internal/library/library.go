// Package library defines the managed collection types the engine reads a
// snapshot of each cycle. The collection itself is owned by an external
// store; the engine never mutates entries.
package library

import (
	"strconv"

	"github.com/vmunix/grabarr/pkg/release"
)

// ManagedType distinguishes movie instances from series instances.
type ManagedType string

const (
	TypeMovie  ManagedType = "movie"
	TypeSeries ManagedType = "series"
)

// Default runtimes in minutes, used when an entry carries none.
const (
	DefaultMovieRuntime   = 90
	DefaultEpisodeRuntime = 45
)

// Entry is a single item of the user's managed collection: a movie, or a
// series the engine hunts episodes for.
type Entry struct {
	Title          string
	Year           int
	ExternalID     int64 // TMDB/TVDB style numeric id, 0 = absent
	Monitored      bool
	HasFile        bool
	QualityProfile string // profile name, blank = instance default
	Runtime        int    // minutes, 0 = unknown
}

// RuntimeOrDefault returns the entry's runtime, falling back to the
// per-type default when unset.
func (e Entry) RuntimeOrDefault(t ManagedType) int {
	if e.Runtime > 0 {
		return e.Runtime
	}
	if t == TypeSeries {
		return DefaultEpisodeRuntime
	}
	return DefaultMovieRuntime
}

// Key identifies an entry for the per-cycle at-most-one-grab set. The
// external id is used when present, otherwise the normalized title.
func (e Entry) Key() string {
	if e.ExternalID != 0 {
		return "id:" + strconv.FormatInt(e.ExternalID, 10)
	}
	return "title:" + release.Normalize(e.Title)
}
