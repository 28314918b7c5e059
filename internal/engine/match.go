// Package engine implements release evaluation and grab decisions: linking
// feed releases to collection entries, scoring them against quality
// profiles, and picking at most one winner per entry per cycle.
package engine

import (
	"strings"

	"github.com/hbollon/go-edlib"

	"github.com/vmunix/grabarr/internal/library"
	"github.com/vmunix/grabarr/pkg/release"
)

// Pair is a release linked to a collection entry. Season and Episode are
// populated for series pairs only.
type Pair struct {
	Release release.Release
	Entry   library.Entry
	Season  int
	Episode int

	// Confidence is the Jaro-Winkler similarity between the normalized
	// titles. Informational only: direct id matches report 1.0, and fuzzy
	// matches are accepted regardless of the value.
	Confidence float64
}

// titleIndexEntry caches the normalized form for the fuzzy pass.
type titleIndexEntry struct {
	norm  string
	entry library.Entry
}

// Match links releases to collection entries: by external id first, then
// by normalized-title substring with year tolerance. The fuzzy pass takes
// the first textual match in stored entry order, not the best one; that is
// a deliberate cheap pass, so overlapping titles resolve to whichever
// entry is stored first. Releases matching nothing are dropped.
func Match(releases []release.Release, entries []library.Entry, typ library.ManagedType) []Pair {
	byID := make(map[int64]library.Entry, len(entries))
	titleIndex := make([]titleIndexEntry, 0, len(entries))
	for _, e := range entries {
		if e.ExternalID != 0 {
			if _, dup := byID[e.ExternalID]; !dup {
				byID[e.ExternalID] = e
			}
		}
		if norm := release.Normalize(e.Title); norm != "" {
			titleIndex = append(titleIndex, titleIndexEntry{norm: norm, entry: e})
		}
	}

	var pairs []Pair
	for _, rel := range releases {
		if rel.ExternalID != 0 {
			if entry, ok := byID[rel.ExternalID]; ok {
				pairs = append(pairs, newPair(rel, entry, typ, 1.0))
				continue
			}
		}

		relNorm := release.Normalize(rel.Title)
		if relNorm == "" {
			continue
		}
		relYear := release.ExtractYear(rel.Title)

		for _, idx := range titleIndex {
			if !strings.Contains(relNorm, idx.norm) {
				continue
			}
			// A missing year on either side is compatible with anything.
			if relYear != 0 && idx.entry.Year != 0 && relYear != idx.entry.Year {
				continue
			}
			conf := float64(edlib.JaroWinklerSimilarity(relNorm, idx.norm))
			pairs = append(pairs, newPair(rel, idx.entry, typ, conf))
			break
		}
	}
	return pairs
}

func newPair(rel release.Release, entry library.Entry, typ library.ManagedType, conf float64) Pair {
	p := Pair{Release: rel, Entry: entry, Confidence: conf}
	if typ == library.TypeSeries {
		p.Season, p.Episode = rel.Season, rel.Episode
		if p.Season == 0 && p.Episode == 0 {
			p.Season, p.Episode = release.ExtractSeasonEpisode(rel.Title)
		}
	}
	return p
}
