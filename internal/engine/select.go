package engine

import (
	"sort"

	"github.com/vmunix/grabarr/internal/profile"
	"github.com/vmunix/grabarr/pkg/release"
)

// candidate is a release that survived the quality and size gates.
type candidate struct {
	release    release.Release
	cfScore    int
	preference float64
	breakdown  string
}

// SelectBest filters a batch of releases through the profile's quality
// gate and size band, scores the survivors, and picks one winner. The
// winner maximizes (custom-format score, size preference) lexicographically;
// remaining ties break on title ascending so repeated runs pick the same
// release. Returns (nil, 0, "") when nothing survives.
func SelectBest(releases []release.Release, prof profile.Profile, runtimeMinutes int,
	scorer *profile.FormatScorer, limits profile.SizeLimits) (*release.Release, int, string) {

	candidates := gatherCandidates(releases, prof, runtimeMinutes, scorer, limits)
	if len(candidates) == 0 {
		return nil, 0, ""
	}

	best := candidates[0]
	for _, c := range candidates[1:] {
		if betterCandidate(c, best) {
			best = c
		}
	}
	return &best.release, best.cfScore, best.breakdown
}

// SelectAcrossIndexers picks one winner from candidates gathered across
// several indexers. Indexer priority outranks score: candidates are
// ordered by (priority ascending, custom-format score descending, title
// ascending) and the first is taken.
func SelectAcrossIndexers(releases []release.Release, prof profile.Profile, runtimeMinutes int,
	scorer *profile.FormatScorer, limits profile.SizeLimits) (*release.Release, int, string) {

	candidates := gatherCandidates(releases, prof, runtimeMinutes, scorer, limits)
	if len(candidates) == 0 {
		return nil, 0, ""
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].release.Priority != candidates[j].release.Priority {
			return candidates[i].release.Priority < candidates[j].release.Priority
		}
		if candidates[i].cfScore != candidates[j].cfScore {
			return candidates[i].cfScore > candidates[j].cfScore
		}
		return candidates[i].release.Title < candidates[j].release.Title
	})

	best := candidates[0]
	return &best.release, best.cfScore, best.breakdown
}

func gatherCandidates(releases []release.Release, prof profile.Profile, runtimeMinutes int,
	scorer *profile.FormatScorer, limits profile.SizeLimits) []candidate {

	var candidates []candidate
	for _, rel := range releases {
		qualityName, ok := firstMatchingQuality(rel.Title, prof)
		if !ok {
			continue
		}
		// The size band of the first matching quality decides: a release
		// failing it is excluded, not retried against other qualities.
		pass, pref := profile.EvaluateSize(rel.Size, qualityName, runtimeMinutes, limits)
		if !pass {
			continue
		}
		score, breakdown := scorer.Score(rel.Title)
		candidates = append(candidates, candidate{
			release:    rel,
			cfScore:    score,
			preference: pref,
			breakdown:  breakdown,
		})
	}
	return candidates
}

// betterCandidate reports whether a beats b under the selection order.
func betterCandidate(a, b candidate) bool {
	if a.cfScore != b.cfScore {
		return a.cfScore > b.cfScore
	}
	if a.preference != b.preference {
		return a.preference > b.preference
	}
	return a.release.Title < b.release.Title
}
