package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmunix/grabarr/internal/profile"
	"github.com/vmunix/grabarr/pkg/release"
)

func webScorer() *profile.FormatScorer {
	return profile.NewFormatScorer([]profile.CustomFormat{
		{Name: "WEB", Score: 20, Specifications: []profile.Specification{
			{Pattern: `WEB-?DL`, Required: true},
		}},
		{Name: "Remux", Score: 50, Specifications: []profile.Specification{
			{Pattern: "REMUX", Required: true},
		}},
	})
}

func TestSelectBest_HighestFormatScoreWins(t *testing.T) {
	releases := []release.Release{
		{Title: "Movie.2020.1080p.WEB-DL.x264", GUID: "web"},
		{Title: "Movie.2020.1080p.REMUX.Bluray", GUID: "remux"},
	}
	prof := profile.Profile{Qualities: []profile.Quality{
		{Name: "1080p", Enabled: true},
	}}

	winner, score, breakdown := SelectBest(releases, prof, 90, webScorer(), nil)
	require.NotNil(t, winner)
	assert.Equal(t, "remux", winner.GUID)
	assert.Equal(t, 50, score)
	assert.Equal(t, "Remux +50", breakdown)
}

func TestSelectBest_QualityGateExcludes(t *testing.T) {
	releases := []release.Release{
		{Title: "Movie.2020.720p.WEB-DL", GUID: "sd"},
	}
	prof := profile.Profile{Qualities: []profile.Quality{
		{Name: "1080p", Enabled: true},
	}}

	winner, score, breakdown := SelectBest(releases, prof, 90, webScorer(), nil)
	assert.Nil(t, winner)
	assert.Equal(t, 0, score)
	assert.Equal(t, "", breakdown)
}

func TestSelectBest_SizeFailureExcludesEntirely(t *testing.T) {
	// The release matches the first enabled quality, whose band it fails;
	// it is not retried against the second quality's band.
	releases := []release.Release{
		{Title: "Movie.2020.1080p.WEB-DL", GUID: "big", Size: 100e9},
	}
	prof := profile.Profile{Qualities: []profile.Quality{
		{Name: "1080p WEB", Enabled: true},
		{Name: "1080p Bluray", Enabled: true},
	}}
	limits := profile.SizeLimits{
		"1080p WEB":    {Min: 0, Preferred: 30, Max: 60},
		"1080p Bluray": {Min: 0, Preferred: 1000, Max: 2000},
	}

	winner, _, _ := SelectBest(releases, prof, 90, webScorer(), limits)
	assert.Nil(t, winner)
}

func TestSelectBest_NoQualityGate(t *testing.T) {
	releases := []release.Release{
		{Title: "Movie.2020.480p.DVDRip", GUID: "dvd"},
	}

	winner, _, _ := SelectBest(releases, profile.Profile{}, 90, webScorer(), nil)
	require.NotNil(t, winner)
	assert.Equal(t, "dvd", winner.GUID)
}

func TestSelectBest_TieBreakByTitle(t *testing.T) {
	prof := profile.Profile{}
	releases := []release.Release{
		{Title: "B.Release.2020.1080p", GUID: "b"},
		{Title: "A.Release.2020.1080p", GUID: "a"},
	}

	for range 10 {
		winner, _, _ := SelectBest(releases, prof, 90, noFormats(), nil)
		require.NotNil(t, winner)
		assert.Equal(t, "a", winner.GUID, "lexicographic tie-break must be stable across runs")
	}
}

func TestSelectBest_PreferenceBreaksFormatTies(t *testing.T) {
	limits := profile.SizeLimits{"1080p": {Min: 0, Preferred: 50, Max: 100}}
	releases := []release.Release{
		// 90 min: 30 MB/min -> preference 80
		{Title: "Movie.2020.1080p.OK", GUID: "ok", Size: int64(30 * 90 * 1024 * 1024)},
		// 50 MB/min -> preference 100
		{Title: "Movie.2020.1080p.Perfect", GUID: "perfect", Size: int64(50 * 90 * 1024 * 1024)},
	}
	prof := profile.Profile{Qualities: []profile.Quality{{Name: "1080p", Enabled: true}}}

	winner, _, _ := SelectBest(releases, prof, 90, noFormats(), limits)
	require.NotNil(t, winner)
	assert.Equal(t, "perfect", winner.GUID)
}

func TestSelectAcrossIndexers_PriorityOutranksScore(t *testing.T) {
	releases := []release.Release{
		{Title: "Movie.2020.1080p.REMUX", GUID: "high-score", Indexer: "slow", Priority: 10},
		{Title: "Movie.2020.1080p.WEB-DL", GUID: "preferred-indexer", Indexer: "fast", Priority: 1},
	}

	winner, score, _ := SelectAcrossIndexers(releases, profile.Profile{}, 90, webScorer(), nil)
	require.NotNil(t, winner)
	assert.Equal(t, "preferred-indexer", winner.GUID)
	assert.Equal(t, 20, score)
}

func TestSelectAcrossIndexers_ScoreBreaksPriorityTies(t *testing.T) {
	releases := []release.Release{
		{Title: "Movie.2020.1080p.WEB-DL", GUID: "web", Priority: 1},
		{Title: "Movie.2020.1080p.REMUX", GUID: "remux", Priority: 1},
	}

	winner, _, _ := SelectAcrossIndexers(releases, profile.Profile{}, 90, webScorer(), nil)
	require.NotNil(t, winner)
	assert.Equal(t, "remux", winner.GUID)
}
