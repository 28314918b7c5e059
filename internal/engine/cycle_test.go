package engine_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vmunix/grabarr/internal/engine"
	"github.com/vmunix/grabarr/internal/engine/mocks"
	"github.com/vmunix/grabarr/internal/library"
	"github.com/vmunix/grabarr/internal/profile"
	"github.com/vmunix/grabarr/internal/store"
	"github.com/vmunix/grabarr/pkg/release"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func setupTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func saveProfiles(t *testing.T, s *store.Store, instance string, profiles []profile.Profile) {
	t.Helper()
	require.NoError(t, s.Save(context.Background(), "quality_profiles", instance, profiles))
}

func defaultHDProfile() []profile.Profile {
	return []profile.Profile{{
		Name:            "HD",
		Default:         true,
		UpgradesAllowed: true,
		Qualities: []profile.Quality{
			{ID: 1, Name: "1080p WEB", Enabled: true},
		},
	}}
}

func TestRunCycle_EndToEnd(t *testing.T) {
	ctrl := gomock.NewController(t)
	s := setupTestStore(t)
	saveProfiles(t, s, "main", defaultHDProfile())

	releases := []release.Release{{
		Title: "Movie.Title.2020.1080p.WEB-DL",
		GUID:  "abc",
		Size:  4_000_000_000,
	}}
	entries := []library.Entry{{
		Title:     "Movie Title",
		Year:      2020,
		Monitored: true,
		Runtime:   90,
	}}

	fetcher := mocks.NewMockFetcher(ctrl)
	collection := mocks.NewMockCollectionSource(ctrl)
	grabber := mocks.NewMockGrabber(ctrl)

	fetcher.EXPECT().Fetch(gomock.Any(), "main", library.TypeMovie).Return(releases, nil)
	collection.EXPECT().Entries(gomock.Any(), "main", library.TypeMovie).Return(entries, nil)
	grabber.EXPECT().Grab(gomock.Any(), gomock.Any()).Return(nil)

	eng := engine.New(s, fetcher, collection, grabber, 30*time.Minute, testLogger())
	summary, err := eng.RunCycle(context.Background(), "main", library.TypeMovie)

	require.NoError(t, err)
	assert.Equal(t, 1, summary.Processed)
	assert.Equal(t, 1, summary.Grabbed)
	assert.Equal(t, 0, summary.Skipped)

	// Sync status was recorded.
	status, ok, err := s.SyncStatusFor(context.Background(), "main", library.TypeMovie)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, status.NextSyncTime.After(status.LastSyncTime))
}

func TestRunCycle_DedupSuppressesSecondCycle(t *testing.T) {
	ctrl := gomock.NewController(t)
	s := setupTestStore(t)
	saveProfiles(t, s, "main", defaultHDProfile())

	releases := []release.Release{{
		Title: "Movie.Title.2020.1080p.WEB-DL",
		GUID:  "abc",
		Size:  4_000_000_000,
	}}
	entries := []library.Entry{{Title: "Movie Title", Year: 2020, Monitored: true}}

	fetcher := mocks.NewMockFetcher(ctrl)
	collection := mocks.NewMockCollectionSource(ctrl)
	grabber := mocks.NewMockGrabber(ctrl)

	// Both cycles fetch the same feed; only the first evaluates anything.
	fetcher.EXPECT().Fetch(gomock.Any(), "main", library.TypeMovie).Return(releases, nil).Times(2)
	collection.EXPECT().Entries(gomock.Any(), "main", library.TypeMovie).Return(entries, nil)
	grabber.EXPECT().Grab(gomock.Any(), gomock.Any()).Return(nil)

	eng := engine.New(s, fetcher, collection, grabber, 30*time.Minute, testLogger())

	first, err := eng.RunCycle(context.Background(), "main", library.TypeMovie)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Grabbed)

	second, err := eng.RunCycle(context.Background(), "main", library.TypeMovie)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Processed, "GUID abc is inside the dedup window")
	assert.Equal(t, 0, second.Grabbed)
}

func TestRunCycle_RejectedReleasesStillRecorded(t *testing.T) {
	ctrl := gomock.NewController(t)
	s := setupTestStore(t)
	saveProfiles(t, s, "main", defaultHDProfile())

	// 480p never matches the profile's 1080p quality, so nothing is
	// grabbed, but the GUID must still enter the dedup store.
	releases := []release.Release{{
		Title: "Movie.Title.2020.480p.DVDRip",
		GUID:  "rejected",
	}}
	entries := []library.Entry{{Title: "Movie Title", Year: 2020, Monitored: true}}

	fetcher := mocks.NewMockFetcher(ctrl)
	collection := mocks.NewMockCollectionSource(ctrl)
	grabber := mocks.NewMockGrabber(ctrl)

	fetcher.EXPECT().Fetch(gomock.Any(), gomock.Any(), gomock.Any()).Return(releases, nil).Times(2)
	collection.EXPECT().Entries(gomock.Any(), gomock.Any(), gomock.Any()).Return(entries, nil)

	eng := engine.New(s, fetcher, collection, grabber, 30*time.Minute, testLogger())

	first, err := eng.RunCycle(context.Background(), "main", library.TypeMovie)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Processed)
	assert.Equal(t, 0, first.Grabbed)

	second, err := eng.RunCycle(context.Background(), "main", library.TypeMovie)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Processed, "rejected GUIDs are marked processed too")
}

func TestRunCycle_AtMostOneGrabPerEntry(t *testing.T) {
	ctrl := gomock.NewController(t)
	s := setupTestStore(t)
	saveProfiles(t, s, "main", defaultHDProfile())

	releases := []release.Release{
		{Title: "Movie.Title.2020.1080p.WEB-DL.x264-AAA", GUID: "r1"},
		{Title: "Movie.Title.2020.1080p.WEB-DL.x264-BBB", GUID: "r2"},
		{Title: "Movie.Title.2020.1080p.WEB-DL.x264-CCC", GUID: "r3"},
	}
	entries := []library.Entry{{Title: "Movie Title", Year: 2020, Monitored: true}}

	fetcher := mocks.NewMockFetcher(ctrl)
	collection := mocks.NewMockCollectionSource(ctrl)
	grabber := mocks.NewMockGrabber(ctrl)

	fetcher.EXPECT().Fetch(gomock.Any(), gomock.Any(), gomock.Any()).Return(releases, nil)
	collection.EXPECT().Entries(gomock.Any(), gomock.Any(), gomock.Any()).Return(entries, nil)
	grabber.EXPECT().Grab(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	eng := engine.New(s, fetcher, collection, grabber, 30*time.Minute, testLogger())
	summary, err := eng.RunCycle(context.Background(), "main", library.TypeMovie)

	require.NoError(t, err)
	assert.Equal(t, 3, summary.Processed)
	assert.Equal(t, 1, summary.Grabbed)
	assert.Equal(t, 2, summary.Skipped)
}

func TestRunCycle_GrabFailureIsNonFatal(t *testing.T) {
	ctrl := gomock.NewController(t)
	s := setupTestStore(t)
	saveProfiles(t, s, "main", defaultHDProfile())

	releases := []release.Release{{Title: "Movie.Title.2020.1080p.WEB-DL", GUID: "abc"}}
	entries := []library.Entry{{Title: "Movie Title", Year: 2020, Monitored: true}}

	fetcher := mocks.NewMockFetcher(ctrl)
	collection := mocks.NewMockCollectionSource(ctrl)
	grabber := mocks.NewMockGrabber(ctrl)

	fetcher.EXPECT().Fetch(gomock.Any(), gomock.Any(), gomock.Any()).Return(releases, nil)
	collection.EXPECT().Entries(gomock.Any(), gomock.Any(), gomock.Any()).Return(entries, nil)
	grabber.EXPECT().Grab(gomock.Any(), gomock.Any()).Return(errors.New("client unavailable"))

	eng := engine.New(s, fetcher, collection, grabber, 30*time.Minute, testLogger())
	summary, err := eng.RunCycle(context.Background(), "main", library.TypeMovie)

	require.NoError(t, err, "a failed grab does not fail the cycle")
	assert.Equal(t, 0, summary.Grabbed)
	assert.Equal(t, 1, summary.Skipped)
}

func TestRunCycle_FetchErrorStillWritesSyncStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	s := setupTestStore(t)

	fetcher := mocks.NewMockFetcher(ctrl)
	collection := mocks.NewMockCollectionSource(ctrl)
	grabber := mocks.NewMockGrabber(ctrl)

	fetcher.EXPECT().Fetch(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("indexer down"))

	eng := engine.New(s, fetcher, collection, grabber, 30*time.Minute, testLogger())
	_, err := eng.RunCycle(context.Background(), "main", library.TypeMovie)
	require.Error(t, err)

	_, ok, statusErr := s.SyncStatusFor(context.Background(), "main", library.TypeMovie)
	require.NoError(t, statusErr)
	assert.True(t, ok, "sync status is written even when the cycle fails")
}

func TestRunCycle_NoProfilesUsesTemplate(t *testing.T) {
	ctrl := gomock.NewController(t)
	s := setupTestStore(t)

	// No profiles stored at all: the built-in template accepts anything.
	releases := []release.Release{{Title: "Movie.Title.2020.480p.DVDRip", GUID: "abc"}}
	entries := []library.Entry{{Title: "Movie Title", Year: 2020, Monitored: true}}

	fetcher := mocks.NewMockFetcher(ctrl)
	collection := mocks.NewMockCollectionSource(ctrl)
	grabber := mocks.NewMockGrabber(ctrl)

	fetcher.EXPECT().Fetch(gomock.Any(), gomock.Any(), gomock.Any()).Return(releases, nil)
	collection.EXPECT().Entries(gomock.Any(), gomock.Any(), gomock.Any()).Return(entries, nil)
	grabber.EXPECT().Grab(gomock.Any(), gomock.Any()).Return(nil)

	eng := engine.New(s, fetcher, collection, grabber, 30*time.Minute, testLogger())
	summary, err := eng.RunCycle(context.Background(), "main", library.TypeMovie)

	require.NoError(t, err)
	assert.Equal(t, 1, summary.Grabbed)
}
