// Package release provides the release type and title normalization helpers
// used when linking feed results to collection entries.
package release

// Release is a candidate content item discovered on an indexer feed.
// Releases are read-only to the decision engine and live for one cycle.
type Release struct {
	Title       string
	GUID        string // opaque, stable per release; dedup key
	ExternalID  int64  // numeric id for direct collection linkage, 0 = absent
	Size        int64  // bytes
	Season      int    // TV only, 0 = absent
	Episode     int    // TV only, 0 = absent
	DownloadURL string
	Indexer     string
	Priority    int // indexer priority, lower = preferred
}
