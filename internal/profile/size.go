package profile

import (
	"context"
	"math"
	"strings"

	"github.com/vmunix/grabarr/internal/store"
)

// SizeLimit is a per-quality size band, expressed in megabytes per minute
// of runtime.
type SizeLimit struct {
	Min       float64 `json:"min"`
	Preferred float64 `json:"preferred"`
	Max       float64 `json:"max"`
}

// defaultSizeLimit is used when a quality has no configured band.
var defaultSizeLimit = SizeLimit{Min: 0, Preferred: 0, Max: 400}

// neutralPreference is returned when a release's size or the entry's
// runtime is unknown; unknown size never blocks a grab.
const neutralPreference = 50

// SizeLimits maps quality names to their bands.
type SizeLimits map[string]SizeLimit

// LoadSizeLimits reads the instance's size table from the blob store.
// Absent or malformed configuration yields an empty table, which falls
// back to the default band for every quality.
func LoadSizeLimits(ctx context.Context, s *store.Store, instance string) (SizeLimits, error) {
	var limits SizeLimits
	if _, err := s.GetJSON(ctx, "size_limits", instance, &limits); err != nil {
		return nil, err
	}
	if limits == nil {
		limits = SizeLimits{}
	}
	return limits, nil
}

// For returns the band for a quality name, case-insensitively, falling
// back to the default band.
func (l SizeLimits) For(qualityName string) SizeLimit {
	if limit, ok := l[qualityName]; ok {
		return limit
	}
	want := strings.ToLower(qualityName)
	for name, limit := range l {
		if strings.ToLower(name) == want {
			return limit
		}
	}
	return defaultSizeLimit
}

// EvaluateSize checks a release's size against the quality's band and
// scores how close it lands to the preferred point.
//
// The returned preference is 0-100; 100 means exactly preferred. When the
// band has no gradient (max <= min, tolerated from misordered config) the
// preference is a flat 100. When size or runtime is unknown the release
// passes with a neutral preference. A failing release returns (false, 0).
func EvaluateSize(sizeBytes int64, qualityName string, runtimeMinutes int, limits SizeLimits) (bool, float64) {
	if sizeBytes <= 0 || runtimeMinutes <= 0 {
		return true, neutralPreference
	}

	mbPerMin := float64(sizeBytes) / (1024 * 1024) / float64(runtimeMinutes)
	limit := limits.For(qualityName)

	if mbPerMin < limit.Min || mbPerMin > limit.Max {
		return false, 0
	}
	if limit.Max <= limit.Min {
		return true, 100
	}

	pref := 100 - 100*math.Abs(mbPerMin-limit.Preferred)/(limit.Max-limit.Min)
	if pref < 0 {
		pref = 0
	}
	if pref > 100 {
		pref = 100
	}
	return true, pref
}
