// Package profile holds the quality policy layer: quality profiles, custom
// format scoring rules, and per-quality size bands. Everything here is
// loaded once per cycle from the blob store and resolved with hard-coded
// fallbacks, so downstream decision code never sees a partial policy.
package profile

import (
	"context"
	"strings"

	"github.com/vmunix/grabarr/internal/store"
)

// Quality is one tier in a profile's ordered accept list.
type Quality struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Enabled bool   `json:"enabled"`
}

// Profile is a named quality policy.
type Profile struct {
	Name              string    `json:"name"`
	Default           bool      `json:"is_default"`
	Qualities         []Quality `json:"qualities"`
	MinFormatScore    int       `json:"min_custom_format_score"`
	UpgradesAllowed   bool      `json:"upgrades_allowed"`
	UpgradeUntil      string    `json:"upgrade_until_quality"`
	UpgradeUntilScore int       `json:"upgrade_until_custom_format_score"`
}

// EnabledQualities returns the enabled tiers in stored order. An empty
// result means the profile accepts any quality.
func (p Profile) EnabledQualities() []Quality {
	var enabled []Quality
	for _, q := range p.Qualities {
		if q.Enabled {
			enabled = append(enabled, q)
		}
	}
	return enabled
}

// TemplateProfile is materialized when an instance has no stored profiles
// at all. It accepts any quality and never blocks on format score.
func TemplateProfile() Profile {
	return Profile{
		Name:            "Any",
		Default:         true,
		UpgradesAllowed: true,
	}
}

// Resolver resolves profile names against an instance's stored profiles.
type Resolver struct {
	profiles []Profile
}

// NewResolver creates a resolver over an already-loaded profile list.
func NewResolver(profiles []Profile) *Resolver {
	return &Resolver{profiles: profiles}
}

// LoadResolver reads the instance's profiles from the blob store. Absent or
// malformed configuration yields a resolver with no stored profiles, which
// resolves everything to the built-in template.
func LoadResolver(ctx context.Context, s *store.Store, instance string) (*Resolver, error) {
	var profiles []Profile
	if _, err := s.GetJSON(ctx, "quality_profiles", instance, &profiles); err != nil {
		return nil, err
	}
	return NewResolver(profiles), nil
}

// Resolve maps a profile name to a fully-populated profile. A blank name
// resolves to the default-flagged profile, then the first stored profile,
// then the built-in template. An unknown name falls back the same way.
// Resolve never fails.
func (r *Resolver) Resolve(name string) Profile {
	if name = strings.TrimSpace(name); name != "" {
		want := canonicalName(name)
		for _, p := range r.profiles {
			if canonicalName(p.Name) == want {
				return p
			}
		}
	}

	for _, p := range r.profiles {
		if p.Default {
			return p
		}
	}
	if len(r.profiles) > 0 {
		return r.profiles[0]
	}
	return TemplateProfile()
}

// canonicalName lowercases and strips a trailing "(default)" marker so UI
// display names still match.
func canonicalName(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.TrimSuffix(s, "(default)")
	return strings.TrimSpace(s)
}
