package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleProfiles() []Profile {
	return []Profile{
		{Name: "SD", Qualities: []Quality{{ID: 1, Name: "480p", Enabled: true}}},
		{Name: "HD - 1080p", Default: true, Qualities: []Quality{
			{ID: 2, Name: "1080p WEB", Enabled: true},
			{ID: 3, Name: "1080p Bluray", Enabled: true},
		}},
		{Name: "Ultra", Qualities: []Quality{{ID: 4, Name: "2160p", Enabled: true}}},
	}
}

func TestResolver_Resolve_ExactName(t *testing.T) {
	r := NewResolver(sampleProfiles())
	assert.Equal(t, "Ultra", r.Resolve("Ultra").Name)
}

func TestResolver_Resolve_CaseAndSuffixInsensitive(t *testing.T) {
	r := NewResolver(sampleProfiles())

	assert.Equal(t, "HD - 1080p", r.Resolve("hd - 1080p").Name)
	assert.Equal(t, "HD - 1080p", r.Resolve("HD - 1080p (Default)").Name)
}

func TestResolver_Resolve_BlankFallsBackToDefault(t *testing.T) {
	r := NewResolver(sampleProfiles())
	assert.Equal(t, "HD - 1080p", r.Resolve("").Name)
}

func TestResolver_Resolve_UnknownFallsBackToDefault(t *testing.T) {
	r := NewResolver(sampleProfiles())
	assert.Equal(t, "HD - 1080p", r.Resolve("No Such Profile").Name)
}

func TestResolver_Resolve_NoDefaultUsesFirst(t *testing.T) {
	profiles := sampleProfiles()
	profiles[1].Default = false
	r := NewResolver(profiles)

	assert.Equal(t, "SD", r.Resolve("").Name)
}

func TestResolver_Resolve_NoProfilesUsesTemplate(t *testing.T) {
	r := NewResolver(nil)

	got := r.Resolve("anything")
	assert.Equal(t, "Any", got.Name)
	assert.True(t, got.UpgradesAllowed)
	assert.Empty(t, got.EnabledQualities(), "template accepts any quality")
}

func TestProfile_EnabledQualities_Order(t *testing.T) {
	p := Profile{Qualities: []Quality{
		{Name: "2160p", Enabled: false},
		{Name: "1080p WEB", Enabled: true},
		{Name: "720p", Enabled: true},
	}}

	got := p.EnabledQualities()
	assert.Len(t, got, 2)
	assert.Equal(t, "1080p WEB", got[0].Name, "stored order is preserved")
}
