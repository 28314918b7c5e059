package engine

import (
	"fmt"
	"math"

	"github.com/vmunix/grabarr/internal/library"
	"github.com/vmunix/grabarr/internal/profile"
	"github.com/vmunix/grabarr/pkg/release"
)

// Rejection and approval reasons. Every decision carries one; there is no
// generic "failed" state.
const (
	ReasonNotMonitored     = "Not monitored"
	ReasonQualityMismatch  = "Quality not in profile"
	ReasonSizeOutsideLimit = "Size outside limits"
	ReasonUpgradesDisabled = "Upgrades disabled"
	ReasonUpgradeCandidate = "Upgrade candidate"
	ReasonMissingWanted    = "Missing/wanted"
)

// Decision is the outcome of evaluating one (release, entry) pair.
// Rejections are values, never errors.
type Decision struct {
	Approved  bool
	Reason    string
	Score     int    // custom-format total, plus size preference when approved
	Breakdown string // per-format contribution, "-" when none
}

// Evaluate runs the per-pair decision sequence: monitoring, quality gate,
// size band, format-score floor, upgrade policy. The first failing check
// is terminal and names itself in the decision reason.
func Evaluate(rel release.Release, entry library.Entry, prof profile.Profile,
	scorer *profile.FormatScorer, limits profile.SizeLimits, typ library.ManagedType) Decision {

	if !entry.Monitored {
		return Decision{Reason: ReasonNotMonitored, Breakdown: "-"}
	}

	qualityName, ok := firstMatchingQuality(rel.Title, prof)
	if !ok {
		return Decision{Reason: ReasonQualityMismatch, Breakdown: "-"}
	}

	pass, pref := profile.EvaluateSize(rel.Size, qualityName, entry.RuntimeOrDefault(typ), limits)
	if !pass {
		return Decision{Reason: ReasonSizeOutsideLimit, Breakdown: "-"}
	}

	cfScore, breakdown := scorer.Score(rel.Title)
	if cfScore < prof.MinFormatScore {
		return Decision{
			Reason:    fmt.Sprintf("CF score %d below minimum %d", cfScore, prof.MinFormatScore),
			Score:     cfScore,
			Breakdown: breakdown,
		}
	}

	if entry.HasFile && !prof.UpgradesAllowed {
		return Decision{Reason: ReasonUpgradesDisabled, Score: cfScore, Breakdown: breakdown}
	}

	reason := ReasonMissingWanted
	if entry.HasFile {
		reason = ReasonUpgradeCandidate
	}
	return Decision{
		Approved:  true,
		Reason:    reason,
		Score:     cfScore + int(math.Round(pref)),
		Breakdown: breakdown,
	}
}

// firstMatchingQuality returns the first enabled quality in stored order
// the release title is consistent with. A profile with no enabled
// qualities gates nothing and reports an empty quality name.
func firstMatchingQuality(title string, prof profile.Profile) (string, bool) {
	enabled := prof.EnabledQualities()
	if len(enabled) == 0 {
		return "", true
	}
	for _, q := range enabled {
		if profile.MatchesQuality(title, q.Name) {
			return q.Name, true
		}
	}
	return "", false
}
