package profile

import "strings"

// tokenRule ties a keyword a quality name may encode to the release-title
// tokens that satisfy it. Rules are checked in order; the first keyword the
// quality name encodes is the one enforced.
type tokenRule struct {
	encoded string
	tokens  []string
}

var resolutionRules = []tokenRule{
	{"2160", []string{"2160", "4k", "uhd"}},
	{"1080", []string{"1080"}},
	{"720", []string{"720"}},
	{"480", []string{"480"}},
}

var sourceRules = []tokenRule{
	{"remux", []string{"remux"}},
	{"bluray", []string{"bluray", "blu-ray", "blu ray", "bdrip", "brrip"}},
	{"web", []string{"web"}},
	{"hdtv", []string{"hdtv"}},
	{"sdtv", []string{"sdtv"}},
	{"dvd", []string{"dvd"}},
}

// MatchesQuality reports whether a release title is consistent with a
// named quality tier. The check is keyword presence only and intentionally
// permissive: a quality name encoding no recognizable resolution or source
// token matches everything. False positives are acceptable; silently
// dropping a real candidate is not.
func MatchesQuality(releaseTitle, qualityName string) bool {
	title := strings.ToLower(releaseTitle)
	quality := strings.ToLower(qualityName)

	for _, rule := range resolutionRules {
		if !strings.Contains(quality, rule.encoded) {
			continue
		}
		if !containsAny(title, rule.tokens) {
			return false
		}
		break
	}

	for _, rule := range sourceRules {
		if !strings.Contains(quality, rule.encoded) {
			continue
		}
		if !containsAny(title, rule.tokens) {
			return false
		}
		break
	}

	return true
}

func containsAny(s string, tokens []string) bool {
	for _, tok := range tokens {
		if strings.Contains(s, tok) {
			return true
		}
	}
	return false
}
