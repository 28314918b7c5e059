package release

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	yearRegex = regexp.MustCompile(`\b(19\d{2}|20\d{2})\b`)

	// seasonEpisodeRegex matches S01E02 and 1x02 style tokens.
	seasonEpisodeRegex = regexp.MustCompile(`(?i)\b(?:s(\d{1,2})e(\d{1,3})|(\d{1,2})x(\d{1,3}))\b`)
)

// Normalize lowercases a title, folds accents, replaces punctuation with
// spaces, and collapses whitespace. Empty input yields an empty string.
func Normalize(title string) string {
	s := removeAccents(strings.ToLower(title))

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// ExtractYear returns the first 4-digit year (1900-2099) found in a title,
// or 0 if none is present.
func ExtractYear(title string) int {
	m := yearRegex.FindString(title)
	if m == "" {
		return 0
	}
	year, err := strconv.Atoi(m)
	if err != nil {
		return 0
	}
	return year
}

// ExtractSeasonEpisode returns the first season/episode token found in a
// title (S01E02 or 1x02 style), or (0, 0) if none is present.
func ExtractSeasonEpisode(title string) (season, episode int) {
	m := seasonEpisodeRegex.FindStringSubmatch(title)
	if m == nil {
		return 0, 0
	}
	if m[1] != "" {
		season, _ = strconv.Atoi(m[1])
		episode, _ = strconv.Atoi(m[2])
	} else {
		season, _ = strconv.Atoi(m[3])
		episode, _ = strconv.Atoi(m[4])
	}
	return season, episode
}

func removeAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, s)
	return result
}
