package profile

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/vmunix/grabarr/internal/store"
)

// Specification is one pattern rule inside a custom format. Only required
// specifications participate in matching.
type Specification struct {
	Type     string `json:"type"` // "resolution" or free-form regex
	Pattern  string `json:"pattern"`
	Negate   bool   `json:"negate"`
	Required bool   `json:"required"`
}

// CustomFormat is a named scoring rule contributing signed points when it
// matches a release title.
type CustomFormat struct {
	Name           string          `json:"name"`
	Score          int             `json:"score"`
	Specifications []Specification `json:"specifications"`
}

// LoadCustomFormats reads the instance's custom formats from the blob
// store. Absent or malformed configuration yields no formats, which score
// zero. Never an error for business reasons.
func LoadCustomFormats(ctx context.Context, s *store.Store, instance string) ([]CustomFormat, error) {
	var formats []CustomFormat
	if _, err := s.GetJSON(ctx, "custom_formats", instance, &formats); err != nil {
		return nil, err
	}
	return formats, nil
}

// compiledSpec is a specification with its pattern compiled. Invalid
// patterns leave re nil, which makes the specification contribute nothing.
type compiledSpec struct {
	re     *regexp.Regexp
	negate bool
}

type compiledFormat struct {
	name  string
	score int
	specs []compiledSpec
}

// FormatScorer evaluates custom formats against release titles. Patterns
// are compiled once at construction, not per release.
type FormatScorer struct {
	formats []compiledFormat
}

// NewFormatScorer compiles the given formats. Malformed specifications are
// dropped silently; a format left with no participating specification
// never matches.
func NewFormatScorer(formats []CustomFormat) *FormatScorer {
	scorer := &FormatScorer{}
	for _, f := range formats {
		cf := compiledFormat{name: f.Name, score: f.Score}
		for _, spec := range f.Specifications {
			if !spec.Required || spec.Pattern == "" {
				continue
			}
			re, err := regexp.Compile(specPattern(spec))
			if err != nil {
				continue
			}
			cf.specs = append(cf.specs, compiledSpec{re: re, negate: spec.Negate})
		}
		scorer.formats = append(scorer.formats, cf)
	}
	return scorer
}

// specPattern builds the regex source for a specification. Resolution
// specifications match the bare number with an optional "p" on a word
// boundary; anything else is treated as a raw case-insensitive regex.
func specPattern(spec Specification) string {
	if strings.EqualFold(spec.Type, "resolution") {
		return `(?i)\b` + regexp.QuoteMeta(spec.Pattern) + `p?\b`
	}
	return "(?i)" + spec.Pattern
}

// Score sums the points of every format matching the title and returns a
// human-readable breakdown ("Name +N, Other -M"), or "-" when nothing
// contributed.
//
// A format matches iff it has at least one participating specification, at
// least one non-negated specification matches, and no negated
// specification matches. A negated hit disqualifies the format
// immediately.
func (s *FormatScorer) Score(title string) (int, string) {
	total := 0
	var parts []string

	for _, f := range s.formats {
		if !f.matches(title) {
			continue
		}
		total += f.score
		if f.score >= 0 {
			parts = append(parts, f.name+" +"+strconv.Itoa(f.score))
		} else {
			parts = append(parts, f.name+" "+strconv.Itoa(f.score))
		}
	}

	if len(parts) == 0 {
		return total, "-"
	}
	return total, strings.Join(parts, ", ")
}

func (f compiledFormat) matches(title string) bool {
	if len(f.specs) == 0 {
		return false
	}

	positive := false
	for _, spec := range f.specs {
		if !spec.re.MatchString(title) {
			continue
		}
		if spec.negate {
			return false
		}
		positive = true
	}
	return positive
}
