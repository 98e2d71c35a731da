package parse

import (
	"errors"
	"fmt"
	"regexp"
	"sort"

	"triplan/internal/plan"
)

// ErrSectionNotFound is returned when a requested workout code has no span
// in the document. It is reported per code and never aborts a full parse.
var ErrSectionNotFound = errors.New("workout section not found")

// Section is one located workout span: the code, the discipline inferred
// from the code's letter prefix, and the text running from the code marker
// to the next marker or document end.
type Section struct {
	Code       string
	Discipline plan.Discipline
	Text       string
}

// The parenthetical qualifier ("… le matin)") is required for cycling and
// running markers; without it, code-like substrings in prose (cross-
// references in the notes, say) would produce false sections.
var sectionPatterns = []struct {
	re         *regexp.Regexp
	discipline plan.Discipline
}{
	{regexp.MustCompile(`\b(C\d+)\s*\([^)]*le matin\)`), plan.Cycling},
	{regexp.MustCompile(`\b(CAP\d+)\s*\([^)]*le matin\)`), plan.Running},
	{regexp.MustCompile(`\b(N\d+)\s*\([^)]*\)`), plan.Swimming},
}

// FindSections locates every workout span in the document text, ordered by
// document position. Duplicate printings of the same code (page overlap)
// yield independent entries; deduplication is deliberately left to the
// consumer.
func FindSections(text string) []Section {
	type marker struct {
		start      int
		code       string
		discipline plan.Discipline
	}

	var markers []marker
	for _, p := range sectionPatterns {
		for _, m := range p.re.FindAllStringSubmatchIndex(text, -1) {
			markers = append(markers, marker{
				start:      m[0],
				code:       text[m[2]:m[3]],
				discipline: p.discipline,
			})
		}
	}
	sort.Slice(markers, func(i, j int) bool { return markers[i].start < markers[j].start })

	sections := make([]Section, 0, len(markers))
	for i, mk := range markers {
		end := len(text)
		if i+1 < len(markers) {
			end = markers[i+1].start
		}
		sections = append(sections, Section{
			Code:       mk.code,
			Discipline: mk.discipline,
			Text:       text[mk.start:end],
		})
	}
	return sections
}

// FindSection returns the first span for a specific code.
func FindSection(text, code string) (Section, error) {
	for _, s := range FindSections(text) {
		if s.Code == code {
			return s, nil
		}
	}
	return Section{}, fmt.Errorf("%w: %s", ErrSectionNotFound, code)
}
