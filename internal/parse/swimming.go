package parse

import (
	"regexp"
	"strconv"
	"strings"

	"triplan/internal/plan"
)

// Swimming parsing is shallow by design: the document writes swim sessions
// as prose series ("8 x 50 crawl R20"), not a phase/duration/target grid, so
// the parser keeps the series text and tallies stroke distances only.

var (
	swimTotalRe = regexp.MustCompile(`(\d{4})\s*m`)

	// swimSetRe matches a repeated set: "8 x 50 crawl ..." (count, distance).
	swimSetRe = regexp.MustCompile(`^(\d+)\s*x\s*(\d+)\s*m?\s*(.*)$`)

	// swimSingleRe matches a single block: "400 crawl souple".
	swimSingleRe = regexp.MustCompile(`^(\d+)\s*m?\s+(\p{L}.*)$`)
)

// strokeLabels maps keywords found in series text to canonical stroke names
// for the distance tally.
var strokeLabels = []struct {
	keyword string
	name    string
}{
	{"crawl", "crawl"},
	{"dos", "dos"},
	{"brasse", "brasse"},
	{"papillon", "papillon"},
	{"pap", "papillon"},
	{"4 nages", "4 nages"},
	{"4n", "4 nages"},
	{"éduc", "éducatifs"},
	{"educ", "éducatifs"},
	{"jambes", "jambes"},
	{"pull", "pull"},
}

func strokeFor(text string) string {
	lower := strings.ToLower(text)
	for _, s := range strokeLabels {
		if strings.Contains(lower, s.keyword) {
			return s.name
		}
	}
	return ""
}

// ParseSwimming extracts the free-text series list, the stroke→metres tally
// and the session's total distance ("2500m") from a swim span's lines.
func ParseSwimming(lines []string) (series []plan.Series, distances map[string]int, total string) {
	distances = make(map[string]int)
	technique := false
	for _, raw := range lines {
		if strings.Contains(strings.ToUpper(raw), "TECHNIQUE") {
			technique = true
		}
	}

	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if total == "" {
			if m := swimTotalRe.FindStringSubmatch(line); m != nil {
				total = m[1] + "m"
			}
		}

		if m := swimSetRe.FindStringSubmatch(line); m != nil {
			count, _ := strconv.Atoi(m[1])
			dist, _ := strconv.Atoi(m[2])
			s := plan.Series{Description: line}
			if technique {
				s.Technique = "TECHNIQUEMENT APPLIQUE"
			}
			series = append(series, s)
			if stroke := strokeFor(m[3]); stroke != "" {
				distances[stroke] += count * dist
			}
			continue
		}

		if m := swimSingleRe.FindStringSubmatch(line); m != nil {
			stroke := strokeFor(m[2])
			if stroke == "" {
				continue
			}
			dist, _ := strconv.Atoi(m[1])
			s := plan.Series{Description: line}
			if technique {
				s.Technique = "TECHNIQUEMENT APPLIQUE"
			}
			series = append(series, s)
			distances[stroke] += dist
		}
	}
	return series, distances, total
}
