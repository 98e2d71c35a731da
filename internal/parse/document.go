package parse

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"triplan/internal/plan"
)

var (
	weekRe   = regexp.MustCompile(`S(\d+)`)
	periodRe = regexp.MustCompile(`\((\d{2}_\d{2}) au (\d{2}_\d{2})\)`)

	dayMonthRe = regexp.MustCompile(`(\d{2})/(\d{2})`)
	durTotalRe = regexp.MustCompile(`Durée\s*:\s*(\d+h\d+)`)
	descLineRe = regexp.MustCompile(`Séance\s+([^\n•]+)`)
)

// Parser assembles whole documents out of located sections. The year is
// supplied externally: the document prints only "dd/mm" next to sessions.
type Parser struct {
	log  *slog.Logger
	year int
}

func New(log *slog.Logger, year int) *Parser {
	return &Parser{log: log, year: year}
}

// ParseDocument parses the full extracted text of one weekly PDF. filename
// is the source path; week and period metadata come from its name
// ("Séances S06 (02_02 au 08_02)_…"). One document per invocation, built
// fresh; a section that yields nothing still appears with empty intervals.
func (p *Parser) ParseDocument(filename string, pages []string) (*plan.Document, error) {
	if len(pages) == 0 {
		return nil, fmt.Errorf("document %s: no extracted text", filename)
	}
	text := strings.Join(pages, "\n\n")

	doc := &plan.Document{Week: "Unknown", Period: "Unknown"}
	p.weekInfo(filepath.Base(filename), doc)

	sections := FindSections(text)
	if len(sections) == 0 {
		return nil, fmt.Errorf("document %s: no workout sections located", filename)
	}

	seen := map[string]bool{}
	for _, sec := range sections {
		if seen[sec.Code] {
			// Duplicate printings are kept; downstream decides.
			p.log.Warn("duplicate workout code", "code", sec.Code)
		}
		seen[sec.Code] = true

		var w plan.Workout
		switch sec.Discipline {
		case plan.Cycling:
			w = p.parseCycling(sec)
		case plan.Running:
			w = p.parseRunning(sec)
		case plan.Swimming:
			w = p.parseSwimming(sec)
		}
		doc.Workouts = append(doc.Workouts, w)
		p.log.Info("parsed workout",
			"code", w.Code, "type", string(w.Type), "intervals", len(w.Intervals))
	}
	return doc, nil
}

func (p *Parser) weekInfo(base string, doc *plan.Document) {
	if m := weekRe.FindStringSubmatch(base); m != nil {
		n, _ := strconv.Atoi(m[1])
		doc.Week = fmt.Sprintf("S%02d", n)
	}
	if m := periodRe.FindStringSubmatch(base); m != nil {
		doc.StartDate = m[1]
		doc.EndDate = m[2]
		doc.Period = fmt.Sprintf("%s au %s", m[1], m[2])
	}
}

// date reconstructs a session date from the "dd/mm" fragment printed near
// the code, plus the externally supplied year.
func (p *Parser) date(text string) string {
	m := dayMonthRe.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return fmt.Sprintf("%d-%s-%s", p.year, m[2], m[1])
}

func (p *Parser) parseCycling(sec Section) plan.Workout {
	// "HT" is the coach's shorthand for the indoor trainer; keep the match
	// case sensitive, a lowercase scan would hit ordinary French words.
	indoor := strings.Contains(sec.Text, "HT") ||
		strings.Contains(strings.ToLower(sec.Text), "home trainer")

	w := plan.Workout{
		Code:      sec.Code,
		Date:      p.date(sec.Text),
		Type:      plan.Cycling,
		Indoor:    plan.BoolPtr(indoor),
		Intervals: []plan.Interval{},
		Notes:     noteBlock(sec.Text, "Consignes"),
	}
	if m := descLineRe.FindStringSubmatch(sec.Text); m != nil {
		w.Description = strings.TrimSpace(m[1])
	}
	if m := durTotalRe.FindStringSubmatch(sec.Text); m != nil {
		w.DurationTotal = m[1]
	}

	table := tableBlock(sec.Text, "Répartition de la séance", "Consignes")
	if table != "" {
		w.Intervals = ParseCyclingIntervals(strings.Split(table, "\n"), indoor, p.log)
	}
	return w
}

func (p *Parser) parseRunning(sec Section) plan.Workout {
	w := plan.Workout{
		Code:      sec.Code,
		Date:      p.date(sec.Text),
		Type:      plan.Running,
		Intervals: []plan.Interval{},
		Notes:     noteBlock(sec.Text, "Indications"),
	}
	if m := durTotalRe.FindStringSubmatch(sec.Text); m != nil {
		w.DurationTotal = m[1]
	}

	if IsFreeRun(sec.Text) {
		w.WorkoutType = "FARTLEK"
		w.Structured = plan.BoolPtr(false)
		w.Description = "FARTLEK NATUREL - Séance libre aux sensations"
		return w
	}

	w.WorkoutType = "STRUCTURED"
	w.Structured = plan.BoolPtr(true)
	table := tableBlock(sec.Text, "Répartition de la séance", "Indications")
	if table != "" {
		w.Intervals = ParseRunningIntervals(strings.Split(table, "\n"), p.log)
	}
	return w
}

func (p *Parser) parseSwimming(sec Section) plan.Workout {
	series, distances, total := ParseSwimming(strings.Split(sec.Text, "\n"))
	return plan.Workout{
		Code:          sec.Code,
		Date:          p.date(sec.Text),
		Type:          plan.Swimming,
		DurationTotal: total,
		Intervals:     []plan.Interval{},
		Series:        series,
		Distances:     distances,
	}
}

// tableBlock slices the span between a section heading and the next
// terminator heading (or span end).
func tableBlock(text, from, until string) string {
	start := strings.Index(text, from)
	if start < 0 {
		return ""
	}
	block := text[start:]
	if end := strings.Index(block, until); end > 0 {
		block = block[:end]
	}
	return block
}

// noteBlock extracts the free-text notes after a "Consignes :" /
// "Indications :" heading, up to the first blank line.
func noteBlock(text, heading string) string {
	start := strings.Index(text, heading)
	if start < 0 {
		return ""
	}
	block := text[start+len(heading):]
	block = strings.TrimLeft(block, " \t:")
	if end := strings.Index(block, "\n\n"); end >= 0 {
		block = block[:end]
	}
	return strings.TrimSpace(block)
}
