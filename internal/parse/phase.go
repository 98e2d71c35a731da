package parse

import (
	"strings"

	"triplan/internal/plan"
)

// phaseRank orders the session phases as they appear in a document.
func phaseRank(p plan.Phase) int {
	switch p {
	case plan.Warmup:
		return 1
	case plan.Body:
		return 2
	case plan.Cooldown:
		return 3
	}
	return 0
}

// phaseHeader reports whether a line is a phase-header row and which phase
// it names. The document prints the labels as standalone table rows.
func phaseHeader(line string) (plan.Phase, bool) {
	switch {
	case strings.Contains(line, "Echauffement") || strings.Contains(line, "Échauffement"):
		return plan.Warmup, true
	case strings.Contains(line, "Corps de séance"):
		return plan.Body, true
	case strings.Contains(line, "Récupération"):
		return plan.Cooldown, true
	}
	return "", false
}

// phaseTracker holds the current phase of a workout span. Phases advance
// Warmup → Body → Cooldown and never regress: duplicate headers (the same
// label printed twice across a page break) keep the furthest phase reached.
type phaseTracker struct {
	current plan.Phase
}

func newPhaseTracker() phaseTracker {
	return phaseTracker{current: plan.Warmup}
}

// advance moves to p unless p is an earlier phase than the current one.
func (t *phaseTracker) advance(p plan.Phase) {
	if phaseRank(p) > phaseRank(t.current) {
		t.current = p
	}
}

func (t *phaseTracker) phase() plan.Phase {
	return t.current
}
