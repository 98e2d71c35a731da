package parse

import (
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"triplan/internal/plan"
)

var (
	// repetitionRe matches a repetition declaration:
	// "3 x (03:00 70à75 220à230-01:00 90à95 260à270) :"
	repetitionRe = regexp.MustCompile(`(\d+)\s*x\s*\(([^)]+)\)\s*:`)

	// decomposedRe matches a decomposed-block header:
	// "08:00* (Position haute) décomposées en :"
	decomposedRe = regexp.MustCompile(`(\d{1,2}:\d{2})\**\s*\(([^)]+)\)\s*décomposées en\s*:`)

	// positionedRe matches a plain interval carrying a position label:
	// "08:00* (Position aéro.) 80 à 85 200 à 210"
	positionedRe = regexp.MustCompile(`(\d{1,2}:\d{2})\**\s*\(([^)]+)\)\s+(\d+\s*à\s*\d+)\s+(\d+\s*à\s*\d+)`)

	// bareRe matches a plain interval without a position:
	// "03:00 70 à 75 220 à 230"
	bareRe = regexp.MustCompile(`(\d{1,2}:\d{2})\**\s+(\d+\s*à\s*\d+)\s+(\d+\s*à\s*\d+)`)
)

// ParseCyclingIntervals walks a cycling span's table lines and emits the
// flat, normalized interval list. Indoor-trainer sessions get the fixed
// warmup and cooldown sequences in place of whatever the document printed
// for those phases; Body-phase power is offset per NormalizePower.
func ParseCyclingIntervals(lines []string, indoor bool, log *slog.Logger) []plan.Interval {
	var out []plan.Interval

	if indoor {
		out = append(out, IndoorWarmupIntervals()...)
	}

	tr := newPhaseTracker()
	i := 0
	for i < len(lines) {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			i++
			continue
		}

		if ph, ok := phaseHeader(line); ok {
			tr.advance(ph)
			i++
			continue
		}

		// Indoor warmup/cooldown lines are replaced wholesale by the fixed
		// sequences; whatever the document transcribed there is dropped.
		if indoor && tr.phase() != plan.Body {
			i++
			continue
		}

		if m := repetitionRe.FindStringSubmatch(line); m != nil {
			count, _ := strconv.Atoi(m[1])
			segments := len(strings.Split(m[2], "-"))
			template, next := collectTemplate(lines, i+1, segments, tr.phase(), indoor, log)
			for it := 1; it <= count; it++ {
				for _, iv := range template {
					tagged := iv
					tagged.RepetitionIteration = it
					tagged.RepetitionTotal = count
					out = append(out, tagged)
				}
			}
			i = next
			continue
		}

		if m := decomposedRe.FindStringSubmatch(line); m != nil {
			subs, next := collectDecomposed(lines, i+1, m[2], tr.phase(), indoor)
			out = append(out, subs...)
			i = next
			continue
		}

		if iv, ok := parsePlainCycling(line, tr.phase(), indoor); ok {
			out = append(out, iv)
			i++
			continue
		}

		// Column captions, separators and other layout noise.
		i++
	}

	if indoor {
		out = append(out, IndoorCooldownIntervals()...)
	}
	return out
}

// collectTemplate consumes one iteration's worth of template entries after a
// repetition declaration. The declaration's dash-delimited segment count is
// the number of entries; an entry that is itself a decomposed header
// consumes its sub-lines as part of that entry.
func collectTemplate(lines []string, start, segments int, phase plan.Phase, indoor bool, log *slog.Logger) (template []plan.Interval, next int) {
	i := start
	entries := 0
	for i < len(lines) && entries < segments {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			i++
			continue
		}
		if _, ok := phaseHeader(line); ok {
			break
		}

		if m := decomposedRe.FindStringSubmatch(line); m != nil {
			subs, n := collectDecomposed(lines, i+1, m[2], phase, indoor)
			template = append(template, subs...)
			entries++
			i = n
			continue
		}

		if iv, ok := parsePlainCycling(line, phase, indoor); ok {
			template = append(template, iv)
			entries++
			i++
			continue
		}

		log.Warn("unrecognized repetition template line", "line", line)
		i++
	}
	return template, i
}

// collectDecomposed parses the contiguous plain lines following a decomposed
// header as sub-intervals inheriting the parent's position label. The header
// itself emits nothing; a blank line or any non-plain line ends the block.
func collectDecomposed(lines []string, start int, position string, phase plan.Phase, indoor bool) (subs []plan.Interval, next int) {
	i := start
	for i < len(lines) {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			break
		}
		if decomposedRe.MatchString(line) || positionedRe.MatchString(line) {
			break
		}
		if _, ok := phaseHeader(line); ok {
			break
		}
		iv, ok := parsePlainCycling(line, phase, indoor)
		if !ok {
			break
		}
		iv.Position = position
		iv.IsSubInterval = true
		subs = append(subs, iv)
		i++
	}
	return subs, i
}

// parsePlainCycling parses a plain interval line (with or without position
// label) and applies the power normalization rules for the current phase.
func parsePlainCycling(line string, phase plan.Phase, indoor bool) (plan.Interval, bool) {
	var duration, position, cadence, power string

	if m := positionedRe.FindStringSubmatch(line); m != nil {
		duration, position, cadence, power = m[1], m[2], m[3], m[4]
	} else if m := bareRe.FindStringSubmatch(line); m != nil {
		duration, cadence, power = m[1], m[2], m[3]
	} else {
		return plan.Interval{}, false
	}

	rng, err := plan.ParseRange(power)
	if err != nil {
		return plan.Interval{}, false
	}
	cadRng, err := plan.ParseRange(cadence)
	if err != nil {
		return plan.Interval{}, false
	}

	adjusted, adj, reason := NormalizePower(rng, phase, indoor, -1)

	iv := plan.Interval{
		Phase:           phase,
		Duration:        duration,
		CadenceRPM:      cadRng.String(),
		CadenceUpload:   plan.BoolPtr(false),
		PowerOriginal:   rng.String(),
		Power:           adjusted.String(),
		PowerAdjustment: &adj,
		ForcedReason:    reason,
		Position:        position,
	}
	return iv, true
}
