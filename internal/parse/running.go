package parse

import (
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"triplan/internal/plan"
)

var (
	// paceRangeRe matches a numeric pace range "4:45à4:50" (min:sec per km).
	paceRangeRe = regexp.MustCompile(`(\d):(\d{2})\s*à\s*(\d):(\d{2})`)

	runDurationRe = regexp.MustCompile(`\d{1,2}:\d{2}`)
)

// Textual intensity labels used for warmup and cooldown rows, which carry no
// numeric pace.
const (
	paceEasyToModerate = "Allure faible à modérée"
	paceModerateToEasy = "Allure modérée à faible"
)

// ParsePace validates and decomposes a "m:ssàm:ss" pace range. Seconds of
// either bound must be < 60.
func ParsePace(s string) (*plan.Pace, error) {
	m := paceRangeRe.FindStringSubmatch(s)
	if m == nil {
		return nil, fmt.Errorf("invalid pace format %q", s)
	}
	minMin, _ := strconv.Atoi(m[1])
	minSec, _ := strconv.Atoi(m[2])
	maxMin, _ := strconv.Atoi(m[3])
	maxSec, _ := strconv.Atoi(m[4])
	if minSec > 59 || maxSec > 59 {
		return nil, fmt.Errorf("invalid pace %q: seconds > 59", s)
	}
	return &plan.Pace{
		Raw:          s,
		MinSecPerKM:  minMin*60 + minSec,
		MaxSecPerKM:  maxMin*60 + maxSec,
		MinFormatted: fmt.Sprintf("%d:%02d", minMin, minSec),
		MaxFormatted: fmt.Sprintf("%d:%02d", maxMin, maxSec),
	}, nil
}

// detectRunningPhase infers a line's phase: explicit headers win, then the
// textual intensity labels (easy-to-moderate opens a session, moderate-to-
// easy closes it), then any numeric pace range means Body.
func detectRunningPhase(line string) (plan.Phase, bool) {
	if ph, ok := phaseHeader(line); ok {
		return ph, true
	}
	switch {
	case strings.Contains(line, "Allure faible") && strings.Contains(line, "modérée"):
		return plan.Warmup, true
	case strings.Contains(line, "Allure modérée") && strings.Contains(line, "faible"):
		return plan.Cooldown, true
	case paceRangeRe.MatchString(line):
		return plan.Body, true
	}
	return "", false
}

// splitPaceDuration separates a line's pace-range substring from its
// standalone duration token, so "30:00 4:45à4:50" yields both without the
// duration matcher swallowing half the pace.
func splitPaceDuration(line string) (pace, duration string) {
	rest := line
	if loc := paceRangeRe.FindStringIndex(line); loc != nil {
		pace = strings.ReplaceAll(line[loc[0]:loc[1]], " ", "")
		rest = line[:loc[0]] + line[loc[1]:]
	}
	duration = runDurationRe.FindString(rest)
	return pace, duration
}

// ParseRunningIntervals walks a structured running span's table lines.
// Warmup and cooldown rows use textual intensity descriptions; Body rows
// carry numeric pace ranges. A row whose pace fails validation is logged
// and dropped, never aborting the workout.
func ParseRunningIntervals(lines []string, log *slog.Logger) []plan.Interval {
	var out []plan.Interval
	tr := phaseTracker{}

	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if ph, ok := detectRunningPhase(line); ok {
			tr.advance(ph)
		}
		if tr.phase() == "" {
			continue
		}

		pace, duration := splitPaceDuration(line)
		if duration == "" {
			continue
		}

		if pace != "" {
			parsed, err := ParsePace(pace)
			if err != nil {
				log.Warn("dropping running line", "line", line, "error", err)
				continue
			}
			out = append(out, plan.Interval{
				Phase:        tr.phase(),
				Duration:     duration,
				PaceMinPerKM: pace,
				PaceParsed:   parsed,
			})
			continue
		}

		if desc, ok := paceDescription(line); ok {
			out = append(out, plan.Interval{
				Phase:           tr.phase(),
				Duration:        duration,
				PaceDescription: desc,
			})
		}
	}
	return out
}

func paceDescription(line string) (string, bool) {
	switch {
	case strings.Contains(line, "faible à modérée"):
		return paceEasyToModerate, true
	case strings.Contains(line, "modérée à faible"):
		return paceModerateToEasy, true
	}
	return "", false
}

// IsFreeRun reports whether a running span describes an unstructured
// session (FARTLEK, run by feel) that has no parseable intervals.
func IsFreeRun(text string) bool {
	return strings.Contains(strings.ToUpper(text), "FARTLEK") ||
		strings.Contains(strings.ToLower(text), "aux sensations")
}
