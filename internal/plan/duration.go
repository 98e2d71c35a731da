package plan

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var durationRe = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)

// DurationToSeconds converts the document's "mm:ss" (or "h:mm" for long
// totals, same arithmetic) textual form to seconds.
func DurationToSeconds(s string) (int, error) {
	m := durationRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, fmt.Errorf("invalid duration %q", s)
	}
	hi, _ := strconv.Atoi(m[1])
	lo, _ := strconv.Atoi(m[2])
	if lo > 59 {
		return 0, fmt.Errorf("invalid duration %q: seconds > 59", s)
	}
	return hi*60 + lo, nil
}

// SecondsToDuration renders seconds in the canonical "m:ss" form used by the
// fixed warmup/cooldown sequences. Interval records keep the document's
// original text verbatim, so padded forms like "08:00" survive a parse
// unchanged; this function is the inverse of DurationToSeconds for canonical
// (unpadded-minute) strings.
func SecondsToDuration(sec int) string {
	if sec < 0 {
		sec = 0
	}
	return fmt.Sprintf("%d:%02d", sec/60, sec%60)
}

// Range is an inclusive numeric low/high target taken from the document's
// "AàB" notation. A single value means low == high.
type Range struct {
	Low  int
	High int
}

var rangeRe = regexp.MustCompile(`^(\d+)\s*à\s*(\d+)$`)

// ParseRange parses "220à230", "220 à 230" or a bare "220".
func ParseRange(s string) (Range, error) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "W"))
	if m := rangeRe.FindStringSubmatch(s); m != nil {
		lo, _ := strconv.Atoi(m[1])
		hi, _ := strconv.Atoi(m[2])
		if lo > hi {
			return Range{}, fmt.Errorf("invalid range %q: low > high", s)
		}
		return Range{Low: lo, High: hi}, nil
	}
	if v, err := strconv.Atoi(s); err == nil {
		return Range{Low: v, High: v}, nil
	}
	return Range{}, fmt.Errorf("invalid range %q", s)
}

// String renders the range back in the document's "AàB" form.
func (r Range) String() string {
	return fmt.Sprintf("%dà%d", r.Low, r.High)
}

// Shift returns the range with both ends moved by w watts.
func (r Range) Shift(w int) Range {
	return Range{Low: r.Low + w, High: r.High + w}
}
