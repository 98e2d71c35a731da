// Package parse turns the extracted text of a weekly training PDF into
// normalized plan records: section location, phase tracking, interval
// parsing with repetition and decomposed-block expansion, and the
// indoor-trainer power rules.
package parse

import (
	"fmt"

	"triplan/internal/plan"
)

// BodyPowerOffsetW is added to both ends of every Body-phase power range.
// The athlete's trainer reads low relative to the outdoor power meter.
const BodyPowerOffsetW = 15

// FixedBlock is one block of the fixed indoor-trainer warmup or cooldown.
type FixedBlock struct {
	Duration string
	Power    plan.Range
}

// IndoorWarmupSequence is the four-block warmup every indoor-trainer session
// gets, in document order, regardless of what the document transcribes.
var IndoorWarmupSequence = [4]FixedBlock{
	{Duration: "2:30", Power: plan.Range{Low: 96, High: 106}},
	{Duration: "2:30", Power: plan.Range{Low: 130, High: 136}},
	{Duration: "5:00", Power: plan.Range{Low: 156, High: 166}},
	{Duration: "5:00", Power: plan.Range{Low: 180, High: 190}},
}

// IndoorCooldownSequence is the fixed two-block cooldown for indoor sessions.
var IndoorCooldownSequence = [2]FixedBlock{
	{Duration: "2:00", Power: plan.Range{Low: 175, High: 180}},
	{Duration: "2:00", Power: plan.Range{Low: 175, High: 180}},
}

// NormalizePower applies the cycling power rules to a document value.
// warmupIndex selects the fixed warmup block (0-3) when the indoor warmup
// override applies; pass -1 elsewhere. The returned reason is non-empty only
// for forced replacements.
func NormalizePower(rng plan.Range, phase plan.Phase, indoor bool, warmupIndex int) (adjusted plan.Range, adj plan.Adjustment, reason string) {
	if indoor && phase == plan.Warmup {
		idx := warmupIndex
		if idx < 0 || idx >= len(IndoorWarmupSequence) {
			idx = 0
		}
		forced := IndoorWarmupSequence[idx].Power
		return forced, plan.Adjustment{Forced: true},
			fmt.Sprintf("Échauffement HT bloc %d/%d toujours %sW", idx+1, len(IndoorWarmupSequence), forced)
	}

	if indoor && phase == plan.Cooldown {
		forced := IndoorCooldownSequence[0].Power
		return forced, plan.Adjustment{Forced: true},
			fmt.Sprintf("Récupération HT toujours %sW", forced)
	}

	if phase == plan.Body {
		return rng.Shift(BodyPowerOffsetW), plan.Adjustment{Watts: BodyPowerOffsetW}, ""
	}

	return rng, plan.Adjustment{}, ""
}

// IndoorWarmupIntervals builds the fixed warmup interval list emitted for
// every indoor-trainer cycling workout.
func IndoorWarmupIntervals() []plan.Interval {
	out := make([]plan.Interval, 0, len(IndoorWarmupSequence))
	for i, block := range IndoorWarmupSequence {
		adj := plan.Adjustment{Forced: true}
		out = append(out, plan.Interval{
			Phase:           plan.Warmup,
			Duration:        block.Duration,
			CadenceRPM:      "libre",
			CadenceUpload:   plan.BoolPtr(false),
			PowerOriginal:   "standard HT",
			Power:           block.Power.String(),
			PowerAdjustment: &adj,
			ForcedReason:    fmt.Sprintf("Échauffement HT standard bloc %d/%d", i+1, len(IndoorWarmupSequence)),
		})
	}
	return out
}

// IndoorCooldownIntervals builds the fixed cooldown interval list for
// indoor-trainer cycling workouts.
func IndoorCooldownIntervals() []plan.Interval {
	out := make([]plan.Interval, 0, len(IndoorCooldownSequence))
	for i, block := range IndoorCooldownSequence {
		adj := plan.Adjustment{Forced: true}
		out = append(out, plan.Interval{
			Phase:           plan.Cooldown,
			Duration:        block.Duration,
			CadenceRPM:      "libre",
			CadenceUpload:   plan.BoolPtr(false),
			PowerOriginal:   "standard HT",
			Power:           block.Power.String(),
			PowerAdjustment: &adj,
			ForcedReason:    fmt.Sprintf("Récupération HT standard bloc %d/%d", i+1, len(IndoorCooldownSequence)),
		})
	}
	return out
}
