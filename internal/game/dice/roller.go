package dice

import "sort"

// Resolve rolls pool with src, applies rules.Reroll if present, and reduces
// the resulting values under rules.Mode.
//
// The breakdown always starts with one InitialRollStep, contains one
// RerollStep per reroll performed, and ends with one ReduceStep.
//
// Precondition: src must be non-nil; every spec in pool has Sides > 0.
// Postcondition: len(result.Rolls) == Pool(pool).Size() and
// result.Final == Reduce(result.Values(), rules.Mode, rules.TopN, rules.Threshold).
func Resolve(pool []DieSpec, rules Rules, src Source) Result {
	sides := Expand(pool)
	rolls := make([]DieRoll, len(sides))
	faces := make([]Face, len(sides))
	for i, s := range sides {
		v := Draw(src, s)
		rolls[i] = DieRoll{Sides: s, Value: v}
		faces[i] = Face{Sides: s, Value: v}
	}

	breakdown := []Step{InitialRollStep{Dice: faces}}
	if rules.Reroll != nil {
		breakdown = applyReroll(rolls, *rules.Reroll, src, breakdown)
	}

	vals := make([]int, len(rolls))
	for i, d := range rolls {
		vals[i] = d.Value
	}
	final := Reduce(vals, rules.Mode, rules.TopN, rules.Threshold)
	breakdown = append(breakdown, ReduceStep{Mode: rules.Mode.String(), Final: final})

	return Result{
		Rolls: rolls,
		Final: final,
		Meta: Meta{
			Mode:      rules.Mode.String(),
			TopN:      rules.TopN,
			Threshold: rules.Threshold,
		},
		Breakdown: breakdown,
	}
}

// applyReroll rerolls dice in place according to rule and returns breakdown
// with one RerollStep appended per reroll.
//
// Rerolling stops after rule.Times rerolls, when rolls is empty, or as soon
// as the strategy cannot pick a die. rule.Indexes is never modified.
func applyReroll(rolls []DieRoll, rule RerollRule, src Source, breakdown []Step) []Step {
	pending := append([]int(nil), rule.Indexes...)
	for n := 0; n < rule.Times; n++ {
		if len(rolls) == 0 {
			return breakdown
		}
		var target int
		switch rule.Strategy {
		case StrategyLowest:
			target = lowestIndex(rolls)
		case StrategySpecificIndexes:
			if len(pending) == 0 {
				return breakdown
			}
			target, pending = pending[0], pending[1:]
			if target < 0 || target >= len(rolls) {
				return breakdown
			}
		default:
			return breakdown
		}

		before := rolls[target].Value
		after := Draw(src, rolls[target].Sides)
		rolls[target].Value = after
		rolls[target].Tags = append(rolls[target].Tags, TagRerolled)
		breakdown = append(breakdown, RerollStep{TargetIndex: target, Before: before, After: after})
	}
	return breakdown
}

// lowestIndex returns the index of the minimum value; ties go to the earliest index.
//
// Precondition: len(rolls) > 0.
func lowestIndex(rolls []DieRoll) int {
	best := 0
	for i := 1; i < len(rolls); i++ {
		if rolls[i].Value < rolls[best].Value {
			best = i
		}
	}
	return best
}

// Reduce collapses values into one integer under mode.
//
// ModeTopNSum sums the topN highest values (topN <= 0 yields 0).
// ModeSuccessCount counts values >= threshold. Any Mode outside the declared
// constants reduces as ModeSum.
//
// Postcondition: values is not modified.
func Reduce(values []int, mode Mode, topN, threshold int) int {
	switch mode {
	case ModeMax:
		if len(values) == 0 {
			return 0
		}
		best := values[0]
		for _, v := range values[1:] {
			if v > best {
				best = v
			}
		}
		return best
	case ModeTopNSum:
		sorted := make([]int, len(values))
		copy(sorted, values)
		sort.Sort(sort.Reverse(sort.IntSlice(sorted)))
		if topN < 0 {
			topN = 0
		}
		if topN > len(sorted) {
			topN = len(sorted)
		}
		return sum(sorted[:topN])
	case ModeSuccessCount:
		n := 0
		for _, v := range values {
			if v >= threshold {
				n++
			}
		}
		return n
	case ModeSum:
		return sum(values)
	default:
		return sum(values)
	}
}

func sum(values []int) int {
	total := 0
	for _, v := range values {
		total += v
	}
	return total
}
