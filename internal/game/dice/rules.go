package dice

// Mode names the rule for collapsing rolled values into one final integer.
// The zero value is ModeSum, the documented default.
type Mode int

const (
	ModeSum          Mode = iota // total of all values
	ModeMax                      // highest value, 0 for an empty pool
	ModeTopNSum                  // sum of the TopN highest values
	ModeSuccessCount             // count of values >= Threshold
)

// String returns the configuration name of the mode.
// Postcondition: out-of-range values render as "sum", the mode they reduce as.
func (m Mode) String() string {
	switch m {
	case ModeMax:
		return "max"
	case ModeTopNSum:
		return "top_n_sum"
	case ModeSuccessCount:
		return "success_count"
	default:
		return "sum"
	}
}

// ParseMode maps a configuration name to a Mode.
//
// Postcondition: Returns (ModeSum, false) for unrecognized names.
func ParseMode(name string) (Mode, bool) {
	switch name {
	case "sum":
		return ModeSum, true
	case "max":
		return ModeMax, true
	case "top_n_sum":
		return ModeTopNSum, true
	case "success_count":
		return ModeSuccessCount, true
	default:
		return ModeSum, false
	}
}

// Strategy selects which die a reroll replaces.
// The zero value (StrategyUnknown) is intentionally a no-op.
type Strategy int

const (
	StrategyUnknown         Strategy = iota // zero value; rerolling aborts immediately
	StrategyLowest                          // stable argmin of current values
	StrategySpecificIndexes                 // next index from RerollRule.Indexes
)

// String returns the configuration name of the strategy.
func (s Strategy) String() string {
	switch s {
	case StrategyLowest:
		return "lowest"
	case StrategySpecificIndexes:
		return "specific_indexes"
	default:
		return "unknown"
	}
}

// ParseStrategy maps a configuration name to a Strategy.
//
// Postcondition: Returns (StrategyUnknown, false) for unrecognized names.
func ParseStrategy(name string) (Strategy, bool) {
	switch name {
	case "lowest":
		return StrategyLowest, true
	case "specific_indexes":
		return StrategySpecificIndexes, true
	default:
		return StrategyUnknown, false
	}
}

// RerollRule describes up to Times rerolls chosen by Strategy.
//
// A RerollRule is an immutable value: resolution consumes a private copy of
// Indexes, so the same rule may be shared across calls and goroutines.
type RerollRule struct {
	Times    int
	Strategy Strategy
	// Indexes is consumed left to right by StrategySpecificIndexes.
	Indexes []int
}

// Rules configures a single resolution.
//
// TopN and Threshold are only read by ModeTopNSum and ModeSuccessCount; their
// zero values are the documented defaults for absent configuration.
type Rules struct {
	Mode      Mode
	TopN      int
	Threshold int
	Reroll    *RerollRule
}

// Meta echoes the reduction parameters a Result was produced with.
type Meta struct {
	Mode      string `yaml:"mode"`
	TopN      int    `yaml:"top_n"`
	Threshold int    `yaml:"threshold"`
}

// Result is the outcome of one pool resolution.
//
// Invariant: Final == Reduce(values(Rolls), Mode, TopN, Threshold).
// Invariant: Rolls preserves expansion order; rerolls change values in place.
type Result struct {
	Rolls     []DieRoll
	Final     int
	Meta      Meta
	Breakdown []Step
}

// Values returns the current face value of every die, in order.
func (r Result) Values() []int {
	vals := make([]int, len(r.Rolls))
	for i, d := range r.Rolls {
		vals[i] = d.Value
	}
	return vals
}
