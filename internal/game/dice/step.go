package dice

// StepKind discriminates breakdown log records.
type StepKind string

const (
	StepInitialRoll  StepKind = "initial_roll"
	StepReroll       StepKind = "reroll"
	StepReduce       StepKind = "reduce"
	StepTargetNumber StepKind = "target_number"
	StepWeakpoint    StepKind = "weakpoint"
	StepAttempt      StepKind = "attempt"
	StepDamage       StepKind = "damage"
)

// Step is one record in a breakdown log.
//
// Each kind has a fixed field set; consumers switch on the concrete type or
// on Kind. Kinds other than the dice-level ones are defined by the combat
// package.
type Step interface {
	Kind() StepKind
}

// Face is a die's sides and value as recorded in an InitialRollStep.
type Face struct {
	Sides int `yaml:"sides"`
	Value int `yaml:"value"`
}

// InitialRollStep records every die as first rolled.
type InitialRollStep struct {
	Dice []Face `yaml:"rolls"`
}

// Kind implements Step.
func (InitialRollStep) Kind() StepKind { return StepInitialRoll }

// RerollStep records one die being replaced.
type RerollStep struct {
	TargetIndex int `yaml:"target_index"`
	Before      int `yaml:"before"`
	After       int `yaml:"after"`
}

// Kind implements Step.
func (RerollStep) Kind() StepKind { return StepReroll }

// ReduceStep records the reduction mode and its output.
type ReduceStep struct {
	Mode  string `yaml:"mode"`
	Final int    `yaml:"final"`
}

// Kind implements Step.
func (ReduceStep) Kind() StepKind { return StepReduce }
