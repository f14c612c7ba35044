package combat

import "github.com/cory-johannsen/skirmish/internal/game/dice"

// TargetNumberStep records how a target number was assembled.
//
// Attack target numbers use Base, TargetMod, EnemyMod, and DifficultyMod.
// Defense target numbers use Base, PatternMod, ProfileMod, EnemyMod, and
// DifficultyMod. Unused terms are zero.
//
// Invariant: Total == Base + PatternMod + ProfileMod + TargetMod + EnemyMod + DifficultyMod.
type TargetNumberStep struct {
	// Attempt is the zero-based attempt the TN applies to.
	Attempt       int `yaml:"attempt"`
	Base          int `yaml:"base"`
	PatternMod    int `yaml:"pattern_mod"`
	ProfileMod    int `yaml:"profile_mod"`
	TargetMod     int `yaml:"target_mod"`
	EnemyMod      int `yaml:"enemy_count_mod"`
	DifficultyMod int `yaml:"difficulty_mod"`
	Total         int `yaml:"total"`
}

// Kind implements dice.Step.
func (TargetNumberStep) Kind() dice.StepKind { return dice.StepTargetNumber }

func (s TargetNumberStep) sum() TargetNumberStep {
	s.Total = s.Base + s.PatternMod + s.ProfileMod + s.TargetMod + s.EnemyMod + s.DifficultyMod
	return s
}

// WeakpointStep records the weakpoint bonus calculation of an attack.
type WeakpointStep struct {
	Threshold       int  `yaml:"threshold"`
	Scale           int  `yaml:"scale"`
	Cap             *int `yaml:"cap,omitempty"`
	RawMargin       int  `yaml:"raw_margin"`
	EffectiveMargin int  `yaml:"effective_margin"`
	Bonus           int  `yaml:"bonus"`
}

// Kind implements dice.Step.
func (WeakpointStep) Kind() dice.StepKind { return dice.StepWeakpoint }

// DamageStep records how a failed defense attempt turned into damage.
//
// Invariant: Final == AfterFailModel clamped into [MinDamage, MaxDamage] by
// whichever bounds are set.
type DamageStep struct {
	Delta          int    `yaml:"delta"`
	BaseDamage     int    `yaml:"base_damage"`
	FailMode       string `yaml:"fail_mode"`
	AfterFailModel int    `yaml:"after_fail_model"`
	MinDamage      *int   `yaml:"min_damage,omitempty"`
	MaxDamage      *int   `yaml:"max_damage,omitempty"`
	Final          int    `yaml:"final"`
}

// Kind implements dice.Step.
func (DamageStep) Kind() dice.StepKind { return dice.StepDamage }

// AttemptStep records one defense attempt.
//
// Damage is nil when the attempt succeeded.
type AttemptStep struct {
	Attempt int         `yaml:"attempt"`
	TN      int         `yaml:"tn"`
	Roll    int         `yaml:"roll"`
	Score   int         `yaml:"score"`
	Success bool        `yaml:"success"`
	Delta   int         `yaml:"delta"`
	Damage  *DamageStep `yaml:"damage,omitempty"`
}

// Kind implements dice.Step.
func (AttemptStep) Kind() dice.StepKind { return dice.StepAttempt }
