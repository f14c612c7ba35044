package combat

import (
	"math"

	"github.com/cory-johannsen/skirmish/internal/game/dice"
)

// Pattern selects how an incoming attack is defended against.
// The zero value is PatternSingleHit.
type Pattern int

const (
	PatternSingleHit Pattern = iota // one roll, damage scales with the miss
	PatternMultiHit                 // N rolls, flat damage per miss
)

// String returns the configuration name of the pattern.
func (p Pattern) String() string {
	switch p {
	case PatternMultiHit:
		return "multi_hit"
	default:
		return "single_hit"
	}
}

// DefaultPattern is the label echoed when an AttackSpec names no pattern.
const DefaultPattern = "heavy_hit"

// ParsePattern maps an attack pattern label to a Pattern.
// Every label other than "multi_hit" (for example "heavy_hit") is single-hit.
func ParsePattern(label string) Pattern {
	switch label {
	case "multi_hit":
		return PatternMultiHit
	default:
		return PatternSingleHit
	}
}

// FailMode selects how a failed defense converts into damage.
// The zero value is FailAllOrNothing.
type FailMode int

const (
	FailAllOrNothing FailMode = iota // base damage unchanged
	FailGraded                       // scaled by how narrowly the roll missed
)

// String returns the configuration name of the fail mode.
func (m FailMode) String() string {
	switch m {
	case FailGraded:
		return "graded"
	default:
		return "all_or_nothing"
	}
}

// ParseFailMode maps a configuration name to a FailMode.
//
// Postcondition: Returns (FailAllOrNothing, false) for unrecognized names.
func ParseFailMode(name string) (FailMode, bool) {
	switch name {
	case "all_or_nothing":
		return FailAllOrNothing, true
	case "graded":
		return FailGraded, true
	default:
		return FailAllOrNothing, false
	}
}

// GradedRules tunes the graded fail model. Nil fields are absent.
type GradedRules struct {
	MinorFailMaxDelta     *int
	MinorDamageMultiplier *float64
	MajorExtraDamage      *int
}

// FailModel is a profile's failure-damage rule.
type FailModel struct {
	Mode   FailMode
	Graded GradedRules
}

// SuccessReward is granted when a defense has at least one success.
type SuccessReward struct {
	ExtraActions int
}

// DefenseProfile describes how a defender resists attacks.
type DefenseProfile struct {
	// Type labels the profile; empty means "evade".
	Type string
	// StatKey names the defender attribute added to each roll; empty means DefaultStatKey.
	StatKey       string
	TNBase        int
	SuccessReward SuccessReward
	FailModel     FailModel
}

// AttackSpec describes an incoming attack being defended against.
type AttackSpec struct {
	Name string
	// Pattern is the raw pattern label, echoed in DefenseResult.Pattern;
	// empty means DefaultPattern.
	Pattern string
	TNBase  int
	// Dice is rolled in sum mode per attempt; nil means one d6.
	Dice []dice.DieSpec
	// N is the number of multi-hit attempts.
	N int
	// M is added to the target number.
	M int
	// V is the damage per multi-hit failure, or per point of miss on a single hit.
	V         int
	MinDamage *int
	MaxDamage *int
}

// DefenseResult holds the outcome of defending against one AttackSpec.
//
// Invariant: Successes + Failures == len(Rolls) == len(Breakdown) == len(TNBreakdown).
type DefenseResult struct {
	Pattern      string
	ProfileType  string
	TNBreakdown  []TargetNumberStep
	Rolls        []dice.Result
	Successes    int
	Failures     int
	DamageTaken  int
	ExtraActions int
	Breakdown    []AttemptStep
}

// ApplyFailModel converts base damage for a miss by delta under model.
//
// All-or-nothing returns base unchanged. Graded multiplies base by
// MinorDamageMultiplier (rounded half to even) when delta <= MinorFailMaxDelta,
// otherwise adds MajorExtraDamage. Absent graded rules leave base unchanged.
func ApplyFailModel(delta, base int, model FailModel) int {
	switch model.Mode {
	case FailGraded:
		rules := model.Graded
		if rules.MinorFailMaxDelta != nil && delta <= *rules.MinorFailMaxDelta {
			if rules.MinorDamageMultiplier != nil {
				return int(math.RoundToEven(float64(base) * *rules.MinorDamageMultiplier))
			}
			return base
		}
		if rules.MajorExtraDamage != nil {
			return base + *rules.MajorExtraDamage
		}
		return base
	case FailAllOrNothing:
		return base
	default:
		return base
	}
}

// ResolveDefense rolls defender against spec under profile.
//
// Every attempt uses TN = spec.TNBase + spec.M + profile.TNBase +
// ctx.EnemyMod() + ctx.DifficultyMod and Score = sum(spec.Dice) +
// defender.Stat(profile.StatKey). Multi-hit makes spec.N attempts, each
// failure costing ApplyFailModel(delta, spec.V). Single-hit makes one
// attempt; a failure costs ApplyFailModel(delta, delta*spec.V) clamped into
// [spec.MinDamage, spec.MaxDamage]. ExtraActions is granted once if any
// attempt succeeded.
//
// Precondition: src must be non-nil.
// Postcondition: Returns a fully populated DefenseResult.
func ResolveDefense(defender ActorStats, profile DefenseProfile, spec AttackSpec, ctx CombatContext, src dice.Source) DefenseResult {
	statKey := profile.StatKey
	if statKey == "" {
		statKey = DefaultStatKey
	}
	profileType := profile.Type
	if profileType == "" {
		profileType = DefaultStatKey
	}
	d := defense{
		stat:  defender.Stat(statKey),
		model: profile.FailModel,
		spec:  spec,
		pool:  poolOrDefault(spec.Dice),
		tn: TargetNumberStep{
			Base:          spec.TNBase,
			PatternMod:    spec.M,
			ProfileMod:    profile.TNBase,
			EnemyMod:      ctx.EnemyMod(),
			DifficultyMod: ctx.DifficultyMod,
		}.sum(),
		src: src,
	}

	pattern := spec.Pattern
	if pattern == "" {
		pattern = DefaultPattern
	}
	res := DefenseResult{
		Pattern:     pattern,
		ProfileType: profileType,
	}
	switch ParsePattern(spec.Pattern) {
	case PatternMultiHit:
		for i := 0; i < spec.N; i++ {
			d.attempt(&res, i, d.multiHitDamage)
		}
	case PatternSingleHit:
		d.attempt(&res, 0, d.singleHitDamage)
	default:
		d.attempt(&res, 0, d.singleHitDamage)
	}

	if res.Successes > 0 {
		res.ExtraActions = profile.SuccessReward.ExtraActions
	}
	return res
}

// defense carries the per-call quantities shared by every attempt.
type defense struct {
	stat  int
	model FailModel
	spec  AttackSpec
	pool  []dice.DieSpec
	tn    TargetNumberStep
	src   dice.Source
}

// attempt rolls once and folds the outcome into res.
func (d defense) attempt(res *DefenseResult, i int, damage func(delta int) DamageStep) {
	tn := d.tn
	tn.Attempt = i
	roll := dice.Resolve(d.pool, dice.Rules{Mode: dice.ModeSum}, d.src)
	score := roll.Final + d.stat
	delta := tn.Total - score

	step := AttemptStep{
		Attempt: i,
		TN:      tn.Total,
		Roll:    roll.Final,
		Score:   score,
		Success: score >= tn.Total,
		Delta:   delta,
	}
	if step.Success {
		res.Successes++
	} else {
		res.Failures++
		dmg := damage(delta)
		step.Damage = &dmg
		res.DamageTaken += dmg.Final
	}

	res.Rolls = append(res.Rolls, roll)
	res.TNBreakdown = append(res.TNBreakdown, tn)
	res.Breakdown = append(res.Breakdown, step)
}

// multiHitDamage applies the fail model to the flat per-hit damage V.
// No min/max clamp applies to multi-hit attempts.
func (d defense) multiHitDamage(delta int) DamageStep {
	after := ApplyFailModel(delta, d.spec.V, d.model)
	return DamageStep{
		Delta:          delta,
		BaseDamage:     d.spec.V,
		FailMode:       d.model.Mode.String(),
		AfterFailModel: after,
		Final:          after,
	}
}

// singleHitDamage scales V by the miss, applies the fail model, then clamps.
func (d defense) singleHitDamage(delta int) DamageStep {
	base := delta * d.spec.V
	after := ApplyFailModel(delta, base, d.model)
	final := after
	if d.spec.MinDamage != nil {
		final = max(*d.spec.MinDamage, final)
	}
	if d.spec.MaxDamage != nil {
		final = min(*d.spec.MaxDamage, final)
	}
	return DamageStep{
		Delta:          delta,
		BaseDamage:     base,
		FailMode:       d.model.Mode.String(),
		AfterFailModel: after,
		MinDamage:      d.spec.MinDamage,
		MaxDamage:      d.spec.MaxDamage,
		Final:          final,
	}
}

// Steps returns every attempt's target number, roll steps, and attempt record
// in resolution order.
func (r DefenseResult) Steps() []dice.Step {
	var steps []dice.Step
	for i := range r.Breakdown {
		steps = append(steps, r.TNBreakdown[i])
		steps = append(steps, r.Rolls[i].Breakdown...)
		steps = append(steps, r.Breakdown[i])
		if r.Breakdown[i].Damage != nil {
			steps = append(steps, *r.Breakdown[i].Damage)
		}
	}
	return steps
}
