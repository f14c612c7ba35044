package combat

import "github.com/cory-johannsen/skirmish/internal/game/dice"

// WeaponSpec describes the hit and weakpoint tuning of a weapon.
type WeaponSpec struct {
	Name      string
	HitTNBase int
	// HitDice is rolled in sum mode; nil means one d6.
	HitDice            []dice.DieSpec
	WeakpointThreshold int
	// WeakpointScale divides the weakpoint margin; values <= 0 mean 1.
	WeakpointScale int
	WeakpointCap   *int
	// DamageBase and DamageScale are carried for damage layers outside the
	// hit formula and are not read by ResolveAttack.
	DamageBase  *int
	DamageScale *float64
}

// TargetSpec describes the defender side of an attack roll.
type TargetSpec struct {
	EvasionMod int
	Tags       []string
}

// AttackBreakdown records the target number parts and weakpoint calculation.
type AttackBreakdown struct {
	TargetNumber TargetNumberStep `yaml:"target_number"`
	Weakpoint    WeakpointStep    `yaml:"weakpoint"`
}

// AttackResult holds the outcome of a single attack roll.
//
// Invariant: Margin == Score - TN; Hit == (Score >= TN).
// Invariant: WeakpointBonus == 0 when Hit is false.
type AttackResult struct {
	Hit            bool
	TN             int
	Roll           dice.Result
	Score          int
	Margin         int
	WeakpointBonus int
	Breakdown      AttackBreakdown
}

// ResolveAttack rolls attacker's weapon against target.
//
// TN = weapon.HitTNBase + target.EvasionMod + ctx.EnemyMod() + ctx.DifficultyMod.
// Score = sum(weapon.HitDice) + attacker.Accuracy.
// On a hit, WeakpointBonus = max(0, Margin-WeakpointThreshold) / WeakpointScale,
// clamped to WeakpointCap when one is set.
//
// Precondition: src must be non-nil.
// Postcondition: Returns a fully populated AttackResult; src is drawn once per hit die.
func ResolveAttack(attacker ActorStats, weapon WeaponSpec, target TargetSpec, ctx CombatContext, src dice.Source) AttackResult {
	tn := TargetNumberStep{
		Base:          weapon.HitTNBase,
		TargetMod:     target.EvasionMod,
		EnemyMod:      ctx.EnemyMod(),
		DifficultyMod: ctx.DifficultyMod,
	}.sum()

	roll := dice.Resolve(poolOrDefault(weapon.HitDice), dice.Rules{Mode: dice.ModeSum}, src)
	score := roll.Final + attacker.Accuracy
	margin := score - tn.Total
	hit := score >= tn.Total

	scale := weapon.WeakpointScale
	if scale <= 0 {
		scale = 1
	}
	effective := max(0, margin-weapon.WeakpointThreshold)
	bonus := 0
	if hit {
		bonus = effective / scale
	}
	if weapon.WeakpointCap != nil {
		bonus = min(bonus, *weapon.WeakpointCap)
	}

	return AttackResult{
		Hit:            hit,
		TN:             tn.Total,
		Roll:           roll,
		Score:          score,
		Margin:         margin,
		WeakpointBonus: bonus,
		Breakdown: AttackBreakdown{
			TargetNumber: tn,
			Weakpoint: WeakpointStep{
				Threshold:       weapon.WeakpointThreshold,
				Scale:           scale,
				Cap:             weapon.WeakpointCap,
				RawMargin:       margin,
				EffectiveMargin: effective,
				Bonus:           bonus,
			},
		},
	}
}

// Steps returns the attack breakdown followed by the hit roll's steps, in the
// order they were computed.
func (r AttackResult) Steps() []dice.Step {
	steps := make([]dice.Step, 0, len(r.Roll.Breakdown)+2)
	steps = append(steps, r.Breakdown.TargetNumber)
	steps = append(steps, r.Roll.Breakdown...)
	steps = append(steps, r.Breakdown.Weakpoint)
	return steps
}
