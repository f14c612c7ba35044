package ruleset

import (
	"github.com/cory-johannsen/skirmish/internal/game/combat"
)

// knownPatterns lists the attack pattern labels accepted at load time.
var knownPatterns = map[string]bool{"multi_hit": true, "heavy_hit": true, "single_hit": true}

// GradedRulesDef is the YAML form of combat.GradedRules.
type GradedRulesDef struct {
	MinorFailMaxDelta     *int     `yaml:"minor_fail_max_delta"`
	MinorDamageMultiplier *float64 `yaml:"minor_damage_multiplier"`
	MajorExtraDamage      *int     `yaml:"major_extra_damage"`
}

// FailModelDef is the YAML form of combat.FailModel. An empty mode means
// "all_or_nothing".
type FailModelDef struct {
	Mode        string         `yaml:"mode"`
	GradedRules GradedRulesDef `yaml:"graded_rules"`
}

// SuccessRewardDef is the YAML form of combat.SuccessReward.
type SuccessRewardDef struct {
	ExtraActions int `yaml:"extra_actions"`
}

// DefenseProfileDef defines how a defender resists attacks, loaded from YAML.
//
// Precondition: ID must be non-empty after loading.
type DefenseProfileDef struct {
	ID            string           `yaml:"id"`
	Type          string           `yaml:"type"`
	StatKey       string           `yaml:"stat_key"`
	TNBase        int              `yaml:"tn_base"`
	SuccessReward SuccessRewardDef `yaml:"success_reward"`
	FailModel     *FailModelDef    `yaml:"fail_model"`
}

// Validate checks that the DefenseProfileDef satisfies its invariants.
func (d *DefenseProfileDef) Validate() error {
	v := &violations{source: d.ID}
	if d.ID == "" {
		v.add("id", "must not be empty")
	}
	if d.SuccessReward.ExtraActions < 0 {
		v.add("success_reward.extra_actions", "must be >= 0, got %d", d.SuccessReward.ExtraActions)
	}
	if fm := d.FailModel; fm != nil {
		if fm.Mode != "" {
			if _, ok := combat.ParseFailMode(fm.Mode); !ok {
				v.add("fail_model.mode", "must be one of [all_or_nothing, graded], got %q", fm.Mode)
			}
		}
		g := fm.GradedRules
		if g.MinorFailMaxDelta != nil && *g.MinorFailMaxDelta < 0 {
			v.add("fail_model.graded_rules.minor_fail_max_delta", "must be >= 0, got %d", *g.MinorFailMaxDelta)
		}
		if g.MinorDamageMultiplier != nil && *g.MinorDamageMultiplier < 0 {
			v.add("fail_model.graded_rules.minor_damage_multiplier", "must be >= 0, got %g", *g.MinorDamageMultiplier)
		}
	}
	return v.err()
}

// Profile converts the definition into a combat.DefenseProfile.
func (d *DefenseProfileDef) Profile() combat.DefenseProfile {
	p := combat.DefenseProfile{
		Type:          d.Type,
		StatKey:       d.StatKey,
		TNBase:        d.TNBase,
		SuccessReward: combat.SuccessReward{ExtraActions: d.SuccessReward.ExtraActions},
	}
	if d.FailModel != nil {
		mode, _ := combat.ParseFailMode(d.FailModel.Mode)
		p.FailModel = combat.FailModel{
			Mode: mode,
			Graded: combat.GradedRules{
				MinorFailMaxDelta:     d.FailModel.GradedRules.MinorFailMaxDelta,
				MinorDamageMultiplier: d.FailModel.GradedRules.MinorDamageMultiplier,
				MajorExtraDamage:      d.FailModel.GradedRules.MajorExtraDamage,
			},
		}
	}
	return p
}

// AttackDef defines an incoming attack loaded from YAML.
//
// Precondition: ID must be non-empty after loading.
type AttackDef struct {
	ID        string  `yaml:"id"`
	Name      string  `yaml:"name"`
	Pattern   string  `yaml:"pattern"`
	TNBase    int     `yaml:"tn_base"`
	Dice      PoolDef `yaml:"dice"`
	N         int     `yaml:"n"`
	M         int     `yaml:"m"`
	V         int     `yaml:"v"`
	MinDamage *int    `yaml:"min_damage"`
	MaxDamage *int    `yaml:"max_damage"`
}

// Validate checks that the AttackDef satisfies its invariants.
func (a *AttackDef) Validate() error {
	v := &violations{source: a.ID}
	if a.ID == "" {
		v.add("id", "must not be empty")
	}
	if a.Pattern != "" && !knownPatterns[a.Pattern] {
		v.add("pattern", "must be one of [multi_hit, heavy_hit, single_hit], got %q", a.Pattern)
	}
	a.Dice.validate(v, "dice")
	if a.N < 0 {
		v.add("n", "must be >= 0, got %d", a.N)
	}
	if a.V < 0 {
		v.add("v", "must be >= 0, got %d", a.V)
	}
	if a.MinDamage != nil && a.MaxDamage != nil && *a.MinDamage > *a.MaxDamage {
		v.add("min_damage", "must not exceed max_damage (%d > %d)", *a.MinDamage, *a.MaxDamage)
	}
	return v.err()
}

// Spec converts the definition into a combat.AttackSpec.
func (a *AttackDef) Spec() combat.AttackSpec {
	name := a.Name
	if name == "" {
		name = a.ID
	}
	return combat.AttackSpec{
		Name:      name,
		Pattern:   a.Pattern,
		TNBase:    a.TNBase,
		Dice:      a.Dice.Pool(),
		N:         a.N,
		M:         a.M,
		V:         a.V,
		MinDamage: a.MinDamage,
		MaxDamage: a.MaxDamage,
	}
}
