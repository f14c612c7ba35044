package ruleset

import "github.com/cory-johannsen/skirmish/internal/game/combat"

// WeaponDef defines a weapon's hit and weakpoint tuning loaded from YAML.
//
// Precondition: ID must be non-empty after loading.
type WeaponDef struct {
	ID                 string  `yaml:"id"`
	Name               string  `yaml:"name"`
	HitTNBase          int     `yaml:"hit_tn_base"`
	HitDice            PoolDef `yaml:"hit_dice"`
	WeakpointThreshold int     `yaml:"weakpoint_threshold"`
	// WeakpointScale is nil when absent, which means 1.
	WeakpointScale *int     `yaml:"weakpoint_scale"`
	WeakpointCap   *int     `yaml:"weakpoint_cap"`
	DamageBase     *int     `yaml:"damage_base"`
	DamageScale    *float64 `yaml:"damage_scale"`
}

// Validate checks that the WeaponDef satisfies its invariants.
//
// Postcondition: returns nil iff all fields are valid.
func (w *WeaponDef) Validate() error {
	v := &violations{source: w.ID}
	if w.ID == "" {
		v.add("id", "must not be empty")
	}
	w.HitDice.validate(v, "hit_dice")
	if w.WeakpointScale != nil && *w.WeakpointScale < 1 {
		v.add("weakpoint_scale", "must be >= 1, got %d", *w.WeakpointScale)
	}
	if w.WeakpointCap != nil && *w.WeakpointCap < 0 {
		v.add("weakpoint_cap", "must be >= 0, got %d", *w.WeakpointCap)
	}
	return v.err()
}

// Spec converts the definition into a combat.WeaponSpec.
func (w *WeaponDef) Spec() combat.WeaponSpec {
	scale := 1
	if w.WeakpointScale != nil {
		scale = *w.WeakpointScale
	}
	name := w.Name
	if name == "" {
		name = w.ID
	}
	return combat.WeaponSpec{
		Name:               name,
		HitTNBase:          w.HitTNBase,
		HitDice:            w.HitDice.Pool(),
		WeakpointThreshold: w.WeakpointThreshold,
		WeakpointScale:     scale,
		WeakpointCap:       w.WeakpointCap,
		DamageBase:         w.DamageBase,
		DamageScale:        w.DamageScale,
	}
}

// TargetDef defines an attack target loaded from YAML.
type TargetDef struct {
	ID         string   `yaml:"id"`
	Name       string   `yaml:"name"`
	EvasionMod int      `yaml:"evasion_mod"`
	Tags       []string `yaml:"tags"`
}

// Validate checks that the TargetDef satisfies its invariants.
func (t *TargetDef) Validate() error {
	v := &violations{source: t.ID}
	if t.ID == "" {
		v.add("id", "must not be empty")
	}
	return v.err()
}

// Spec converts the definition into a combat.TargetSpec.
func (t *TargetDef) Spec() combat.TargetSpec {
	return combat.TargetSpec{EvasionMod: t.EvasionMod, Tags: t.Tags}
}

// ActorDef defines an attacker's or defender's attributes loaded from YAML.
type ActorDef struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	Accuracy int    `yaml:"accuracy"`
	Evade    int    `yaml:"evade"`
	Block    int    `yaml:"block"`
	HP       int    `yaml:"hp"`
	// Stats holds any further attributes a defense profile may name.
	Stats map[string]int `yaml:"stats"`
}

// Validate checks that the ActorDef satisfies its invariants.
func (a *ActorDef) Validate() error {
	v := &violations{source: a.ID}
	if a.ID == "" {
		v.add("id", "must not be empty")
	}
	if a.HP < 0 {
		v.add("hp", "must be >= 0, got %d", a.HP)
	}
	for _, named := range []string{"accuracy", "evade", "block", "hp"} {
		if _, ok := a.Stats[named]; ok {
			v.add("stats."+named, "shadows the top-level %s field", named)
		}
	}
	return v.err()
}

// Spec converts the definition into combat.ActorStats.
func (a *ActorDef) Spec() combat.ActorStats {
	return combat.ActorStats{
		Accuracy: a.Accuracy,
		Evade:    a.Evade,
		Block:    a.Block,
		HP:       a.HP,
		Extra:    a.Stats,
	}
}
