package ruleset

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/skirmish/internal/game/dice"
)

// PoolDef is a dice pool in YAML, written either as an expression string
// ("2d6+1d8") or as a list of {sides, count} groups.
type PoolDef []dice.DieSpec

// UnmarshalYAML implements yaml.Unmarshaler.
func (p *PoolDef) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		pool, err := dice.ParsePool(node.Value)
		if err != nil {
			return &ConfigError{Field: fmt.Sprintf("line %d", node.Line), Reason: err.Error()}
		}
		*p = PoolDef(pool)
		return nil
	}
	var specs []dice.DieSpec
	if err := node.Decode(&specs); err != nil {
		return err
	}
	if specs == nil {
		specs = []dice.DieSpec{}
	}
	*p = specs
	return nil
}

// Pool returns the definition as a dice pool; a nil PoolDef yields nil so
// the resolver default applies.
func (p PoolDef) Pool() []dice.DieSpec {
	if p == nil {
		return nil
	}
	return []dice.DieSpec(p)
}

func (p PoolDef) validate(v *violations, field string) {
	total := 0
	for i, spec := range p {
		if spec.Sides < 1 {
			v.add(fmt.Sprintf("%s[%d].sides", field, i), "must be >= 1, got %d", spec.Sides)
		}
		if spec.Count < 0 {
			v.add(fmt.Sprintf("%s[%d].count", field, i), "must be >= 0, got %d", spec.Count)
			continue
		}
		if total <= dice.MaxPoolDice {
			total += min(spec.Count, dice.MaxPoolDice+1)
		}
	}
	if total > dice.MaxPoolDice {
		v.add(field, "must hold at most %d dice", dice.MaxPoolDice)
	}
}

// RerollDef is the YAML form of a dice.RerollRule.
type RerollDef struct {
	Times    int    `yaml:"times"`
	Strategy string `yaml:"strategy"`
	Indexes  []int  `yaml:"indexes"`
}

// RulesDef is the YAML form of dice.Rules. An empty mode means "sum".
type RulesDef struct {
	Mode      string     `yaml:"mode"`
	TopN      int        `yaml:"top_n"`
	Threshold int        `yaml:"threshold"`
	Reroll    *RerollDef `yaml:"reroll"`
}

// Validate checks that the rules name a known mode and strategy and carry no
// negative counts.
//
// Postcondition: Returns nil iff Rules() would reflect every configured value.
func (r RulesDef) Validate() error {
	v := &violations{source: "rules"}
	if r.Mode != "" {
		if _, ok := dice.ParseMode(r.Mode); !ok {
			v.add("mode", "unknown mode %q", r.Mode)
		}
	}
	if r.TopN < 0 {
		v.add("top_n", "must be >= 0, got %d", r.TopN)
	}
	if r.Reroll != nil {
		if r.Reroll.Times < 0 {
			v.add("reroll.times", "must be >= 0, got %d", r.Reroll.Times)
		}
		if _, ok := dice.ParseStrategy(r.Reroll.Strategy); !ok {
			v.add("reroll.strategy", "unknown strategy %q", r.Reroll.Strategy)
		}
		for i, idx := range r.Reroll.Indexes {
			if idx < 0 {
				v.add(fmt.Sprintf("reroll.indexes[%d]", i), "must be >= 0, got %d", idx)
			}
		}
	}
	return v.err()
}

// Rules converts the definition into dice.Rules.
//
// Precondition: Validate() returned nil; otherwise unknown names fall back to
// the resolver defaults.
func (r RulesDef) Rules() dice.Rules {
	mode, _ := dice.ParseMode(r.Mode)
	rules := dice.Rules{Mode: mode, TopN: r.TopN, Threshold: r.Threshold}
	if r.Reroll != nil {
		strategy, _ := dice.ParseStrategy(r.Reroll.Strategy)
		rules.Reroll = &dice.RerollRule{
			Times:    r.Reroll.Times,
			Strategy: strategy,
			Indexes:  append([]int(nil), r.Reroll.Indexes...),
		}
	}
	return rules
}

// ValidatePool checks a pool built outside YAML, such as from CLI flags.
func ValidatePool(pool []dice.DieSpec) error {
	v := &violations{source: "pool"}
	PoolDef(pool).validate(v, "dice")
	return v.err()
}
