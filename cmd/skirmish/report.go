package main

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/skirmish/internal/game/combat"
	"github.com/cory-johannsen/skirmish/internal/game/dice"
)

// renderedStep tags a breakdown step with its kind so the YAML output is
// self-describing.
type renderedStep struct {
	Kind   dice.StepKind `yaml:"step"`
	Detail dice.Step     `yaml:"detail"`
}

func renderSteps(steps []dice.Step) []renderedStep {
	out := make([]renderedStep, len(steps))
	for i, s := range steps {
		out[i] = renderedStep{Kind: s.Kind(), Detail: s}
	}
	return out
}

type diceReport struct {
	ResolutionID string         `yaml:"resolution_id"`
	Pool         string         `yaml:"pool"`
	Rolls        []dice.DieRoll `yaml:"rolls"`
	Final        int            `yaml:"final"`
	Meta         dice.Meta      `yaml:"meta"`
	Breakdown    []renderedStep `yaml:"breakdown"`
}

func newDiceReport(id string, pool dice.Pool, res dice.Result) diceReport {
	return diceReport{
		ResolutionID: id,
		Pool:         pool.String(),
		Rolls:        res.Rolls,
		Final:        res.Final,
		Meta:         res.Meta,
		Breakdown:    renderSteps(res.Breakdown),
	}
}

type attackReport struct {
	ResolutionID   string         `yaml:"resolution_id"`
	Attacker       string         `yaml:"attacker"`
	Weapon         string         `yaml:"weapon"`
	Target         string         `yaml:"target"`
	Hit            bool           `yaml:"hit"`
	TN             int            `yaml:"tn"`
	Rolls          []int          `yaml:"rolls"`
	Score          int            `yaml:"score"`
	Margin         int            `yaml:"margin"`
	WeakpointBonus int            `yaml:"weakpoint_bonus"`
	Breakdown      []renderedStep `yaml:"breakdown"`
}

func newAttackReport(id, attacker, weapon, target string, res combat.AttackResult) attackReport {
	return attackReport{
		ResolutionID:   id,
		Attacker:       attacker,
		Weapon:         weapon,
		Target:         target,
		Hit:            res.Hit,
		TN:             res.TN,
		Rolls:          res.Roll.Values(),
		Score:          res.Score,
		Margin:         res.Margin,
		WeakpointBonus: res.WeakpointBonus,
		Breakdown:      renderSteps(res.Steps()),
	}
}

type defenseReport struct {
	ResolutionID string         `yaml:"resolution_id"`
	Defender     string         `yaml:"defender"`
	Profile      string         `yaml:"profile"`
	Attack       string         `yaml:"attack"`
	Pattern      string         `yaml:"pattern"`
	ProfileType  string         `yaml:"profile_type"`
	Successes    int            `yaml:"successes"`
	Failures     int            `yaml:"failures"`
	DamageTaken  int            `yaml:"damage_taken"`
	ExtraActions int            `yaml:"extra_actions"`
	Breakdown    []renderedStep `yaml:"breakdown"`
}

func newDefenseReport(id, defender, profile, attack string, res combat.DefenseResult) defenseReport {
	return defenseReport{
		ResolutionID: id,
		Defender:     defender,
		Profile:      profile,
		Attack:       attack,
		Pattern:      res.Pattern,
		ProfileType:  res.ProfileType,
		Successes:    res.Successes,
		Failures:     res.Failures,
		DamageTaken:  res.DamageTaken,
		ExtraActions: res.ExtraActions,
		Breakdown:    renderSteps(res.Steps()),
	}
}

// writeReport encodes report to w as a single YAML document.
func writeReport(w io.Writer, report any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return enc.Close()
}
