package combat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/skirmish/internal/game/combat"
	"github.com/cory-johannsen/skirmish/internal/game/dice"
	"github.com/cory-johannsen/skirmish/internal/testutil"
)

func intPtr(v int) *int { return &v }

func TestResolveAttack_MissIgnoresCap(t *testing.T) {
	weapon := combat.WeaponSpec{
		Name:               "rifle",
		HitTNBase:          10,
		HitDice:            []dice.DieSpec{{Sides: 6, Count: 2}},
		WeakpointThreshold: 0,
		WeakpointScale:     1,
		WeakpointCap:       intPtr(3),
	}
	res := combat.ResolveAttack(
		combat.ActorStats{Accuracy: 5},
		weapon,
		combat.TargetSpec{EvasionMod: 2},
		combat.CombatContext{EnemyCount: 3, DifficultyMod: 1},
		testutil.NewScriptedSource(3, 5),
	)

	assert.Equal(t, 15, res.TN)
	assert.Equal(t, 8, res.Roll.Final)
	assert.Equal(t, 13, res.Score)
	assert.Equal(t, -2, res.Margin)
	assert.False(t, res.Hit)
	assert.Equal(t, 0, res.WeakpointBonus)
	assert.Equal(t, combat.TargetNumberStep{
		Base: 10, TargetMod: 2, EnemyMod: 2, DifficultyMod: 1, Total: 15,
	}, res.Breakdown.TargetNumber)
}

func TestResolveAttack_WeakpointBonusScaledAndCapped(t *testing.T) {
	weapon := combat.WeaponSpec{
		HitTNBase:          10,
		HitDice:            []dice.DieSpec{{Sides: 20, Count: 1}},
		WeakpointThreshold: 3,
		WeakpointScale:     2,
	}
	src := testutil.NewScriptedSource(18, 18)
	res := combat.ResolveAttack(combat.ActorStats{Accuracy: 2}, weapon, combat.TargetSpec{}, combat.CombatContext{EnemyCount: 1}, src)
	require.True(t, res.Hit)
	assert.Equal(t, 10, res.Margin)
	assert.Equal(t, 3, res.WeakpointBonus, "(10-3)/2 floors to 3")
	assert.Equal(t, combat.WeakpointStep{Threshold: 3, Scale: 2, RawMargin: 10, EffectiveMargin: 7, Bonus: 3}, res.Breakdown.Weakpoint)

	weapon.WeakpointCap = intPtr(2)
	res = combat.ResolveAttack(combat.ActorStats{Accuracy: 2}, weapon, combat.TargetSpec{}, combat.CombatContext{EnemyCount: 1}, src)
	assert.Equal(t, 2, res.WeakpointBonus)
	assert.Equal(t, 2, *res.Breakdown.Weakpoint.Cap)
}

func TestResolveAttack_ExactHitHasNoBonus(t *testing.T) {
	weapon := combat.WeaponSpec{HitTNBase: 4, WeakpointThreshold: 0, WeakpointScale: 1}
	res := combat.ResolveAttack(combat.ActorStats{}, weapon, combat.TargetSpec{}, combat.CombatContext{}, testutil.NewScriptedSource(4))
	assert.True(t, res.Hit)
	assert.Equal(t, 0, res.Margin)
	assert.Equal(t, 0, res.WeakpointBonus)
}

func TestResolveAttack_Defaults(t *testing.T) {
	src := testutil.NewScriptedSource(6)
	res := combat.ResolveAttack(combat.ActorStats{}, combat.WeaponSpec{HitTNBase: 3}, combat.TargetSpec{}, combat.CombatContext{}, src)

	assert.Equal(t, []int{6}, src.Sides(), "absent hit dice roll one d6")
	assert.Equal(t, 3, res.TN, "zero enemy count and difficulty add nothing")
	assert.Equal(t, 1, res.Breakdown.Weakpoint.Scale, "absent scale is 1")
	assert.Equal(t, 3, res.WeakpointBonus)
}

func TestResolveAttack_Steps(t *testing.T) {
	res := combat.ResolveAttack(combat.ActorStats{}, combat.WeaponSpec{HitTNBase: 3}, combat.TargetSpec{}, combat.CombatContext{}, testutil.NewScriptedSource(2))
	var kinds []dice.StepKind
	for _, s := range res.Steps() {
		kinds = append(kinds, s.Kind())
	}
	assert.Equal(t, []dice.StepKind{dice.StepTargetNumber, dice.StepInitialRoll, dice.StepReduce, dice.StepWeakpoint}, kinds)
}

func TestResolveAttack_Invariants(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		weapon := combat.WeaponSpec{
			HitTNBase:          rapid.IntRange(0, 30).Draw(rt, "tn_base"),
			HitDice:            []dice.DieSpec{{Sides: rapid.IntRange(2, 20).Draw(rt, "sides"), Count: rapid.IntRange(1, 4).Draw(rt, "count")}},
			WeakpointThreshold: rapid.IntRange(0, 10).Draw(rt, "threshold"),
			WeakpointScale:     rapid.IntRange(1, 5).Draw(rt, "scale"),
		}
		if rapid.Bool().Draw(rt, "capped") {
			weapon.WeakpointCap = intPtr(rapid.IntRange(0, 5).Draw(rt, "cap"))
		}
		ctx := combat.CombatContext{
			EnemyCount:    rapid.IntRange(0, 6).Draw(rt, "enemies"),
			DifficultyMod: rapid.IntRange(-3, 3).Draw(rt, "difficulty"),
		}
		attacker := combat.ActorStats{Accuracy: rapid.IntRange(-5, 10).Draw(rt, "accuracy")}
		target := combat.TargetSpec{EvasionMod: rapid.IntRange(-3, 5).Draw(rt, "evasion")}

		res := combat.ResolveAttack(attacker, weapon, target, ctx, dice.NewSeededSource(rapid.Int64().Draw(rt, "seed")))

		assert.Equal(rt, res.Breakdown.TargetNumber.Total, res.TN)
		assert.Equal(rt, res.Roll.Final+attacker.Accuracy, res.Score)
		assert.Equal(rt, res.Score-res.TN, res.Margin)
		assert.Equal(rt, res.Score >= res.TN, res.Hit)
		assert.GreaterOrEqual(rt, res.WeakpointBonus, 0)
		if !res.Hit {
			assert.Equal(rt, 0, res.WeakpointBonus)
		}
		if weapon.WeakpointCap != nil {
			assert.LessOrEqual(rt, res.WeakpointBonus, *weapon.WeakpointCap)
		}
	})
}

func TestActorStats_Stat(t *testing.T) {
	a := combat.ActorStats{Accuracy: 1, Evade: 2, Block: 3, HP: 4, Extra: map[string]int{"parry": 5}}
	assert.Equal(t, 1, a.Stat("accuracy"))
	assert.Equal(t, 2, a.Stat("evade"))
	assert.Equal(t, 3, a.Stat("block"))
	assert.Equal(t, 4, a.Stat("hp"))
	assert.Equal(t, 5, a.Stat("parry"))
	assert.Equal(t, 0, a.Stat("luck"))
}

func TestCombatContext_EnemyMod(t *testing.T) {
	assert.Equal(t, 0, combat.CombatContext{}.EnemyMod())
	assert.Equal(t, 0, combat.CombatContext{EnemyCount: 1}.EnemyMod())
	assert.Equal(t, 3, combat.CombatContext{EnemyCount: 4}.EnemyMod())
}
