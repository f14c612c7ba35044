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

func floatPtr(v float64) *float64 { return &v }

func heavyHit() combat.AttackSpec {
	return combat.AttackSpec{
		Name:    "overhead smash",
		Pattern: "heavy_hit",
		TNBase:  10,
		Dice:    []dice.DieSpec{{Sides: 6, Count: 1}},
		M:       0,
		V:       2,
	}
}

func evadeProfile() combat.DefenseProfile {
	return combat.DefenseProfile{
		Type:          "evade",
		StatKey:       "evade",
		TNBase:        2,
		SuccessReward: combat.SuccessReward{ExtraActions: 1},
	}
}

func TestResolveDefense_SingleHitFailure(t *testing.T) {
	res := combat.ResolveDefense(
		combat.ActorStats{Evade: 5},
		evadeProfile(),
		heavyHit(),
		combat.CombatContext{EnemyCount: 1},
		testutil.NewScriptedSource(4),
	)

	assert.Equal(t, "heavy_hit", res.Pattern)
	assert.Equal(t, "evade", res.ProfileType)
	require.Len(t, res.Rolls, 1)
	require.Len(t, res.TNBreakdown, 1)
	assert.Equal(t, 12, res.TNBreakdown[0].Total)
	assert.Equal(t, 0, res.Successes)
	assert.Equal(t, 1, res.Failures)
	assert.Equal(t, 6, res.DamageTaken, "delta 3 times V 2")
	assert.Equal(t, 0, res.ExtraActions)

	require.Len(t, res.Breakdown, 1)
	step := res.Breakdown[0]
	assert.Equal(t, 9, step.Score)
	assert.Equal(t, 3, step.Delta)
	require.NotNil(t, step.Damage)
	assert.Equal(t, 6, step.Damage.BaseDamage)
	assert.Equal(t, "all_or_nothing", step.Damage.FailMode)
}

func TestResolveDefense_SingleHitClamps(t *testing.T) {
	spec := heavyHit()
	spec.MaxDamage = intPtr(5)
	res := combat.ResolveDefense(combat.ActorStats{Evade: 5}, evadeProfile(), spec, combat.CombatContext{}, testutil.NewScriptedSource(4))
	assert.Equal(t, 5, res.DamageTaken)
	assert.Equal(t, 6, res.Breakdown[0].Damage.AfterFailModel)
	assert.Equal(t, 5, res.Breakdown[0].Damage.Final)

	spec = heavyHit()
	spec.MinDamage = intPtr(10)
	res = combat.ResolveDefense(combat.ActorStats{Evade: 5}, evadeProfile(), spec, combat.CombatContext{}, testutil.NewScriptedSource(4))
	assert.Equal(t, 10, res.DamageTaken)
}

func TestResolveDefense_SingleHitSuccess(t *testing.T) {
	res := combat.ResolveDefense(combat.ActorStats{Evade: 6}, evadeProfile(), heavyHit(), combat.CombatContext{}, testutil.NewScriptedSource(6))
	assert.Equal(t, 1, res.Successes)
	assert.Equal(t, 0, res.Failures)
	assert.Equal(t, 0, res.DamageTaken)
	assert.Equal(t, 1, res.ExtraActions)
	assert.Nil(t, res.Breakdown[0].Damage)
}

func TestResolveDefense_SingleHitGraded(t *testing.T) {
	profile := evadeProfile()
	profile.FailModel = combat.FailModel{
		Mode: combat.FailGraded,
		Graded: combat.GradedRules{
			MinorFailMaxDelta:     intPtr(3),
			MinorDamageMultiplier: floatPtr(0.5),
			MajorExtraDamage:      intPtr(4),
		},
	}
	// Miss by 3: minor, 6 * 0.5 = 3.
	res := combat.ResolveDefense(combat.ActorStats{Evade: 5}, profile, heavyHit(), combat.CombatContext{}, testutil.NewScriptedSource(4))
	assert.Equal(t, 3, res.DamageTaken)

	// Miss by 6: major, 12 + 4 = 16.
	res = combat.ResolveDefense(combat.ActorStats{Evade: 5}, profile, heavyHit(), combat.CombatContext{}, testutil.NewScriptedSource(1))
	assert.Equal(t, 16, res.DamageTaken)
}

func TestResolveDefense_DefaultsAndStatKey(t *testing.T) {
	src := testutil.NewScriptedSource(1)
	res := combat.ResolveDefense(
		combat.ActorStats{Evade: 100, Block: 3},
		combat.DefenseProfile{StatKey: "block"},
		combat.AttackSpec{TNBase: 5, V: 1},
		combat.CombatContext{},
		src,
	)
	assert.Equal(t, []int{6}, src.Sides(), "absent dice roll one d6")
	assert.Equal(t, combat.DefaultPattern, res.Pattern)
	assert.Equal(t, "evade", res.ProfileType)
	assert.Equal(t, 4, res.Breakdown[0].Score)
	assert.Equal(t, 1, res.DamageTaken)

	res = combat.ResolveDefense(combat.ActorStats{Evade: 4}, combat.DefenseProfile{}, combat.AttackSpec{TNBase: 5}, combat.CombatContext{}, testutil.NewScriptedSource(1))
	assert.Equal(t, 5, res.Breakdown[0].Score, "absent stat key reads evade")
	assert.Equal(t, 1, res.Successes)
}

func TestResolveDefense_UnknownPatternIsSingleHit(t *testing.T) {
	spec := heavyHit()
	spec.Pattern = "sweep"
	spec.N = 4
	res := combat.ResolveDefense(combat.ActorStats{}, evadeProfile(), spec, combat.CombatContext{}, testutil.NewScriptedSource(1))
	assert.Equal(t, "sweep", res.Pattern)
	assert.Len(t, res.Rolls, 1)
}

func TestResolveDefense_MultiHit(t *testing.T) {
	spec := combat.AttackSpec{
		Name:      "flurry",
		Pattern:   "multi_hit",
		TNBase:    8,
		Dice:      []dice.DieSpec{{Sides: 6, Count: 1}},
		N:         3,
		M:         1,
		V:         2,
		MaxDamage: intPtr(1),
	}
	profile := combat.DefenseProfile{Type: "parry", SuccessReward: combat.SuccessReward{ExtraActions: 2}}
	res := combat.ResolveDefense(combat.ActorStats{Evade: 3}, profile, spec, combat.CombatContext{}, testutil.NewScriptedSource(6, 2, 5))

	assert.Equal(t, "multi_hit", res.Pattern)
	assert.Equal(t, "parry", res.ProfileType)
	require.Len(t, res.Rolls, 3)
	assert.Equal(t, 1, res.Successes)
	assert.Equal(t, 2, res.Failures)
	assert.Equal(t, 4, res.DamageTaken, "flat V per failure, no max clamp")
	assert.Equal(t, 2, res.ExtraActions)
	for i, tn := range res.TNBreakdown {
		assert.Equal(t, i, tn.Attempt)
		assert.Equal(t, 9, tn.Total)
	}
	assert.Equal(t, []int{0, 4, 1}, []int{res.Breakdown[0].Delta, res.Breakdown[1].Delta, res.Breakdown[2].Delta})
}

func TestResolveDefense_MultiHitGraded(t *testing.T) {
	spec := combat.AttackSpec{Pattern: "multi_hit", TNBase: 9, N: 3, V: 2}
	profile := combat.DefenseProfile{FailModel: combat.FailModel{
		Mode: combat.FailGraded,
		Graded: combat.GradedRules{
			MinorFailMaxDelta:     intPtr(1),
			MinorDamageMultiplier: floatPtr(0.5),
			MajorExtraDamage:      intPtr(3),
		},
	}}
	res := combat.ResolveDefense(combat.ActorStats{Evade: 3}, profile, spec, combat.CombatContext{}, testutil.NewScriptedSource(6, 2, 5))
	// delta 4 is major: 2+3 = 5. delta 1 is minor: round(2*0.5) = 1.
	assert.Equal(t, 6, res.DamageTaken)
	assert.Equal(t, 0, res.ExtraActions)
}

func TestResolveDefense_MultiHitZeroAttempts(t *testing.T) {
	src := testutil.NewScriptedSource()
	res := combat.ResolveDefense(combat.ActorStats{}, evadeProfile(), combat.AttackSpec{Pattern: "multi_hit"}, combat.CombatContext{}, src)
	assert.Empty(t, res.Rolls)
	assert.Equal(t, 0, res.Successes+res.Failures)
	assert.Equal(t, 0, res.ExtraActions)
	assert.Equal(t, 0, src.Draws())
}

func TestResolveDefense_MultiHitInvariants(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(0, 12).Draw(rt, "n")
		spec := combat.AttackSpec{
			Pattern: "multi_hit",
			TNBase:  rapid.IntRange(0, 20).Draw(rt, "tn_base"),
			Dice:    []dice.DieSpec{{Sides: rapid.IntRange(2, 12).Draw(rt, "sides"), Count: rapid.IntRange(1, 3).Draw(rt, "count")}},
			N:       n,
			M:       rapid.IntRange(-2, 4).Draw(rt, "m"),
			V:       rapid.IntRange(0, 5).Draw(rt, "v"),
		}
		profile := combat.DefenseProfile{
			TNBase:        rapid.IntRange(0, 4).Draw(rt, "profile_tn"),
			SuccessReward: combat.SuccessReward{ExtraActions: rapid.IntRange(0, 3).Draw(rt, "extra")},
		}
		ctx := combat.CombatContext{EnemyCount: rapid.IntRange(1, 5).Draw(rt, "enemies")}
		res := combat.ResolveDefense(combat.ActorStats{Evade: rapid.IntRange(0, 6).Draw(rt, "evade")}, profile, spec, ctx, dice.NewSeededSource(rapid.Int64().Draw(rt, "seed")))

		assert.Equal(rt, n, res.Successes+res.Failures)
		assert.Len(rt, res.Rolls, n)
		assert.Len(rt, res.Breakdown, n)
		for _, tn := range res.TNBreakdown {
			assert.Equal(rt, res.TNBreakdown[0].Total, tn.Total)
		}
		assert.Equal(rt, res.Failures*spec.V, res.DamageTaken)
		if res.Successes > 0 {
			assert.Equal(rt, profile.SuccessReward.ExtraActions, res.ExtraActions)
		} else {
			assert.Equal(rt, 0, res.ExtraActions)
		}
	})
}

func TestResolveDefense_Steps(t *testing.T) {
	res := combat.ResolveDefense(combat.ActorStats{Evade: 5}, evadeProfile(), heavyHit(), combat.CombatContext{}, testutil.NewScriptedSource(4))
	var kinds []dice.StepKind
	for _, s := range res.Steps() {
		kinds = append(kinds, s.Kind())
	}
	assert.Equal(t, []dice.StepKind{
		dice.StepTargetNumber, dice.StepInitialRoll, dice.StepReduce, dice.StepAttempt, dice.StepDamage,
	}, kinds)
}

func TestApplyFailModel(t *testing.T) {
	graded := func(r combat.GradedRules) combat.FailModel {
		return combat.FailModel{Mode: combat.FailGraded, Graded: r}
	}
	assert.Equal(t, 7, combat.ApplyFailModel(1, 7, combat.FailModel{}))
	assert.Equal(t, 7, combat.ApplyFailModel(1, 7, combat.FailModel{Mode: combat.FailMode(9)}))
	assert.Equal(t, 7, combat.ApplyFailModel(1, 7, graded(combat.GradedRules{})))
	assert.Equal(t, 7, combat.ApplyFailModel(1, 7, graded(combat.GradedRules{MinorFailMaxDelta: intPtr(2)})), "minor without multiplier keeps base")
	assert.Equal(t, 7, combat.ApplyFailModel(3, 7, graded(combat.GradedRules{MinorFailMaxDelta: intPtr(2)})), "major without extra keeps base")
	assert.Equal(t, 10, combat.ApplyFailModel(3, 7, graded(combat.GradedRules{MinorFailMaxDelta: intPtr(2), MajorExtraDamage: intPtr(3)})))
	assert.Equal(t, 10, combat.ApplyFailModel(1, 7, graded(combat.GradedRules{MajorExtraDamage: intPtr(3)})), "no minor band means every miss is major")

	half := graded(combat.GradedRules{MinorFailMaxDelta: intPtr(2), MinorDamageMultiplier: floatPtr(0.5)})
	assert.Equal(t, 2, combat.ApplyFailModel(2, 5, half), "2.5 rounds half to even")
	assert.Equal(t, 4, combat.ApplyFailModel(2, 7, half), "3.5 rounds half to even")
	assert.Equal(t, 3, combat.ApplyFailModel(2, 6, half))
}

func TestParsePatternAndFailMode(t *testing.T) {
	assert.Equal(t, combat.PatternMultiHit, combat.ParsePattern("multi_hit"))
	assert.Equal(t, combat.PatternSingleHit, combat.ParsePattern("heavy_hit"))
	assert.Equal(t, combat.PatternSingleHit, combat.ParsePattern(""))

	m, ok := combat.ParseFailMode("graded")
	assert.True(t, ok)
	assert.Equal(t, combat.FailGraded, m)
	m, ok = combat.ParseFailMode("partial")
	assert.False(t, ok)
	assert.Equal(t, combat.FailAllOrNothing, m)
}
