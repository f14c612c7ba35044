package combat

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/skirmish/internal/game/dice"
)

// Resolver runs attack and defense resolutions against one Source and logs a
// summary of each at debug level.
type Resolver struct {
	src    dice.Source
	logger *zap.Logger
}

// NewResolver creates a Resolver drawing from src and logging to logger.
//
// Precondition: src and logger must be non-nil.
func NewResolver(src dice.Source, logger *zap.Logger) *Resolver {
	if src == nil {
		panic("combat: NewResolver precondition violated: src must be non-nil")
	}
	if logger == nil {
		panic("combat: NewResolver precondition violated: logger must be non-nil")
	}
	return &Resolver{src: src, logger: logger}
}

// Attack resolves an attack roll and logs the outcome.
//
// Postcondition: identical to ResolveAttack with the resolver's source.
func (r *Resolver) Attack(attacker ActorStats, weapon WeaponSpec, target TargetSpec, ctx CombatContext) AttackResult {
	res := ResolveAttack(attacker, weapon, target, ctx, r.src)
	r.logger.Debug("attack resolved",
		zap.String("weapon", weapon.Name),
		zap.Int("tn", res.TN),
		zap.Ints("dice", res.Roll.Values()),
		zap.Int("score", res.Score),
		zap.Int("margin", res.Margin),
		zap.Bool("hit", res.Hit),
		zap.Int("weakpoint_bonus", res.WeakpointBonus),
	)
	return res
}

// Defend resolves a defense against spec and logs the outcome.
//
// Postcondition: identical to ResolveDefense with the resolver's source.
func (r *Resolver) Defend(defender ActorStats, profile DefenseProfile, spec AttackSpec, ctx CombatContext) DefenseResult {
	res := ResolveDefense(defender, profile, spec, ctx, r.src)
	r.logger.Debug("defense resolved",
		zap.String("attack", spec.Name),
		zap.String("pattern", res.Pattern),
		zap.String("profile", res.ProfileType),
		zap.Int("successes", res.Successes),
		zap.Int("failures", res.Failures),
		zap.Int("damage_taken", res.DamageTaken),
		zap.Int("extra_actions", res.ExtraActions),
	)
	return res
}
