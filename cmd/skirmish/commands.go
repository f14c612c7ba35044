package main

import (
	"errors"
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/skirmish/internal/game/combat"
	"github.com/cory-johannsen/skirmish/internal/game/dice"
	"github.com/cory-johannsen/skirmish/internal/game/ruleset"
)

// roll resolves an ad-hoc pool described by flags.
func (e *env) roll(args []string) error {
	fs := flag.NewFlagSet("roll", flag.ContinueOnError)
	poolExpr := fs.String("pool", "1d6", "dice pool expression, e.g. 3d6+1d8")
	mode := fs.String("mode", "sum", "reduction mode: sum, max, top_n_sum, success_count")
	topN := fs.Int("top-n", 0, "dice kept by top_n_sum")
	threshold := fs.Int("threshold", 0, "minimum face counted by success_count")
	rerollTimes := fs.Int("reroll-times", 0, "number of rerolls; 0 disables rerolling")
	rerollStrategy := fs.String("reroll-strategy", "lowest", "reroll strategy: lowest, specific_indexes")
	rerollIndexes := fs.String("reroll-indexes", "", "comma-separated die indexes for specific_indexes")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	pool, err := dice.ParsePool(*poolExpr)
	if err != nil {
		return fmt.Errorf("%w: %w", errUsage, &ruleset.ConfigError{Source: "roll", Field: "pool", Reason: err.Error()})
	}
	def := ruleset.RulesDef{Mode: *mode, TopN: *topN, Threshold: *threshold}
	if *rerollTimes > 0 {
		indexes, err := parseIndexes(*rerollIndexes)
		if err != nil {
			return fmt.Errorf("%w: %v", errUsage, err)
		}
		def.Reroll = &ruleset.RerollDef{Times: *rerollTimes, Strategy: *rerollStrategy, Indexes: indexes}
	}
	if err := errors.Join(ruleset.ValidatePool(pool), def.Validate()); err != nil {
		return err
	}

	id := uuid.New().String()
	resolver := dice.NewLoggedResolver(e.src, e.logger.With(zap.String("resolution_id", id)))
	res := resolver.Resolve(pool, def.Rules())
	return writeReport(e.out, newDiceReport(id, pool, res))
}

// attack resolves a catalog weapon against a catalog target.
func (e *env) attack(args []string) error {
	fs := flag.NewFlagSet("attack", flag.ContinueOnError)
	attackerID := fs.String("attacker", "", "actor ID of the attacker")
	weaponID := fs.String("weapon", "", "weapon ID")
	targetID := fs.String("target", "", "target ID")
	ctx := contextFlags(fs)
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	attacker, ok := e.catalog.Actor(*attackerID)
	if !ok {
		return fmt.Errorf("%w: unknown attacker %q", errUsage, *attackerID)
	}
	weapon, ok := e.catalog.Weapon(*weaponID)
	if !ok {
		return fmt.Errorf("%w: unknown weapon %q", errUsage, *weaponID)
	}
	target, ok := e.catalog.Target(*targetID)
	if !ok {
		return fmt.Errorf("%w: unknown target %q", errUsage, *targetID)
	}
	cc, err := ctx.context()
	if err != nil {
		return err
	}

	id := uuid.New().String()
	resolver := combat.NewResolver(e.src, e.logger.With(zap.String("resolution_id", id)))
	res := resolver.Attack(attacker.Spec(), weapon.Spec(), target.Spec(), cc)
	return writeReport(e.out, newAttackReport(id, attacker.ID, weapon.ID, target.ID, res))
}

// defend resolves a catalog attack against a catalog defender and profile.
func (e *env) defend(args []string) error {
	fs := flag.NewFlagSet("defend", flag.ContinueOnError)
	defenderID := fs.String("defender", "", "actor ID of the defender")
	profileID := fs.String("profile", "", "defense profile ID")
	attackID := fs.String("attack", "", "attack ID")
	ctx := contextFlags(fs)
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	defender, ok := e.catalog.Actor(*defenderID)
	if !ok {
		return fmt.Errorf("%w: unknown defender %q", errUsage, *defenderID)
	}
	profile, ok := e.catalog.Profile(*profileID)
	if !ok {
		return fmt.Errorf("%w: unknown profile %q", errUsage, *profileID)
	}
	atk, ok := e.catalog.Attack(*attackID)
	if !ok {
		return fmt.Errorf("%w: unknown attack %q", errUsage, *attackID)
	}
	cc, err := ctx.context()
	if err != nil {
		return err
	}

	id := uuid.New().String()
	resolver := combat.NewResolver(e.src, e.logger.With(zap.String("resolution_id", id)))
	res := resolver.Defend(defender.Spec(), profile.Profile(), atk.Spec(), cc)
	return writeReport(e.out, newDefenseReport(id, defender.ID, profile.ID, atk.ID, res))
}

// contextOpts binds the combat context flags shared by attack and defend.
type contextOpts struct {
	enemies    *int
	difficulty *int
	tags       *string
}

func contextFlags(fs *flag.FlagSet) contextOpts {
	return contextOpts{
		enemies:    fs.Int("enemies", 1, "number of engaged enemies"),
		difficulty: fs.Int("difficulty", 0, "difficulty modifier added to the target number"),
		tags:       fs.String("tags", "", "comma-separated context tags"),
	}
}

// context validates the flags into a combat.CombatContext.
func (o contextOpts) context() (combat.CombatContext, error) {
	if *o.enemies < 1 {
		return combat.CombatContext{}, &ruleset.ConfigError{Source: "context", Field: "enemies", Reason: fmt.Sprintf("must be >= 1, got %d", *o.enemies)}
	}
	var tags []string
	for _, t := range strings.Split(*o.tags, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return combat.CombatContext{EnemyCount: *o.enemies, DifficultyMod: *o.difficulty, Tags: tags}, nil
}

func parseIndexes(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	indexes := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("invalid reroll index %q: %w", p, err)
		}
		indexes = append(indexes, n)
	}
	return indexes, nil
}
