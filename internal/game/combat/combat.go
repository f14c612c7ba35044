// Package combat implements the attack and defense resolution formulas layered
// on top of the dice resolver.
package combat

import "github.com/cory-johannsen/skirmish/internal/game/dice"

// DefaultStatKey is the defender attribute added to defense rolls when a
// profile names none.
const DefaultStatKey = "evade"

// defaultPool is rolled when a weapon or attack supplies no dice.
var defaultPool = []dice.DieSpec{{Sides: 6, Count: 1}}

// CombatContext holds modifiers shared by attack and defense target numbers.
type CombatContext struct {
	// EnemyCount is the number of opponents engaged; zero behaves as one.
	EnemyCount    int
	DifficultyMod int
	Tags          []string
}

// EnemyMod returns the crowding penalty max(0, EnemyCount-1).
//
// Postcondition: Returns >= 0.
func (c CombatContext) EnemyMod() int {
	if c.EnemyCount <= 1 {
		return 0
	}
	return c.EnemyCount - 1
}

// ActorStats is the attribute bag of an attacker or defender.
type ActorStats struct {
	Accuracy int
	Evade    int
	Block    int
	HP       int
	// Extra holds attributes beyond the named ones, keyed by stat name.
	Extra map[string]int
}

// Stat returns the attribute named key.
//
// Postcondition: Returns the named field for "accuracy", "evade", "block", or
// "hp", else Extra[key], else 0.
func (a ActorStats) Stat(key string) int {
	switch key {
	case "accuracy":
		return a.Accuracy
	case "evade":
		return a.Evade
	case "block":
		return a.Block
	case "hp":
		return a.HP
	default:
		return a.Extra[key]
	}
}

// poolOrDefault returns pool, or one d6 when pool is nil. An explicitly
// empty pool rolls no dice.
func poolOrDefault(pool []dice.DieSpec) []dice.DieSpec {
	if pool == nil {
		return defaultPool
	}
	return pool
}
