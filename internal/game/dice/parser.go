package dice

import (
	"fmt"
	"strconv"
	"strings"
)

// ParsePool parses a pool expression into a Pool.
// Supported forms: "d20", "2d6", "2d6+1d8", "3d6 + d4".
// Groups keep their written order; repeated groups are not merged.
//
// Precondition: expr must be a non-empty string.
// Postcondition: Returns a Pool with every Sides >= 1, Count >= 1 and at most
// MaxPoolDice dice in total, or a descriptive error.
func ParsePool(expr string) (Pool, error) {
	if strings.TrimSpace(expr) == "" {
		return nil, fmt.Errorf("dice: empty pool expression")
	}
	terms := strings.Split(strings.ToLower(expr), "+")
	pool := make(Pool, 0, len(terms))
	total := 0
	for _, term := range terms {
		spec, err := parseTerm(strings.TrimSpace(term), expr)
		if err != nil {
			return nil, err
		}
		if spec.Count > MaxPoolDice-total {
			return nil, fmt.Errorf("dice: pool %q exceeds %d dice", expr, MaxPoolDice)
		}
		total += spec.Count
		pool = append(pool, spec)
	}
	return pool, nil
}

func parseTerm(term, raw string) (DieSpec, error) {
	if term == "" {
		return DieSpec{}, fmt.Errorf("dice: empty term in %q", raw)
	}
	dIdx := strings.Index(term, "d")
	if dIdx < 0 {
		return DieSpec{}, fmt.Errorf("dice: missing 'd' in term %q of %q", term, raw)
	}

	// Count defaults to 1 when omitted.
	count := 1
	if countStr := term[:dIdx]; countStr != "" {
		var err error
		count, err = strconv.Atoi(countStr)
		if err != nil {
			return DieSpec{}, fmt.Errorf("dice: invalid die count in %q: %w", raw, err)
		}
		if count <= 0 {
			return DieSpec{}, fmt.Errorf("dice: invalid die count in %q: must be >= 1", raw)
		}
	}

	sides, err := strconv.Atoi(term[dIdx+1:])
	if err != nil {
		return DieSpec{}, fmt.Errorf("dice: invalid die sides in %q: %w", raw, err)
	}
	if sides < 1 {
		return DieSpec{}, fmt.Errorf("dice: invalid die sides in %q: must be >= 1", raw)
	}
	return DieSpec{Sides: sides, Count: count}, nil
}

// MustParsePool parses expr and panics on error. Useful for package-level defaults.
//
// Precondition: expr must be a valid pool expression.
func MustParsePool(expr string) Pool {
	p, err := ParsePool(expr)
	if err != nil {
		panic("dice: MustParsePool failed for expression " + expr + ": " + err.Error())
	}
	return p
}
