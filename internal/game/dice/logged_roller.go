package dice

import "go.uber.org/zap"

// Resolver wraps a Source and logger to provide logged pool resolution.
// Every resolution is logged at debug level with mode, faces, rerolls, and final value.
type Resolver struct {
	src    Source
	logger *zap.Logger
}

// NewLoggedResolver creates a Resolver that rolls with src and logs each resolution to logger.
//
// Precondition: src and logger must be non-nil.
func NewLoggedResolver(src Source, logger *zap.Logger) *Resolver {
	if src == nil {
		panic("dice: NewLoggedResolver precondition violated: src must be non-nil")
	}
	if logger == nil {
		panic("dice: NewLoggedResolver precondition violated: logger must be non-nil")
	}
	return &Resolver{src: src, logger: logger}
}

// Source returns the Source the resolver draws from.
func (r *Resolver) Source() Source { return r.src }

// Resolve resolves pool under rules and logs the result at debug level.
//
// Postcondition: identical to Resolve(pool, rules, r.Source()).
func (r *Resolver) Resolve(pool []DieSpec, rules Rules) Result {
	result := Resolve(pool, rules, r.src)
	rerolls := 0
	for _, s := range result.Breakdown {
		if s.Kind() == StepReroll {
			rerolls++
		}
	}
	r.logger.Debug("dice resolution",
		zap.Stringer("pool", Pool(pool)),
		zap.String("mode", result.Meta.Mode),
		zap.Ints("values", result.Values()),
		zap.Int("rerolls", rerolls),
		zap.Int("final", result.Final),
	)
	return result
}

// ResolveExpr parses expr as a pool and resolves it, logging the result.
//
// Precondition: expr must be a valid pool expression string.
// Postcondition: Returns a Result or a parse error.
func (r *Resolver) ResolveExpr(expr string, rules Rules) (Result, error) {
	pool, err := ParsePool(expr)
	if err != nil {
		return Result{}, err
	}
	return r.Resolve(pool, rules), nil
}
