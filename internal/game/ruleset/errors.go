// Package ruleset loads and validates the weapon, target, actor, defense
// profile, attack, and dice rule definitions fed to the combat resolvers.
//
// Validation happens here, once, so the resolvers can stay total over
// well-formed input. Every rejection is a *ConfigError matching ErrInvalidConfig.
package ruleset

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is matched by every validation failure via errors.Is.
var ErrInvalidConfig = errors.New("invalid configuration")

// ConfigError describes one rejected field of one definition.
type ConfigError struct {
	// Source identifies the definition, usually its ID.
	Source string
	// Field is the YAML path of the offending value.
	Field  string
	Reason string
}

// Error implements error.
func (e *ConfigError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("%s: %s: %s", e.Source, e.Field, e.Reason)
}

// Is reports whether target is ErrInvalidConfig.
func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidConfig
}

// violations accumulates ConfigErrors for one definition.
type violations struct {
	source string
	errs   []error
}

func (v *violations) add(field, format string, args ...any) {
	v.errs = append(v.errs, &ConfigError{Source: v.source, Field: field, Reason: fmt.Sprintf(format, args...)})
}

// err returns nil when nothing was recorded, else all violations joined.
func (v *violations) err() error {
	return errors.Join(v.errs...)
}
