// internal/condition/condition.go
package condition

import (
	"errors"
	"strings"

	"github.com/jakeswenson/vector/internal/event"
)

/*
 * Compiled condition: the implicit AND of every declared predicate.
 *
 * Check answers the boolean verdict; CheckWithContext evaluates every
 * predicate with no short-circuit and reports the display names of all
 * failures in declaration order. The two always agree:
 * Check(e) == (CheckWithContext(e) == nil) for every event.
 *
 * A Condition is immutable after Build and holds no per-evaluation state,
 * so one Condition may be checked concurrently against different events.
 */

type namedPredicate struct {
	name string
	pred *Predicate
}

// Condition is an ordered conjunction of named predicates.
type Condition struct {
	predicates []namedPredicate
}

// Len returns the number of compiled predicates.
func (c *Condition) Len() int {
	return len(c.predicates)
}

// Names returns predicate display names in declaration order.
func (c *Condition) Names() []string {
	out := make([]string, len(c.predicates))
	for i, p := range c.predicates {
		out[i] = p.name
	}
	return out
}

// Check reports whether every predicate passes for the event.
func (c *Condition) Check(e event.Event) bool {
	for _, p := range c.predicates {
		if !p.pred.Check(e) {
			return false
		}
	}
	return true
}

// CheckWithContext evaluates every predicate and returns nil when all pass,
// or an error naming each failing predicate in declaration order.
func (c *Condition) CheckWithContext(e event.Event) error {
	var failed []string
	for _, p := range c.predicates {
		if !p.pred.Check(e) {
			failed = append(failed, p.name)
		}
	}
	if len(failed) == 0 {
		return nil
	}
	return errors.New("predicates failed: [ " + strings.Join(failed, ", ") + " ]")
}
