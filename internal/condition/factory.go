// internal/condition/factory.go
package condition

import (
	"errors"
	"fmt"
	"log/slog"
	"regexp"

	"github.com/jakeswenson/vector/internal/event"
)

/*
 * Predicate factory.
 *
 * Explicit registry mapping predicate tokens (canonical names plus aliases)
 * to constructors. The registry is built once at pipeline startup and owned
 * by whoever compiles conditions; there is no process-wide registration.
 *
 * Every constructor performs all validation up front: argument type checks
 * and regex compilation fail here with a descriptive error, never at
 * evaluation time. The deprecated "prefix" token emits a warning through the
 * injected logger before delegating to the starts_with constructor.
 */

// Constructor builds a predicate for one target field and argument.
type Constructor func(target string, arg event.Value) (*Predicate, error)

// Registry resolves predicate tokens to constructors.
type Registry struct {
	builders map[string]Constructor
}

// NewRegistry returns a registry populated with the seven predicate kinds
// and their aliases. Deprecation diagnostics go to logger; nil falls back to
// slog.Default().
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}

	r := &Registry{builders: make(map[string]Constructor)}
	r.builders["eq"] = newEquals
	r.builders["equals"] = newEquals
	r.builders["neq"] = newNotEquals
	r.builders["not_equals"] = newNotEquals
	r.builders["contains"] = newContains
	r.builders["starts_with"] = newStartsWith
	r.builders["prefix"] = func(target string, arg event.Value) (*Predicate, error) {
		logger.Warn(`The "prefix" comparison predicate is deprecated, use "starts_with" instead`,
			"target", target)
		return newStartsWith(target, arg)
	}
	r.builders["ends_with"] = newEndsWith
	r.builders["exists"] = newExists
	r.builders["regex"] = newRegex
	return r
}

// Build resolves the token and constructs the predicate, or returns a
// descriptive error for unknown tokens and incompatible arguments.
func (r *Registry) Build(token, target string, arg event.Value) (*Predicate, error) {
	c, ok := r.builders[token]
	if !ok {
		return nil, fmt.Errorf("predicate type '%s' not recognized", token)
	}
	return c(target, arg)
}

// newEquals accepts any scalar argument; comparison semantics are typed at
// evaluation per argument kind.
func newEquals(target string, arg event.Value) (*Predicate, error) {
	return &Predicate{target: target, kind: KindEquals, arg: arg}, nil
}

// newNotEquals renders the argument to text once at construction and
// compares byte-wise at evaluation. This is intentionally asymmetric with
// Equals' numeric coercion; see the package notes in predicate.go.
func newNotEquals(target string, arg event.Value) (*Predicate, error) {
	return &Predicate{target: target, kind: KindNotEquals, text: string(arg.Bytes())}, nil
}

func newContains(target string, arg event.Value) (*Predicate, error) {
	if arg.Kind() != event.KindBytes {
		return nil, errors.New("contains predicate requires a string argument")
	}
	return &Predicate{target: target, kind: KindContains, text: string(arg.Bytes())}, nil
}

func newStartsWith(target string, arg event.Value) (*Predicate, error) {
	if arg.Kind() != event.KindBytes {
		return nil, errors.New("starts_with predicate requires a string argument")
	}
	return &Predicate{target: target, kind: KindStartsWith, text: string(arg.Bytes())}, nil
}

func newEndsWith(target string, arg event.Value) (*Predicate, error) {
	if arg.Kind() != event.KindBytes {
		return nil, errors.New("ends_with predicate requires a string argument")
	}
	return &Predicate{target: target, kind: KindEndsWith, text: string(arg.Bytes())}, nil
}

func newExists(target string, arg event.Value) (*Predicate, error) {
	if arg.Kind() != event.KindBoolean {
		return nil, errors.New("exists predicate requires a boolean argument")
	}
	return &Predicate{target: target, kind: KindExists, mustExist: arg.Bool()}, nil
}

// newRegex compiles the pattern at construction. Go's RE2 engine guarantees
// linear-time matching, so evaluation cost stays bounded per event.
func newRegex(target string, arg event.Value) (*Predicate, error) {
	if arg.Kind() != event.KindBytes {
		return nil, errors.New("regex predicate requires a string argument")
	}
	pattern := string(arg.Bytes())
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("Invalid regex %q: %v", pattern, err)
	}
	return &Predicate{target: target, kind: KindRegexMatch, re: re}, nil
}
