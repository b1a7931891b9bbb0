package condition

import (
	"fmt"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/jakeswenson/vector/internal/event"
)

// Property-based test: the boolean and explaining checks always agree
func TestCondition_PropertyCheckAgreement(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	tokens := []string{"eq", "equals", "neq", "not_equals", "contains", "starts_with", "ends_with", "exists"}
	reg := quietRegistry()

	properties.Property("Check agrees with CheckWithContext", prop.ForAll(
		func(tokenIdx int, fieldPresent bool, fieldText string, argText string) bool {
			token := tokens[tokenIdx%len(tokens)]

			var arg event.Value
			if token == "exists" {
				arg = event.BoolValue(len(argText)%2 == 0)
			} else {
				arg = event.StringValue(argText)
			}

			cfg := &Config{}
			cfg.Set("field."+token, arg)
			cond, err := Build(cfg, reg)
			if err != nil {
				return false
			}

			e := event.NewLog()
			if fieldPresent {
				e.Insert("field", event.StringValue(fieldText))
			}

			pass := cond.Check(e)
			ctxErr := cond.CheckWithContext(e)
			return pass == (ctxErr == nil)
		},
		gen.IntRange(0, 7),
		gen.Bool(),
		gen.AnyString(),
		gen.AnyString(),
	))

	properties.TestingRun(t)
}

// Property-based test: failure reports list predicates in declaration order
func TestCondition_PropertyFailureOrder(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	reg := quietRegistry()

	properties.Property("failing predicate names keep declaration order", prop.ForAll(
		func(presence []bool) bool {
			if len(presence) == 0 {
				return true
			}

			cfg := &Config{}
			for i := range presence {
				cfg.Set(fmt.Sprintf("f%d.exists", i), event.BoolValue(true))
			}
			cond, err := Build(cfg, reg)
			if err != nil {
				return false
			}

			e := event.NewLog()
			var expected []string
			for i, present := range presence {
				if present {
					e.Insert(fmt.Sprintf("f%d", i), event.StringValue("x"))
				} else {
					expected = append(expected, fmt.Sprintf("f%d.exists: true", i))
				}
			}

			err = cond.CheckWithContext(e)
			if len(expected) == 0 {
				return err == nil
			}
			if err == nil {
				return false
			}
			want := "predicates failed: [ " + strings.Join(expected, ", ") + " ]"
			return err.Error() == want
		},
		gen.SliceOf(gen.Bool()),
	))

	properties.TestingRun(t)
}

// Property-based test: compilation never panics on arbitrary keys
func TestBuild_PropertyNeverPanics(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	reg := quietRegistry()

	properties.Property("Build never panics regardless of key shape", prop.ForAll(
		func(key string, argText string) bool {
			defer func() {
				if r := recover(); r != nil {
					t.Errorf("Build(%q) panicked: %v", key, r)
				}
			}()

			cfg := &Config{}
			cfg.Set(key, event.StringValue(argText))
			_, _ = Build(cfg, reg)
			return true
		},
		gen.AnyString(),
		gen.AnyString(),
	))

	properties.TestingRun(t)
}
