// internal/condition/predicate.go
package condition

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/jakeswenson/vector/internal/event"
)

/*
 * Predicate kinds and evaluation.
 *
 * Seven kinds over a tagged struct with an exhaustive switch in Check rather
 * than one interface implementation per kind. All argument validation and
 * regex compilation happens at construction (factory.go); a constructed
 * predicate never fails at evaluation time and never mutates the event, so
 * predicates are safe to share across evaluation goroutines.
 *
 * Match semantics per kind:
 *   - Equals: byte equality for string arguments (against the field's
 *     canonical byte rendering), typed numeric equality for numbers
 *     (integer argument truncates a float field, float argument widens an
 *     integer field), boolean-only equality for booleans. Metric tags only
 *     match string arguments.
 *   - NotEquals: argument pre-rendered to text at construction, compared
 *     byte-wise. The field must be present: a missing field fails.
 *   - Contains/StartsWith/EndsWith: lossy string tests on log fields only.
 *   - RegexMatch: pattern search (not an anchored full match) against the
 *     lossy text of a log field or a metric tag.
 *   - Exists: presence of the field or tag must equal the boolean argument.
 *
 * NotEquals deliberately does not mirror Equals' numeric coercion: the
 * argument 5 is rendered to "5" and compared as text, so a float field 5.0
 * is "not equal" to 5 even though Equals would match them. Unifying the two
 * would silently change configured behavior.
 */

// Kind identifies one of the seven predicate variants.
type Kind int

const (
	KindEquals Kind = iota
	KindNotEquals
	KindContains
	KindStartsWith
	KindEndsWith
	KindRegexMatch
	KindExists
)

// String returns the canonical configuration token for the kind.
func (k Kind) String() string {
	switch k {
	case KindEquals:
		return "equals"
	case KindNotEquals:
		return "not_equals"
	case KindContains:
		return "contains"
	case KindStartsWith:
		return "starts_with"
	case KindEndsWith:
		return "ends_with"
	case KindRegexMatch:
		return "regex"
	case KindExists:
		return "exists"
	default:
		return "unknown"
	}
}

// Predicate is one compiled rule: one target field, one kind, one compiled
// argument. Immutable after construction.
type Predicate struct {
	target string
	kind   Kind

	arg       event.Value    // Equals: original typed argument
	text      string         // NotEquals/Contains/StartsWith/EndsWith: rendered argument
	re        *regexp.Regexp // RegexMatch: compiled pattern
	mustExist bool           // Exists: required presence
}

// Target returns the field or tag name the predicate inspects.
func (p *Predicate) Target() string {
	return p.target
}

// Kind returns the predicate variant.
func (p *Predicate) Kind() Kind {
	return p.kind
}

// Check reports whether the event satisfies the predicate. It never errors:
// missing fields and kind mismatches are non-matches.
func (p *Predicate) Check(e event.Event) bool {
	switch p.kind {
	case KindEquals:
		return p.checkEquals(e)
	case KindNotEquals:
		return p.checkNotEquals(e)
	case KindContains:
		return p.checkText(e, strings.Contains)
	case KindStartsWith:
		return p.checkText(e, strings.HasPrefix)
	case KindEndsWith:
		return p.checkText(e, strings.HasSuffix)
	case KindRegexMatch:
		return p.checkRegex(e)
	case KindExists:
		return p.checkExists(e)
	default:
		return false
	}
}

func (p *Predicate) checkEquals(e event.Event) bool {
	switch ev := e.(type) {
	case *event.Log:
		v, ok := ev.Get(p.target)
		if !ok {
			return false
		}
		switch p.arg.Kind() {
		case event.KindBytes:
			return bytes.Equal(p.arg.Bytes(), v.Bytes())
		case event.KindInteger:
			switch v.Kind() {
			case event.KindInteger:
				return p.arg.Integer() == v.Integer()
			case event.KindFloat:
				// Truncating conversion, matching integer-vs-float equality
				return p.arg.Integer() == int64(v.Float())
			default:
				return false
			}
		case event.KindFloat:
			switch v.Kind() {
			case event.KindFloat:
				return p.arg.Float() == v.Float()
			case event.KindInteger:
				return p.arg.Float() == float64(v.Integer())
			default:
				return false
			}
		case event.KindBoolean:
			return v.Kind() == event.KindBoolean && p.arg.Bool() == v.Bool()
		default:
			return false
		}
	case *event.Metric:
		tag, ok := ev.Tag(p.target)
		if !ok {
			return false
		}
		// Metric tags are strings; non-string arguments never match
		if p.arg.Kind() != event.KindBytes {
			return false
		}
		return bytes.Equal(p.arg.Bytes(), []byte(tag))
	default:
		return false
	}
}

func (p *Predicate) checkNotEquals(e event.Event) bool {
	switch ev := e.(type) {
	case *event.Log:
		v, ok := ev.Get(p.target)
		if !ok {
			return false
		}
		return !bytes.Equal(v.Bytes(), []byte(p.text))
	case *event.Metric:
		tag, ok := ev.Tag(p.target)
		if !ok {
			return false
		}
		return tag != p.text
	default:
		return false
	}
}

// checkText applies a substring/prefix/suffix test to a log field's lossy
// rendering. Log fields only: metrics never match.
func (p *Predicate) checkText(e event.Event, match func(s, substr string) bool) bool {
	l, ok := e.(*event.Log)
	if !ok {
		return false
	}
	v, ok := l.Get(p.target)
	if !ok {
		return false
	}
	return match(v.StringLossy(), p.text)
}

func (p *Predicate) checkRegex(e event.Event) bool {
	switch ev := e.(type) {
	case *event.Log:
		v, ok := ev.Get(p.target)
		if !ok {
			return false
		}
		return p.re.MatchString(v.StringLossy())
	case *event.Metric:
		tag, ok := ev.Tag(p.target)
		if !ok {
			return false
		}
		return p.re.MatchString(tag)
	default:
		return false
	}
}

func (p *Predicate) checkExists(e event.Event) bool {
	var present bool
	switch ev := e.(type) {
	case *event.Log:
		_, present = ev.Get(p.target)
	case *event.Metric:
		present = ev.HasTag(p.target)
	}
	return present == p.mustExist
}
