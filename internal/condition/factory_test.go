package condition

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/jakeswenson/vector/internal/event"
)

func TestRegistry_UnknownToken(t *testing.T) {
	_, err := quietRegistry().Build("not_real", "foo", event.StringValue("x"))
	if err == nil {
		t.Fatal("Build() error = nil, want error")
	}
	if got, want := err.Error(), "predicate type 'not_real' not recognized"; got != want {
		t.Errorf("Build() error = %q, want %q", got, want)
	}
}

func TestRegistry_ArgumentTypeErrors(t *testing.T) {
	cases := []struct {
		token string
		arg   event.Value
		exp   string
	}{
		{"contains", event.IntegerValue(5), "contains predicate requires a string argument"},
		{"starts_with", event.BoolValue(true), "starts_with predicate requires a string argument"},
		{"ends_with", event.FloatValue(1.5), "ends_with predicate requires a string argument"},
		{"regex", event.IntegerValue(1), "regex predicate requires a string argument"},
		{"exists", event.StringValue("true"), "exists predicate requires a boolean argument"},
	}
	for _, tc := range cases {
		_, err := quietRegistry().Build(tc.token, "foo", tc.arg)
		if err == nil {
			t.Fatalf("Build(%s) error = nil, want error", tc.token)
		}
		if err.Error() != tc.exp {
			t.Errorf("Build(%s) error = %q, want %q", tc.token, err.Error(), tc.exp)
		}
	}
}

func TestRegistry_InvalidRegex(t *testing.T) {
	_, err := quietRegistry().Build("regex", "foo", event.StringValue("("))
	if err == nil {
		t.Fatal("Build(regex) error = nil, want error")
	}
	if !strings.HasPrefix(err.Error(), `Invalid regex "("`) {
		t.Errorf("Build(regex) error = %q, want Invalid regex prefix", err.Error())
	}
}

func TestRegistry_PrefixDeprecationWarning(t *testing.T) {
	var buf bytes.Buffer
	reg := NewRegistry(slog.New(slog.NewTextHandler(&buf, nil)))

	p, err := reg.Build("prefix", "message", event.StringValue("foo"))
	if err != nil {
		t.Fatalf("Build(prefix) error = %v, want nil", err)
	}
	if p.Kind() != KindStartsWith {
		t.Errorf("Kind() = %v, want %v", p.Kind(), KindStartsWith)
	}
	if !strings.Contains(buf.String(), "deprecated") {
		t.Errorf("log output %q does not mention deprecation", buf.String())
	}
	if !strings.Contains(buf.String(), "target=message") {
		t.Errorf("log output %q does not carry the target attr", buf.String())
	}
}

func TestRegistry_PrefixMatchesStartsWith(t *testing.T) {
	reg := quietRegistry()
	p1, err := reg.Build("prefix", "message", event.StringValue("foo"))
	if err != nil {
		t.Fatalf("Build(prefix) error = %v", err)
	}
	p2, err := reg.Build("starts_with", "message", event.StringValue("foo"))
	if err != nil {
		t.Fatalf("Build(starts_with) error = %v", err)
	}

	for _, msg := range []string{"foobar", "barfoo", "foo", ""} {
		e := event.NewLog()
		e.Insert("message", event.StringValue(msg))
		if g1, g2 := p1.Check(e), p2.Check(e); g1 != g2 {
			t.Errorf("prefix.Check(%q) = %v, starts_with.Check(%q) = %v; want equal", msg, g1, msg, g2)
		}
	}
}

func TestRegistry_Aliases(t *testing.T) {
	reg := quietRegistry()
	pairs := [][2]string{{"eq", "equals"}, {"neq", "not_equals"}}
	for _, pair := range pairs {
		a, err := reg.Build(pair[0], "foo", event.StringValue("x"))
		if err != nil {
			t.Fatalf("Build(%s) error = %v", pair[0], err)
		}
		b, err := reg.Build(pair[1], "foo", event.StringValue("x"))
		if err != nil {
			t.Fatalf("Build(%s) error = %v", pair[1], err)
		}
		if a.Kind() != b.Kind() {
			t.Errorf("Kind(%s) = %v, Kind(%s) = %v; want equal", pair[0], a.Kind(), pair[1], b.Kind())
		}
	}
}

func TestRegistry_NilLoggerDefaults(t *testing.T) {
	reg := NewRegistry(nil)
	if _, err := reg.Build("equals", "foo", event.StringValue("x")); err != nil {
		t.Fatalf("Build() error = %v, want nil", err)
	}
}
