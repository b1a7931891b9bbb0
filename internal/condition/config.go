// internal/condition/config.go
package condition

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jakeswenson/vector/internal/event"
)

/*
 * Declarative condition configuration.
 *
 * A Config is an order-preserving list of (key, argument) pairs where each
 * key has the form <target>.<predicate>. Declaration order matters: it fixes
 * the order predicates are reported in when a check fails, so Config decodes
 * from YAML and JSON at the node/token level instead of through a Go map.
 *
 * Arguments use first-match-wins structural typing: a bare boolean decodes
 * as boolean, a bare number as integer (or float when it carries a
 * fractional part or exponent), anything else as string. A quoted "5" stays
 * a string.
 */

// Entry is one declared predicate rule.
type Entry struct {
	Key string
	Arg event.Value
}

// Config is an ordered set of predicate declarations.
type Config struct {
	entries []Entry
	index   map[string]int
}

// Set declares a predicate rule. Re-declaring a key replaces its argument
// in place, preserving the original position.
func (c *Config) Set(key string, arg event.Value) {
	if c.index == nil {
		c.index = make(map[string]int)
	}
	if i, ok := c.index[key]; ok {
		c.entries[i].Arg = arg
		return
	}
	c.index[key] = len(c.entries)
	c.entries = append(c.entries, Entry{Key: key, Arg: arg})
}

// Len returns the number of declared rules.
func (c *Config) Len() int {
	return len(c.entries)
}

// Entries returns the declared rules in declaration order.
func (c *Config) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// UnmarshalYAML decodes a YAML mapping preserving document order.
func (c *Config) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("condition must be a mapping of <target>.<predicate> keys")
	}
	for i := 0; i < len(node.Content); i += 2 {
		keyNode := node.Content[i]
		valNode := node.Content[i+1]

		var key string
		if err := keyNode.Decode(&key); err != nil {
			return err
		}
		arg, err := scalarArg(valNode)
		if err != nil {
			return fmt.Errorf("invalid argument for '%s': %w", key, err)
		}
		c.Set(key, arg)
	}
	return nil
}

// scalarArg decodes a YAML scalar node with structural typing.
func scalarArg(node *yaml.Node) (event.Value, error) {
	if node.Kind != yaml.ScalarNode {
		return event.Value{}, fmt.Errorf("predicate argument must be a scalar")
	}
	switch node.Tag {
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return event.Value{}, err
		}
		return event.BoolValue(b), nil
	case "!!int":
		var i int64
		if err := node.Decode(&i); err != nil {
			return event.Value{}, err
		}
		return event.IntegerValue(i), nil
	case "!!float":
		var f float64
		if err := node.Decode(&f); err != nil {
			return event.Value{}, err
		}
		return event.FloatValue(f), nil
	case "!!null":
		return event.Value{}, fmt.Errorf("predicate argument must be a scalar")
	default:
		return event.StringValue(node.Value), nil
	}
}

// MarshalJSON renders the config as a JSON object in declaration order.
// Floats always keep a decimal point so the round-trip preserves typing.
func (c *Config) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range c.entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		switch e.Arg.Kind() {
		case event.KindBytes:
			val, err := json.Marshal(e.Arg.StringLossy())
			if err != nil {
				return nil, err
			}
			buf.Write(val)
		case event.KindInteger, event.KindBoolean:
			buf.Write(e.Arg.Bytes())
		case event.KindFloat:
			buf.WriteString(floatLiteral(e.Arg.Float()))
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// floatLiteral formats a float as a JSON number that decodes back as a float.
func floatLiteral(f float64) string {
	s := string(event.FloatValue(f).Bytes())
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// UnmarshalJSON decodes a JSON object preserving key order.
func (c *Config) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("condition must be a JSON object")
	}

	for {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		if d, ok := tok.(json.Delim); ok && d == '}' {
			return nil
		}
		key := tok.(string)

		val, err := dec.Token()
		if err != nil {
			return err
		}
		switch v := val.(type) {
		case bool:
			c.Set(key, event.BoolValue(v))
		case json.Number:
			c.Set(key, event.NumberValue(v))
		case string:
			c.Set(key, event.StringValue(v))
		default:
			return fmt.Errorf("invalid argument for '%s': predicate argument must be a scalar", key)
		}
	}
}

// NamedConfig pairs a condition name with its configuration block.
type NamedConfig struct {
	Name   string
	Config *Config
}

// ParseConditions decodes a YAML conditions file: a top-level mapping from
// condition name to predicate mapping, order preserved.
func ParseConditions(data []byte) ([]NamedConfig, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return nil, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("conditions file must be a mapping of condition names")
	}

	var out []NamedConfig
	for i := 0; i < len(root.Content); i += 2 {
		var name string
		if err := root.Content[i].Decode(&name); err != nil {
			return nil, err
		}
		cfg := &Config{}
		if err := root.Content[i+1].Decode(cfg); err != nil {
			return nil, fmt.Errorf("condition '%s': %w", name, err)
		}
		out = append(out, NamedConfig{Name: name, Config: cfg})
	}
	return out, nil
}
