// internal/event/value.go
package event

import (
	"strconv"
	"strings"
)

/*
 * Scalar value model shared by event fields and predicate arguments.
 *
 * Closed set of four kinds (bytes, integer, float, boolean) with two
 * renderings:
 *   - Bytes: canonical byte rendering used for byte-level equality
 *   - StringLossy: display string with invalid UTF-8 replaced by U+FFFD
 *
 * String content is stored as raw bytes so equality against arbitrary field
 * content is exact. DebugString produces the rendering used in predicate
 * display names: quoted strings, bare numbers (floats keep a decimal point),
 * bare booleans.
 */

// Kind discriminates the scalar variants of Value.
type Kind int

const (
	KindBytes Kind = iota
	KindInteger
	KindFloat
	KindBoolean
)

// String returns the configuration-facing name of the kind.
func (k Kind) String() string {
	switch k {
	case KindBytes:
		return "string"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindBoolean:
		return "boolean"
	default:
		return "unknown"
	}
}

// Value is an immutable scalar: string bytes, 64-bit signed integer,
// 64-bit float, or boolean.
type Value struct {
	kind    Kind
	bytes   []byte
	integer int64
	float   float64
	boolean bool
}

// BytesValue wraps raw bytes as a string-kind value.
func BytesValue(b []byte) Value {
	return Value{kind: KindBytes, bytes: b}
}

// StringValue wraps a string as a string-kind value.
func StringValue(s string) Value {
	return Value{kind: KindBytes, bytes: []byte(s)}
}

// IntegerValue wraps a 64-bit signed integer.
func IntegerValue(i int64) Value {
	return Value{kind: KindInteger, integer: i}
}

// FloatValue wraps a 64-bit float.
func FloatValue(f float64) Value {
	return Value{kind: KindFloat, float: f}
}

// BoolValue wraps a boolean.
func BoolValue(b bool) Value {
	return Value{kind: KindBoolean, boolean: b}
}

// Kind returns the scalar variant of the value.
func (v Value) Kind() Kind {
	return v.kind
}

// Integer returns the integer content. Valid only for KindInteger.
func (v Value) Integer() int64 {
	return v.integer
}

// Float returns the float content. Valid only for KindFloat.
func (v Value) Float() float64 {
	return v.float
}

// Bool returns the boolean content. Valid only for KindBoolean.
func (v Value) Bool() bool {
	return v.boolean
}

// Bytes returns the canonical byte rendering of the value: raw bytes for
// strings, decimal text for numbers, "true"/"false" for booleans.
func (v Value) Bytes() []byte {
	switch v.kind {
	case KindBytes:
		return v.bytes
	case KindInteger:
		return strconv.AppendInt(nil, v.integer, 10)
	case KindFloat:
		return strconv.AppendFloat(nil, v.float, 'f', -1, 64)
	case KindBoolean:
		return strconv.AppendBool(nil, v.boolean)
	default:
		return nil
	}
}

// StringLossy renders the value as a display string. Invalid UTF-8 sequences
// in string content are replaced with U+FFFD rather than failing.
func (v Value) StringLossy() string {
	if v.kind == KindBytes {
		return strings.ToValidUTF8(string(v.bytes), "�")
	}
	return string(v.Bytes())
}

// DebugString renders the value for predicate display names: strings are
// quoted, integers and booleans are bare, floats always keep a decimal point
// so "5.0" stays distinguishable from the integer "5".
func (v Value) DebugString() string {
	switch v.kind {
	case KindBytes:
		return strconv.Quote(v.StringLossy())
	case KindInteger:
		return strconv.FormatInt(v.integer, 10)
	case KindFloat:
		return formatFloatDebug(v.float)
	case KindBoolean:
		return strconv.FormatBool(v.boolean)
	default:
		return ""
	}
}

// formatFloatDebug formats a float with a guaranteed decimal point.
func formatFloatDebug(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") && !strings.ContainsAny(s, "NI") {
		s += ".0"
	}
	return s
}
