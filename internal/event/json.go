// internal/event/json.go
package event

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

/*
 * JSON ingestion for log events.
 *
 * Decodes a JSON object into a Log with nested structure flattened to dotted
 * paths: {"a": {"b": 1}} becomes field "a.b", arrays become "key[0]", "key[1]".
 * Token-level decoding preserves the document's key order, which in turn fixes
 * the field iteration order of the resulting Log.
 *
 * Scalar typing is structural: JSON booleans decode to boolean values, numbers
 * to integers when they carry no fractional part and to floats otherwise,
 * strings and nulls to string values (null renders as the empty string).
 */

// LogFromJSON decodes a single JSON object into a log event.
func LogFromJSON(data []byte) (*Log, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("invalid event: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("invalid event: expected JSON object, got %v", tok)
	}

	log := NewLog()
	if err := decodeObject(dec, "", log); err != nil {
		return nil, err
	}
	return log, nil
}

// decodeObject consumes an object body (opening brace already read) and
// inserts flattened fields under the given prefix.
func decodeObject(dec *json.Decoder, prefix string, log *Log) error {
	for {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("invalid event: %w", err)
		}
		if d, ok := tok.(json.Delim); ok && d == '}' {
			return nil
		}

		key := tok.(string)
		name := key
		if prefix != "" {
			name = prefix + "." + key
		}
		if err := decodeValue(dec, name, log); err != nil {
			return err
		}
	}
}

// decodeArray consumes an array body and inserts elements as "name[i]".
func decodeArray(dec *json.Decoder, name string, log *Log) error {
	for i := 0; ; i++ {
		if !dec.More() {
			// Consume closing bracket
			if _, err := dec.Token(); err != nil {
				return fmt.Errorf("invalid event: %w", err)
			}
			return nil
		}
		if err := decodeValue(dec, name+"["+strconv.Itoa(i)+"]", log); err != nil {
			return err
		}
	}
}

// decodeValue consumes one value and inserts it (or its flattened children).
func decodeValue(dec *json.Decoder, name string, log *Log) error {
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("invalid event: %w", err)
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeObject(dec, name, log)
		case '[':
			return decodeArray(dec, name, log)
		}
		return fmt.Errorf("invalid event: unexpected delimiter %v", t)
	case bool:
		log.Insert(name, BoolValue(t))
	case json.Number:
		log.Insert(name, NumberValue(t))
	case string:
		log.Insert(name, StringValue(t))
	case nil:
		log.Insert(name, StringValue(""))
	default:
		return fmt.Errorf("invalid event: unexpected token %v", tok)
	}
	return nil
}

// NumberValue applies structural typing to a JSON number literal: integer
// unless the literal carries a fractional part or exponent.
func NumberValue(n json.Number) Value {
	s := n.String()
	if !strings.ContainsAny(s, ".eE") {
		if i, err := n.Int64(); err == nil {
			return IntegerValue(i)
		}
	}
	f, err := n.Float64()
	if err != nil {
		return StringValue(s)
	}
	return FloatValue(f)
}
