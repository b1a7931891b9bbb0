// internal/event/event.go
package event

/*
 * Event variants consumed by condition evaluation.
 *
 * Two shapes:
 *   - Log: ordered mapping from flattened field path to scalar Value
 *   - Metric: named series with an optional string tag map
 *
 * Log field names are flattened dotted paths ("nested.inner.key"); lookup is
 * exact on the flattened name. Insertion order is preserved and re-inserting
 * an existing field replaces the value in place, so iteration order is stable
 * across updates.
 *
 * Conditions only read events. Mutation happens upstream of evaluation, so
 * a fully built event may be shared across evaluation goroutines.
 */

// Event is either a *Log or a *Metric.
type Event interface {
	isEvent()
}

// Log is a structured log record with ordered named fields.
type Log struct {
	names  []string
	fields map[string]Value
}

// NewLog returns an empty log event.
func NewLog() *Log {
	return &Log{fields: make(map[string]Value)}
}

func (l *Log) isEvent() {}

// Insert sets a field value. New fields append to the iteration order;
// existing fields are replaced in place.
func (l *Log) Insert(name string, v Value) {
	if _, ok := l.fields[name]; !ok {
		l.names = append(l.names, name)
	}
	l.fields[name] = v
}

// Get returns the value for a flattened field path.
func (l *Log) Get(name string) (Value, bool) {
	v, ok := l.fields[name]
	return v, ok
}

// Len returns the number of fields.
func (l *Log) Len() int {
	return len(l.names)
}

// Names returns field names in insertion order.
func (l *Log) Names() []string {
	out := make([]string, len(l.names))
	copy(out, l.names)
	return out
}

// Metric is a named series with optional string tags.
type Metric struct {
	Name string
	Tags map[string]string // nil when the metric carries no tags
}

func (m *Metric) isEvent() {}

// Tag returns the tag value for a name. Safe on a nil tag map.
func (m *Metric) Tag(name string) (string, bool) {
	if m.Tags == nil {
		return "", false
	}
	v, ok := m.Tags[name]
	return v, ok
}

// HasTag reports whether the named tag is present.
func (m *Metric) HasTag(name string) bool {
	_, ok := m.Tag(name)
	return ok
}
