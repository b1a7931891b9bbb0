// Package types provides domain identifiers and sentinel errors shared by
// the pipeline's storage and CLI layers.
//
// The condition core (internal/condition, internal/event) does not depend on
// this package: compile errors there are user-facing strings with exact
// wording, not sentinels. This package covers the surrounding plumbing.
package types

// ConditionID represents a UUIDv7 identifier for a stored condition.
// String alias keeps JSON and database serialization plain while giving the
// compiler something to check.
type ConditionID string
