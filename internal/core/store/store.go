// Package store persists named condition configurations.
//
// The pipeline owns an explicit registry of conditions instead of relying on
// process-wide self-registration: condition blocks are stored by name, the
// ordered predicate mapping serialized as JSON, and compiled by the caller
// after load. The store never holds compiled predicates.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/jakeswenson/vector/internal/condition"
	"github.com/jakeswenson/vector/internal/core/db"
	"github.com/jakeswenson/vector/internal/types"
)

// Record is one stored condition row.
type Record struct {
	ID        types.ConditionID `db:"condition_id"`
	Name      string            `db:"name"`
	Config    string            `db:"config"`
	CreatedAt string            `db:"created_at"`
}

// Store provides CRUD access to the condition registry.
type Store struct {
	db      *sqlx.DB
	queries *db.Queries
}

// New creates a store over an open database connection.
func New(database *sqlx.DB) (*Store, error) {
	if database == nil {
		return nil, fmt.Errorf("database cannot be nil")
	}
	queries, err := db.LoadQueries(database)
	if err != nil {
		return nil, fmt.Errorf("failed to load queries: %w", err)
	}
	return &Store{db: database, queries: queries}, nil
}

// Put saves a condition configuration under a name, replacing the config of
// an existing condition while keeping its ID. Declaration order survives the
// round-trip: Config serializes to JSON with keys in declared order.
func (s *Store) Put(name string, cfg *condition.Config) (types.ConditionID, error) {
	encoded, err := json.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("failed to encode condition '%s': %w", name, err)
	}

	var existing Record
	err = s.queries.Get("get-condition", &existing, name)
	switch {
	case err == nil:
		if _, err := s.queries.Exec("update-condition", string(encoded), name); err != nil {
			return "", fmt.Errorf("failed to update condition '%s': %w", name, err)
		}
		return existing.ID, nil
	case errors.Is(err, sql.ErrNoRows):
		id := types.NewConditionID()
		createdAt := time.Now().UTC().Format(time.RFC3339)
		if _, err := s.queries.Exec("create-condition", string(id), name, string(encoded), createdAt); err != nil {
			return "", fmt.Errorf("failed to create condition '%s': %w", name, err)
		}
		return id, nil
	default:
		return "", fmt.Errorf("failed to look up condition '%s': %w", name, err)
	}
}

// Get loads the configuration stored under a name.
// Returns types.ErrConditionNotFound when the name is unknown.
func (s *Store) Get(name string) (*condition.Config, error) {
	var rec Record
	err := s.queries.Get("get-condition", &rec, name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, types.ErrConditionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load condition '%s': %w", name, err)
	}

	cfg := &condition.Config{}
	if err := json.Unmarshal([]byte(rec.Config), cfg); err != nil {
		return nil, fmt.Errorf("failed to decode condition '%s': %w", name, err)
	}
	return cfg, nil
}

// List returns all stored conditions ordered by name.
func (s *Store) List() ([]Record, error) {
	var records []Record
	if err := s.queries.Select("list-conditions", &records); err != nil {
		return nil, fmt.Errorf("failed to list conditions: %w", err)
	}
	return records, nil
}

// Delete removes a stored condition.
// Returns types.ErrConditionNotFound when the name is unknown.
func (s *Store) Delete(name string) error {
	res, err := s.queries.Exec("delete-condition", name)
	if err != nil {
		return fmt.Errorf("failed to delete condition '%s': %w", name, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return types.ErrConditionNotFound
	}
	return nil
}
