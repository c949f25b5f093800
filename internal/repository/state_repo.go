package repository

import (
	"database/sql"
	"errors"

	"hagxwon/internal/database"
)

// ErrNotFound is returned when a state key has never been written
var ErrNotFound = errors.New("state key not found")

// StateRepository stores opaque string values under string keys.
// It is the durable mirror of the in-memory study state.
type StateRepository struct {
	db *database.DB
}

// NewStateRepository creates a new state repository
func NewStateRepository(db *database.DB) *StateRepository {
	return &StateRepository{db: db}
}

// Get retrieves a value by key. Returns ErrNotFound for absent keys.
func (r *StateRepository) Get(key string) (string, error) {
	var value string
	query := "SELECT value FROM app_state WHERE state_key = ?"
	err := r.db.QueryRow(query, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// Set updates or inserts a value under key
func (r *StateRepository) Set(key, value string) error {
	_, err := r.db.Exec(r.db.Dialect.UpsertState(), key, value)
	return err
}
