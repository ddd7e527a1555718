package repository

import (
	"database/sql"
	"errors"
	"time"
)

// StateRepository persists application state blobs as a key/value table.
// It backs the catalog's favourites and search-history collections.
type StateRepository struct {
	db *sql.DB
}

// NewStateRepository creates a new StateRepository.
func NewStateRepository(db *sql.DB) *StateRepository {
	return &StateRepository{db: db}
}

// Get returns the value stored under key. A missing key yields an empty
// string and no error.
func (r *StateRepository) Get(key string) (string, error) {
	var value string
	err := r.db.QueryRow(`SELECT value FROM app_state WHERE key = $1`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// Set stores value under key, replacing any previous value.
func (r *StateRepository) Set(key, value string) error {
	_, err := r.db.Exec(`
		INSERT INTO app_state (key, value, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = EXCLUDED.updated_at
	`, key, value, time.Now())
	return err
}
