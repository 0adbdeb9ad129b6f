// Package rates stores the shop's manually entered reference rates used to
// pre-fill the calculator forms.
package rates

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned when the reference rate row is missing.
var ErrNotFound = errors.New("rates: reference rate not found")

// Reference is the singleton row of reference rates.
type Reference struct {
	GoldPricePerGram  float64
	LabourCostPerGram float64
	UpdatedAt         time.Time
}

// Store reads and writes the reference rate row.
type Store struct {
	db *sql.DB
}

// NewStore returns a Store backed by db.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Ensure inserts the zero-valued singleton row when it does not exist yet.
func (s *Store) Ensure(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO reference_rates (id, gold_price_per_gram, labour_cost_per_gram)
		VALUES (1, 0, 0)
		ON CONFLICT(id) DO NOTHING
	`)
	if err != nil {
		return fmt.Errorf("insert default reference_rates: %w", err)
	}
	return nil
}

// Get returns the current reference rates.
func (s *Store) Get(ctx context.Context) (Reference, error) {
	var ref Reference
	var updatedAt string
	err := s.db.QueryRowContext(ctx, `
		SELECT gold_price_per_gram, labour_cost_per_gram, updated_at
		FROM reference_rates
		WHERE id = 1
	`).Scan(&ref.GoldPricePerGram, &ref.LabourCostPerGram, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Reference{}, ErrNotFound
		}
		return Reference{}, fmt.Errorf("query reference_rates: %w", err)
	}
	ref.UpdatedAt = parseTimestamp(updatedAt)
	return ref, nil
}

// parseTimestamp accepts both the CURRENT_TIMESTAMP text form and the RFC 3339
// form the driver uses for DATETIME columns. Unparseable values yield zero.
func parseTimestamp(v string) time.Time {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02 15:04:05"} {
		if ts, err := time.Parse(layout, v); err == nil {
			return ts
		}
	}
	return time.Time{}
}

// Update stores new reference rates. Both values must be non-negative.
func (s *Store) Update(ctx context.Context, goldPricePerGram, labourCostPerGram float64) error {
	if goldPricePerGram < 0 || labourCostPerGram < 0 {
		return fmt.Errorf("rates: values must be greater than or equal to 0")
	}

	if err := s.Ensure(ctx); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		UPDATE reference_rates
		SET
			gold_price_per_gram = ?,
			labour_cost_per_gram = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = 1
	`, goldPricePerGram, labourCostPerGram)
	if err != nil {
		return fmt.Errorf("update reference_rates: %w", err)
	}
	return nil
}
