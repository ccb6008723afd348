// Package repository defines the durable append-only match log.
package repository

import (
	"context"

	"github.com/pitchside/oracle/internal/domain/model"
)

// Store is the append-only match history. It exclusively owns the ordered
// log; aggregates are always derived from it, never the other way around.
type Store interface {
	// Append validates the record and, if valid, durably appends it and
	// returns its sequential id. A rejected record is never partially
	// stored.
	Append(ctx context.Context, m model.Match) (int64, error)

	// All returns the full history in insertion order. The result is a
	// fresh slice on every call and can be iterated repeatedly.
	All(ctx context.Context) ([]model.Match, error)

	// Count returns the number of stored matches.
	Count(ctx context.Context) (int, error)

	// Close releases the underlying storage.
	Close() error
}
