// Package store keeps recent projection results so a client can fetch the
// full ledger of a run after the summary response.
package store

import (
	"context"
	"errors"
	"time"

	"genomic-storage-cost/internal/config"
	"genomic-storage-cost/internal/projection"
)

var ErrEmptyID = errors.New("record id required")

// Record is one stored projection run.
type Record struct {
	ID        string                `json:"id"`
	CreatedAt time.Time             `json:"created_at"`
	Scenario  config.ScenarioConfig `json:"scenario"`
	Ledger    []projection.StepRow  `json:"ledger"`
}

type Store interface {
	Put(ctx context.Context, r Record) error
	Get(ctx context.Context, id string) (Record, bool, error)
	Close() error
}
