package db

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/02loveslollipop/sisbi-dashboard/internal/models"
)

// Store wraps database access helpers.
type Store struct {
	pool *pgxpool.Pool
}

// New creates a Store backed by a pgx pool.
func New(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

// Close releases the pool resources.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Snapshot is one stored capacity snapshot of an establishment.
type Snapshot struct {
	RunID      string            `json:"run_id"`
	CapturedAt time.Time         `json:"captured_at"`
	Name       string            `json:"name"`
	StateCode  string            `json:"state_code"`
	Status     string            `json:"status"`
	Capacities models.Capacities `json:"capacities"`
	DailyTotal float64           `json:"daily_total"`
}

const historySQL = `
    SELECT run_id::text, captured_at, name, state_code, status, capacities, daily_total
    FROM sisbi.capacity_snapshots
    WHERE establishment_id = $1
    ORDER BY captured_at DESC
    LIMIT $2
`

// History returns the most recent snapshots of an establishment, newest first.
func (s *Store) History(ctx context.Context, establishmentID string, limit int) ([]Snapshot, error) {
	rows, err := s.pool.Query(ctx, historySQL, establishmentID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	snapshots := make([]Snapshot, 0)
	for rows.Next() {
		var snap Snapshot
		var capacitiesJSON []byte
		if err := rows.Scan(
			&snap.RunID,
			&snap.CapturedAt,
			&snap.Name,
			&snap.StateCode,
			&snap.Status,
			&capacitiesJSON,
			&snap.DailyTotal,
		); err != nil {
			return nil, err
		}
		if len(capacitiesJSON) > 0 {
			if err := json.Unmarshal(capacitiesJSON, &snap.Capacities); err != nil {
				return nil, err
			}
		}
		snapshots = append(snapshots, snap)
	}
	return snapshots, rows.Err()
}
