package db

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/02loveslollipop/sisbi-dashboard/services/snapshot/internal/snapshot"
)

// FetchLastSnapshots loads the most recent stored snapshot per establishment.
func FetchLastSnapshots(ctx context.Context, pool *pgxpool.Pool, establishmentIDs []string) (map[string]snapshot.Last, error) {
	result := make(map[string]snapshot.Last, len(establishmentIDs))
	if len(establishmentIDs) == 0 {
		return result, nil
	}

	rows, err := pool.Query(ctx, `
SELECT DISTINCT ON (establishment_id) establishment_id, capacities, captured_at
FROM sisbi.capacity_snapshots
WHERE establishment_id = ANY($1)
ORDER BY establishment_id, captured_at DESC`, establishmentIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		var capacitiesJSON []byte
		var ts time.Time
		if err := rows.Scan(&id, &capacitiesJSON, &ts); err != nil {
			return nil, err
		}
		last := snapshot.Last{CapturedAt: ts}
		if err := json.Unmarshal(capacitiesJSON, &last.Capacities); err != nil {
			return nil, err
		}
		result[id] = last
	}

	return result, rows.Err()
}

// InsertSnapshots writes snapshot rows tagged with the run identifier.
func InsertSnapshots(ctx context.Context, pool *pgxpool.Pool, runID uuid.UUID, snapshots []snapshot.Row) error {
	if len(snapshots) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	query := `INSERT INTO sisbi.capacity_snapshots (run_id, establishment_id, captured_at, name, state_code, status, capacities, daily_total)
VALUES ($1::uuid,$2,$3,$4,$5,$6,$7::jsonb,$8)
ON CONFLICT (establishment_id, captured_at) DO UPDATE
SET run_id = EXCLUDED.run_id,
    name = EXCLUDED.name,
    state_code = EXCLUDED.state_code,
    status = EXCLUDED.status,
    capacities = EXCLUDED.capacities,
    daily_total = EXCLUDED.daily_total`

	for _, s := range snapshots {
		capacitiesJSON, err := json.Marshal(s.Capacities)
		if err != nil {
			return err
		}
		batch.Queue(query, runID.String(), s.EstablishmentID, s.CapturedAt, s.Name, s.StateCode, s.Status, string(capacitiesJSON), s.DailyTotal)
	}

	res := pool.SendBatch(ctx, batch)
	defer res.Close()

	for range snapshots {
		if _, err := res.Exec(); err != nil {
			return err
		}
	}

	return nil
}
