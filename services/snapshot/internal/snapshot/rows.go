// Package snapshot turns a merged listing into capacity snapshot rows and
// decides which of them are worth storing.
package snapshot

import (
	"fmt"
	"math"
	"time"

	"github.com/02loveslollipop/sisbi-dashboard/internal/models"
)

// Row is one capacity snapshot ready for insertion.
type Row struct {
	EstablishmentID string
	Name            string
	StateCode       string
	Status          string
	Capacities      models.Capacities
	DailyTotal      float64
	CapturedAt      time.Time
}

// Last is the most recent stored snapshot of an establishment.
type Last struct {
	Capacities models.Capacities
	CapturedAt time.Time
}

// BuildRows converts merged establishments into snapshot rows. Records
// without a usable identifier are skipped.
func BuildRows(listing []models.MergedEstablishment, capturedAt time.Time) []Row {
	rows := make([]Row, 0, len(listing))
	for _, rec := range listing {
		if !rec.ID.Valid() {
			continue
		}
		rows = append(rows, Row{
			EstablishmentID: rec.ID.String(),
			Name:            rec.Name,
			StateCode:       rec.StateCode,
			Status:          rec.Status,
			Capacities:      rec.Capacities,
			DailyTotal:      rec.Capacities.DailyTotal(),
			CapturedAt:      capturedAt,
		})
	}
	return rows
}

// EstablishmentIDs extracts establishment identifiers from rows.
func EstablishmentIDs(rows []Row) []string {
	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.EstablishmentID)
	}
	return ids
}

// FilterChanged keeps rows that have no stored snapshot, whose last snapshot
// is at least minInterval old, or whose capacities moved beyond epsilon.
func FilterChanged(rows []Row, last map[string]Last, minInterval time.Duration, epsilon float64) []Row {
	out := make([]Row, 0, len(rows))
	for _, row := range rows {
		prev, ok := last[row.EstablishmentID]
		if !ok {
			out = append(out, row)
			continue
		}

		if row.CapturedAt.Sub(prev.CapturedAt) >= minInterval {
			out = append(out, row)
			continue
		}

		if !CapacitiesEqual(prev.Capacities, row.Capacities, epsilon) {
			out = append(out, row)
		}
	}
	return out
}

// CapacitiesEqual compares every capacity bucket with tolerance.
func CapacitiesEqual(a, b models.Capacities, epsilon float64) bool {
	pairs := [][2]float64{
		{a.Bovine, b.Bovine},
		{a.BovineHourly, b.BovineHourly},
		{a.Swine, b.Swine},
		{a.Goat, b.Goat},
		{a.Sheep, b.Sheep},
		{a.Buffalo, b.Buffalo},
		{a.Other, b.Other},
	}
	for _, p := range pairs {
		if math.Abs(p[0]-p[1]) > epsilon {
			return false
		}
	}
	return true
}

// Describe prints a row for dry-run logging.
func Describe(row Row) string {
	return fmt.Sprintf("%s %q uf=%s bovine=%.0f/dia total=%.0f/dia",
		row.EstablishmentID, row.Name, row.StateCode, row.Capacities.Bovine, row.DailyTotal)
}
