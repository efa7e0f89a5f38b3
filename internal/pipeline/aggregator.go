package pipeline

import "github.com/02loveslollipop/sisbi-dashboard/internal/models"

// Aggregated maps establishment id -> species key -> summed capacity.
// Day capacities use the raw species name as key; the bovine hourly
// capacity uses KeyBovineHourly.
type Aggregated map[models.ID]map[string]float64

// AggregateStats counts what a pass over the capacity records did.
type AggregateStats struct {
	Used            int
	MissingJoinKey  int
	UnmodeledMetric int
}

// Aggregate groups capacity records by establishment and species.
//
// Records without an establishment id or species name are dropped. Only
// "Animal/dia" records and "Animal/hora" records of species "Bovino" are
// summed; every other unit/species combination is ignored.
func Aggregate(records []models.RawCapacityRecord) (Aggregated, AggregateStats) {
	out := make(Aggregated)
	var stats AggregateStats

	for _, rec := range records {
		id := rec.EstablishmentID()
		species := rec.SpeciesName()
		if !id.Valid() || species == "" {
			stats.MissingJoinKey++
			continue
		}

		var key string
		switch unit := rec.Unit(); {
		case unit == UnitPerDay:
			key = species
		case unit == UnitPerHour && species == SpeciesBovine:
			key = species + hourlySuffix
		default:
			stats.UnmodeledMetric++
			continue
		}

		bucket, ok := out[id]
		if !ok {
			bucket = make(map[string]float64)
			out[id] = bucket
		}
		bucket[key] += float64(rec.Capacity)
		stats.Used++
	}

	return out, stats
}
