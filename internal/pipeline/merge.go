package pipeline

import (
	"sort"

	"github.com/02loveslollipop/sisbi-dashboard/internal/models"
)

// Merge left-joins establishments with aggregated capacities. Every
// establishment appears exactly once, in input order; capacity entries for
// unknown establishments are ignored.
func Merge(establishments []models.RawEstablishment, agg Aggregated) []models.MergedEstablishment {
	out := make([]models.MergedEstablishment, 0, len(establishments))
	for _, raw := range establishments {
		merged := NormalizeEstablishment(raw)
		merged.Capacities = BuildCapacities(agg[raw.ID])
		out = append(out, merged)
	}
	return out
}

// BuildCapacities projects one establishment's species buckets onto the
// fixed output fields. Keys outside the named set are summed into Other.
func BuildCapacities(bySpecies map[string]float64) models.Capacities {
	caps := models.Capacities{
		Bovine:       bySpecies[SpeciesBovine],
		BovineHourly: bySpecies[KeyBovineHourly],
		Swine:        bySpecies[SpeciesSwine],
		Goat:         bySpecies[SpeciesGoat],
		Sheep:        bySpecies[SpeciesSheep],
		Buffalo:      bySpecies[SpeciesBuffalo],
	}

	// sorted so float addition order, and therefore output, is stable
	others := make([]string, 0, len(bySpecies))
	for key := range bySpecies {
		if _, named := namedKeys[key]; !named {
			others = append(others, key)
		}
	}
	sort.Strings(others)
	for _, key := range others {
		caps.Other += bySpecies[key]
	}
	return caps
}
