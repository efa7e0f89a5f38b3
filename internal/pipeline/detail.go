package pipeline

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/02loveslollipop/sisbi-dashboard/internal/models"
)

type detailBucket int

const (
	bucketOther detailBucket = iota
	bucketBovine
	bucketSwine
	bucketGoat
	bucketSheep
	bucketBuffalo
)

// speciesAliases maps lower-cased species labels from the detail resource
// to output buckets. "su√≠nos" is how the registry sometimes serves a
// mis-encoded "suínos".
var speciesAliases = map[string]detailBucket{
	"bovino":    bucketBovine,
	"bovinos":   bucketBovine,
	"suino":     bucketSwine,
	"suinos":    bucketSwine,
	"suíno":     bucketSwine,
	"suínos":    bucketSwine,
	"su√≠nos":   bucketSwine,
	"caprino":   bucketGoat,
	"caprinos":  bucketGoat,
	"ovino":     bucketSheep,
	"ovinos":    bucketSheep,
	"bubalino":  bucketBuffalo,
	"bubalinos": bucketBuffalo,
}

// A cases.Caser keeps state, so one is built per call.
func normalizeSpeciesLabel(label string) string {
	lower := cases.Lower(language.BrazilianPortuguese).String(label)
	return norm.NFC.String(strings.TrimSpace(lower))
}

func classifySpecies(label string) detailBucket {
	return speciesAliases[normalizeSpeciesLabel(label)]
}

// AggregateDetail buckets one establishment's slaughter throughput by
// species. Unknown species count towards Other (daily only); hourly
// throughput is kept for bovines only.
func AggregateDetail(animals []models.RawAnimal) models.SlaughterDetail {
	var out models.SlaughterDetail
	for _, animal := range animals {
		day := int64(animal.SlaughterPerDay)
		switch classifySpecies(animal.Species.Value) {
		case bucketBovine:
			out.Bovine += day
			out.BovineHourly += int64(animal.SlaughterPerHour)
		case bucketSwine:
			out.Swine += day
		case bucketGoat:
			out.Goat += day
		case bucketSheep:
			out.Sheep += day
		case bucketBuffalo:
			out.Buffalo += day
		default:
			out.Other += day
		}
	}
	return out
}
