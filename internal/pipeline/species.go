package pipeline

// Upstream vocabulary. Matching against these is exact: case and accents
// are significant.
const (
	SpeciesBovine  = "Bovino"
	SpeciesSwine   = "Suíno"
	SpeciesGoat    = "Caprino"
	SpeciesSheep   = "Ovino"
	SpeciesBuffalo = "Bubalino"

	UnitPerDay  = "Animal/dia"
	UnitPerHour = "Animal/hora"

	hourlySuffix = "_hourly"

	// KeyBovineHourly is the only hourly bucket that is modeled.
	KeyBovineHourly = SpeciesBovine + hourlySuffix

	// NotAvailable is the placeholder for absent text fields.
	NotAvailable = "N/A"
)

// namedKeys are the aggregation keys with a dedicated output field.
var namedKeys = map[string]struct{}{
	SpeciesBovine:   {},
	KeyBovineHourly: {},
	SpeciesSwine:    {},
	SpeciesGoat:     {},
	SpeciesSheep:    {},
	SpeciesBuffalo:  {},
}
