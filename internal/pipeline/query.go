package pipeline

import (
	"strings"

	"github.com/02loveslollipop/sisbi-dashboard/internal/models"
)

// Query narrows a merged listing. The zero value matches everything.
type Query struct {
	Search     string
	BovineOnly bool
}

// IsZero reports whether the query filters nothing.
func (q Query) IsZero() bool {
	return strings.TrimSpace(q.Search) == "" && !q.BovineOnly
}

// Match reports whether one record passes the query. Search is a
// case-insensitive substring match on name, state and municipality, and a
// plain substring match on the tax id.
func (q Query) Match(rec models.MergedEstablishment) bool {
	if q.BovineOnly && !rec.Capacities.HasBovine() {
		return false
	}
	term := strings.TrimSpace(q.Search)
	if term == "" {
		return true
	}
	lower := strings.ToLower(term)
	return strings.Contains(strings.ToLower(rec.Name), lower) ||
		strings.Contains(rec.TaxID, term) ||
		strings.Contains(strings.ToLower(rec.StateCode), lower) ||
		strings.Contains(strings.ToLower(rec.Municipality), lower)
}

// Filter returns the records matching q in their original order. The input
// slice is not modified.
func Filter(rows []models.MergedEstablishment, q Query) []models.MergedEstablishment {
	out := make([]models.MergedEstablishment, 0, len(rows))
	for _, rec := range rows {
		if q.Match(rec) {
			out = append(out, rec)
		}
	}
	return out
}
