package pipeline

import (
	"fmt"
	"sort"
	"strings"

	"github.com/02loveslollipop/sisbi-dashboard/internal/models"
)

// Establishment status codes.
const (
	StatusActive  = "A"
	StatusPending = "P"
)

// StateStats summarizes the establishments of one state.
type StateStats struct {
	StateCode            string  `json:"stateCode"`
	Total                int     `json:"total"`
	Active               int     `json:"active"`
	Pending              int     `json:"pending"`
	OtherStatus          int     `json:"otherStatus"`
	WithBovine           int     `json:"withBovine"`
	BovineCapacity       float64 `json:"bovineCapacity"`
	BovineHourlyCapacity float64 `json:"bovineHourlyCapacity"`
}

// StateTotals sums a report across states.
type StateTotals struct {
	States         int     `json:"states"`
	Establishments int     `json:"establishments"`
	Active         int     `json:"active"`
	WithBovine     int     `json:"withBovine"`
	BovineCapacity float64 `json:"bovineCapacity"`
}

// StateReport is the per-state breakdown of a listing.
type StateReport struct {
	States []StateStats `json:"states"`
	Totals StateTotals  `json:"totals"`
}

// StateSort orders a StateReport.
type StateSort string

const (
	SortByTotal  StateSort = "total"
	SortByState  StateSort = "alpha"
	SortByBovine StateSort = "bovine"
)

// ParseStateSort accepts "", "total", "alpha" or "bovine".
func ParseStateSort(s string) (StateSort, error) {
	switch v := StateSort(strings.ToLower(strings.TrimSpace(s))); v {
	case "":
		return SortByTotal, nil
	case SortByTotal, SortByState, SortByBovine:
		return v, nil
	default:
		return "", fmt.Errorf("unknown sort %q", s)
	}
}

// StatsByState groups merged records by state code. Ties in the chosen
// order fall back to the state code so the output is deterministic.
func StatsByState(rows []models.MergedEstablishment, by StateSort) StateReport {
	index := make(map[string]*StateStats)
	for _, rec := range rows {
		st, ok := index[rec.StateCode]
		if !ok {
			st = &StateStats{StateCode: rec.StateCode}
			index[rec.StateCode] = st
		}
		st.Total++
		switch rec.Status {
		case StatusActive:
			st.Active++
		case StatusPending:
			st.Pending++
		default:
			st.OtherStatus++
		}
		if rec.Capacities.HasBovine() {
			st.WithBovine++
			st.BovineCapacity += rec.Capacities.Bovine
			st.BovineHourlyCapacity += rec.Capacities.BovineHourly
		}
	}

	states := make([]StateStats, 0, len(index))
	for _, st := range index {
		states = append(states, *st)
	}
	sort.Slice(states, func(i, j int) bool {
		a, b := states[i], states[j]
		switch by {
		case SortByBovine:
			if a.WithBovine != b.WithBovine {
				return a.WithBovine > b.WithBovine
			}
		case SortByState:
		default:
			if a.Total != b.Total {
				return a.Total > b.Total
			}
		}
		return a.StateCode < b.StateCode
	})

	report := StateReport{States: states}
	report.Totals.States = len(states)
	for _, st := range states {
		report.Totals.Establishments += st.Total
		report.Totals.Active += st.Active
		report.Totals.WithBovine += st.WithBovine
		report.Totals.BovineCapacity += st.BovineCapacity
	}
	return report
}
