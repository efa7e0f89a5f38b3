package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/02loveslollipop/sisbi-dashboard/internal/models"
)

func sampleListing() []models.MergedEstablishment {
	return []models.MergedEstablishment{
		{ID: "1", Name: "Frigorífico Goiás", StateCode: "GO", Municipality: "Anápolis", Status: "A", TaxID: "11222333000181",
			Capacities: models.Capacities{Bovine: 500, BovineHourly: 60}},
		{ID: "2", Name: "Suinocultura Sul", StateCode: "SC", Municipality: "Chapecó", Status: "A", TaxID: "99888777000166",
			Capacities: models.Capacities{Swine: 2000}},
		{ID: "3", Name: "Abatedouro Norte", StateCode: "GO", Municipality: "Rio Verde", Status: "P", TaxID: "N/A",
			Capacities: models.Capacities{BovineHourly: 10}},
		{ID: "4", Name: "Laticínio", StateCode: "MG", Municipality: "Uberaba", Status: "X", TaxID: "N/A"},
	}
}

func ids(rows []models.MergedEstablishment) []models.ID {
	out := make([]models.ID, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.ID)
	}
	return out
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name  string
		query Query
		want  []models.ID
	}{
		{"zero query", Query{}, []models.ID{"1", "2", "3", "4"}},
		{"bovine only", Query{BovineOnly: true}, []models.ID{"1", "3"}},
		{"name case-insensitive", Query{Search: "suinocultura"}, []models.ID{"2"}},
		{"state", Query{Search: "go"}, []models.ID{"1", "3"}},
		{"municipality", Query{Search: "UBERABA"}, []models.ID{"4"}},
		{"tax id", Query{Search: "99888"}, []models.ID{"2"}},
		{"search and bovine", Query{Search: "norte", BovineOnly: true}, []models.ID{"3"}},
		{"no match", Query{Search: "zzz"}, []models.ID{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Filter(sampleListing(), tt.query)))
		})
	}
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	rows := sampleListing()
	_ = Filter(rows, Query{BovineOnly: true})
	assert.Equal(t, sampleListing(), rows)
}

func TestQuery_IsZero(t *testing.T) {
	assert.True(t, Query{}.IsZero())
	assert.True(t, Query{Search: "  "}.IsZero())
	assert.False(t, Query{BovineOnly: true}.IsZero())
	assert.False(t, Query{Search: "x"}.IsZero())
}

func TestStatsByState(t *testing.T) {
	report := StatsByState(sampleListing(), SortByTotal)

	require.Len(t, report.States, 3)
	assert.Equal(t, StateStats{
		StateCode:            "GO",
		Total:                2,
		Active:               1,
		Pending:              1,
		WithBovine:           2,
		BovineCapacity:       500,
		BovineHourlyCapacity: 70,
	}, report.States[0])
	// MG and SC tie on total and fall back to state code
	assert.Equal(t, "MG", report.States[1].StateCode)
	assert.Equal(t, 1, report.States[1].OtherStatus)
	assert.Equal(t, "SC", report.States[2].StateCode)

	assert.Equal(t, StateTotals{
		States:         3,
		Establishments: 4,
		Active:         2,
		WithBovine:     2,
		BovineCapacity: 500,
	}, report.Totals)
}

func TestStatsByState_Sorts(t *testing.T) {
	alpha := StatsByState(sampleListing(), SortByState)
	assert.Equal(t, []string{"GO", "MG", "SC"}, stateCodes(alpha))

	bovine := StatsByState(sampleListing(), SortByBovine)
	assert.Equal(t, []string{"GO", "MG", "SC"}, stateCodes(bovine))
	assert.Equal(t, 2, bovine.States[0].WithBovine)
}

func TestStatsByState_Empty(t *testing.T) {
	report := StatsByState(nil, SortByTotal)
	assert.Empty(t, report.States)
	assert.Equal(t, StateTotals{}, report.Totals)
}

func TestParseStateSort(t *testing.T) {
	s, err := ParseStateSort("")
	require.NoError(t, err)
	assert.Equal(t, SortByTotal, s)

	s, err = ParseStateSort("Bovine")
	require.NoError(t, err)
	assert.Equal(t, SortByBovine, s)

	_, err = ParseStateSort("random")
	assert.Error(t, err)
}

func stateCodes(r StateReport) []string {
	out := make([]string, 0, len(r.States))
	for _, st := range r.States {
		out = append(out, st.StateCode)
	}
	return out
}
