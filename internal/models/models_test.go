package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestID_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  ID
	}{
		{"integer", `123`, "123"},
		{"integral float", `123.0`, "123"},
		{"string", `"456"`, "456"},
		{"padded string", `" 789 "`, "789"},
		{"null", `null`, ""},
		{"object", `{"a":1}`, ""},
		{"bool", `true`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var id ID
			require.NoError(t, json.Unmarshal([]byte(tt.input), &id))
			assert.Equal(t, tt.want, id)
		})
	}
}

func TestID_MarshalJSON(t *testing.T) {
	b, err := json.Marshal(ID("42"))
	require.NoError(t, err)
	assert.Equal(t, `42`, string(b))

	b, err = json.Marshal(ID("SIF-42"))
	require.NoError(t, err)
	assert.Equal(t, `"SIF-42"`, string(b))
}

func TestID_Valid(t *testing.T) {
	assert.True(t, ID("1").Valid())
	assert.False(t, ID("").Valid())
	assert.False(t, ID("0").Valid())
}

func TestQuantity_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Quantity
	}{
		{"number", `12.5`, 12.5},
		{"numeric string", `"30"`, 30},
		{"negative", `-4`, 0},
		{"garbage string", `"abc"`, 0},
		{"null", `null`, 0},
		{"array", `[1]`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var q Quantity
			require.NoError(t, json.Unmarshal([]byte(tt.input), &q))
			assert.InDelta(t, float64(tt.want), float64(q), 1e-9)
		})
	}
}

func TestLooseInt_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  LooseInt
	}{
		{"number", `40`, 40},
		{"fraction truncates", `12.7`, 12},
		{"string", `"25"`, 25},
		{"leading digits", `"12abc"`, 12},
		{"spaces", `"  8 "`, 8},
		{"garbage", `"abc"`, 0},
		{"empty", `""`, 0},
		{"negative", `"-3"`, 0},
		{"null", `null`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var n LooseInt
			require.NoError(t, json.Unmarshal([]byte(tt.input), &n))
			assert.Equal(t, tt.want, n)
		})
	}
}

func TestOptString(t *testing.T) {
	var s OptString
	require.NoError(t, json.Unmarshal([]byte(`"  Abc "`), &s))
	assert.True(t, s.Set)
	assert.Equal(t, "  Abc ", s.Value)

	require.NoError(t, json.Unmarshal([]byte(`null`), &s))
	assert.False(t, s.Set)
	assert.Equal(t, "N/A", s.OrDefault("N/A"))

	assert.Equal(t, "N/A", Str("   ").OrDefault("N/A"))
	assert.Equal(t, "SP", Str("SP").OrDefault("N/A"))
}

func TestRawCapacityRecord_Accessors(t *testing.T) {
	payload := `{
		"estabSisbiClassificacao": {"estabelecimentoSisbi": {"idEstabSisbi": 7}},
		"categEstabEspecie": {"especie": {"nmEspecie": "Bovino"}},
		"qtCapacidade": 150,
		"tipoCapacProducao": {"nmTipoCapacProducao": "Animal/dia"}
	}`

	var rec RawCapacityRecord
	require.NoError(t, DecodeLenient([]byte(payload), &rec))
	assert.Equal(t, ID("7"), rec.EstablishmentID())
	assert.Equal(t, "Bovino", rec.SpeciesName())
	assert.Equal(t, "Animal/dia", rec.Unit())
	assert.InDelta(t, 150.0, float64(rec.Capacity), 1e-9)

	var empty RawCapacityRecord
	assert.Equal(t, ID(""), empty.EstablishmentID())
	assert.Empty(t, empty.SpeciesName())
	assert.Empty(t, empty.Unit())
}

func TestDecodeLenient_ToleratesMismatchedShapes(t *testing.T) {
	payload := `{"idEstabSisbi": 3, "nome": "X", "pessoa": "not-an-object"}`

	var est RawEstablishment
	require.NoError(t, DecodeLenient([]byte(payload), &est))
	assert.Equal(t, ID("3"), est.ID)
	assert.Equal(t, "X", est.Name.Value)
	assert.False(t, est.TaxID().Set)

	assert.Error(t, DecodeLenient([]byte(`{broken`), &est))
}

func TestRawAnimals_UnmarshalJSON(t *testing.T) {
	var detail RawEstablishmentDetail
	require.NoError(t, json.Unmarshal([]byte(`{"animais": "nope"}`), &detail))
	assert.Empty(t, detail.Animals)

	require.NoError(t, json.Unmarshal([]byte(`{"animais": [1, {"especie": "Bovino", "capacidadeAbateDia": "10"}]}`), &detail))
	require.Len(t, detail.Animals, 1)
	assert.Equal(t, "Bovino", detail.Animals[0].Species.Value)
	assert.Equal(t, LooseInt(10), detail.Animals[0].SlaughterPerDay)
}

func TestCapacities_Helpers(t *testing.T) {
	c := Capacities{Bovine: 10, BovineHourly: 3, Swine: 5, Other: 2}
	assert.InDelta(t, 17.0, c.DailyTotal(), 1e-9)
	assert.True(t, c.HasBovine())
	assert.False(t, Capacities{Swine: 1}.HasBovine())
	assert.True(t, Capacities{BovineHourly: 1}.HasBovine())
}
