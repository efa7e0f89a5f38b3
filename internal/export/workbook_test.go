package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/02loveslollipop/sisbi-dashboard/internal/models"
)

func sampleRows() []models.MergedEstablishment {
	return []models.MergedEstablishment{
		{ID: "1", Name: "Frigorífico A", StateCode: "GO", Municipality: "Anápolis", Status: "A", TaxID: "11222333000181",
			Capacities: models.Capacities{Bovine: 500, BovineHourly: 60, Swine: 20, Other: 3}},
		{ID: "2", Name: "N/A", StateCode: "N/A", Municipality: "N/A", Status: "P", TaxID: "N/A"},
	}
}

func TestBuild_AllSpecies(t *testing.T) {
	f, err := Build(sampleRows(), false)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetAll)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{
		"Nome", "CNPJ", "UF", "Município", "Situação",
		"Bovinos (abate/dia)", "Bovinos (abate/hora)",
		"Suínos (abate/dia)", "Caprinos (abate/dia)", "Ovinos (abate/dia)",
		"Bubalinos (abate/dia)", "Outras (abate/dia)",
	}, rows[0])
	assert.Equal(t, []string{
		"Frigorífico A", "11.222.333/0001-81", "GO", "Anápolis", "Ativo",
		"500", "60", "20", "0", "0", "0", "3",
	}, rows[1])
	assert.Equal(t, "Pendente", rows[2][4])
}

func TestBuild_BovineOnly(t *testing.T) {
	f, err := Build(sampleRows(), true)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetBovine}, f.GetSheetList())
	rows, err := f.GetRows(SheetBovine)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Len(t, rows[0], 7)
}

func TestWriteWorkbook_ProducesReadableFile(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteWorkbook(&buf, sampleRows(), false))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	name, err := f.GetCellValue(SheetAll, "A2")
	require.NoError(t, err)
	assert.Equal(t, "Frigorífico A", name)
}

func TestWriteWorkbook_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteWorkbook(&buf, nil, false))
	assert.NotZero(t, buf.Len())
}

func TestFileName(t *testing.T) {
	now := time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)

	assert.Equal(t, "estabelecimentos_sisbi_2026-10-17.xlsx", FileName(now, false, false))
	assert.Equal(t, "estabelecimentos_sisbi_bovinos_filtrado_2026-10-17.xlsx", FileName(now, true, true))
}

func TestFormatTaxID(t *testing.T) {
	assert.Equal(t, "11.222.333/0001-81", FormatTaxID("11222333000181"))
	assert.Equal(t, "N/A", FormatTaxID("N/A"))
	assert.Equal(t, "123", FormatTaxID("123"))
}

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "Ativo", StatusLabel("A"))
	assert.Equal(t, "Pendente", StatusLabel("P"))
	assert.Equal(t, "X", StatusLabel("X"))
}
