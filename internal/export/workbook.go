package export

import (
	"fmt"
	"io"
	"regexp"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/02loveslollipop/sisbi-dashboard/internal/models"
)

const (
	SheetAll    = "Estabelecimentos"
	SheetBovine = "Estabelecimentos_Bovinos"

	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var (
	baseHeader = []interface{}{
		"Nome", "CNPJ", "UF", "Município", "Situação",
		"Bovinos (abate/dia)", "Bovinos (abate/hora)",
	}
	speciesHeader = []interface{}{
		"Suínos (abate/dia)", "Caprinos (abate/dia)", "Ovinos (abate/dia)",
		"Bubalinos (abate/dia)", "Outras (abate/dia)",
	}

	cnpjPattern = regexp.MustCompile(`^(\d{2})(\d{3})(\d{3})(\d{4})(\d{2})$`)
)

// Build renders merged establishments into a single-sheet workbook. With
// bovineOnly the per-species columns beyond bovine are left out. The caller
// owns the returned file and must Close it.
func Build(rows []models.MergedEstablishment, bovineOnly bool) (*excelize.File, error) {
	f := excelize.NewFile()

	sheet := SheetAll
	if bovineOnly {
		sheet = SheetBovine
	}
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	header := append([]interface{}{}, baseHeader...)
	if !bovineOnly {
		header = append(header, speciesHeader...)
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		f.Close()
		return nil, fmt.Errorf("write header: %w", err)
	}

	for i, rec := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			f.Close()
			return nil, err
		}
		values := []interface{}{
			rec.Name,
			FormatTaxID(rec.TaxID),
			rec.StateCode,
			rec.Municipality,
			StatusLabel(rec.Status),
			rec.Capacities.Bovine,
			rec.Capacities.BovineHourly,
		}
		if !bovineOnly {
			values = append(values,
				rec.Capacities.Swine,
				rec.Capacities.Goat,
				rec.Capacities.Sheep,
				rec.Capacities.Buffalo,
				rec.Capacities.Other,
			)
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			f.Close()
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	return f, nil
}

// WriteWorkbook builds the workbook and writes it to w.
func WriteWorkbook(w io.Writer, rows []models.MergedEstablishment, bovineOnly bool) error {
	f, err := Build(rows, bovineOnly)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Write(w)
}

// FileName is the download name for an export generated at now.
func FileName(now time.Time, filtered, bovineOnly bool) string {
	kind := ""
	if bovineOnly {
		kind = "_bovinos"
	}
	filter := ""
	if filtered {
		filter = "_filtrado"
	}
	return fmt.Sprintf("estabelecimentos_sisbi%s%s_%s.xlsx", kind, filter, now.Format("2006-01-02"))
}

// FormatTaxID formats a 14-digit CNPJ as 00.000.000/0000-00. Anything else
// is returned unchanged.
func FormatTaxID(cnpj string) string {
	return cnpjPattern.ReplaceAllString(cnpj, "$1.$2.$3/$4-$5")
}

// StatusLabel spells out the registry status code.
func StatusLabel(code string) string {
	switch code {
	case "A":
		return "Ativo"
	case "P":
		return "Pendente"
	default:
		return code
	}
}
