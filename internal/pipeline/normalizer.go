package pipeline

import (
	"strings"

	"github.com/02loveslollipop/sisbi-dashboard/internal/models"
)

// NormalizeEstablishment maps a raw establishment into the output shape with
// every text field defaulted. Capacities are left at zero.
func NormalizeEstablishment(raw models.RawEstablishment) models.MergedEstablishment {
	return models.MergedEstablishment{
		ID:           raw.ID,
		Name:         strings.TrimSpace(raw.Name.OrDefault(NotAvailable)),
		StateCode:    raw.StateCode.OrDefault(NotAvailable),
		Municipality: raw.Municipality.OrDefault(NotAvailable),
		Status:       raw.Status.OrDefault(NotAvailable),
		TaxID:        raw.TaxID().OrDefault(NotAvailable),
	}
}
