package export

import (
	"strconv"
	"strings"

	"github.com/light-bringer/ordertally-service/internal/app/catalog/domain"
)

const allStatesLabel = "All States"

var unsafeNameChars = strings.NewReplacer("/", "_", "\\", "_", "\x00", "")

// InvoiceFileName names a single-entry invoice: <productName>_customer_<entryId>.pdf
func InvoiceFileName(productName string, entryID int64) string {
	return unsafeNameChars.Replace(productName) + "_customer_" + strconv.FormatInt(entryID, 10) + ".pdf"
}

// BulkFileName names a bulk export: bulk_customer_entries_<state>.pdf, with
// All_States when no state filter is active.
func BulkFileName(state *string) string {
	return "bulk_customer_entries_" + strings.ReplaceAll(unsafeNameChars.Replace(stateLabel(state)), " ", "_") + ".pdf"
}

func stateLabel(state *string) string {
	if state == nil || *state == "" || *state == domain.AllStates {
		return allStatesLabel
	}
	return *state
}
