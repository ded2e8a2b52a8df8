package guard

import (
	"strings"

	"github.com/zapinvo/zapinvo/internal/entity"
)

// Field labels reported to the user, in the fixed order they appear in a
// Result.
const (
	FieldBusinessName = "Business Name"
	FieldCustomerName = "Customer Name"
)

// Result of a completeness scan. Position is 1-based and names the first
// incomplete record in list order; later incomplete records are not
// reported.
type Result struct {
	Complete      bool
	Position      int
	MissingFields []string
}

// CheckCompleteness scans the records in order and reports the first one
// whose business name or customer name is blank after trimming. The total
// amount is not part of completeness: the amount may be decided after
// printing.
func CheckCompleteness(records []entity.InvoiceRecord) Result {
	for i, rec := range records {
		var missing []string
		if strings.TrimSpace(rec.Business.Name) == "" {
			missing = append(missing, FieldBusinessName)
		}
		if strings.TrimSpace(rec.Customer.Name) == "" {
			missing = append(missing, FieldCustomerName)
		}
		if len(missing) > 0 {
			return Result{Position: i + 1, MissingFields: missing}
		}
	}
	return Result{Complete: true}
}
