package extract

import "context"

// AddressFields is a sparse address guess: only the fields the model
// actually found in the text are set.
type AddressFields struct {
	Name         string `json:"name,omitempty"`
	AddressLine1 string `json:"addressLine1,omitempty"`
	City         string `json:"city,omitempty"`
	State        string `json:"state,omitempty"`
	Pincode      string `json:"pincode,omitempty"`
	Phone        string `json:"phone,omitempty"`
}

// ExtractedFields is the best-effort partial guess returned by the
// extraction model. Every field is optional.
type ExtractedFields struct {
	Business      *AddressFields `json:"business,omitempty"`
	Customer      *AddressFields `json:"customer,omitempty"`
	InvoiceNumber string         `json:"invoiceNumber,omitempty"`
	Date          string         `json:"date,omitempty"`
	TotalAmount   string         `json:"totalAmount,omitempty"`
}

// IsEmpty reports whether the guess carries nothing at all.
func (f ExtractedFields) IsEmpty() bool {
	return f.Business == nil && f.Customer == nil &&
		f.InvoiceNumber == "" && f.Date == "" && f.TotalAmount == ""
}

// FieldExtractor turns free text into a partial fields guess. It never
// fails across this boundary: on any failure (absent configuration,
// network, malformed response) implementations return the zero
// ExtractedFields.
type FieldExtractor interface {
	ExtractFields(ctx context.Context, freeText string) ExtractedFields
}
