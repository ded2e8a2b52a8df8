package entity

// InvoiceRecord represents one invoice for transfer between layers and to
// the remote store. ID is assigned at creation, immutable across edits,
// and is the sole join key with the remote store. Business is an owned
// snapshot, so editing one record's business block never mutates
// another's.
type InvoiceRecord struct {
	ID            string          `json:"id"`
	InvoiceNumber string          `json:"invoiceNumber"`
	Date          string          `json:"date"` // YYYY-MM-DD
	TotalAmount   string          `json:"totalAmount"`
	Business      BusinessDetails `json:"business"`
	Customer      AddressDetails  `json:"customer"`
}

// DisplayNumber is the invoice number shown to the user; an unassigned
// number displays as "New".
func (r InvoiceRecord) DisplayNumber() string {
	if r.InvoiceNumber == "" {
		return "New"
	}
	return r.InvoiceNumber
}
