package render

import "github.com/zapinvo/zapinvo/internal/entity"

// Line is one "Label: value" row of an address column.
type Line struct {
	Label string
	Value string
}

// Block is the fixed two-column FROM/TO layout for one record. Optional
// fields that are blank are omitted entirely rather than rendered as
// empty labels, and an absent logo omits the image area.
type Block struct {
	RecordID     string
	BusinessName string
	CustomerName string
	From         []Line
	To           []Line
	InvoiceNo    string
	Date         string
	TotalAmount  string // empty = no amount row
	LogoURL      string // empty = no logo area
}

// BuildBlock materializes a record into its layout block.
func BuildBlock(rec entity.InvoiceRecord) Block {
	b := Block{
		RecordID:     rec.ID,
		BusinessName: rec.Business.Name,
		CustomerName: rec.Customer.Name,
		From:         addressLines(rec.Business.AddressDetails),
		To:           addressLines(rec.Customer),
		InvoiceNo:    rec.DisplayNumber(),
		Date:         rec.Date,
		TotalAmount:  rec.TotalAmount,
		LogoURL:      rec.Business.LogoURL,
	}
	if b.BusinessName == "" {
		b.BusinessName = "Business Name"
	}
	if b.CustomerName == "" {
		b.CustomerName = "Customer Name"
	}
	return b
}

func addressLines(a entity.AddressDetails) []Line {
	all := []Line{
		{Label: "Address", Value: a.AddressLine1},
		{Label: "City", Value: a.City},
		{Label: "State", Value: a.State},
		{Label: "Pincode", Value: a.Pincode},
		{Label: "Phone", Value: a.Phone},
	}
	out := make([]Line, 0, len(all))
	for _, l := range all {
		if l.Value != "" {
			out = append(out, l)
		}
	}
	return out
}
