package extract

import "github.com/zapinvo/zapinvo/internal/entity"

// ApplyTo merges the guess into a record non-destructively and returns the
// result. Customer fields merge one by one: only fields the model supplied
// overwrite. The business block is touched as a whole, and only when the
// extracted business carries a name, so a sparse or noisy guess can never
// wipe a populated business block with blanks. Scalar fields overwrite
// only when non-empty. The record's id and logo are never changed.
func (f ExtractedFields) ApplyTo(rec entity.InvoiceRecord) entity.InvoiceRecord {
	if f.Customer != nil {
		mergeAddress(&rec.Customer, *f.Customer)
	}
	if f.Business != nil && f.Business.Name != "" {
		mergeAddress(&rec.Business.AddressDetails, *f.Business)
	}
	if f.InvoiceNumber != "" {
		rec.InvoiceNumber = f.InvoiceNumber
	}
	if f.Date != "" {
		rec.Date = f.Date
	}
	if f.TotalAmount != "" {
		rec.TotalAmount = f.TotalAmount
	}
	return rec
}

func mergeAddress(dst *entity.AddressDetails, src AddressFields) {
	if src.Name != "" {
		dst.Name = src.Name
	}
	if src.AddressLine1 != "" {
		dst.AddressLine1 = src.AddressLine1
	}
	if src.City != "" {
		dst.City = src.City
	}
	if src.State != "" {
		dst.State = src.State
	}
	if src.Pincode != "" {
		dst.Pincode = src.Pincode
	}
	if src.Phone != "" {
		dst.Phone = src.Phone
	}
}
