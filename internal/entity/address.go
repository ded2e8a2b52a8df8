package entity

// AddressDetails is one postal address block. All fields are free text;
// the empty string means "unset", not absence.
type AddressDetails struct {
	Name         string `json:"name"`
	AddressLine1 string `json:"addressLine1"`
	City         string `json:"city"`
	State        string `json:"state"`
	Pincode      string `json:"pincode"`
	Phone        string `json:"phone"`
}

// BusinessDetails is an address plus an optional logo reference (a base64
// data URL). The logo is display-only and never validated.
type BusinessDetails struct {
	AddressDetails
	LogoURL string `json:"logoUrl,omitempty"`
}
