package settings

import "github.com/go-playground/validator/v10"

// Config addresses the remote document store. The store is treated as
// configured only when both Endpoint and APIKey are non-empty; otherwise
// every store operation is refused before any network attempt.
type Config struct {
	APIKey     string `json:"apiKey"`
	Endpoint   string `json:"endpoint" validate:"omitempty,url"`
	DataSource string `json:"dataSource"`
	Database   string `json:"database"`
	Collection string `json:"collection"`
}

// Default returns the built-in placeholder configuration.
func Default() Config {
	return Config{
		DataSource: "Cluster0",
		Database:   "invoice_app",
		Collection: "invoices",
	}
}

func (c Config) IsConfigured() bool {
	return c.APIKey != "" && c.Endpoint != ""
}

var validate = validator.New()

// Validate checks the shape of user-entered settings. Only the endpoint
// has a format worth checking; everything else is free text.
func (c Config) Validate() error {
	return validate.Struct(c)
}
