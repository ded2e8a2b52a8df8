package store

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/multierr"

	"github.com/zapinvo/zapinvo/internal/entity"
)

// SaveAll issues one upsert per record and is complete only when all have
// settled. The operation fails as a whole: individual failures are
// combined into a single aggregate error, not reported per record. A
// missing configuration short-circuits immediately.
func SaveAll(ctx context.Context, st RemoteStore, records []entity.InvoiceRecord) error {
	var errs error
	for _, rec := range records {
		if err := st.Save(ctx, rec); err != nil {
			if errors.Is(err, ErrNotConfigured) {
				return err
			}
			errs = multierr.Append(errs, fmt.Errorf("record %s: %w", rec.ID, err))
		}
	}
	return errs
}
