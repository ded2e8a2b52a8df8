package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/zapinvo/zapinvo/internal/entity"
)

// ErrNotConfigured is returned before any network attempt when the remote
// store settings are missing an endpoint or key. Recoverable: the user is
// pointed at the settings form.
var ErrNotConfigured = errors.New("remote store is not configured")

// RemoteError carries a remote or transport failure. For non-2xx
// responses the body text becomes the message. A failed call never
// mutates local session state.
type RemoteError struct {
	Op      string // "updateOne", "find"
	Status  int    // 0 when the request never got a response
	Message string
}

func (e *RemoteError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("store %s: status %d: %s", e.Op, e.Status, e.Message)
	}
	return fmt.Sprintf("store %s: %s", e.Op, e.Message)
}

// RemoteStore is the document-store boundary.
//
// Save is an idempotent upsert keyed by the record id: saving the same id
// twice with different content keeps the latest content, never a
// duplicate entry. LoadAll returns a bounded, newest-by-date-first list;
// an empty successful result is distinct from an error.
type RemoteStore interface {
	Save(ctx context.Context, rec entity.InvoiceRecord) error
	LoadAll(ctx context.Context) ([]entity.InvoiceRecord, error)
}
