package store

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zapinvo/zapinvo/internal/entity"
)

type fakeStore struct {
	saved   []string
	failIDs map[string]bool
	err     error
}

func (f *fakeStore) Save(_ context.Context, rec entity.InvoiceRecord) error {
	if f.err != nil {
		return f.err
	}
	if f.failIDs[rec.ID] {
		return &RemoteError{Op: "updateOne", Status: 500, Message: "boom"}
	}
	f.saved = append(f.saved, rec.ID)
	return nil
}

func (f *fakeStore) LoadAll(context.Context) ([]entity.InvoiceRecord, error) {
	return nil, nil
}

func records(ids ...string) []entity.InvoiceRecord {
	out := make([]entity.InvoiceRecord, len(ids))
	for i, id := range ids {
		out[i] = entity.InvoiceRecord{ID: id}
	}
	return out
}

func TestSaveAllUpsertsEveryRecord(t *testing.T) {
	st := &fakeStore{}
	require.NoError(t, SaveAll(context.Background(), st, records("a", "b", "c")))
	assert.Equal(t, []string{"a", "b", "c"}, st.saved)
}

func TestSaveAllAggregatesFailuresIntoOneError(t *testing.T) {
	st := &fakeStore{failIDs: map[string]bool{"b": true, "d": true}}
	err := SaveAll(context.Background(), st, records("a", "b", "c", "d"))

	require.Error(t, err)
	// One aggregate error naming both failed records; the successes still
	// settled.
	assert.Contains(t, err.Error(), "record b")
	assert.Contains(t, err.Error(), "record d")
	assert.Equal(t, []string{"a", "c"}, st.saved)
}

func TestSaveAllShortCircuitsWhenNotConfigured(t *testing.T) {
	st := &fakeStore{err: fmt.Errorf("save: %w", ErrNotConfigured)}
	err := SaveAll(context.Background(), st, records("a", "b", "c"))
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestSaveAllEmptyListSucceeds(t *testing.T) {
	assert.NoError(t, SaveAll(context.Background(), &fakeStore{}, nil))
}
