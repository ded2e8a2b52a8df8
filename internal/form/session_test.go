package form

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zapinvo/zapinvo/internal/entity"
)

func fixedClock() func() time.Time {
	return func() time.Time {
		return time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	}
}

func testBusiness(name string) entity.BusinessDetails {
	return entity.BusinessDetails{
		AddressDetails: entity.AddressDetails{
			Name:  name,
			City:  "Pune",
			Phone: "555",
		},
	}
}

func TestNewSessionSeedsOneBlank(t *testing.T) {
	s := NewSession(testBusiness("Acme"), WithClock(fixedClock()))

	require.Equal(t, 1, s.Len())
	rec := s.Records()[0]
	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, "2026-03-14", rec.Date)
	assert.Equal(t, "Acme", rec.Business.Name)
	assert.Equal(t, "New", rec.DisplayNumber())
	assert.Empty(t, rec.Customer.Name)
}

func TestCreateBlankHasNoSideEffect(t *testing.T) {
	s := NewSession(testBusiness("Acme"))

	before := s.Len()
	blank := s.CreateBlank()
	assert.Equal(t, before, s.Len())

	other := s.CreateBlank()
	assert.NotEqual(t, blank.ID, other.ID)
}

func TestAddCopiesDefaultBusiness(t *testing.T) {
	s := NewSession(testBusiness("Acme"))

	added := s.Add()
	assert.Equal(t, "Acme", added.Business.Name)

	// The copy is owned by the new record: editing it must not leak into
	// the first record or the default.
	added.Business.Name = "Changed Co"
	require.True(t, s.Update(added))
	assert.Equal(t, "Acme", s.Records()[0].Business.Name)
	assert.Equal(t, "Acme", s.DefaultBusiness().Name)
}

func TestUpdatePreservesPosition(t *testing.T) {
	s := NewSession(testBusiness("Acme"))
	s.Add()
	s.Add()

	records := s.Records()
	mid := records[1]
	mid.InvoiceNumber = "INV-042"
	require.True(t, s.Update(mid))

	after := s.Records()
	assert.Equal(t, records[0].ID, after[0].ID)
	assert.Equal(t, mid.ID, after[1].ID)
	assert.Equal(t, "INV-042", after[1].InvoiceNumber)
	assert.Equal(t, records[2].ID, after[2].ID)
}

func TestUpdateUnknownIDIsNoOp(t *testing.T) {
	s := NewSession(testBusiness("Acme"))
	before := s.Records()

	ghost := s.CreateBlank()
	ghost.InvoiceNumber = "GHOST"
	assert.False(t, s.Update(ghost))
	assert.Equal(t, before, s.Records())
}

func TestRemoveLastRecordResetsToBlank(t *testing.T) {
	s := NewSession(testBusiness("Acme"))
	only := s.Records()[0]

	filled := only
	filled.Customer.Name = "Jane"
	filled.InvoiceNumber = "INV-1"
	require.True(t, s.Update(filled))

	s.Remove(only.ID)

	require.Equal(t, 1, s.Len())
	fresh := s.Records()[0]
	assert.NotEqual(t, only.ID, fresh.ID)
	assert.Empty(t, fresh.InvoiceNumber)
	assert.Empty(t, fresh.Customer.Name)
}

func TestRemoveMiddleRecord(t *testing.T) {
	s := NewSession(testBusiness("Acme"))
	s.Add()
	s.Add()
	records := s.Records()

	s.Remove(records[1].ID)

	after := s.Records()
	require.Equal(t, 2, len(after))
	assert.Equal(t, records[0].ID, after[0].ID)
	assert.Equal(t, records[2].ID, after[1].ID)
}

func TestRemoveUnknownIDIsNoOp(t *testing.T) {
	s := NewSession(testBusiness("Acme"))
	before := s.Records()

	s.Remove("nope")
	assert.Equal(t, before, s.Records())
}

func TestDefaultBusinessTracksFirstRecord(t *testing.T) {
	s := NewSession(testBusiness("Acme"))
	s.Add()

	first := s.Records()[0]
	first.Business.Name = "Fresh Name Ltd"
	require.True(t, s.Update(first))
	assert.Equal(t, "Fresh Name Ltd", s.DefaultBusiness().Name)

	// New records pick up the updated default.
	added := s.Add()
	assert.Equal(t, "Fresh Name Ltd", added.Business.Name)

	// Removing the first record re-sources the default from the new head.
	s.Remove(first.ID)
	assert.Equal(t, s.Records()[0].Business, s.DefaultBusiness())
}

func TestDefaultBusinessInvariantAfterEveryMutation(t *testing.T) {
	s := NewSession(testBusiness("Acme"))

	check := func() {
		t.Helper()
		require.NotZero(t, s.Len())
		assert.Equal(t, s.Records()[0].Business, s.DefaultBusiness())
	}

	s.Add()
	check()
	head := s.Records()[0]
	head.Business.City = "Mumbai"
	s.Update(head)
	check()
	s.Remove(head.ID)
	check()
	s.Remove(s.Records()[0].ID)
	check()
}

func TestReplaceAdoptsLoadedRecords(t *testing.T) {
	s := NewSession(testBusiness("Acme"))

	loaded := []entity.InvoiceRecord{
		{ID: "a", InvoiceNumber: "INV-9", Business: testBusiness("Loaded Co")},
		{ID: "b", InvoiceNumber: "INV-8", Business: testBusiness("Loaded Co")},
	}
	s.Replace(loaded)

	require.Equal(t, 2, s.Len())
	assert.Equal(t, "Loaded Co", s.DefaultBusiness().Name)

	// Empty input never wipes the session.
	s.Replace(nil)
	assert.Equal(t, 2, s.Len())
}

func TestAtUsesOneBasedPositions(t *testing.T) {
	s := NewSession(testBusiness("Acme"))
	s.Add()

	rec, ok := s.At(2)
	require.True(t, ok)
	assert.Equal(t, s.Records()[1].ID, rec.ID)

	_, ok = s.At(0)
	assert.False(t, ok)
	_, ok = s.At(3)
	assert.False(t, ok)
}
