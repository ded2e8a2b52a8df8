package form

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/zapinvo/zapinvo/internal/entity"
)

// Session owns the ordered invoice list for one editing session together
// with the default business block used to pre-fill new records. Insertion
// order is display order; there is no reorder operation. All mutations
// happen on the single interactive control flow, so there is no locking.
type Session struct {
	records         []entity.InvoiceRecord
	defaultBusiness entity.BusinessDetails
	now             func() time.Time
	logger          *slog.Logger
}

type Option func(*Session)

// WithClock overrides the time source used to date new records.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) { s.logger = logger }
}

// NewSession starts a session seeded with the given default business and a
// single blank record, mirroring a freshly opened editor.
func NewSession(defaultBusiness entity.BusinessDetails, opts ...Option) *Session {
	s := &Session{
		defaultBusiness: defaultBusiness,
		now:             time.Now,
		logger:          slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.records = []entity.InvoiceRecord{s.CreateBlank()}
	s.syncDefaultBusiness()
	return s
}

// CreateBlank returns a new record with a fresh id, today's date, a copy
// of the session's default business and an empty customer. It has no side
// effect on the session.
func (s *Session) CreateBlank() entity.InvoiceRecord {
	return entity.InvoiceRecord{
		ID:       uuid.NewString(),
		Date:     s.now().Format("2006-01-02"),
		Business: s.defaultBusiness,
	}
}

// Add appends a blank record and returns it. Always succeeds.
func (s *Session) Add() entity.InvoiceRecord {
	rec := s.CreateBlank()
	s.records = append(s.records, rec)
	s.syncDefaultBusiness()
	s.logger.Debug("form.add", "id", rec.ID, "count", len(s.records))
	return rec
}

// Update replaces the record whose id matches the replacement's,
// preserving its position. An unknown id leaves the session untouched;
// the return value reports whether a record was replaced.
func (s *Session) Update(replacement entity.InvoiceRecord) bool {
	for i := range s.records {
		if s.records[i].ID == replacement.ID {
			s.records[i] = replacement
			s.syncDefaultBusiness()
			return true
		}
	}
	s.logger.Debug("form.update.unknown_id", "id", replacement.ID)
	return false
}

// Remove deletes the record with the given id. The list never becomes
// empty: removing the last remaining record resets the list to a single
// fresh blank instead. An unknown id is a no-op.
func (s *Session) Remove(id string) {
	idx := -1
	for i := range s.records {
		if s.records[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return
	}
	if len(s.records) == 1 {
		s.records[0] = s.CreateBlank()
	} else {
		s.records = append(s.records[:idx], s.records[idx+1:]...)
	}
	s.syncDefaultBusiness()
	s.logger.Debug("form.remove", "id", id, "count", len(s.records))
}

// Replace adopts a whole record list, e.g. the result of a remote load.
// An empty input is ignored so a failed or empty load never wipes the
// session.
func (s *Session) Replace(records []entity.InvoiceRecord) {
	if len(records) == 0 {
		return
	}
	s.records = make([]entity.InvoiceRecord, len(records))
	copy(s.records, records)
	s.syncDefaultBusiness()
	s.logger.Debug("form.replace", "count", len(s.records))
}

// Records returns a snapshot of the ordered list.
func (s *Session) Records() []entity.InvoiceRecord {
	out := make([]entity.InvoiceRecord, len(s.records))
	copy(out, s.records)
	return out
}

// Get returns the record with the given id.
func (s *Session) Get(id string) (entity.InvoiceRecord, bool) {
	for _, rec := range s.records {
		if rec.ID == id {
			return rec, true
		}
	}
	return entity.InvoiceRecord{}, false
}

// At returns the record at a 1-based display position.
func (s *Session) At(position int) (entity.InvoiceRecord, bool) {
	if position < 1 || position > len(s.records) {
		return entity.InvoiceRecord{}, false
	}
	return s.records[position-1], true
}

func (s *Session) Len() int { return len(s.records) }

// DefaultBusiness returns the business block used to pre-fill new
// records. It tracks the first record's business block.
func (s *Session) DefaultBusiness() entity.BusinessDetails {
	return s.defaultBusiness
}

// The default is recomputed from records[0] after every mutation rather
// than patched incrementally, so it cannot drift.
func (s *Session) syncDefaultBusiness() {
	if len(s.records) > 0 {
		s.defaultBusiness = s.records[0].Business
	}
}
