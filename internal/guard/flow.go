package guard

import (
	"fmt"
	"log/slog"

	"github.com/zapinvo/zapinvo/internal/entity"
)

// Action is one of the two terminal actions gated behind completeness.
// Both are irreversible once they leave the session (paper out of the
// printer, file on disk), which is why partial records need an explicit
// confirmation first.
type Action string

const (
	ActionPrint  Action = "print"
	ActionExport Action = "export"
)

// ExportDriver is the capability executed once an action clears the gate.
// Implementations render the full ordered record list into the fixed
// layout and hand it to a print or file backend.
type ExportDriver interface {
	PrintNow(records []entity.InvoiceRecord) error
	ExportFile(records []entity.InvoiceRecord) error
}

// State of the pending-action flow.
type State int

const (
	Idle State = iota
	AwaitingConfirmation
)

// Flow gates print/export behind CheckCompleteness. There is a single
// pending-action slot: requesting a new action while another is awaiting
// confirmation silently replaces it.
type Flow struct {
	driver  ExportDriver
	logger  *slog.Logger
	state   State
	pending Action
	result  Result
}

func NewFlow(driver ExportDriver, logger *slog.Logger) *Flow {
	if logger == nil {
		logger = slog.Default()
	}
	return &Flow{driver: driver, logger: logger}
}

func (f *Flow) State() State { return f.state }

// Pending returns the action awaiting confirmation and the completeness
// result that blocked it.
func (f *Flow) Pending() (Action, Result) { return f.pending, f.result }

// Request checks the record set and either executes the action
// immediately and synchronously (all records complete) or parks it
// awaiting explicit confirmation. The returned Result tells the caller
// what to present: on Incomplete, show the missing fields and position,
// then Cancel or Confirm.
func (f *Flow) Request(action Action, records []entity.InvoiceRecord) (Result, error) {
	res := CheckCompleteness(records)
	if res.Complete {
		f.reset()
		return res, f.execute(action, records)
	}
	if f.state == AwaitingConfirmation {
		f.logger.Debug("guard.request.replaced", "was", string(f.pending), "now", string(action))
	}
	f.state = AwaitingConfirmation
	f.pending = action
	f.result = res
	f.logger.Info("guard.incomplete",
		"action", string(action),
		"position", res.Position,
		"missing", res.MissingFields,
	)
	return res, nil
}

// Confirm force-proceeds with the pending action. The slot is cleared
// before execution, so a double-registered confirm runs the action
// exactly once.
func (f *Flow) Confirm(records []entity.InvoiceRecord) error {
	if f.state != AwaitingConfirmation {
		return nil
	}
	action := f.pending
	f.reset()
	f.logger.Info("guard.confirmed", "action", string(action))
	return f.execute(action, records)
}

// Cancel returns to editing without running anything.
func (f *Flow) Cancel() {
	f.reset()
}

func (f *Flow) reset() {
	f.state = Idle
	f.pending = ""
	f.result = Result{}
}

func (f *Flow) execute(action Action, records []entity.InvoiceRecord) error {
	switch action {
	case ActionPrint:
		return f.driver.PrintNow(records)
	case ActionExport:
		return f.driver.ExportFile(records)
	default:
		return fmt.Errorf("unknown action %q", action)
	}
}
