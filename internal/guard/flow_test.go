package guard

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zapinvo/zapinvo/internal/entity"
)

type fakeDriver struct {
	prints  int
	exports int
	err     error
}

func (d *fakeDriver) PrintNow([]entity.InvoiceRecord) error {
	d.prints++
	return d.err
}

func (d *fakeDriver) ExportFile([]entity.InvoiceRecord) error {
	d.exports++
	return d.err
}

func complete() []entity.InvoiceRecord {
	return []entity.InvoiceRecord{record("Acme", "Jane")}
}

func incomplete() []entity.InvoiceRecord {
	return []entity.InvoiceRecord{record("Acme", "")}
}

func TestRequestCompleteExecutesImmediately(t *testing.T) {
	driver := &fakeDriver{}
	flow := NewFlow(driver, nil)

	res, err := flow.Request(ActionPrint, complete())
	require.NoError(t, err)
	assert.True(t, res.Complete)
	assert.Equal(t, 1, driver.prints)
	assert.Equal(t, Idle, flow.State())
}

func TestRequestIncompleteAwaitsConfirmation(t *testing.T) {
	driver := &fakeDriver{}
	flow := NewFlow(driver, nil)

	res, err := flow.Request(ActionExport, incomplete())
	require.NoError(t, err)
	assert.False(t, res.Complete)
	assert.Equal(t, AwaitingConfirmation, flow.State())
	assert.Zero(t, driver.exports)

	pending, blocked := flow.Pending()
	assert.Equal(t, ActionExport, pending)
	assert.Equal(t, res, blocked)
}

func TestConfirmRunsPendingActionExactlyOnce(t *testing.T) {
	driver := &fakeDriver{}
	flow := NewFlow(driver, nil)

	_, err := flow.Request(ActionExport, incomplete())
	require.NoError(t, err)

	// A double-registered confirm click still runs the action once.
	require.NoError(t, flow.Confirm(incomplete()))
	require.NoError(t, flow.Confirm(incomplete()))
	assert.Equal(t, 1, driver.exports)
	assert.Equal(t, Idle, flow.State())
}

func TestCancelReturnsToIdleWithoutRunning(t *testing.T) {
	driver := &fakeDriver{}
	flow := NewFlow(driver, nil)

	_, err := flow.Request(ActionPrint, incomplete())
	require.NoError(t, err)
	flow.Cancel()

	assert.Equal(t, Idle, flow.State())
	assert.Zero(t, driver.prints)

	// Confirm after cancel must not resurrect the action.
	require.NoError(t, flow.Confirm(incomplete()))
	assert.Zero(t, driver.prints)
}

func TestSecondRequestReplacesPendingAction(t *testing.T) {
	driver := &fakeDriver{}
	flow := NewFlow(driver, nil)

	_, err := flow.Request(ActionPrint, incomplete())
	require.NoError(t, err)
	_, err = flow.Request(ActionExport, incomplete())
	require.NoError(t, err)

	require.NoError(t, flow.Confirm(incomplete()))
	assert.Zero(t, driver.prints)
	assert.Equal(t, 1, driver.exports)
}

func TestRequestCompleteWhileAwaitingClearsSlot(t *testing.T) {
	driver := &fakeDriver{}
	flow := NewFlow(driver, nil)

	_, err := flow.Request(ActionExport, incomplete())
	require.NoError(t, err)

	// Records were fixed up in the meantime; the new request executes and
	// leaves nothing pending.
	_, err = flow.Request(ActionPrint, complete())
	require.NoError(t, err)
	assert.Equal(t, 1, driver.prints)

	require.NoError(t, flow.Confirm(complete()))
	assert.Zero(t, driver.exports)
}

func TestDriverErrorPropagates(t *testing.T) {
	driver := &fakeDriver{err: errors.New("no printer")}
	flow := NewFlow(driver, nil)

	_, err := flow.Request(ActionPrint, complete())
	assert.EqualError(t, err, "no printer")
	assert.Equal(t, Idle, flow.State())
}
