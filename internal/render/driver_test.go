package render

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zapinvo/zapinvo/internal/entity"
)

func TestPrintNowWritesFromToStrips(t *testing.T) {
	var sb strings.Builder
	d := NewDriver(&sb, "", nil)

	require.NoError(t, d.PrintNow([]entity.InvoiceRecord{fullRecord(), fullRecord()}))
	out := sb.String()

	assert.Contains(t, out, "FROM")
	assert.Contains(t, out, "TO")
	assert.Contains(t, out, "ACME")
	assert.Contains(t, out, "Jane")
	assert.Contains(t, out, "Inv #: INV-1")
	assert.Contains(t, out, "Total: 250.00")
	assert.Equal(t, 2, strings.Count(out, "CUT HERE"))
}

func TestPrintNowOmitsBlankOptionalLines(t *testing.T) {
	var sb strings.Builder
	d := NewDriver(&sb, "", nil)

	rec := fullRecord()
	rec.TotalAmount = ""
	rec.Customer = entity.AddressDetails{Name: "Jane"}
	require.NoError(t, d.PrintNow([]entity.InvoiceRecord{rec}))

	out := sb.String()
	assert.NotContains(t, out, "Total:")
	assert.NotContains(t, out, "Phone: |", "no empty labels may appear")
	assert.NotContains(t, out, "City:  ")
}

func TestExportFileWritesPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.pdf")
	d := NewDriver(os.Stdout, path, nil)

	rec := fullRecord()
	rec.Business.LogoURL = "" // logo area omitted, not an error
	require.NoError(t, d.ExportFile([]entity.InvoiceRecord{rec}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "%PDF-"))
}

func TestExportFileBadLogoIsSkippedNotFatal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.pdf")
	d := NewDriver(os.Stdout, path, nil)

	rec := fullRecord()
	rec.Business.LogoURL = "data:image/png;base64,bm90LWEtcG5n" // decodes, but not a PNG
	require.NoError(t, d.ExportFile([]entity.InvoiceRecord{rec}))

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestExportFileFailureSurfacesError(t *testing.T) {
	d := NewDriver(os.Stdout, filepath.Join(t.TempDir(), "missing", "dir", "out.pdf"), nil)
	assert.Error(t, d.ExportFile([]entity.InvoiceRecord{fullRecord()}))
}
