package render

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/zapinvo/zapinvo/internal/entity"
)

// Driver materializes the record list into the fixed visual template and
// hands it to a print or file backend. It implements guard.ExportDriver.
type Driver struct {
	Out      io.Writer // onscreen-print target
	FilePath string    // file-export target; a dated default when empty
	logger   *slog.Logger
}

func NewDriver(out io.Writer, filePath string, logger *slog.Logger) *Driver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Driver{Out: out, FilePath: filePath, logger: logger}
}

// PrintNow writes the two-column layout as text to the print target.
func (d *Driver) PrintNow(records []entity.InvoiceRecord) error {
	start := time.Now()
	for _, rec := range records {
		if err := writeTextBlock(d.Out, BuildBlock(rec)); err != nil {
			return fmt.Errorf("print: %w", err)
		}
	}
	d.logger.Info("render.print.ok", "records", len(records), "elapsed_ms", time.Since(start).Milliseconds())
	return nil
}

// ExportFile renders the layout to a PDF file. On failure the caller
// surfaces the manual print-to-PDF fallback.
func (d *Driver) ExportFile(records []entity.InvoiceRecord) error {
	start := time.Now()
	path := d.FilePath
	if path == "" {
		path = "zapinvo-" + time.Now().Format("2006-01-02") + ".pdf"
	}
	if err := WritePDF(path, records); err != nil {
		d.logger.Error("render.export.failed", "path", path, "error", err)
		return err
	}
	d.logger.Info("render.export.ok", "path", path, "records", len(records), "elapsed_ms", time.Since(start).Milliseconds())
	return nil
}

const textColWidth = 38

// writeTextBlock renders one record as a fixed-width FROM/TO strip with a
// cut indicator underneath, the terminal counterpart of the page layout.
func writeTextBlock(w io.Writer, b Block) error {
	left := []string{"FROM", strings.ToUpper(b.BusinessName)}
	for _, l := range b.From {
		left = append(left, l.Label+": "+l.Value)
	}
	left = append(left, "", "Inv #: "+b.InvoiceNo, "Date: "+b.Date)
	if b.TotalAmount != "" {
		left = append(left, "Total: "+b.TotalAmount)
	}

	right := []string{"TO", b.CustomerName}
	for _, l := range b.To {
		right = append(right, l.Label+": "+l.Value)
	}

	rows := len(left)
	if len(right) > rows {
		rows = len(right)
	}
	var sb strings.Builder
	border := "+" + strings.Repeat("-", textColWidth+2) + "+" + strings.Repeat("-", textColWidth+2) + "+\n"
	sb.WriteString(border)
	for i := 0; i < rows; i++ {
		l, r := "", ""
		if i < len(left) {
			l = clip(left[i])
		}
		if i < len(right) {
			r = clip(right[i])
		}
		fmt.Fprintf(&sb, "| %-*s | %-*s |\n", textColWidth, l, textColWidth, r)
	}
	sb.WriteString(border)
	sb.WriteString(center("- - - - - CUT HERE - - - - -", 2*textColWidth+6) + "\n")
	_, err := io.WriteString(w, sb.String())
	return err
}

func clip(s string) string {
	if len(s) > textColWidth {
		return s[:textColWidth-3] + "..."
	}
	return s
}

func center(s string, width int) string {
	if len(s) >= width {
		return s
	}
	pad := (width - len(s)) / 2
	return strings.Repeat(" ", pad) + s
}
