package render

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/zapinvo/zapinvo/internal/entity"
)

// Page geometry mirrors the fixed template: A4 portrait, 10mm margins.
const (
	pageMarginMM = 10.0
	lineHeightMM = 5.0
	logoSizeMM   = 14.0
)

// WritePDF lays the record blocks onto an A4 page and writes the result
// to path.
func WritePDF(path string, records []entity.InvoiceRecord) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMarginMM, pageMarginMM, pageMarginMM)
	pdf.SetAutoPageBreak(true, pageMarginMM)
	pdf.AddPage()

	for _, rec := range records {
		drawBlock(pdf, BuildBlock(rec))
		pdf.SetFont("Courier", "", 6)
		pdf.SetTextColor(128, 128, 128)
		pdf.CellFormat(0, 4, "CUT HERE", "", 1, "C", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(2)
	}
	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func drawBlock(pdf *gofpdf.Fpdf, b Block) {
	pageW, _ := pdf.GetPageSize()
	colW := (pageW - 2*pageMarginMM) / 2
	top := pdf.GetY()

	pdf.SetFont("Arial", "B", 9)
	pdf.CellFormat(colW, lineHeightMM, "FROM", "", 0, "L", false, 0, "")
	pdf.CellFormat(colW, lineHeightMM, "TO", "", 1, "L", false, 0, "")

	nameIndent := 0.0
	if b.LogoURL != "" {
		if drawLogo(pdf, b, pageMarginMM+1, pdf.GetY()) {
			nameIndent = logoSizeMM + 2
		}
	}

	pdf.SetFont("Arial", "B", 11)
	pdf.SetX(pageMarginMM + nameIndent)
	pdf.CellFormat(colW-nameIndent, lineHeightMM+1, strings.ToUpper(b.BusinessName), "", 0, "L", false, 0, "")
	pdf.SetX(pageMarginMM + colW)
	pdf.CellFormat(colW, lineHeightMM+1, b.CustomerName, "", 1, "L", false, 0, "")

	pdf.SetFont("Arial", "", 8)
	rows := len(b.From)
	if len(b.To) > rows {
		rows = len(b.To)
	}
	for i := 0; i < rows; i++ {
		left, right := "", ""
		if i < len(b.From) {
			left = b.From[i].Label + ": " + b.From[i].Value
		}
		if i < len(b.To) {
			right = b.To[i].Label + ": " + b.To[i].Value
		}
		pdf.SetX(pageMarginMM + nameIndent)
		pdf.CellFormat(colW-nameIndent, lineHeightMM-1, left, "", 0, "L", false, 0, "")
		pdf.SetX(pageMarginMM + colW)
		pdf.CellFormat(colW, lineHeightMM-1, right, "", 1, "L", false, 0, "")
	}
	if logoBottom := top + lineHeightMM + logoSizeMM + 1; nameIndent > 0 && pdf.GetY() < logoBottom {
		pdf.SetY(logoBottom)
	}

	pdf.Ln(1)
	pdf.SetFont("Arial", "B", 8)
	pdf.CellFormat(colW, lineHeightMM, "Inv #: "+b.InvoiceNo+"    Date: "+b.Date, "", 0, "L", false, 0, "")
	if b.TotalAmount != "" {
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(colW, lineHeightMM, b.TotalAmount, "", 1, "R", false, 0, "")
	} else {
		pdf.Ln(lineHeightMM)
	}

	pdf.Rect(pageMarginMM, top, pageW-2*pageMarginMM, pdf.GetY()-top+1, "D")
	pdf.Line(pageMarginMM+colW, top, pageMarginMM+colW, pdf.GetY()+1)
	pdf.Ln(3)
}

// drawLogo decodes a base64 data URL and places the image. Anything it
// cannot decode is skipped; the logo is advisory only.
func drawLogo(pdf *gofpdf.Fpdf, b Block, x, y float64) bool {
	data, imgType, ok := decodeDataURL(b.LogoURL)
	if !ok {
		return false
	}
	name := "logo-" + b.RecordID
	opts := gofpdf.ImageOptions{ImageType: imgType}
	pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(data))
	if pdf.Err() {
		pdf.ClearError()
		return false
	}
	pdf.ImageOptions(name, x, y, logoSizeMM, logoSizeMM, false, opts, 0, "")
	return !pdf.Err()
}

func decodeDataURL(u string) ([]byte, string, bool) {
	if !strings.HasPrefix(u, "data:image/") {
		return nil, "", false
	}
	rest := strings.TrimPrefix(u, "data:image/")
	semi := strings.Index(rest, ";base64,")
	if semi < 0 {
		return nil, "", false
	}
	imgType := strings.ToUpper(rest[:semi])
	if imgType == "JPEG" {
		imgType = "JPG"
	}
	if imgType != "PNG" && imgType != "JPG" && imgType != "GIF" {
		return nil, "", false
	}
	data, err := base64.StdEncoding.DecodeString(rest[semi+len(";base64,"):])
	if err != nil {
		return nil, "", false
	}
	return data, imgType, true
}
