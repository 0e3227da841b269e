package app

import (
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/hyperifyio/orderextract/internal/order"
)

const pdfFontFamily = "order"

// writeOrderPDF renders a one-page order slip: a two-column table of the
// extracted fields followed by any warnings. Sentinel rows are skipped.
// The core fonts have no Hangul glyphs, so a UTF-8 TTF font is required.
func writeOrderPDF(rec order.Record, outPath string, fontPath string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddUTF8Font(pdfFontFamily, "", fontPath)
	if err := pdf.Error(); err != nil {
		return err
	}
	pdf.AddPage()
	pdf.SetFont(pdfFontFamily, "", 16)
	pdf.CellFormat(0, 10, "주문 정보", "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont(pdfFontFamily, "", 11)
	for _, r := range orderRows(rec) {
		if !order.Present(r.Value) {
			continue
		}
		// Multi-line addresses need a taller label cell.
		lines := float64(strings.Count(r.Value, "\n") + 1)
		pdf.CellFormat(30, 7*lines, r.Label, "1", 0, "L", false, 0, "")
		pdf.MultiCell(0, 7, r.Value, "1", "L", false)
	}

	if len(rec.Warnings) > 0 {
		pdf.Ln(4)
		pdf.SetTextColor(180, 0, 0)
		for _, w := range rec.Warnings {
			pdf.CellFormat(0, 6, "! "+string(w), "", 1, "L", false, 0, "")
		}
		pdf.SetTextColor(0, 0, 0)
	}
	return pdf.OutputFileAndClose(outPath)
}
