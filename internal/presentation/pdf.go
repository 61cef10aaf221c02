package presentation

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

const (
	pdfMargin    = 10.0
	pdfRowHeight = 7.0
)

// relative widths; scaled to the printable page width
var columnWeights = map[Column]float64{
	ColumnRoom:        1,
	ColumnRent:        1.2,
	ColumnPeriodFrom:  1.6,
	ColumnPeriodTo:    1.6,
	ColumnName:        2.4,
	ColumnFatherName:  2.4,
	ColumnAddress:     4,
	ColumnAadhar:      2.2,
	ColumnPhone:       1.8,
	ColumnFatherPhone: 1.8,
	ColumnEmail:       2.6,
}

// RenderPDF prints the table on landscape A4 pages, repeating the header
// row on every page.
func RenderPDF(table *Table) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(false, pdfMargin)
	pdf.AddPage()

	pageWidth, pageHeight := pdf.GetPageSize()
	widths := scaleWidths(table.Headers, pageWidth-2*pdfMargin)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Arial", "B", 14)
	pdf.SetTextColor(33, 37, 41)
	pdf.Cell(0, 10, tr(table.Title))
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 9)
	pdf.Cell(0, 6, fmt.Sprintf("Generated %s", table.GeneratedAt.Format("02-Jan-2006 15:04")))
	pdf.Ln(8)

	header := func() {
		pdf.SetFont("Arial", "B", 9)
		pdf.SetFillColor(240, 240, 240)
		for i, h := range table.Headers {
			pdf.CellFormat(widths[i], pdfRowHeight, tr(h.Label), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(pdfRowHeight)
		pdf.SetFont("Arial", "", 8)
	}
	header()

	for _, row := range table.Rows {
		if pdf.GetY()+pdfRowHeight > pageHeight-pdfMargin {
			pdf.AddPage()
			header()
		}
		for i, value := range row.Cells {
			align := "L"
			if table.Headers[i].Key == ColumnRent {
				align = "R"
			}
			pdf.CellFormat(widths[i], pdfRowHeight, tr(fit(pdf, value, widths[i])), "1", 0, align, false, 0, "")
		}
		pdf.Ln(pdfRowHeight)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func scaleWidths(headers []Header, total float64) []float64 {
	sum := 0.0
	for _, h := range headers {
		sum += columnWeights[h.Key]
	}
	widths := make([]float64, len(headers))
	if sum == 0 {
		return widths
	}
	for i, h := range headers {
		widths[i] = total * columnWeights[h.Key] / sum
	}
	return widths
}

// fit truncates s so it stays inside a cell of the given width.
func fit(pdf *gofpdf.Fpdf, s string, width float64) string {
	limit := width - 2*pdf.GetCellMargin()
	if pdf.GetStringWidth(s) <= limit {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && pdf.GetStringWidth(string(runes)+"...") > limit {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}
