// Package pdf renders confirmed invoices to PDF documents.
package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// InvoiceLine is one rendered row of the invoice table
type InvoiceLine struct {
	Product  string
	Quantity string
	Price    float64
	Profit   float64
	Extras   []string
}

// InvoiceDocument carries everything the renderer needs; the caller derives
// the numbers, the renderer only lays them out.
type InvoiceDocument struct {
	InvoiceNumber string
	IssuedAt      time.Time
	ShopName      string
	ShopAddress   string
	ShopPhone     string
	CustomerName  string
	CustomerPhone string
	ExtraColumns  []string
	Lines         []InvoiceLine
	Subtotal      float64
	Tax           float64
	Total         float64
}

// Render produces the invoice PDF as bytes
func Render(doc InvoiceDocument) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(120, 10, doc.ShopName)
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(70, 10, "INVOICE", "", 1, "R", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(120, 5, doc.ShopAddress)
	pdf.CellFormat(70, 5, "No: "+doc.InvoiceNumber, "", 1, "R", false, 0, "")
	pdf.Cell(120, 5, doc.ShopPhone)
	pdf.CellFormat(70, 5, "Date: "+doc.IssuedAt.Format("2006-01-02"), "", 1, "R", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Arial", "B", 10)
	pdf.Cell(190, 5, "Billed To")
	pdf.Ln(5)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(190, 5, doc.CustomerName)
	pdf.Ln(5)
	if doc.CustomerPhone != "" {
		pdf.Cell(190, 5, doc.CustomerPhone)
		pdf.Ln(5)
	}
	pdf.Ln(4)

	headers := append([]string{"Product", "Qty"}, doc.ExtraColumns...)
	headers = append(headers, "Price")
	colWidth := 190.0 / float64(len(headers))

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for _, h := range headers {
		pdf.CellFormat(colWidth, 8, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	for _, line := range doc.Lines {
		pdf.CellFormat(colWidth, 7, line.Product, "1", 0, "L", false, 0, "")
		pdf.CellFormat(colWidth, 7, line.Quantity, "1", 0, "C", false, 0, "")
		for _, extra := range line.Extras {
			pdf.CellFormat(colWidth, 7, extra, "1", 0, "C", false, 0, "")
		}
		pdf.CellFormat(colWidth, 7, money(line.Price), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}
	pdf.Ln(4)

	summary := func(label string, amount float64, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		pdf.SetFont("Arial", style, 10)
		pdf.CellFormat(150, 7, label, "", 0, "R", false, 0, "")
		pdf.CellFormat(40, 7, money(amount), "", 1, "R", false, 0, "")
	}
	summary("Subtotal", doc.Subtotal, false)
	summary("Tax (5%)", doc.Tax, false)
	summary("Total", doc.Total, true)

	pdf.Ln(8)
	pdf.SetFont("Arial", "I", 9)
	pdf.Cell(190, 5, "Thank you for your business.")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render invoice pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func money(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
