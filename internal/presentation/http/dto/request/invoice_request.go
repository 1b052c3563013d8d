package request

import "github.com/shopmate/shopmate-api/internal/invoice"

// InvoicePreviewRequest carries the composer state for preview and confirm.
// Columns and rows are passed through to the pricing engine as-is; unknown
// or malformed values degrade instead of erroring.
type InvoicePreviewRequest struct {
	Columns []invoice.Column `json:"columns"`
	Rows    []invoice.Row    `json:"rows"`
}
