package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GenerateInvoiceNo generates a unique invoice number like INV-20260828-3F2A91C4
func GenerateInvoiceNo() string {
	return fmt.Sprintf("INV-%s-%s",
		time.Now().Format("20060102"),
		strings.ToUpper(uuid.New().String()[:8]))
}
