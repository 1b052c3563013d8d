package utils

import (
	"regexp"
	"testing"
)

var invoiceNoPattern = regexp.MustCompile(`^INV-\d{8}-[0-9A-F]{8}$`)

func TestGenerateInvoiceNo(t *testing.T) {
	no := GenerateInvoiceNo()
	if !invoiceNoPattern.MatchString(no) {
		t.Errorf("invoice number %q does not match INV-YYYYMMDD-XXXXXXXX", no)
	}

	if GenerateInvoiceNo() == no {
		t.Error("two generated invoice numbers are identical")
	}
}
