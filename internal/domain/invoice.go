package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Invoice series per document class.
const (
	SeriesFactura = "F001"
	SeriesBoleta  = "B001"
)

// TaxRate is the IGV rate applied to every invoice subtotal.
var TaxRate = decimal.NewFromFloat(0.18)

// SeriesFor returns the numbering series for an invoice type.
func SeriesFor(t InvoiceType) string {
	if t == InvoiceTypeBoleta {
		return SeriesBoleta
	}
	return SeriesFactura
}

// FormatCorrelative zero-pads n to six digits.
func FormatCorrelative(n int64) string {
	return fmt.Sprintf("%06d", n)
}

// MoneyPlaces is the scale of every stored amount.
const MoneyPlaces = 2

// InvoiceAmounts computes tax and total for a subtotal. The tax is rounded
// half-up to cents and the total is built from the rounded tax.
func InvoiceAmounts(subtotal decimal.Decimal) (tax, total decimal.Decimal) {
	tax = subtotal.Mul(TaxRate).Round(MoneyPlaces)
	return tax, subtotal.Add(tax)
}
