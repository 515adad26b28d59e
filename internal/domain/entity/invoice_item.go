package entity

import "github.com/shopspring/decimal"

// InvoiceItem is one billing line. Amount, TaxAmount, LineTotal and
// RateInclusive are derived through the billing calc helper and stored.
type InvoiceItem struct {
	ID            string
	InvoiceID     string
	Description   string
	Quantity      decimal.Decimal // >= 1
	UnitPrice     decimal.Decimal // tax-exclusive
	TaxRate       decimal.Decimal // fraction, e.g. 0.15
	Taxable       bool
	Amount        decimal.Decimal
	TaxAmount     decimal.Decimal
	LineTotal     decimal.Decimal
	RateInclusive decimal.Decimal
}
