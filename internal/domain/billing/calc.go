// Package billing holds the pure invoice arithmetic.
//
// Every line value is rounded to two decimals on its own and invoice totals
// are sums of those already-rounded values. Summing first and rounding after
// produces off-by-cent mismatches against previously issued invoices, so the
// round-then-sum order is load-bearing.
package billing

import "github.com/shopspring/decimal"

var one = decimal.NewFromInt(1)

// ItemAmounts are the derived money fields of one invoice line.
type ItemAmounts struct {
	Amount        decimal.Decimal // round2(quantity * unit_price)
	TaxAmount     decimal.Decimal // round2(amount * tax_rate)
	LineTotal     decimal.Decimal // round2(amount + tax_amount)
	RateInclusive decimal.Decimal // round2(unit_price * (1+tax_rate)) when taxable
}

// InvoiceTotals are the aggregate money fields of an invoice.
type InvoiceTotals struct {
	Subtotal    decimal.Decimal
	TaxTotal    decimal.Decimal
	TotalAmount decimal.Decimal
}

// Round2 rounds half away from zero to two decimal places.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// ComputeItem derives the money fields for one line. Callers validate
// quantity >= 1 and taxRate >= 0 first; negative rates are not guarded here.
func ComputeItem(quantity, unitPrice, taxRate decimal.Decimal, taxable bool) ItemAmounts {
	amount := Round2(quantity.Mul(unitPrice))
	tax := decimal.Zero
	inclusive := unitPrice
	if taxable {
		tax = Round2(amount.Mul(taxRate))
		inclusive = Round2(unitPrice.Mul(one.Add(taxRate)))
	}
	return ItemAmounts{
		Amount:        amount,
		TaxAmount:     tax,
		LineTotal:     Round2(amount.Add(tax)),
		RateInclusive: inclusive,
	}
}

// Totals sums per-item values that are already rounded. Inputs must come from
// ComputeItem (or stored fields derived from it).
func Totals(items []ItemAmounts) InvoiceTotals {
	var sub, tax, total decimal.Decimal
	for _, it := range items {
		sub = sub.Add(it.Amount)
		tax = tax.Add(it.TaxAmount)
		total = total.Add(it.LineTotal)
	}
	return InvoiceTotals{Subtotal: sub, TaxTotal: tax, TotalAmount: total}
}

// ExclusiveFromInclusive inverts a tax-inclusive unit rate back to the
// exclusive price: unit_price = inclusive / (1 + tax_rate). Used when an
// operator edits the inclusive rate directly. The rate must be >= 0.
func ExclusiveFromInclusive(inclusive, taxRate decimal.Decimal) decimal.Decimal {
	return Round2(inclusive.Div(one.Add(taxRate)))
}
