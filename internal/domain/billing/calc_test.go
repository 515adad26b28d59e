package billing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flightdesk/flightdesk-api/internal/domain/billing"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestComputeItem_StandardRate(t *testing.T) {
	// {quantity:2, unit_price:100.00, tax_rate:0.15}
	got := billing.ComputeItem(dec("2"), dec("100.00"), dec("0.15"), true)

	assert.True(t, got.Amount.Equal(dec("200.00")), "amount = %s", got.Amount)
	assert.True(t, got.TaxAmount.Equal(dec("30.00")), "tax_amount = %s", got.TaxAmount)
	assert.True(t, got.LineTotal.Equal(dec("230.00")), "line_total = %s", got.LineTotal)
	assert.True(t, got.RateInclusive.Equal(dec("115.00")), "rate_inclusive = %s", got.RateInclusive)
}

func TestComputeItem_NonTaxable(t *testing.T) {
	got := billing.ComputeItem(dec("3"), dec("40.50"), dec("0.15"), false)

	assert.True(t, got.Amount.Equal(dec("121.50")))
	assert.True(t, got.TaxAmount.IsZero())
	assert.True(t, got.LineTotal.Equal(dec("121.50")))
	// Exclusive rate passes through untouched when the line is not taxable.
	assert.True(t, got.RateInclusive.Equal(dec("40.50")))
}

func TestComputeItem_LineTotalInvariant(t *testing.T) {
	// round2(amount + tax_amount) == line_total for rates in [0, 1).
	cases := []struct {
		qty, price, rate string
	}{
		{"1", "0.01", "0"},
		{"1", "99.99", "0.15"},
		{"7", "13.37", "0.125"},
		{"3", "33.33", "0.999"},
		{"12", "8.75", "0.1"},
	}
	for _, tc := range cases {
		got := billing.ComputeItem(dec(tc.qty), dec(tc.price), dec(tc.rate), true)
		want := billing.Round2(got.Amount.Add(got.TaxAmount))
		assert.True(t, got.LineTotal.Equal(want),
			"qty=%s price=%s rate=%s: line_total %s != %s", tc.qty, tc.price, tc.rate, got.LineTotal, want)
	}
}

func TestTotals_SumsPreRoundedValues(t *testing.T) {
	// Two lines whose unrounded tax would sum differently than the rounded
	// per-line values: 0.125 tax on 1.00 rounds to 0.13 twice (0.26), while
	// the unrounded sum 0.25 would round to 0.25.
	a := billing.ComputeItem(dec("1"), dec("1.00"), dec("0.125"), true)
	b := billing.ComputeItem(dec("1"), dec("1.00"), dec("0.125"), true)
	require.True(t, a.TaxAmount.Equal(dec("0.13")))

	totals := billing.Totals([]billing.ItemAmounts{a, b})
	assert.True(t, totals.Subtotal.Equal(dec("2.00")))
	assert.True(t, totals.TaxTotal.Equal(dec("0.26")), "tax_total = %s", totals.TaxTotal)
	assert.True(t, totals.TotalAmount.Equal(dec("2.26")))
}

func TestTotals_Empty(t *testing.T) {
	totals := billing.Totals(nil)
	assert.True(t, totals.Subtotal.IsZero())
	assert.True(t, totals.TaxTotal.IsZero())
	assert.True(t, totals.TotalAmount.IsZero())
}

func TestExclusiveFromInclusive_RoundTrip(t *testing.T) {
	// exclusive = inclusive/(1+r), then inclusive' = exclusive*(1+r) must
	// round-trip within one cent after rounding.
	cent := dec("0.01")
	cases := []struct{ inclusive, rate string }{
		{"115.00", "0.15"},
		{"230.00", "0.15"},
		{"99.99", "0.125"},
		{"1.00", "0.15"},
		{"1234.56", "0.1"},
	}
	for _, tc := range cases {
		inclusive := dec(tc.inclusive)
		rate := dec(tc.rate)
		exclusive := billing.ExclusiveFromInclusive(inclusive, rate)
		back := billing.Round2(exclusive.Mul(dec("1").Add(rate)))
		diff := back.Sub(inclusive).Abs()
		assert.True(t, diff.LessThanOrEqual(cent),
			"inclusive=%s rate=%s: round-trip drift %s", tc.inclusive, tc.rate, diff)
	}
}

func TestExclusiveFromInclusive_Exact(t *testing.T) {
	got := billing.ExclusiveFromInclusive(dec("115.00"), dec("0.15"))
	assert.True(t, got.Equal(dec("100.00")), "exclusive = %s", got)
}

func TestComputeItem_ChangingOneLineLeavesOthersAlone(t *testing.T) {
	a := billing.ComputeItem(dec("2"), dec("100.00"), dec("0.15"), true)
	b := billing.ComputeItem(dec("1"), dec("50.00"), dec("0.15"), true)

	before := billing.Totals([]billing.ItemAmounts{a, b})
	// Recompute only line b with a new quantity.
	b2 := billing.ComputeItem(dec("3"), dec("50.00"), dec("0.15"), true)
	after := billing.Totals([]billing.ItemAmounts{a, b2})

	assert.True(t, a.Amount.Equal(dec("200.00")), "untouched line must not change")
	assert.True(t, after.Subtotal.Sub(before.Subtotal).Equal(dec("100.00")))
}
