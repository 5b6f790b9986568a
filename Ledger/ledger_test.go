package Ledger

import (
	"testing"

	"Fleeto/Models"

	"github.com/stretchr/testify/assert"
)

func TestComputeTotalsWithVat(t *testing.T) {
	items := []Models.InvoiceItem{
		{Description: "Monthly transport", Amount: 100.0},
		{Description: "Extra haul", Amount: 50.0},
	}

	subtotal, tax, total := ComputeTotals(items, true)
	assert.Equal(t, 150.0, subtotal)
	assert.Equal(t, 7.5, tax)
	assert.Equal(t, 157.5, total)
}

func TestComputeTotalsWithoutVat(t *testing.T) {
	items := []Models.InvoiceItem{
		{Description: "Monthly transport", Amount: 100.0},
		{Description: "Extra haul", Amount: 50.0},
	}

	subtotal, tax, total := ComputeTotals(items, false)
	assert.Equal(t, 150.0, subtotal)
	assert.Equal(t, 0.0, tax)
	assert.Equal(t, subtotal, total)
}

func TestComputeTotalsIsDeterministic(t *testing.T) {
	items := []Models.InvoiceItem{
		{Amount: 19.99},
		{Amount: "42.5"},
		{Amount: 3},
	}

	s1, t1, tot1 := ComputeTotals(items, true)
	s2, t2, tot2 := ComputeTotals(items, true)
	assert.Equal(t, s1, s2)
	assert.Equal(t, t1, t2)
	assert.Equal(t, tot1, tot2)
}

func TestComputeTotalsCoercesBadAmounts(t *testing.T) {
	items := []Models.InvoiceItem{
		{Description: "ok", Amount: 100.0},
		{Description: "string number", Amount: "25.5"},
		{Description: "garbage", Amount: "not a number"},
		{Description: "missing", Amount: nil},
		{Description: "wrong type", Amount: []string{"x"}},
	}

	subtotal, _, _ := ComputeTotals(items, false)
	assert.Equal(t, 125.5, subtotal)
}

func TestComputeTotalsEmptyItems(t *testing.T) {
	subtotal, tax, total := ComputeTotals(nil, true)
	assert.Equal(t, 0.0, subtotal)
	assert.Equal(t, 0.0, tax)
	assert.Equal(t, 0.0, total)
}

func TestAmountOrZero(t *testing.T) {
	assert.Equal(t, 12.5, AmountOrZero(12.5))
	assert.Equal(t, 12.0, AmountOrZero(12))
	assert.Equal(t, 12.5, AmountOrZero("12.5"))
	assert.Equal(t, 0.0, AmountOrZero("abc"))
	assert.Equal(t, 0.0, AmountOrZero(nil))
	assert.Equal(t, 0.0, AmountOrZero(map[string]int{}))
	assert.Equal(t, -3.0, AmountOrZero(-3))
}

func TestComputePaymentTotals(t *testing.T) {
	inv := &Models.Invoice{Total: 200}
	inv.Payments = []Models.InvoicePayment{
		{AmountPaid: 50},
		{AmountPaid: 25.5},
	}

	totalPaid, remaining := ComputePaymentTotals(inv)
	assert.Equal(t, 75.5, totalPaid)
	assert.Equal(t, 124.5, remaining)
}

func TestRemainingBalanceNeverNegative(t *testing.T) {
	inv := &Models.Invoice{Total: 100}
	inv.Payments = []Models.InvoicePayment{
		{AmountPaid: 60},
		{AmountPaid: 60}, // inherited overpayment from a prior bad write
	}

	totalPaid, remaining := ComputePaymentTotals(inv)
	assert.Equal(t, 120.0, totalPaid)
	assert.Equal(t, 0.0, remaining)
}

func TestDeriveStatusDecisionOrder(t *testing.T) {
	cases := []struct {
		name      string
		total     float64
		totalPaid float64
		current   string
		want      string
	}{
		{"cancelled is sticky", 100, 100, Models.StatusCancelled, Models.StatusCancelled},
		{"draft is sticky", 100, 100, Models.StatusDraft, Models.StatusDraft},
		{"full payment wins over sent", 100, 100, Models.StatusSent, Models.StatusPaid},
		{"overpayment is still paid", 100, 120, Models.StatusUnpaid, Models.StatusPaid},
		{"partial payment wins over sent", 100, 40, Models.StatusSent, Models.StatusPartial},
		{"partial from unpaid", 100, 40, Models.StatusUnpaid, Models.StatusPartial},
		{"sent with no payments stays sent", 200, 0, Models.StatusSent, Models.StatusSent},
		{"zero payments otherwise unpaid", 200, 0, Models.StatusPartial, Models.StatusUnpaid},
		{"unpaid stays unpaid", 200, 0, Models.StatusUnpaid, Models.StatusUnpaid},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DeriveStatus(tc.total, tc.totalPaid, tc.current))
		})
	}
}
