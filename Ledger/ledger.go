package Ledger

import (
	"encoding/json"
	"strconv"

	"Fleeto/Models"
)

// AmountOrZero coerces an arbitrary stored value to a float64. Non-numeric and
// missing values become 0 rather than failing: totals must stay computable
// over documents that inherited bad writes. This is the single coercion policy
// for the whole ledger.
func AmountOrZero(v interface{}) float64 {
	switch n := v.(type) {
	case nil:
		return 0
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case uint:
		return float64(n)
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0
		}
		return f
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// parsePositive is the strict counterpart of AmountOrZero, used for payment
// input: the value must parse to a number strictly greater than zero.
func parsePositive(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, n > 0
	case float32:
		return float64(n), n > 0
	case int:
		return float64(n), n > 0
	case int64:
		return float64(n), n > 0
	case json.Number:
		f, err := n.Float64()
		return f, err == nil && f > 0
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil && f > 0
	default:
		return 0, false
	}
}

// ComputeTotals derives subtotal, tax and total from the line items. It never
// fails; malformed amounts count as zero. Tax is the flat VAT rate applied to
// the whole subtotal. Figures are stored raw, rounding happens at display
// time only.
func ComputeTotals(items []Models.InvoiceItem, includeVat bool) (subtotal, tax, total float64) {
	for _, item := range items {
		subtotal += AmountOrZero(item.Amount)
	}
	if includeVat {
		tax = subtotal * Models.VatRate
	}
	total = subtotal + tax
	return subtotal, tax, total
}

// ComputePaymentTotals sums the payment ledger. The remaining balance is
// floored at zero so float drift can never surface a negative balance.
func ComputePaymentTotals(inv *Models.Invoice) (totalPaid, remainingBalance float64) {
	for _, p := range inv.Payments {
		totalPaid += p.AmountPaid
	}
	remainingBalance = inv.Total - totalPaid
	if remainingBalance < 0 {
		remainingBalance = 0
	}
	return totalPaid, remainingBalance
}

// DeriveStatus resolves the invoice status from its payment state. First match
// wins, and the order matters: cancellation and draft stick regardless of
// payments, full payment beats sent, partial payment beats sent, and a sent
// invoice with no payments stays sent rather than reverting to unpaid.
func DeriveStatus(total, totalPaid float64, current string) string {
	switch {
	case current == Models.StatusCancelled:
		return Models.StatusCancelled
	case current == Models.StatusDraft:
		return Models.StatusDraft
	case totalPaid >= total:
		return Models.StatusPaid
	case totalPaid > 0:
		return Models.StatusPartial
	case current == Models.StatusSent:
		return Models.StatusSent
	default:
		return Models.StatusUnpaid
	}
}

// recompute refreshes the derived ledger fields after a payment mutation.
func recompute(inv *Models.Invoice) {
	inv.TotalPaid, inv.RemainingBalance = ComputePaymentTotals(inv)
	inv.Status = DeriveStatus(inv.Total, inv.TotalPaid, inv.Status)
}
