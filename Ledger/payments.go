package Ledger

import (
	"fmt"
	"time"

	"Fleeto/Models"
)

// AddPayment appends a payment to the invoice and refreshes the derived
// ledger fields. The amount must parse to a number greater than zero, and the
// cumulative paid total may never exceed the invoice total. The mutation is
// in-memory only; persisting the invoice is the caller's job.
func AddPayment(inv *Models.Invoice, req Models.PaymentRequest) error {
	amount, ok := parsePositive(req.AmountPaid)
	if !ok {
		return validationError("amount_paid must be a number greater than 0")
	}

	totalPaid, remaining := ComputePaymentTotals(inv)
	if totalPaid+amount > inv.Total {
		return exceedsBalanceError(
			fmt.Sprintf("payment exceeds remaining balance of %.2f", remaining),
			remaining,
		)
	}

	payment := Models.InvoicePayment{
		InvoiceID:     inv.ID,
		AmountPaid:    amount,
		PaymentMethod: req.PaymentMethod,
		PaymentDate:   parseDateOrNow(req.PaymentDate),
		TransactionID: req.TransactionID,
		Notes:         req.Notes,
	}
	if payment.PaymentMethod == "" {
		payment.PaymentMethod = "cash"
	}

	inv.Payments = append(inv.Payments, payment)
	recompute(inv)
	inv.UpdatedAt = time.Now()
	return nil
}

// UpdatePayment applies a partial update to an existing payment. Only supplied
// fields are overwritten. A changed amount is re-validated against the invoice
// total using the sum of all other payments.
func UpdatePayment(inv *Models.Invoice, paymentID uint, req Models.PaymentRequest) error {
	idx := findPayment(inv, paymentID)
	if idx < 0 {
		return notFoundError(fmt.Sprintf("payment %d not found on invoice %d", paymentID, inv.ID))
	}
	payment := &inv.Payments[idx]

	if req.AmountPaid != nil {
		amount, ok := parsePositive(req.AmountPaid)
		if !ok {
			return validationError("amount_paid must be a number greater than 0")
		}
		others := 0.0
		for i, p := range inv.Payments {
			if i != idx {
				others += p.AmountPaid
			}
		}
		if others+amount > inv.Total {
			return validationError(fmt.Sprintf(
				"total payments %.2f would exceed invoice total %.2f", others+amount, inv.Total))
		}
		payment.AmountPaid = amount
	}

	if req.PaymentMethod != "" {
		payment.PaymentMethod = req.PaymentMethod
	}
	if req.PaymentDate != "" {
		payment.PaymentDate = parseDateOrNow(req.PaymentDate)
	}
	if req.TransactionID != "" {
		payment.TransactionID = req.TransactionID
	}
	if req.Notes != "" {
		payment.Notes = req.Notes
	}
	payment.UpdatedAt = time.Now()

	recompute(inv)
	inv.UpdatedAt = time.Now()
	return nil
}

// DeletePayment removes a payment and refreshes the derived ledger fields.
func DeletePayment(inv *Models.Invoice, paymentID uint) error {
	idx := findPayment(inv, paymentID)
	if idx < 0 {
		return notFoundError(fmt.Sprintf("payment %d not found on invoice %d", paymentID, inv.ID))
	}

	inv.Payments = append(inv.Payments[:idx], inv.Payments[idx+1:]...)
	recompute(inv)
	inv.UpdatedAt = time.Now()
	return nil
}

// UpdateCommercials applies item and VAT edits and recomputes the totals. The
// remaining balance is refreshed against the existing paid total, but the
// status is deliberately left alone: editing items on a paid invoice does not
// revert its status even if the new total now exceeds what was paid.
func UpdateCommercials(inv *Models.Invoice, items *[]Models.InvoiceItem, includeVat *bool) {
	if items == nil && includeVat == nil {
		return
	}
	if items != nil {
		inv.Items = *items
	}
	if includeVat != nil {
		inv.IncludeVat = *includeVat
	}

	inv.Subtotal, inv.Tax, inv.Total = ComputeTotals(inv.Items, inv.IncludeVat)
	inv.RemainingBalance = inv.Total - inv.TotalPaid
	if inv.RemainingBalance < 0 {
		inv.RemainingBalance = 0
	}
	inv.UpdatedAt = time.Now()
}

func findPayment(inv *Models.Invoice, paymentID uint) int {
	for i, p := range inv.Payments {
		if p.ID == paymentID {
			return i
		}
	}
	return -1
}

func parseDateOrNow(s string) time.Time {
	if s == "" {
		return time.Now()
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	return time.Now()
}
