package Ledger

import (
	"testing"

	"Fleeto/Models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newInvoice(total float64, status string) *Models.Invoice {
	return &Models.Invoice{
		Model:            gorm.Model{ID: 1},
		Total:            total,
		Subtotal:         total,
		RemainingBalance: total,
		Status:           status,
	}
}

func TestAddPaymentHappyPath(t *testing.T) {
	inv := newInvoice(200, Models.StatusUnpaid)

	err := AddPayment(inv, Models.PaymentRequest{AmountPaid: 50.0, PaymentMethod: "bank_transfer"})
	require.NoError(t, err)

	assert.Equal(t, 50.0, inv.TotalPaid)
	assert.Equal(t, 150.0, inv.RemainingBalance)
	assert.Equal(t, Models.StatusPartial, inv.Status)
	require.Len(t, inv.Payments, 1)
	assert.Equal(t, "bank_transfer", inv.Payments[0].PaymentMethod)
}

func TestAddPaymentDefaults(t *testing.T) {
	inv := newInvoice(200, Models.StatusUnpaid)

	err := AddPayment(inv, Models.PaymentRequest{AmountPaid: "25"})
	require.NoError(t, err)

	require.Len(t, inv.Payments, 1)
	assert.Equal(t, "cash", inv.Payments[0].PaymentMethod)
	assert.False(t, inv.Payments[0].PaymentDate.IsZero())
}

func TestAddPaymentFullSettlement(t *testing.T) {
	inv := newInvoice(157.5, Models.StatusUnpaid)

	err := AddPayment(inv, Models.PaymentRequest{AmountPaid: 157.5})
	require.NoError(t, err)

	assert.Equal(t, 157.5, inv.TotalPaid)
	assert.Equal(t, 0.0, inv.RemainingBalance)
	assert.Equal(t, Models.StatusPaid, inv.Status)
}

func TestAddPaymentOverpaymentRejected(t *testing.T) {
	inv := newInvoice(157.5, Models.StatusUnpaid)
	require.NoError(t, AddPayment(inv, Models.PaymentRequest{AmountPaid: 157.5}))

	err := AddPayment(inv, Models.PaymentRequest{AmountPaid: 1.0})
	require.Error(t, err)

	le, ok := AsLedgerError(err)
	require.True(t, ok)
	assert.Equal(t, KindExceedsBalance, le.Kind)
	assert.Equal(t, 0.0, le.Remaining)
	assert.Contains(t, le.Message, "0.00")

	// Rejected payment must not have mutated the ledger
	assert.Len(t, inv.Payments, 1)
	assert.Equal(t, Models.StatusPaid, inv.Status)
}

func TestAddPaymentExactRemainingBalanceAccepted(t *testing.T) {
	inv := newInvoice(200, Models.StatusUnpaid)
	require.NoError(t, AddPayment(inv, Models.PaymentRequest{AmountPaid: 120.0}))

	err := AddPayment(inv, Models.PaymentRequest{AmountPaid: 80.0})
	require.NoError(t, err)
	assert.Equal(t, Models.StatusPaid, inv.Status)
	assert.Equal(t, 0.0, inv.RemainingBalance)
}

func TestAddPaymentInvalidAmounts(t *testing.T) {
	inv := newInvoice(200, Models.StatusUnpaid)

	for _, bad := range []interface{}{0.0, -5.0, "abc", nil, ""} {
		err := AddPayment(inv, Models.PaymentRequest{AmountPaid: bad})
		require.Error(t, err, "amount %v should be rejected", bad)
		le, ok := AsLedgerError(err)
		require.True(t, ok)
		assert.Equal(t, KindValidation, le.Kind)
	}
	assert.Empty(t, inv.Payments)
}

func TestAddPaymentCancelledStaysCancelled(t *testing.T) {
	inv := newInvoice(200, Models.StatusCancelled)

	err := AddPayment(inv, Models.PaymentRequest{AmountPaid: 200.0})
	require.NoError(t, err)
	assert.Equal(t, Models.StatusCancelled, inv.Status)
	assert.Equal(t, 200.0, inv.TotalPaid)
}

func TestUpdatePaymentNotFound(t *testing.T) {
	inv := newInvoice(200, Models.StatusUnpaid)

	err := UpdatePayment(inv, 99, Models.PaymentRequest{Notes: "x"})
	require.Error(t, err)
	le, _ := AsLedgerError(err)
	assert.Equal(t, KindNotFound, le.Kind)
}

func TestUpdatePaymentPartialFields(t *testing.T) {
	inv := newInvoice(200, Models.StatusUnpaid)
	inv.Payments = []Models.InvoicePayment{{
		Model:         gorm.Model{ID: 7},
		InvoiceID:     1,
		AmountPaid:    50,
		PaymentMethod: "cash",
		Notes:         "first instalment",
	}}
	recompute(inv)

	err := UpdatePayment(inv, 7, Models.PaymentRequest{PaymentMethod: "cheque"})
	require.NoError(t, err)

	assert.Equal(t, "cheque", inv.Payments[0].PaymentMethod)
	assert.Equal(t, 50.0, inv.Payments[0].AmountPaid)
	assert.Equal(t, "first instalment", inv.Payments[0].Notes)
}

func TestUpdatePaymentAmountRevalidated(t *testing.T) {
	inv := newInvoice(200, Models.StatusUnpaid)
	inv.Payments = []Models.InvoicePayment{
		{Model: gorm.Model{ID: 1}, AmountPaid: 120},
		{Model: gorm.Model{ID: 2}, AmountPaid: 50},
	}
	recompute(inv)

	// 120 from the other payment + 100 would exceed 200
	err := UpdatePayment(inv, 2, Models.PaymentRequest{AmountPaid: 100.0})
	require.Error(t, err)
	le, _ := AsLedgerError(err)
	assert.Equal(t, KindValidation, le.Kind)
	assert.Contains(t, le.Message, "220.00")
	assert.Contains(t, le.Message, "200.00")

	// Raising to the exact remaining headroom settles the invoice
	err = UpdatePayment(inv, 2, Models.PaymentRequest{AmountPaid: 80.0})
	require.NoError(t, err)
	assert.Equal(t, Models.StatusPaid, inv.Status)
	assert.Equal(t, 0.0, inv.RemainingBalance)
}

func TestDeletePayment(t *testing.T) {
	inv := newInvoice(200, Models.StatusUnpaid)
	require.NoError(t, AddPayment(inv, Models.PaymentRequest{AmountPaid: 50.0}))
	inv.Payments[0].ID = 3

	err := DeletePayment(inv, 3)
	require.NoError(t, err)

	assert.Empty(t, inv.Payments)
	assert.Equal(t, 0.0, inv.TotalPaid)
	assert.Equal(t, 200.0, inv.RemainingBalance)
	assert.Equal(t, Models.StatusUnpaid, inv.Status)
}

func TestDeletePaymentKeepsSent(t *testing.T) {
	inv := newInvoice(200, Models.StatusSent)
	require.NoError(t, AddPayment(inv, Models.PaymentRequest{AmountPaid: 50.0}))
	inv.Payments[0].ID = 3
	assert.Equal(t, Models.StatusPartial, inv.Status)

	// Removing the only payment drops the invoice back to unpaid here, because
	// the partial transition already overwrote the sent marker.
	require.NoError(t, DeletePayment(inv, 3))
	assert.Equal(t, Models.StatusUnpaid, inv.Status)
}

func TestDeletePaymentNotFound(t *testing.T) {
	inv := newInvoice(200, Models.StatusUnpaid)

	err := DeletePayment(inv, 1)
	require.Error(t, err)
	le, _ := AsLedgerError(err)
	assert.Equal(t, KindNotFound, le.Kind)
}

func TestUpdateCommercialsRecomputesTotals(t *testing.T) {
	inv := newInvoice(100, Models.StatusUnpaid)
	items := []Models.InvoiceItem{{Description: "a", Amount: 80.0}, {Description: "b", Amount: 20.0}}
	vat := true

	UpdateCommercials(inv, &items, &vat)

	assert.Equal(t, 100.0, inv.Subtotal)
	assert.Equal(t, 5.0, inv.Tax)
	assert.Equal(t, 105.0, inv.Total)
	assert.Equal(t, 105.0, inv.RemainingBalance)
}

func TestUpdateCommercialsDoesNotTouchStatus(t *testing.T) {
	inv := newInvoice(100, Models.StatusUnpaid)
	require.NoError(t, AddPayment(inv, Models.PaymentRequest{AmountPaid: 100.0}))
	require.Equal(t, Models.StatusPaid, inv.Status)

	// Raising the total leaves the invoice paid; status only moves on payment
	// operations.
	items := []Models.InvoiceItem{{Description: "a", Amount: 500.0}}
	UpdateCommercials(inv, &items, nil)

	assert.Equal(t, 500.0, inv.Total)
	assert.Equal(t, Models.StatusPaid, inv.Status)
	assert.Equal(t, 400.0, inv.RemainingBalance)
}

func TestUpdateCommercialsNoop(t *testing.T) {
	inv := newInvoice(100, Models.StatusUnpaid)
	before := *inv

	UpdateCommercials(inv, nil, nil)

	assert.Equal(t, before.Total, inv.Total)
	assert.Equal(t, before.UpdatedAt, inv.UpdatedAt)
}

func TestUpdateCommercialsLoweredTotalFloorsBalance(t *testing.T) {
	inv := newInvoice(200, Models.StatusUnpaid)
	require.NoError(t, AddPayment(inv, Models.PaymentRequest{AmountPaid: 150.0}))

	items := []Models.InvoiceItem{{Description: "reduced scope", Amount: 100.0}}
	UpdateCommercials(inv, &items, nil)

	assert.Equal(t, 100.0, inv.Total)
	assert.Equal(t, 150.0, inv.TotalPaid)
	assert.Equal(t, 0.0, inv.RemainingBalance)
}
