package Models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Invoice statuses. Cancelled and draft are administrative overrides that
// payment activity never changes; the rest are derived from the payment ledger.
const (
	StatusDraft     = "draft"
	StatusUnpaid    = "unpaid"
	StatusPartial   = "partial"
	StatusPaid      = "paid"
	StatusSent      = "sent"
	StatusCancelled = "cancelled"
)

// VatRate is the flat VAT applied when an invoice opts in.
const VatRate = 0.05

type Invoice struct {
	gorm.Model
	CompanyID     uint   `json:"company_id" gorm:"not null;index"`
	ContractID    uint   `json:"contract_id" gorm:"not null;index"`
	InvoiceNumber string `json:"invoice_number" gorm:"size:100;not null;index"`

	IssueDate time.Time `json:"issue_date"`
	DueDate   time.Time `json:"due_date"`

	// Items are kept in memory as a slice and persisted as a JSON column.
	Items     []InvoiceItem  `json:"items" gorm:"-"`
	JSONItems datatypes.JSON `json:"-" gorm:"column:items"`

	IncludeVat bool    `json:"include_vat"`
	Subtotal   float64 `json:"subtotal"`
	Tax        float64 `json:"tax"`
	Total      float64 `json:"total"`

	TotalPaid        float64 `json:"total_paid"`
	RemainingBalance float64 `json:"remaining_balance"`

	Status string `json:"status" gorm:"size:20;not null;default:draft;index"`
	Notes  string `json:"notes" gorm:"type:text"`

	// Relationships
	Contract Contract         `json:"contract,omitempty" gorm:"foreignKey:ContractID"`
	Payments []InvoicePayment `json:"payments" gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`
}

// InvoiceItem is a single commercial line. Amount is interface{} on purpose:
// historical documents carry strings and nulls here, and totals must still be
// computable over them.
type InvoiceItem struct {
	Description string      `json:"description"`
	Amount      interface{} `json:"amount"`
}

// InvoicePayment is owned exclusively by its parent invoice.
type InvoicePayment struct {
	gorm.Model
	InvoiceID     uint      `json:"invoice_id" gorm:"not null;index"`
	AmountPaid    float64   `json:"amount_paid" gorm:"not null"`
	PaymentMethod string    `json:"payment_method" gorm:"size:50"`
	PaymentDate   time.Time `json:"payment_date"`
	TransactionID string    `json:"transaction_id" gorm:"size:100"`
	Notes         string    `json:"notes" gorm:"type:text"`
}

// MarshalItems serializes the in-memory items into the JSON column before a
// save. Call it from every write path that touches Items.
func (inv *Invoice) MarshalItems() error {
	data, err := json.Marshal(inv.Items)
	if err != nil {
		return err
	}
	inv.JSONItems = data
	return nil
}

// UnmarshalItems restores the in-memory items after a load.
func (inv *Invoice) UnmarshalItems() error {
	if len(inv.JSONItems) == 0 {
		inv.Items = nil
		return nil
	}
	return json.Unmarshal(inv.JSONItems, &inv.Items)
}

func (inv *Invoice) AfterFind(tx *gorm.DB) error {
	return inv.UnmarshalItems()
}

type CreateInvoiceRequest struct {
	ContractID    uint          `json:"contract_id" validate:"required"`
	InvoiceNumber string        `json:"invoice_number" validate:"required"`
	IssueDate     string        `json:"issue_date"`
	DueDate       string        `json:"due_date"`
	Items         []InvoiceItem `json:"items"`
	IncludeVat    bool          `json:"include_vat"`
	Notes         string        `json:"notes"`
}

// UpdateInvoiceRequest carries commercial edits and administrative status
// overrides. Pointer fields distinguish "absent" from zero values.
type UpdateInvoiceRequest struct {
	Items      *[]InvoiceItem `json:"items"`
	IncludeVat *bool          `json:"include_vat"`
	DueDate    string         `json:"due_date"`
	Notes      *string        `json:"notes"`
	Status     string         `json:"status"`
}

type PaymentRequest struct {
	AmountPaid    interface{} `json:"amount_paid"`
	PaymentMethod string      `json:"payment_method"`
	PaymentDate   string      `json:"payment_date"`
	TransactionID string      `json:"transaction_id"`
	Notes         string      `json:"notes"`
}
