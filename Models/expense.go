package Models

import (
	"time"

	"gorm.io/gorm"
)

// Expense sources. WhatsApp expenses arrive through the command parser.
const (
	ExpenseSourceAPI      = "api"
	ExpenseSourceWhatsApp = "whatsapp"
)

type Expense struct {
	gorm.Model
	CompanyID uint  `json:"company_id" gorm:"not null;index"`
	DriverID  *uint `json:"driver_id" gorm:"index"`
	VehicleID *uint `json:"vehicle_id" gorm:"index"`

	Category string    `json:"category" gorm:"size:50;not null"` // fuel, maintenance, tolls, other
	Amount   float64   `json:"amount" gorm:"not null"`
	Date     time.Time `json:"date"`
	Notes    string    `json:"notes" gorm:"type:text"`
	Source   string    `json:"source" gorm:"size:20;default:api"`
}

type ExpenseRequest struct {
	DriverID  *uint   `json:"driver_id"`
	VehicleID *uint   `json:"vehicle_id"`
	Category  string  `json:"category" validate:"required"`
	Amount    float64 `json:"amount" validate:"required,gt=0"`
	Date      string  `json:"date"`
	Notes     string  `json:"notes"`
}
