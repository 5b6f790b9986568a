package Models

import (
	"time"

	"gorm.io/gorm"
)

// Contract is a client engagement that invoices reference. Invoices point at
// contracts but deleting a contract never cascades into its invoices.
type Contract struct {
	gorm.Model
	CompanyID    uint   `json:"company_id" gorm:"not null;index"`
	ClientName   string `json:"client_name" gorm:"size:255;not null"`
	ContactName  string `json:"contact_name" gorm:"size:255"`
	ContactPhone string `json:"contact_phone" gorm:"size:50"`
	ContactEmail string `json:"contact_email" gorm:"size:255"`

	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`

	// Commercial terms
	MonthlyRate  float64 `json:"monthly_rate"`
	PerTripRate  float64 `json:"per_trip_rate"`
	VehicleCount int     `json:"vehicle_count"`

	Status string `json:"status" gorm:"size:20;default:active"` // active, expired, terminated
	Notes  string `json:"notes" gorm:"type:text"`
}

type ContractRequest struct {
	ClientName   string  `json:"client_name" validate:"required"`
	ContactName  string  `json:"contact_name"`
	ContactPhone string  `json:"contact_phone"`
	ContactEmail string  `json:"contact_email" validate:"omitempty,email"`
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
	MonthlyRate  float64 `json:"monthly_rate"`
	PerTripRate  float64 `json:"per_trip_rate"`
	VehicleCount int     `json:"vehicle_count"`
	Notes        string  `json:"notes"`
}
