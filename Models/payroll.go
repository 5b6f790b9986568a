package Models

import (
	"gorm.io/gorm"
)

type PayrollEntry struct {
	gorm.Model
	CompanyID uint `json:"company_id" gorm:"not null;index"`
	DriverID  uint `json:"driver_id" gorm:"not null;index"`

	// Period in YYYY-MM
	Period string `json:"period" gorm:"size:7;not null;index"`

	BaseSalary float64 `json:"base_salary"`
	Allowances float64 `json:"allowances"`
	Deductions float64 `json:"deductions"`
	Advances   float64 `json:"advances"`
	NetPay     float64 `json:"net_pay"`

	Status string `json:"status" gorm:"size:20;default:pending"` // pending, approved, paid
	Notes  string `json:"notes" gorm:"type:text"`

	Driver Driver `json:"driver,omitempty" gorm:"foreignKey:DriverID"`
}

type PayrollRequest struct {
	DriverID   uint    `json:"driver_id" validate:"required"`
	Period     string  `json:"period" validate:"required"`
	Allowances float64 `json:"allowances" validate:"gte=0"`
	Deductions float64 `json:"deductions" validate:"gte=0"`
	Notes      string  `json:"notes"`
}
