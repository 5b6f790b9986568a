package Models

import (
	"time"

	"gorm.io/gorm"
)

type Vehicle struct {
	gorm.Model
	CompanyID   uint   `json:"company_id" gorm:"not null;index"`
	PlateNumber string `json:"plate_number" gorm:"size:50;not null;index"`
	VehicleType string `json:"vehicle_type" gorm:"size:50"` // Trailer, No Trailer, Van, ...
	MakeModel   string `json:"make_model" gorm:"size:100"`
	Year        int    `json:"year"`

	LicenseExpirationDate     time.Time `json:"license_expiration_date"`
	CalibrationExpirationDate time.Time `json:"calibration_expiration_date"`

	Odometer int64  `json:"odometer"`
	Status   string `json:"status" gorm:"size:20;default:active"` // active, maintenance, retired

	DriverID *uint `json:"driver_id" gorm:"index"`
}

type Driver struct {
	gorm.Model
	CompanyID uint   `json:"company_id" gorm:"not null;index"`
	Name      string `json:"name" gorm:"size:255;not null"`
	Phone     string `json:"phone" gorm:"size:50"`

	LicenseNumber         string    `json:"license_number" gorm:"size:100"`
	LicenseExpirationDate time.Time `json:"license_expiration_date"`

	BaseSalary float64 `json:"base_salary"`
	IsActive   bool    `json:"is_active" gorm:"default:true"`
}

type VehicleRequest struct {
	PlateNumber           string `json:"plate_number" validate:"required"`
	VehicleType           string `json:"vehicle_type"`
	MakeModel             string `json:"make_model"`
	Year                  int    `json:"year"`
	LicenseExpirationDate string `json:"license_expiration_date"`
	Odometer              int64  `json:"odometer"`
	DriverID              *uint  `json:"driver_id"`
}

type DriverRequest struct {
	Name                  string  `json:"name" validate:"required"`
	Phone                 string  `json:"phone"`
	LicenseNumber         string  `json:"license_number"`
	LicenseExpirationDate string  `json:"license_expiration_date"`
	BaseSalary            float64 `json:"base_salary" validate:"gte=0"`
}
