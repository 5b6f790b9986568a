package Models

import (
	"gorm.io/gorm"
)

// Permission levels. Higher levels include the lower ones.
const (
	PermissionViewer     = 1
	PermissionAccountant = 2
	PermissionManager    = 3
	PermissionAdmin      = 4
)

type User struct {
	gorm.Model
	CompanyID  uint   `json:"company_id" gorm:"not null;index"`
	Name       string `json:"name" gorm:"size:255;not null"`
	Email      string `json:"email" gorm:"size:255;not null;uniqueIndex"`
	Password   []byte `json:"-"`
	Permission int    `json:"permission" gorm:"not null;default:1"`
	IsApproved int    `json:"is_approved" gorm:"default:0"`
}

type RegisterUserRequest struct {
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=6"`
	Permission int    `json:"permission" validate:"gte=0,lte=4"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
