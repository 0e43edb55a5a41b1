package models

import (
	"time"
)

// PendingRegistration tracks an in-progress merchant signup before any
// permanent records exist. Rows are hard-deleted once the flow completes
// or when a newer attempt with the same email supersedes them. The unique
// index on email keeps at most one active attempt per address even when
// two initiates race.
type PendingRegistration struct {
	BaseModel
	Email                 string     `gorm:"uniqueIndex" json:"email"`
	FirstName             string     `json:"first_name"`
	LastName              string     `json:"last_name"`
	Phone                 string     `json:"phone"`
	BusinessName          string     `json:"business_name"`
	ShopName              string     `json:"shop_name"`
	NumberOfEmployees     *int       `json:"number_of_employees"`
	HasMultipleShops      bool       `json:"has_multiple_shops"`
	HasMultipleWarehouses bool       `json:"has_multiple_warehouses"`
	PasswordHash          string     `json:"-"`
	OTPCode               *string    `json:"-"`
	OTPExpiresAt          *time.Time `json:"otp_expires_at"`
	OTPVerified           bool       `json:"otp_verified"`
	Step                  int        `gorm:"default:1" json:"step"`
}

// PasswordResetToken keeps track of email reset codes for merchant users.
type PasswordResetToken struct {
	BaseModel
	Email     string     `gorm:"index" json:"email"`
	Token     string     `gorm:"uniqueIndex" json:"token"`
	Code      string     `json:"-"`
	ExpiresAt time.Time  `json:"expires_at"`
	Verified  bool       `json:"verified"`
	UsedAt    *time.Time `json:"used_at"`
}
