package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a merchant login identity. Accounts created through the public
// registration flow stay inactive until an admin approves the business.
// Email is unique among live rows only, so a rejected (soft-deleted)
// merchant can register again with the same address.
type User struct {
	BaseModel
	Email        string         `gorm:"index:idx_users_email,unique,where:deleted_at IS NULL" json:"email"`
	PasswordHash string         `json:"-"`
	FirstName    string         `json:"first_name"`
	LastName     string         `json:"last_name"`
	Phone        string         `json:"phone"`
	BusinessID   *uuid.UUID     `gorm:"type:uuid;index" json:"business_id"`
	IsAdmin      bool           `json:"is_admin"`
	IsActive     bool           `json:"is_active"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	Business *Business `json:"business,omitempty"`
}
