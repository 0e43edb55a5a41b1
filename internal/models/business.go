package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Business is the top-level merchant tenant. Created inactive by the
// registration flow and activated by an admin.
type Business struct {
	BaseModel
	Name                  string         `json:"name"`
	RegistrationNumber    string         `json:"registration_number"`
	Email                 string         `gorm:"index" json:"email"`
	Phone                 string         `json:"phone"`
	Address               string         `json:"address"`
	NumberOfEmployees     *int           `json:"number_of_employees"`
	HasMultipleShops      bool           `json:"has_multiple_shops"`
	HasMultipleWarehouses bool           `json:"has_multiple_warehouses"`
	IsActive              bool           `json:"is_active"`
	ApprovedAt            *time.Time     `json:"approved_at"`
	ApprovedBy            *uuid.UUID     `gorm:"type:uuid" json:"approved_by"`
	DeletedAt             gorm.DeletedAt `gorm:"index" json:"-"`

	Shops      []Shop      `json:"shops,omitempty"`
	Warehouses []Warehouse `json:"warehouses,omitempty"`
	Users      []User      `json:"users,omitempty"`
}

// Shop is a storefront owned by a business.
type Shop struct {
	BaseModel
	BusinessID  uuid.UUID      `gorm:"type:uuid;index" json:"business_id"`
	Name        string         `json:"name"`
	Slug        string         `gorm:"index:idx_shops_slug,unique,where:deleted_at IS NULL" json:"slug"`
	Description string         `json:"description"`
	IsActive    bool           `json:"is_active"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// Warehouse is a stock location owned by a business.
type Warehouse struct {
	BaseModel
	BusinessID uuid.UUID      `gorm:"type:uuid;index" json:"business_id"`
	Name       string         `json:"name"`
	Address    string         `json:"address"`
	IsActive   bool           `json:"is_active"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// StringList stores a list of strings as a JSON text column so the same
// model works on postgres and the sqlite test database.
type StringList []string

// Value implements driver.Valuer.
func (l StringList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("unsupported type %T for StringList", value)
	}
}

// BusinessAgreement records the signed terms acceptance produced by a
// completed registration. Exactly one row per onboarded business.
type BusinessAgreement struct {
	BaseModel
	BusinessID    uuid.UUID      `gorm:"type:uuid;index" json:"business_id"`
	UserID        uuid.UUID      `gorm:"type:uuid;index" json:"user_id"`
	AgreedToTerms bool           `json:"agreed_to_terms"`
	SignatureData string         `gorm:"type:text" json:"signature_data"`
	DocumentURLs  StringList     `gorm:"type:text" json:"document_urls"`
	AgreedAt      time.Time      `json:"agreed_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}
