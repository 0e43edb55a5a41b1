package services

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/livemarket/internal/config"
	"github.com/example/livemarket/internal/models"
	"github.com/example/livemarket/internal/utils"
)

// RegistrationService drives the multi-step merchant onboarding flow:
// initiate -> OTP verification -> agreement -> pending admin approval.
type RegistrationService struct {
	db       *gorm.DB
	cfg      *config.Config
	otp      *OTPService
	telegram *TelegramService
}

// NewRegistrationService constructs a RegistrationService.
func NewRegistrationService(db *gorm.DB, cfg *config.Config, otp *OTPService, telegram *TelegramService) *RegistrationService {
	return &RegistrationService{db: db, cfg: cfg, otp: otp, telegram: telegram}
}

// InitiateInput carries the profile collected at step 1.
type InitiateInput struct {
	Email                 string
	Password              string
	FirstName             string
	LastName              string
	Phone                 string
	BusinessName          string
	ShopName              string
	NumberOfEmployees     *int
	HasMultipleShops      bool
	HasMultipleWarehouses bool
}

// Initiate starts a new registration: it rejects emails that already belong
// to a confirmed user, supersedes any previous pending attempt for the same
// email, creates a fresh pending record and dispatches the first OTP. The
// returned id is the public handle for the rest of the flow.
func (s *RegistrationService) Initiate(input InitiateInput) (uuid.UUID, error) {
	var existing models.User
	err := s.db.Where("email = ?", input.Email).First(&existing).Error
	if err == nil {
		return uuid.Nil, ErrEmailAlreadyRegistered
	} else if err != gorm.ErrRecordNotFound {
		return uuid.Nil, err
	}

	passwordHash, err := utils.HashPassword(input.Password)
	if err != nil {
		return uuid.Nil, err
	}

	reg := models.PendingRegistration{
		Email:                 input.Email,
		FirstName:             input.FirstName,
		LastName:              input.LastName,
		Phone:                 input.Phone,
		BusinessName:          input.BusinessName,
		ShopName:              input.ShopName,
		NumberOfEmployees:     input.NumberOfEmployees,
		HasMultipleShops:      input.HasMultipleShops,
		HasMultipleWarehouses: input.HasMultipleWarehouses,
		PasswordHash:          passwordHash,
		Step:                  1,
	}

	// Supersede-and-create runs in one transaction; the unique index on
	// pending email is the backstop when two initiates race past each
	// other's delete, so at most one insert commits.
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("email = ?", input.Email).
			Delete(&models.PendingRegistration{}).Error; err != nil {
			return err
		}
		return tx.Create(&reg).Error
	})
	if err != nil {
		return uuid.Nil, err
	}

	if err := s.otp.Issue(reg.ID); err != nil {
		return uuid.Nil, err
	}

	if err := s.db.Model(&reg).Update("step", 2).Error; err != nil {
		return uuid.Nil, err
	}

	return reg.ID, nil
}

// RegistrationStatus is the read-only projection returned to polling clients.
type RegistrationStatus struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	BusinessName string    `json:"business_name"`
	Step         int       `json:"step"`
	OTPVerified  bool      `json:"otp_verified"`
}

// Status returns the current progress of a pending registration.
func (s *RegistrationService) Status(registrationID uuid.UUID) (*RegistrationStatus, error) {
	var reg models.PendingRegistration
	if err := s.db.First(&reg, "id = ?", registrationID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &RegistrationStatus{
		ID:           reg.ID,
		Email:        reg.Email,
		FirstName:    reg.FirstName,
		LastName:     reg.LastName,
		BusinessName: reg.BusinessName,
		Step:         reg.Step,
		OTPVerified:  reg.OTPVerified,
	}, nil
}

// CompleteInput carries the agreement submitted at the final step.
type CompleteInput struct {
	AgreedToTerms bool
	SignatureData string
	DocumentURLs  []string
}

// Complete validates the final-step preconditions and materializes the
// permanent records in a single transaction: Business, Shop, Warehouse,
// User and BusinessAgreement are created together and the pending
// registration is deleted. Any failure rolls the whole set back and leaves
// the pending registration untouched so the caller can retry.
func (s *RegistrationService) Complete(registrationID uuid.UUID, input CompleteInput) error {
	var reg models.PendingRegistration
	if err := s.db.First(&reg, "id = ?", registrationID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrNotFound
		}
		return err
	}

	if !reg.OTPVerified {
		return ErrNotVerified
	}

	if !input.AgreedToTerms {
		return ErrTermsNotAccepted
	}

	if input.SignatureData == "" {
		return ErrSignatureRequired
	}

	if s.cfg.RequireAgreementDocs && len(input.DocumentURLs) == 0 {
		return ErrDocumentRequired
	}

	slug, err := utils.GenerateSlug(reg.ShopName)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		business := models.Business{
			Name:                  reg.BusinessName,
			Email:                 reg.Email,
			Phone:                 reg.Phone,
			NumberOfEmployees:     reg.NumberOfEmployees,
			HasMultipleShops:      reg.HasMultipleShops,
			HasMultipleWarehouses: reg.HasMultipleWarehouses,
			IsActive:              false, // requires admin approval
		}
		if err := tx.Create(&business).Error; err != nil {
			return err
		}

		shop := models.Shop{
			BusinessID: business.ID,
			Name:       reg.ShopName,
			Slug:       slug,
			IsActive:   false,
		}
		if err := tx.Create(&shop).Error; err != nil {
			return err
		}

		warehouse := models.Warehouse{
			BusinessID: business.ID,
			Name:       fmt.Sprintf("%s Warehouse", reg.BusinessName),
			IsActive:   false,
		}
		if err := tx.Create(&warehouse).Error; err != nil {
			return err
		}

		user := models.User{
			Email:        reg.Email,
			PasswordHash: reg.PasswordHash, // already hashed at initiate
			FirstName:    reg.FirstName,
			LastName:     reg.LastName,
			Phone:        reg.Phone,
			BusinessID:   &business.ID,
			IsAdmin:      false,
			IsActive:     false,
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		agreement := models.BusinessAgreement{
			BusinessID:    business.ID,
			UserID:        user.ID,
			AgreedToTerms: input.AgreedToTerms,
			SignatureData: input.SignatureData,
			DocumentURLs:  input.DocumentURLs,
			AgreedAt:      time.Now(),
		}
		if err := tx.Create(&agreement).Error; err != nil {
			return err
		}

		return tx.Delete(&reg).Error
	})
	if err != nil {
		log.Printf("registration %s completion failed: %v", registrationID, err)
		return ErrCompletionFailed
	}

	notification := RegistrationNotification{
		BusinessName: reg.BusinessName,
		ShopName:     reg.ShopName,
		OwnerName:    fmt.Sprintf("%s %s", reg.FirstName, reg.LastName),
		Email:        reg.Email,
		Phone:        reg.Phone,
	}
	go func() {
		if err := s.telegram.NotifyNewRegistration(notification); err != nil {
			log.Printf("telegram notification failed: %v", err)
		}
	}()

	return nil
}
