package services

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/livemarket/internal/config"
	"github.com/example/livemarket/internal/models"
)

// OTPService issues and verifies the one-time email codes that gate step 2
// of the registration flow.
type OTPService struct {
	db     *gorm.DB
	cfg    *config.Config
	mailer *Mailer
}

// NewOTPService constructs an OTPService.
func NewOTPService(db *gorm.DB, cfg *config.Config, mailer *Mailer) *OTPService {
	return &OTPService{db: db, cfg: cfg, mailer: mailer}
}

// GenerateCode returns a uniformly random fixed-width 6-digit code.
func GenerateCode() (string, error) {
	max := big.NewInt(1000000)
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// Issue generates a fresh code for the registration, stores it with a new
// expiry window and emails it to the registrant. Reissuing overwrites the
// previous code. A resend inside the cooldown window is rejected.
func (s *OTPService) Issue(registrationID uuid.UUID) error {
	var reg models.PendingRegistration
	if err := s.db.First(&reg, "id = ?", registrationID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrNotFound
		}
		return err
	}

	if reg.OTPExpiresAt != nil {
		issuedAt := reg.OTPExpiresAt.Add(-s.cfg.OTPExpires)
		if time.Since(issuedAt) < s.cfg.ResendCooldown {
			return ErrResendCooldown
		}
	}

	code, err := GenerateCode()
	if err != nil {
		return err
	}
	expiresAt := time.Now().Add(s.cfg.OTPExpires)

	if err := s.db.Model(&reg).Updates(map[string]interface{}{
		"otp_code":       code,
		"otp_expires_at": expiresAt,
	}).Error; err != nil {
		return err
	}

	return s.mailer.SendOTPEmail(reg.Email, reg.FirstName, code)
}

// Verify checks a submitted code against the stored one. On match it marks
// the registration verified and advances it to step 3. The transition is a
// conditional update so exactly one of two concurrent correct submissions
// wins and the other observes ErrAlreadyVerified.
func (s *OTPService) Verify(registrationID uuid.UUID, submittedCode string) error {
	var reg models.PendingRegistration
	if err := s.db.First(&reg, "id = ?", registrationID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrNotFound
		}
		return err
	}

	if reg.OTPVerified {
		return ErrAlreadyVerified
	}

	if reg.OTPCode == nil || reg.OTPExpiresAt == nil {
		return ErrNoCodeIssued
	}

	if time.Now().After(*reg.OTPExpiresAt) {
		return ErrCodeExpired
	}

	if subtle.ConstantTimeCompare([]byte(*reg.OTPCode), []byte(submittedCode)) != 1 {
		return ErrCodeMismatch
	}

	result := s.db.Model(&models.PendingRegistration{}).
		Where("id = ? AND otp_verified = ?", registrationID, false).
		Updates(map[string]interface{}{
			"otp_verified": true,
			"step":         3,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAlreadyVerified
	}

	return nil
}
