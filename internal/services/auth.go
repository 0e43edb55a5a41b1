package services

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"gorm.io/gorm"

	"github.com/example/livemarket/internal/config"
	"github.com/example/livemarket/internal/models"
	"github.com/example/livemarket/internal/utils"
)

// AuthService verifies merchant credentials and issues session tokens.
// Registration never touches this path; accounts it creates stay locked
// behind ErrPendingApproval until an admin activates the business.
type AuthService struct {
	db     *gorm.DB
	cfg    *config.Config
	mailer *Mailer
}

// NewAuthService constructs an AuthService.
func NewAuthService(db *gorm.DB, cfg *config.Config, mailer *Mailer) *AuthService {
	return &AuthService{db: db, cfg: cfg, mailer: mailer}
}

// Login authenticates by email and password. Unknown emails and wrong
// passwords both return ErrInvalidCredentials so callers cannot probe for
// registered addresses.
func (s *AuthService) Login(email, password string) (*models.User, string, error) {
	var user models.User
	if err := s.db.Preload("Business").Where("email = ?", email).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if !utils.CheckPassword(user.PasswordHash, password) {
		return nil, "", ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, "", ErrPendingApproval
	}

	token, err := utils.GenerateToken(s.cfg.JWTSecret, user.ID, user.Email,
		user.FirstName, user.LastName, user.IsAdmin, s.cfg.TokenExpires)
	if err != nil {
		return nil, "", err
	}

	return &user, token, nil
}

// ForgotPassword generates a reset code for the given email, invalidates
// previous unused tokens and mails the code. Returns the opaque reset token
// the client must present alongside the code.
func (s *AuthService) ForgotPassword(email string) (string, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", ErrNotFound
		}
		return "", err
	}

	code, err := GenerateCode()
	if err != nil {
		return "", err
	}

	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", err
	}
	resetToken := hex.EncodeToString(tokenBytes)

	// Expire any previous unused reset tokens for this email.
	if err := s.db.Model(&models.PasswordResetToken{}).
		Where("email = ? AND used_at IS NULL", email).
		Update("expires_at", time.Now()).Error; err != nil {
		return "", err
	}

	record := models.PasswordResetToken{
		Email:     email,
		Token:     resetToken,
		Code:      code,
		ExpiresAt: time.Now().Add(10 * time.Minute),
		Verified:  false,
	}
	if err := s.db.Create(&record).Error; err != nil {
		return "", err
	}

	if err := s.mailer.SendPasswordResetEmail(user.Email, user.FirstName, code); err != nil {
		return "", err
	}

	return resetToken, nil
}

// VerifyResetCode marks a reset token verified when the submitted code
// matches and the token is still live.
func (s *AuthService) VerifyResetCode(token, code string) error {
	var record models.PasswordResetToken
	if err := s.db.Where("token = ?", token).First(&record).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrNotFound
		}
		return err
	}

	if record.UsedAt != nil {
		return ErrTokenAlreadyUsed
	}

	if record.ExpiresAt.Before(time.Now()) {
		return ErrTokenExpired
	}

	if record.Code != code {
		return ErrCodeMismatch
	}

	return s.db.Model(&record).Update("verified", true).Error
}

// ResetPassword updates the user's password after code verification and
// consumes the token.
func (s *AuthService) ResetPassword(token, newPassword string) error {
	var record models.PasswordResetToken
	if err := s.db.Where("token = ?", token).First(&record).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrNotFound
		}
		return err
	}

	if record.UsedAt != nil {
		return ErrTokenAlreadyUsed
	}

	if record.ExpiresAt.Before(time.Now()) {
		return ErrTokenExpired
	}

	if !record.Verified {
		return ErrCodeNotVerified
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}

	if err := s.db.Model(&models.User{}).
		Where("email = ?", record.Email).
		Update("password_hash", hash).Error; err != nil {
		return err
	}

	now := time.Now()
	return s.db.Model(&record).Update("used_at", &now).Error
}
