package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/example/livemarket/internal/models"
	"github.com/example/livemarket/internal/utils"
)

func newAuthService(t *testing.T) (*AuthService, *gorm.DB) {
	t.Helper()

	db := newTestDB(t)
	cfg := newTestConfig()
	return NewAuthService(db, cfg, NewMailer(cfg)), db
}

func seedUser(t *testing.T, db *gorm.DB, email, password string, active bool) models.User {
	t.Helper()

	hash, err := utils.HashPassword(password)
	require.NoError(t, err)

	user := models.User{
		Email:        email,
		PasswordHash: hash,
		FirstName:    "Sam",
		LastName:     "Chen",
		IsActive:     active,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func TestLoginUnknownEmail(t *testing.T) {
	auth, _ := newAuthService(t)

	_, _, err := auth.Login("nobody@x.com", "whatever1")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginWrongPassword(t *testing.T) {
	auth, db := newAuthService(t)
	seedUser(t, db, "merchant@x.com", "correct-horse", true)

	_, _, err := auth.Login("merchant@x.com", "wrong-horse")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginPendingApproval(t *testing.T) {
	auth, db := newAuthService(t)
	seedUser(t, db, "waiting@x.com", "correct-horse", false)

	// Correct password still never yields a token before approval.
	_, token, err := auth.Login("waiting@x.com", "correct-horse")
	require.ErrorIs(t, err, ErrPendingApproval)
	require.Empty(t, token)
}

func TestLoginSuccessIssuesToken(t *testing.T) {
	auth, db := newAuthService(t)
	user := seedUser(t, db, "active@x.com", "correct-horse", true)

	got, token, err := auth.Login("active@x.com", "correct-horse")
	require.NoError(t, err)
	require.Equal(t, user.ID, got.ID)
	require.NotEmpty(t, token)

	claims, err := utils.ParseToken("test-secret", token)
	require.NoError(t, err)
	require.Equal(t, user.ID.String(), claims.UserID)
	require.Equal(t, "active@x.com", claims.Email)
	require.False(t, claims.IsAdmin)
}

func TestPasswordResetFlow(t *testing.T) {
	auth, db := newAuthService(t)
	seedUser(t, db, "reset@x.com", "old-password", true)

	token, err := auth.ForgotPassword("reset@x.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	var record models.PasswordResetToken
	require.NoError(t, db.First(&record, "token = ?", token).Error)

	wrong := "999999"
	if record.Code == wrong {
		wrong = "888888"
	}
	require.ErrorIs(t, auth.VerifyResetCode(token, wrong), ErrCodeMismatch)

	// Reset before verification is rejected.
	require.ErrorIs(t, auth.ResetPassword(token, "new-password1"), ErrCodeNotVerified)

	require.NoError(t, auth.VerifyResetCode(token, record.Code))
	require.NoError(t, auth.ResetPassword(token, "new-password1"))

	_, _, err = auth.Login("reset@x.com", "old-password")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = auth.Login("reset@x.com", "new-password1")
	require.NoError(t, err)

	// The token is consumed.
	require.ErrorIs(t, auth.ResetPassword(token, "another-one1"), ErrTokenAlreadyUsed)
}

func TestPasswordResetExpiredToken(t *testing.T) {
	auth, db := newAuthService(t)
	seedUser(t, db, "stale@x.com", "old-password", true)

	token, err := auth.ForgotPassword("stale@x.com")
	require.NoError(t, err)

	require.NoError(t, db.Model(&models.PasswordResetToken{}).
		Where("token = ?", token).
		Update("expires_at", time.Now().Add(-time.Minute)).Error)

	require.ErrorIs(t, auth.VerifyResetCode(token, "123456"), ErrTokenExpired)
}

func TestForgotPasswordUnknownEmail(t *testing.T) {
	auth, _ := newAuthService(t)

	_, err := auth.ForgotPassword("ghost@x.com")
	require.ErrorIs(t, err, ErrNotFound)
}
