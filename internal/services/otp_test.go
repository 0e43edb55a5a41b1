package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/example/livemarket/internal/models"
)

func TestGenerateCodeShape(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		code, err := GenerateCode()
		require.NoError(t, err)
		require.Regexp(t, `^\d{6}$`, code)
		seen[code] = true
	}
	// 50 draws from a million values collide with negligible probability.
	require.Greater(t, len(seen), 1)
}

func TestIssueNotFound(t *testing.T) {
	_, otp, _, _ := newTestServices(t)

	require.ErrorIs(t, otp.Issue(uuid.New()), ErrNotFound)
}

func TestIssueEnforcesResendCooldown(t *testing.T) {
	registrations, otp, db, cfg := newTestServices(t)

	id, err := registrations.Initiate(validInput("cooldown@x.com"))
	require.NoError(t, err)

	// Initiate already issued a code seconds ago.
	require.ErrorIs(t, otp.Issue(id), ErrResendCooldown)

	// Age the previous issue past the cooldown window.
	aged := time.Now().Add(cfg.OTPExpires - cfg.ResendCooldown - time.Second)
	require.NoError(t, db.Model(&models.PendingRegistration{}).
		Where("id = ?", id).Update("otp_expires_at", aged).Error)

	require.NoError(t, otp.Issue(id))

	// The reissue replaces the stored code and restarts the expiry window.
	var reg models.PendingRegistration
	require.NoError(t, db.First(&reg, "id = ?", id).Error)
	require.NotNil(t, reg.OTPCode)
	require.True(t, reg.OTPExpiresAt.After(aged))
}

func TestVerifyHappyPathIsSingleUse(t *testing.T) {
	registrations, otp, db, _ := newTestServices(t)

	id, err := registrations.Initiate(validInput("verify@x.com"))
	require.NoError(t, err)

	code := storedCode(t, db, id)
	require.NoError(t, otp.Verify(id, code))

	var reg models.PendingRegistration
	require.NoError(t, db.First(&reg, "id = ?", id).Error)
	require.True(t, reg.OTPVerified)
	require.Equal(t, 3, reg.Step)

	// Replaying the consumed code reports AlreadyVerified, not a mismatch.
	require.ErrorIs(t, otp.Verify(id, code), ErrAlreadyVerified)
}

func TestVerifyMismatch(t *testing.T) {
	registrations, otp, db, _ := newTestServices(t)

	id, err := registrations.Initiate(validInput("mismatch@x.com"))
	require.NoError(t, err)

	code := storedCode(t, db, id)
	wrong := "000000"
	if code == wrong {
		wrong = "111111"
	}

	require.ErrorIs(t, otp.Verify(id, wrong), ErrCodeMismatch)

	var reg models.PendingRegistration
	require.NoError(t, db.First(&reg, "id = ?", id).Error)
	require.False(t, reg.OTPVerified)
	require.Equal(t, 2, reg.Step)
}

func TestVerifyExpiredCode(t *testing.T) {
	registrations, otp, db, _ := newTestServices(t)

	id, err := registrations.Initiate(validInput("expired@x.com"))
	require.NoError(t, err)

	code := storedCode(t, db, id)
	require.NoError(t, db.Model(&models.PendingRegistration{}).
		Where("id = ?", id).
		Update("otp_expires_at", time.Now().Add(-time.Minute)).Error)

	// Expiry wins even when the submitted code is correct.
	require.ErrorIs(t, otp.Verify(id, code), ErrCodeExpired)
}

func TestVerifyWithoutIssuedCode(t *testing.T) {
	_, otp, db, _ := newTestServices(t)

	reg := models.PendingRegistration{
		Email:        "bare@x.com",
		FirstName:    "No",
		LastName:     "Code",
		BusinessName: "Bare",
		ShopName:     "Bare Shop",
		Step:         1,
	}
	require.NoError(t, db.Create(&reg).Error)

	require.ErrorIs(t, otp.Verify(reg.ID, "123456"), ErrNoCodeIssued)
}

func TestVerifyNotFound(t *testing.T) {
	_, otp, _, _ := newTestServices(t)

	require.ErrorIs(t, otp.Verify(uuid.New(), "123456"), ErrNotFound)
}
