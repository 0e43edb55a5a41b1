package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/example/livemarket/internal/config"
	"github.com/example/livemarket/internal/database"
	"github.com/example/livemarket/internal/handlers"
	"github.com/example/livemarket/internal/models"
	"github.com/example/livemarket/internal/routes"
	"github.com/example/livemarket/internal/utils"
)

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	cfg := &config.Config{
		JWTSecret:      "test-secret",
		TokenExpires:   168 * time.Hour,
		OTPExpires:     10 * time.Minute,
		ResendCooldown: 60 * time.Second,
	}

	app := fiber.New(fiber.Config{ErrorHandler: handlers.ErrorHandler})
	routes.Register(app, db, cfg)

	return app, db
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	decoded := map[string]interface{}{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded), "body: %s", raw)
	}

	return resp.StatusCode, decoded
}

func initiateBody(email string) map[string]interface{} {
	return map[string]interface{}{
		"email":        email,
		"password":     "supersecret1",
		"firstName":    "Jamie",
		"lastName":     "Rivera",
		"phone":        "+15550001111",
		"businessName": "Acme",
		"shopName":     "Acme Store",
	}
}

func TestHealthEndpoint(t *testing.T) {
	app, _ := newTestApp(t)

	status, body := doJSON(t, app, http.MethodGet, "/api/health", nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "healthy", body["status"])
	require.Equal(t, "connected", body["database"])
	require.NotEmpty(t, body["timestamp"])
}

func TestRegistrationEndToEnd(t *testing.T) {
	app, db := newTestApp(t)

	status, body := doJSON(t, app, http.MethodPost, "/api/public/registration/initiate", initiateBody("seller@x.com"))
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, true, body["success"])
	registrationID, _ := body["registrationId"].(string)
	require.NotEmpty(t, registrationID)

	status, body = doJSON(t, app, http.MethodGet, "/api/public/registration/status?id="+registrationID, nil)
	require.Equal(t, http.StatusOK, status)
	data := body["data"].(map[string]interface{})
	require.Equal(t, float64(2), data["step"])
	require.Equal(t, false, data["otp_verified"])

	var reg models.PendingRegistration
	require.NoError(t, db.First(&reg, "id = ?", registrationID).Error)
	require.NotNil(t, reg.OTPCode)
	code := *reg.OTPCode

	wrong := "000000"
	if code == wrong {
		wrong = "111111"
	}
	status, body = doJSON(t, app, http.MethodPost, "/api/public/registration/verify-otp", map[string]interface{}{
		"registrationId": registrationID,
		"otpCode":        wrong,
	})
	require.Equal(t, http.StatusBadRequest, status)
	require.Contains(t, body["error"], "code")

	status, _ = doJSON(t, app, http.MethodPost, "/api/public/registration/verify-otp", map[string]interface{}{
		"registrationId": registrationID,
		"otpCode":        code,
	})
	require.Equal(t, http.StatusOK, status)

	status, body = doJSON(t, app, http.MethodPost, "/api/public/registration/complete", map[string]interface{}{
		"registrationId": registrationID,
		"agreedToTerms":  true,
		"signatureData":  "data:image/svg+xml;base64,c2ln",
		"documentUrls":   []string{"https://cdn.example.com/doc1.pdf"},
	})
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, true, body["success"])

	status, _ = doJSON(t, app, http.MethodGet, "/api/public/registration/status?id="+registrationID, nil)
	require.Equal(t, http.StatusNotFound, status)

	var business models.Business
	require.NoError(t, db.First(&business, "email = ?", "seller@x.com").Error)
	require.False(t, business.IsActive)
}

func TestInitiateValidation(t *testing.T) {
	app, _ := newTestApp(t)

	body := initiateBody("not-an-email")
	status, resp := doJSON(t, app, http.MethodPost, "/api/public/registration/initiate", body)
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "Invalid email address", resp["error"])

	body = initiateBody("ok@x.com")
	body["shopName"] = ""
	status, resp = doJSON(t, app, http.MethodPost, "/api/public/registration/initiate", body)
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "Shop name is required", resp["error"])
}

func TestSendOTPCooldown(t *testing.T) {
	app, _ := newTestApp(t)

	status, body := doJSON(t, app, http.MethodPost, "/api/public/registration/initiate", initiateBody("resend@x.com"))
	require.Equal(t, http.StatusOK, status)
	registrationID := body["registrationId"].(string)

	status, _ = doJSON(t, app, http.MethodPost, "/api/public/registration/send-otp", map[string]interface{}{
		"registrationId": registrationID,
	})
	require.Equal(t, http.StatusTooManyRequests, status)
}

func TestLoginEndpoint(t *testing.T) {
	app, db := newTestApp(t)

	hash, err := utils.HashPassword("correct-horse")
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.User{
		Email:        "pending@x.com",
		PasswordHash: hash,
		FirstName:    "Sam",
		LastName:     "Chen",
		IsActive:     false,
	}).Error)
	require.NoError(t, db.Create(&models.User{
		Email:        "active@x.com",
		PasswordHash: hash,
		FirstName:    "Sam",
		LastName:     "Chen",
		IsActive:     true,
	}).Error)

	status, _ := doJSON(t, app, http.MethodPost, "/api/auth/login", map[string]interface{}{
		"email":    "nobody@x.com",
		"password": "correct-horse",
	})
	require.Equal(t, http.StatusUnauthorized, status)

	status, body := doJSON(t, app, http.MethodPost, "/api/auth/login", map[string]interface{}{
		"email":    "pending@x.com",
		"password": "correct-horse",
	})
	require.Equal(t, http.StatusForbidden, status)
	require.Contains(t, body["error"], "pending approval")

	status, body = doJSON(t, app, http.MethodPost, "/api/auth/login", map[string]interface{}{
		"email":    "active@x.com",
		"password": "correct-horse",
	})
	require.Equal(t, http.StatusOK, status)
	require.NotEmpty(t, body["token"])
	user := body["user"].(map[string]interface{})
	require.Equal(t, "active@x.com", user["email"])
}

func TestAdminRoutesRequireAdminToken(t *testing.T) {
	app, _ := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/dashboard", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	token, err := utils.GenerateToken("test-secret", uuid.New(), "user@x.com", "J", "R", false, time.Hour)
	require.NoError(t, err)

	req = httptest.NewRequest(http.MethodGet, "/api/admin/dashboard", nil)
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
}
