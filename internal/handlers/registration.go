package handlers

import (
	"net/mail"
	"regexp"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/example/livemarket/internal/services"
)

var otpCodePattern = regexp.MustCompile(`^\d{6}$`)

// RegistrationHandler exposes the public merchant onboarding endpoints.
type RegistrationHandler struct {
	registrations *services.RegistrationService
	otp           *services.OTPService
}

// NewRegistrationHandler constructs a RegistrationHandler.
func NewRegistrationHandler(registrations *services.RegistrationService, otp *services.OTPService) *RegistrationHandler {
	return &RegistrationHandler{registrations: registrations, otp: otp}
}

type initiateRequest struct {
	Email                 string `json:"email"`
	Password              string `json:"password"`
	FirstName             string `json:"firstName"`
	LastName              string `json:"lastName"`
	Phone                 string `json:"phone"`
	BusinessName          string `json:"businessName"`
	ShopName              string `json:"shopName"`
	NumberOfEmployees     *int   `json:"numberOfEmployees"`
	HasMultipleShops      bool   `json:"hasMultipleShops"`
	HasMultipleWarehouses bool   `json:"hasMultipleWarehouses"`
}

func validateInitiate(req *initiateRequest) string {
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return "Invalid email address"
	}
	if len(req.Password) < 8 {
		return "Password must be at least 8 characters"
	}
	if req.FirstName == "" {
		return "First name is required"
	}
	if req.LastName == "" {
		return "Last name is required"
	}
	if req.Phone == "" {
		return "Phone number is required"
	}
	if req.BusinessName == "" {
		return "Business name is required"
	}
	if req.ShopName == "" {
		return "Shop name is required"
	}
	return ""
}

// Initiate starts a registration: step 1 profile collection plus the first
// OTP dispatch.
func (h *RegistrationHandler) Initiate(c *fiber.Ctx) error {
	var req initiateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if msg := validateInitiate(&req); msg != "" {
		return fiber.NewError(fiber.StatusBadRequest, msg)
	}

	registrationID, err := h.registrations.Initiate(services.InitiateInput{
		Email:                 req.Email,
		Password:              req.Password,
		FirstName:             req.FirstName,
		LastName:              req.LastName,
		Phone:                 req.Phone,
		BusinessName:          req.BusinessName,
		ShopName:              req.ShopName,
		NumberOfEmployees:     req.NumberOfEmployees,
		HasMultipleShops:      req.HasMultipleShops,
		HasMultipleWarehouses: req.HasMultipleWarehouses,
	})
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(fiber.Map{
		"success":        true,
		"registrationId": registrationID,
		"message":        "Registration initiated. Please check your email for the verification code.",
	})
}

// Status returns the progress of a pending registration.
func (h *RegistrationHandler) Status(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Query("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid registration ID")
	}

	status, err := h.registrations.Status(id)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    status,
	})
}

type sendOTPRequest struct {
	RegistrationID string `json:"registrationId"`
}

// SendOTP issues (or reissues) the verification code for a registration.
func (h *RegistrationHandler) SendOTP(c *fiber.Ctx) error {
	var req sendOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	id, err := uuid.Parse(req.RegistrationID)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid registration ID")
	}

	if err := h.otp.Issue(id); err != nil {
		return serviceError(err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "OTP sent successfully.",
	})
}

type verifyOTPRequest struct {
	RegistrationID string `json:"registrationId"`
	OTPCode        string `json:"otpCode"`
}

// VerifyOTP validates the submitted code and advances the flow to step 3.
func (h *RegistrationHandler) VerifyOTP(c *fiber.Ctx) error {
	var req verifyOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	id, err := uuid.Parse(req.RegistrationID)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid registration ID")
	}

	if !otpCodePattern.MatchString(req.OTPCode) {
		return fiber.NewError(fiber.StatusBadRequest, "OTP code must be exactly 6 digits")
	}

	if err := h.otp.Verify(id, req.OTPCode); err != nil {
		return serviceError(err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Email verified successfully.",
	})
}

type completeRequest struct {
	RegistrationID string   `json:"registrationId"`
	AgreedToTerms  bool     `json:"agreedToTerms"`
	SignatureData  string   `json:"signatureData"`
	DocumentURLs   []string `json:"documentUrls"`
}

// Complete finalizes the flow: agreement plus signature in, the permanent
// business records out.
func (h *RegistrationHandler) Complete(c *fiber.Ctx) error {
	var req completeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	id, err := uuid.Parse(req.RegistrationID)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid registration ID")
	}

	if err := h.registrations.Complete(id, services.CompleteInput{
		AgreedToTerms: req.AgreedToTerms,
		SignatureData: req.SignatureData,
		DocumentURLs:  req.DocumentURLs,
	}); err != nil {
		return serviceError(err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Registration completed successfully. Your account is pending approval.",
	})
}
