package services

import "errors"

// Errors returned by the registration, OTP and auth services. Handlers match
// these with errors.Is and translate them into HTTP responses; anything else
// bubbles up as a 500.
var (
	ErrNotFound               = errors.New("record not found")
	ErrEmailAlreadyRegistered = errors.New("an account with this email already exists")

	ErrAlreadyVerified = errors.New("code already verified")
	ErrNoCodeIssued    = errors.New("no verification code issued")
	ErrCodeExpired     = errors.New("verification code expired")
	ErrCodeMismatch    = errors.New("invalid verification code")
	ErrResendCooldown  = errors.New("verification code was sent recently")

	ErrNotVerified       = errors.New("email not verified")
	ErrTermsNotAccepted  = errors.New("terms must be accepted")
	ErrSignatureRequired = errors.New("signature is required")
	ErrDocumentRequired  = errors.New("at least one agreement document is required")
	ErrCompletionFailed  = errors.New("failed to complete registration")

	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrPendingApproval    = errors.New("account is pending approval")
	ErrTokenAlreadyUsed   = errors.New("reset token already used")
	ErrTokenExpired       = errors.New("reset token expired")
	ErrCodeNotVerified    = errors.New("code not verified yet")
)
