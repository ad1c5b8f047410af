package domain

import "errors"

// Business-rule errors. These are recovered at the handler boundary and
// rendered as {"success": false, "error": "..."} with HTTP 400.
var (
	ErrDuplicateEmail        = errors.New("email already registered")
	ErrUnknownEmail          = errors.New("no account found with this email")
	ErrInvalidCode           = errors.New("invalid verification code")
	ErrCodeExpired           = errors.New("code expired, please request a new one")
	ErrPasswordMismatch      = errors.New("passwords do not match")
	ErrNoPendingRegistration = errors.New("no pending registration found for this email")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrAccountDisabled       = errors.New("account disabled")
)

// Lookup errors returned by repositories and the session store.
var (
	ErrUserNotFound         = errors.New("user not found")
	ErrSessionNotFound      = errors.New("session not found")
	ErrTaskNotFound         = errors.New("task not found")
	ErrNotificationNotFound = errors.New("notification not found")
)

// ErrDeliveryFailure wraps a Mailer failure. The workflow engine performs
// compensating cleanup before surfacing it; handlers render HTTP 500.
var ErrDeliveryFailure = errors.New("failed to send email")
