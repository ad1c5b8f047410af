package ports

import (
	"context"
	"time"

	"github.com/tasko-app/tasko-api/internal/core/domain"
)

// UserRepository defines persistence for durable user accounts.
type UserRepository interface {
	// Create inserts a new user and returns the stored record.
	// Returns domain.ErrDuplicateEmail when the email is already taken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// UpdatePassword replaces the stored password hash for the user.
	UpdatePassword(ctx context.Context, email, passwordHash string) error
}

// PendingRepository defines persistence for transient signup attempts.
// At most one record exists per email.
type PendingRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.PendingRegistration, error)
	// FindByEmailAndOTP matches both fields exactly; returns
	// domain.ErrInvalidCode when no record matches.
	FindByEmailAndOTP(ctx context.Context, email, otp string) (*domain.PendingRegistration, error)
	// Replace deletes any existing record for the email and inserts p
	// (the supersede transition).
	Replace(ctx context.Context, p *domain.PendingRegistration) error
	// UpdateOTP overwrites the OTP and resets the expiry timer in place.
	UpdateOTP(ctx context.Context, email, otp string, issuedAt time.Time) error
	Delete(ctx context.Context, email string) error
}

// ResetRepository defines persistence for password reset requests.
type ResetRepository interface {
	Create(ctx context.Context, r *domain.PasswordReset) error
	// FindUnused matches an unused record by email and OTP; returns
	// domain.ErrInvalidCode when none matches.
	FindUnused(ctx context.Context, email, otp string) (*domain.PasswordReset, error)
	// DeleteUnused removes all unused records for the email.
	DeleteUnused(ctx context.Context, email string) error
	// DeleteByOTP removes the single record matching email and OTP
	// (used when expiry is detected at verify time).
	DeleteByOTP(ctx context.Context, email, otp string) error
	// MarkAllUsed transitions every unused record for the email to used
	// and reports how many were affected.
	MarkAllUsed(ctx context.Context, email string) (int64, error)
}

// SessionStore is the server-side session abstraction. Tokens are opaque
// handles issued by the store; the client never sees session contents.
type SessionStore interface {
	// Create persists the session under a freshly issued token with the
	// given TTL and returns the token.
	Create(ctx context.Context, s domain.Session, ttl time.Duration) (string, error)
	// Get returns domain.ErrSessionNotFound for unknown or expired tokens.
	Get(ctx context.Context, token string) (*domain.Session, error)
	// Delete is idempotent; deleting an absent token is not an error.
	Delete(ctx context.Context, token string) error
}

// Mailer sends the transactional emails for the identity workflows.
// Calls are synchronous; a returned error is surfaced to the caller as a
// delivery failure.
type Mailer interface {
	SendSignupOTP(ctx context.Context, email, firstName, otp string) error
	SendOTPConfirmed(ctx context.Context, email, firstName string) error
	SendWelcome(ctx context.Context, user *domain.User) error
	SendResetOTP(ctx context.Context, email, firstName, otp string) error
	SendResetSuccess(ctx context.Context, email, firstName string) error
}
