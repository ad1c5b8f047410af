package ports

import (
	"context"

	"github.com/tasko-app/tasko-api/internal/core/domain"
)

// StartSignupInput begins the signup-by-OTP flow. Profile fields are
// optional at this stage and collected again at completion.
type StartSignupInput struct {
	Email     string
	FirstName string
	LastName  string
}

// CompleteSignupInput finalises a pending registration into a durable user.
type CompleteSignupInput struct {
	Email           string
	FirstName       string
	LastName        string
	Password        string
	ConfirmPassword string
}

// SignupInput creates a user directly, without OTP verification.
type SignupInput struct {
	Email           string
	FirstName       string
	LastName        string
	Password        string
	ConfirmPassword string
}

// AuthResult is returned by operations that establish a session.
type AuthResult struct {
	Token string
	User  *domain.User
}

// AccountService is the identity workflow engine: signup-by-OTP, direct
// signup, login/logout, session authentication, and password-reset-by-OTP.
type AccountService interface {
	// StartSignup supersedes any pending registration for the email,
	// stores a fresh OTP, and emails it. The pending record is rolled
	// back when delivery fails.
	StartSignup(ctx context.Context, in StartSignupInput) error
	// VerifySignupOTP checks the code and its expiry window. Verification
	// is advisory: the pending record is left untouched on success.
	VerifySignupOTP(ctx context.Context, email, otp string) error
	// ResendSignupOTP overwrites the pending record's OTP in place and
	// resets its expiry timer.
	ResendSignupOTP(ctx context.Context, email string) error
	// CompleteSignup creates the durable user, deletes the pending
	// record, sends the welcome email, and establishes a session.
	CompleteSignup(ctx context.Context, in CompleteSignupInput) (*AuthResult, error)

	// Signup creates a user directly and establishes a session.
	Signup(ctx context.Context, in SignupInput) (*AuthResult, error)

	Login(ctx context.Context, email, password string) (*AuthResult, error)
	// Logout clears the session; clearing an absent token is not an error.
	Logout(ctx context.Context, token string) error
	// Authenticate resolves a session token to its user. Stale sessions
	// referencing a deleted user are cleared and treated as unauthenticated
	// (domain.ErrSessionNotFound).
	Authenticate(ctx context.Context, token string) (*domain.User, error)

	StartPasswordReset(ctx context.Context, email string) error
	VerifyResetOTP(ctx context.Context, email, otp string) error
	ResendResetOTP(ctx context.Context, email string) error
	// ResetPassword sets the new password and marks every unused reset
	// record for the email as used.
	ResetPassword(ctx context.Context, email, password, confirmPassword string) error
}
