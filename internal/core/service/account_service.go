package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/tasko-app/tasko-api/internal/core/domain"
	"github.com/tasko-app/tasko-api/internal/core/ports"
)

// defaultSessionTTL matches the original product behaviour: sessions live
// two weeks.
const defaultSessionTTL = 14 * 24 * time.Hour

// AccountService implements the identity workflow engine: signup-by-OTP,
// direct signup, login/logout, session authentication, and
// password-reset-by-OTP.
type AccountService struct {
	users    ports.UserRepository
	pending  ports.PendingRepository
	resets   ports.ResetRepository
	sessions ports.SessionStore
	mailer   ports.Mailer
	otp      OTPGenerator
	ttl      time.Duration
	log      zerolog.Logger

	// emailLocks serialises multi-step store transitions per email. The
	// external contract stays last-writer-wins; this only prevents two
	// in-process requests from interleaving a delete-then-create.
	// Entries are refcounted and removed once the last holder unlocks.
	mu         sync.Mutex
	emailLocks map[string]*emailLock
}

type emailLock struct {
	mu   sync.Mutex
	refs int
}

func NewAccountService(
	users ports.UserRepository,
	pending ports.PendingRepository,
	resets ports.ResetRepository,
	sessions ports.SessionStore,
	mailer ports.Mailer,
	sessionTTL time.Duration,
	log zerolog.Logger,
) *AccountService {
	if sessionTTL <= 0 {
		sessionTTL = defaultSessionTTL
	}
	return &AccountService{
		users:      users,
		pending:    pending,
		resets:     resets,
		sessions:   sessions,
		mailer:     mailer,
		otp:        GenerateOTP,
		ttl:        sessionTTL,
		log:        log,
		emailLocks: make(map[string]*emailLock),
	}
}

func (s *AccountService) lockEmail(email string) func() {
	s.mu.Lock()
	l, ok := s.emailLocks[email]
	if !ok {
		l = &emailLock{}
		s.emailLocks[email] = l
	}
	l.refs++
	s.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		s.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(s.emailLocks, email)
		}
		s.mu.Unlock()
	}
}

// ---------------------------------------------------------------------------
// Signup by OTP
// ---------------------------------------------------------------------------

// StartSignup begins the signup flow: any previous pending registration for
// the email is superseded, a fresh OTP is stored and emailed. When delivery
// fails, the just-created record is rolled back so no pending state exists
// that the user cannot learn the code for.
func (s *AccountService) StartSignup(ctx context.Context, in ports.StartSignupInput) error {
	unlock := s.lockEmail(in.Email)
	defer unlock()

	_, err := s.users.FindByEmail(ctx, in.Email)
	if err == nil {
		return domain.ErrDuplicateEmail
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return fmt.Errorf("start signup: %w", err)
	}

	code := s.otp(otpLength)
	reg := &domain.PendingRegistration{
		Email:     in.Email,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		OTP:       code,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.pending.Replace(ctx, reg); err != nil {
		return fmt.Errorf("start signup: %w", err)
	}

	if err := s.mailer.SendSignupOTP(ctx, in.Email, in.FirstName, code); err != nil {
		s.log.Error().Err(err).Str("email", in.Email).Msg("OTP delivery failed, rolling back pending registration")
		if delErr := s.pending.Delete(ctx, in.Email); delErr != nil {
			s.log.Error().Err(delErr).Str("email", in.Email).Msg("rollback of pending registration failed")
		}
		return fmt.Errorf("%w: %v", domain.ErrDeliveryFailure, err)
	}

	s.log.Info().Str("email", in.Email).Msg("signup OTP sent")
	return nil
}

// VerifySignupOTP checks the code against the live pending registration.
// Expiry is evaluated lazily here; an expired record is deleted. On success
// the record is left untouched so the completion step can still find it.
func (s *AccountService) VerifySignupOTP(ctx context.Context, email, otp string) error {
	reg, err := s.pending.FindByEmailAndOTP(ctx, email, otp)
	if err != nil {
		return err
	}

	if reg.Expired(time.Now().UTC()) {
		if delErr := s.pending.Delete(ctx, email); delErr != nil {
			s.log.Error().Err(delErr).Str("email", email).Msg("failed to delete expired pending registration")
		}
		return domain.ErrCodeExpired
	}

	if err := s.mailer.SendOTPConfirmed(ctx, email, reg.FirstName); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrDeliveryFailure, err)
	}

	s.log.Info().Str("email", email).Msg("signup OTP verified")
	return nil
}

// ResendSignupOTP generates a new code and overwrites the pending record in
// place, resetting its expiry timer.
func (s *AccountService) ResendSignupOTP(ctx context.Context, email string) error {
	unlock := s.lockEmail(email)
	defer unlock()

	reg, err := s.pending.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	code := s.otp(otpLength)
	if err := s.pending.UpdateOTP(ctx, email, code, time.Now().UTC()); err != nil {
		return fmt.Errorf("resend signup otp: %w", err)
	}

	if err := s.mailer.SendSignupOTP(ctx, email, reg.FirstName, code); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrDeliveryFailure, err)
	}

	s.log.Info().Str("email", email).Msg("signup OTP resent")
	return nil
}

// CompleteSignup turns the pending registration into a durable user and
// establishes a session. A prior successful VerifySignupOTP is not required:
// only pending-record existence and email uniqueness are re-checked here.
func (s *AccountService) CompleteSignup(ctx context.Context, in ports.CompleteSignupInput) (*ports.AuthResult, error) {
	if in.Password != in.ConfirmPassword {
		return nil, domain.ErrPasswordMismatch
	}

	unlock := s.lockEmail(in.Email)
	defer unlock()

	if _, err := s.pending.FindByEmail(ctx, in.Email); err != nil {
		return nil, err
	}

	if _, err := s.users.FindByEmail(ctx, in.Email); err == nil {
		// Stale pending record for an email that got registered elsewhere.
		if delErr := s.pending.Delete(ctx, in.Email); delErr != nil {
			s.log.Error().Err(delErr).Str("email", in.Email).Msg("failed to clean up stale pending registration")
		}
		return nil, domain.ErrDuplicateEmail
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("complete signup: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("complete signup: %w", err)
	}

	user, err := s.users.Create(ctx, &domain.User{
		Email:        in.Email,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		PasswordHash: string(hash),
		IsActive:     true,
		DateJoined:   time.Now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("complete signup: %w", err)
	}

	if err := s.mailer.SendWelcome(ctx, user); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDeliveryFailure, err)
	}

	if err := s.pending.Delete(ctx, in.Email); err != nil {
		s.log.Error().Err(err).Str("email", in.Email).Msg("failed to delete completed pending registration")
	}

	result, err := s.establishSession(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("complete signup: %w", err)
	}

	s.log.Info().Str("email", user.Email).Str("user_id", user.ID).Msg("signup completed")
	return result, nil
}

// ---------------------------------------------------------------------------
// Direct signup / login / logout
// ---------------------------------------------------------------------------

// Signup creates a user directly, skipping OTP verification.
func (s *AccountService) Signup(ctx context.Context, in ports.SignupInput) (*ports.AuthResult, error) {
	if in.Password != in.ConfirmPassword {
		return nil, domain.ErrPasswordMismatch
	}

	if _, err := s.users.FindByEmail(ctx, in.Email); err == nil {
		return nil, domain.ErrDuplicateEmail
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("signup: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("signup: %w", err)
	}

	user, err := s.users.Create(ctx, &domain.User{
		Email:        in.Email,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		PasswordHash: string(hash),
		IsActive:     true,
		DateJoined:   time.Now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("signup: %w", err)
	}

	result, err := s.establishSession(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("signup: %w", err)
	}

	s.log.Info().Str("email", user.Email).Str("user_id", user.ID).Msg("user registered")
	return result, nil
}

func (s *AccountService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, domain.ErrAccountDisabled
	}

	result, err := s.establishSession(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	s.log.Info().Str("email", user.Email).Str("user_id", user.ID).Msg("user logged in")
	return result, nil
}

// Logout clears the session. Clearing an unknown token is not an error.
func (s *AccountService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.Delete(ctx, token)
}

// Authenticate resolves a session token to its user. When the session
// references a user that no longer exists, the session is cleared and the
// request treated as unauthenticated.
func (s *AccountService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	sess, err := s.sessions.Get(ctx, token)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, sess.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			if delErr := s.sessions.Delete(ctx, token); delErr != nil {
				s.log.Error().Err(delErr).Msg("failed to clear stale session")
			}
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("authenticate: %w", err)
	}
	return user, nil
}

func (s *AccountService) establishSession(ctx context.Context, user *domain.User) (*ports.AuthResult, error) {
	token, err := s.sessions.Create(ctx, domain.Session{
		UserID:    user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}, s.ttl)
	if err != nil {
		return nil, err
	}
	return &ports.AuthResult{Token: token, User: user}, nil
}

// ---------------------------------------------------------------------------
// Password reset by OTP
// ---------------------------------------------------------------------------

// StartPasswordReset deletes any unused reset records for the email,
// creates a fresh one, and emails the code. The new record is rolled back
// when delivery fails.
func (s *AccountService) StartPasswordReset(ctx context.Context, email string) error {
	unlock := s.lockEmail(email)
	defer unlock()
	return s.issueResetOTP(ctx, email)
}

func (s *AccountService) issueResetOTP(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrUnknownEmail
		}
		return fmt.Errorf("start password reset: %w", err)
	}

	if err := s.resets.DeleteUnused(ctx, email); err != nil {
		return fmt.Errorf("start password reset: %w", err)
	}

	code := s.otp(otpLength)
	if err := s.resets.Create(ctx, &domain.PasswordReset{
		Email:     email,
		OTP:       code,
		CreatedAt: time.Now().UTC(),
	}); err != nil {
		return fmt.Errorf("start password reset: %w", err)
	}

	if err := s.mailer.SendResetOTP(ctx, email, user.FirstName, code); err != nil {
		s.log.Error().Err(err).Str("email", email).Msg("reset OTP delivery failed, rolling back reset record")
		if delErr := s.resets.DeleteUnused(ctx, email); delErr != nil {
			s.log.Error().Err(delErr).Str("email", email).Msg("rollback of reset record failed")
		}
		return fmt.Errorf("%w: %v", domain.ErrDeliveryFailure, err)
	}

	s.log.Info().Str("email", email).Msg("password reset OTP sent")
	return nil
}

// VerifyResetOTP checks the code against the live unused reset record.
// Verification is advisory only: the record is not marked used.
func (s *AccountService) VerifyResetOTP(ctx context.Context, email, otp string) error {
	reset, err := s.resets.FindUnused(ctx, email, otp)
	if err != nil {
		return err
	}

	if reset.Expired(time.Now().UTC()) {
		if delErr := s.resets.DeleteByOTP(ctx, email, otp); delErr != nil {
			s.log.Error().Err(delErr).Str("email", email).Msg("failed to delete expired reset record")
		}
		return domain.ErrCodeExpired
	}

	return nil
}

// ResendResetOTP behaves like StartPasswordReset: old unused records are
// dropped and a fresh code is created and delivered.
func (s *AccountService) ResendResetOTP(ctx context.Context, email string) error {
	unlock := s.lockEmail(email)
	defer unlock()
	return s.issueResetOTP(ctx, email)
}

// ResetPassword sets the new password and retires every unused reset record
// for the email in one bulk transition, not just the one that was verified.
func (s *AccountService) ResetPassword(ctx context.Context, email, password, confirmPassword string) error {
	if password != confirmPassword {
		return domain.ErrPasswordMismatch
	}

	unlock := s.lockEmail(email)
	defer unlock()

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrUnknownEmail
		}
		return fmt.Errorf("reset password: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("reset password: %w", err)
	}

	if err := s.users.UpdatePassword(ctx, email, string(hash)); err != nil {
		return fmt.Errorf("reset password: %w", err)
	}

	used, err := s.resets.MarkAllUsed(ctx, email)
	if err != nil {
		s.log.Error().Err(err).Str("email", email).Msg("failed to mark reset records used")
	}

	if err := s.mailer.SendResetSuccess(ctx, email, user.FirstName); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrDeliveryFailure, err)
	}

	s.log.Info().Str("email", email).Int64("records_used", used).Msg("password reset completed")
	return nil
}
