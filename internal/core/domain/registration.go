package domain

import "time"

// OTPTTL is the window within which a one-time passcode remains valid.
// Expiry is evaluated lazily at verify time; there is no background sweep.
const OTPTTL = 10 * time.Minute

// PendingRegistration is a transient signup attempt awaiting OTP
// confirmation. At most one live record exists per email; a new Start
// supersedes any previous one.
type PendingRegistration struct {
	Email     string    `bson:"email"`
	FirstName string    `bson:"first_name"`
	LastName  string    `bson:"last_name"`
	OTP       string    `bson:"otp"`
	CreatedAt time.Time `bson:"created_at"`
}

// Expired reports whether the registration's OTP window has closed at now.
func (p *PendingRegistration) Expired(now time.Time) bool {
	return now.Sub(p.CreatedAt) > OTPTTL
}

// PasswordReset is a transient reset request. Historical records per email
// may accumulate, but only unused ones are treated as live.
type PasswordReset struct {
	Email     string    `bson:"email"`
	OTP       string    `bson:"otp"`
	Used      bool      `bson:"used"`
	CreatedAt time.Time `bson:"created_at"`
}

// Expired reports whether the reset's OTP window has closed at now.
func (r *PasswordReset) Expired(now time.Time) bool {
	return now.Sub(r.CreatedAt) > OTPTTL
}
