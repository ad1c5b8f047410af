package domain

import (
	"strings"
	"time"
)

// User models a registered account.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	PasswordHash string    `json:"-"`
	IsActive     bool      `json:"is_active"`
	DateJoined   time.Time `json:"date_joined"`
}

// FullName joins first and last name, trimming the result when either is empty.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Initials returns the first letter of each name part, e.g. "AB".
func (u *User) Initials() string {
	var b strings.Builder
	if u.FirstName != "" {
		b.WriteString(u.FirstName[:1])
	}
	if u.LastName != "" {
		b.WriteString(u.LastName[:1])
	}
	return b.String()
}

// Session is the server-side record referenced by the opaque token held in
// the client's cookie. Presence of UserID marks a request as authenticated.
type Session struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}
