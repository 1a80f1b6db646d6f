// Package accounts implements the credential store: a durable mapping of
// phone number to account record, persisted as a single JSON array blob.
package accounts

import (
	"strings"
	"time"
)

// Account roles. RoleAdmin unlocks the global activity view.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Account is a registered user's credentials and profile fields. The phone
// number acts as the primary key. The password is stored verbatim: the
// product compares cleartext and has no recovery flow, so hashing here would
// change the stored format. Flagged for product review, not fixed.
type Account struct {
	Phone       string    `json:"phone"`
	Name        string    `json:"name"`
	DateOfBirth string    `json:"date_of_birth"`
	Password    string    `json:"password,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	Role        string    `json:"role,omitempty"`
}

// Sanitized returns a copy of the account with the password field stripped.
// Everything outside this package (session state, auth-flow results) only
// ever sees sanitized accounts.
func (a Account) Sanitized() Account {
	a.Password = ""
	return a
}

// IsAdmin reports whether the account may view the global activity log.
func (a Account) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// Valid reports whether all required profile fields are non-empty after
// trimming.
func (a Account) Valid() bool {
	return strings.TrimSpace(a.Phone) != "" &&
		strings.TrimSpace(a.Name) != "" &&
		strings.TrimSpace(a.DateOfBirth) != "" &&
		a.Password != ""
}
