package accounts

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Account is the directory's mirror of a client account record. Passwords
// arrive and are stored verbatim to match the client's credential store;
// changing that here would break login against mirrored accounts.
type Account struct {
	ID          string
	Phone       string
	Name        string
	DateOfBirth string
	Password    string
	Role        string
	CreatedAt   time.Time
}
