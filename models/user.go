package models

import "time"

// Built-in roles assigned to user accounts.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is a stored account. Its role decides which endpoints it may call.
type User struct {
	// UserID is the internal unique identifier, used as the JWT subject.
	UserID int64 `json:"userId"`

	// Login is the unique login name.
	Login string `json:"login"`

	// PasswordHash is the bcrypt hash of the password. Never serialized.
	PasswordHash string `json:"-"`

	// Role is matched against endpoint allow-lists.
	Role string `json:"role"`

	// Disabled accounts keep valid tokens but are denied by the authenticator.
	Disabled bool `json:"disabled"`

	// CreatedAt is set by the database on insert.
	CreatedAt time.Time `json:"createdAt"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// Identity returns the dispatcher-facing identity of the account.
func (u User) Identity() Identity {
	return Identity{
		UserID: u.UserID,
		Login:  u.Login,
		Role:   u.Role,
	}
}
