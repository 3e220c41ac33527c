package domain

import "time"

// Role distinguishes the administrative operator from regular accounts.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User is an account that can authenticate against the admin surface.
// Today the only account is the bootstrap admin created from configuration.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}
