package user

import "time"

type Role string

const (
	RoleAdmin   Role = "admin"   // Shop owner or office admin - full access
	RoleManager Role = "manager" // Floor manager - reviews attendance and approves leave
)

func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleManager
}

type User struct {
	ID           string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin checks if user is an admin
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
