package models

import "time"

type Role string

// Roles ordered by privilege, highest first.
const (
	RoleSuperAdmin Role = "super_admin"
	RoleAdmin      Role = "admin"
	RoleEditor     Role = "editor"
	RoleStudent    Role = "student"
)

var AllRoles = []Role{RoleSuperAdmin, RoleAdmin, RoleEditor, RoleStudent}

func ValidRole(r Role) bool {
	for _, role := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}

type User struct {
	ID                  string
	Name                string
	Email               string
	PasswordHash        []byte
	Role                Role
	IsActive            bool
	PasswordResetToken  *string
	PasswordResetExpiry *time.Time
	PasswordChangedAt   *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// ChangedPasswordAfter reports whether the password was changed after the
// given token issue time. Tokens minted before the last change are stale.
func (u User) ChangedPasswordAfter(issuedAt time.Time) bool {
	if u.PasswordChangedAt == nil {
		return false
	}
	return issuedAt.Before(*u.PasswordChangedAt)
}

type RefreshToken struct {
	Token     string
	UserID    string
	ExpiresAt time.Time
	CreatedAt time.Time
}
