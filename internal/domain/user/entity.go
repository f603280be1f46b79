package user

import (
	"time"
)

type User struct {
	ID           string
	CompanyID    string
	Email        string
	FullName     string
	PasswordHash string
	// PINHash is the bcrypt hash of the 6-digit re-auth PIN, nil until the
	// user enrolls one.
	PINHash   *string
	Role      Role
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleHR       Role = "hr"
	RoleEmployee Role = "employee"
)

// CanManageAttendance reports whether the role may mark attendance and edit
// employee records.
func (r Role) CanManageAttendance() bool {
	return r == RoleAdmin || r == RoleHR
}
