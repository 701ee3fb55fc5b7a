package models

import (
	"strings"
	"time"
)

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleFaculty Role = "faculty"
)

type User struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
	Username           string    `gorm:"uniqueIndex;not null;size:100" json:"username"`
	Email              string    `gorm:"uniqueIndex;not null;size:200" json:"email"`
	PasswordHash       string    `gorm:"not null" json:"-"`
	Role               Role      `gorm:"not null;size:20" json:"role"`
	MustChangePassword bool      `gorm:"default:false" json:"must_change_password"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) IsFaculty() bool {
	return u.Role == RoleFaculty
}

// OwnsFaculty reports whether f is the faculty record linked to u.
// Accounts and faculty records are linked by email.
func (u *User) OwnsFaculty(f *Faculty) bool {
	return f != nil && u.IsFaculty() && strings.EqualFold(u.Email, f.Email)
}

func (u *User) CanViewFaculty(f *Faculty) bool {
	return u.IsAdmin() || u.OwnsFaculty(f)
}

// CanManageWorkloadFor reports whether u may create, edit or delete
// entries belonging to f. Only the owner can.
func (u *User) CanManageWorkloadFor(f *Faculty) bool {
	return u.OwnsFaculty(f)
}
