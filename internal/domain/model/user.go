//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	domainauth "github.com/jobfinder/jobfinder-api/internal/domain/auth"
)

const (
	maxFullNameLen = 50
	maxEmailLen    = 100
	minPasswordLen = 8
)

// User represents an account row. Password holds the bcrypt hash and is
// never serialized; handlers return the sanitized projection instead.
type User struct {
	ID        string          `json:"id"        db:"id"`
	FullName  string          `json:"fullName"  db:"full_name"`
	Email     string          `json:"email"     db:"email"`
	Password  string          `json:"-"         db:"password"`
	Role      domainauth.Role `json:"role"      db:"role"`
	IsActive  bool            `json:"isActive"  db:"is_active"`
	CreatedAt time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time       `json:"updatedAt" db:"updated_at"`
}

// Sanitized returns a copy of the user with the password hash stripped.
// The zero Password value combined with the json:"-" tag keeps the hash out
// of every response body.
func (u User) Sanitized() User {
	u.Password = ""
	return u
}

// SignupRequest carries the fields accepted by POST /auth/signup. Role is
// optional and limited to the self-service roles; staff accounts are
// provisioned out of band.
type SignupRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// NormalizedRole returns the requested role, defaulting to USER.
func (r *SignupRequest) NormalizedRole() domainauth.Role {
	role, ok := domainauth.ParseRole(r.Role)
	if !ok {
		return domainauth.RoleUser
	}
	return role
}

// Validate validates SignupRequest.
func (r *SignupRequest) Validate() error {
	r.FullName = strings.TrimSpace(r.FullName)
	r.Email = strings.TrimSpace(r.Email)
	if r.FullName == "" || r.Email == "" || r.Password == "" {
		return errors.New("fullName, email and password are required")
	}
	if r.Role != "" {
		role, ok := domainauth.ParseRole(r.Role)
		if !ok || (role != domainauth.RoleUser && role != domainauth.RoleOwner) {
			return errors.New("role must be USER or OWNER")
		}
	}
	if utf8.RuneCountInString(r.FullName) > maxFullNameLen {
		return errors.New("fullName cannot exceed 50 characters")
	}
	if utf8.RuneCountInString(r.Email) > maxEmailLen {
		return errors.New("email cannot exceed 100 characters")
	}
	if _, err := mail.ParseAddress(r.Email); err != nil {
		return errors.New("email is not a valid address")
	}
	if utf8.RuneCountInString(r.Password) < minPasswordLen {
		return errors.New("password must be at least 8 characters")
	}
	return nil
}

// SigninRequest carries the fields accepted by POST /auth/signin.
// Sign-in is keyed by fullName; the subject claim embedded in tokens is
// always the immutable user id.
type SigninRequest struct {
	FullName string `json:"fullName"`
	Password string `json:"password"`
}

// Validate validates SigninRequest.
func (r *SigninRequest) Validate() error {
	r.FullName = strings.TrimSpace(r.FullName)
	if r.FullName == "" || r.Password == "" {
		return errors.New("fullName & password required")
	}
	return nil
}
