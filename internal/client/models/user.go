package models

import "time"

// UserType is the role of an EduCloud account.
type UserType string

const (
	UserTypeStudent UserType = "STUDENT"
	UserTypeTeacher UserType = "TEACHER"
)

// Profile is the server-owned user record returned with a session token.
// The client treats it as a read-only cache.
type Profile struct {
	ID        int64    `json:"id"`
	Nombre    string   `json:"nombre"`
	Apellido1 string   `json:"apellido1"`
	Apellido2 string   `json:"apellido2"`
	Email     string   `json:"email"`
	UserType  UserType `json:"userType"`
	StudentID string   `json:"studentId,omitempty"`
	TeacherID string   `json:"teacherId,omitempty"`
	Subject   string   `json:"subject,omitempty"`
	CreatedAt string   `json:"createdAt,omitempty"`
	UpdatedAt string   `json:"updatedAt,omitempty"`
}

// FullName joins the given name and both surnames, skipping empty parts.
func (p Profile) FullName() string {
	name := p.Nombre
	for _, s := range []string{p.Apellido1, p.Apellido2} {
		if s == "" {
			continue
		}
		if name != "" {
			name += " "
		}
		name += s
	}
	return name
}

// Session is the token and profile pair retained after a successful login
// or registration.
type Session struct {
	Token string
	User  Profile
}

// TokenClaims is what the client can read from a session token without
// verifying it.
type TokenClaims struct {
	Subject   string
	Email     string
	UserType  UserType
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Expired reports whether the token carries an expiry that is before now.
func (c TokenClaims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt)
}
