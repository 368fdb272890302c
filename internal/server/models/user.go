package models

import (
	"strings"
	"time"
)

// Account types accepted by the development server.
const (
	UserTypeStudent = "STUDENT"
	UserTypeTeacher = "TEACHER"
)

// User is a registered account. PasswordHash is a bcrypt hash and never
// leaves the server.
type User struct {
	ID           int64
	Nombre       string
	Apellido1    string
	Apellido2    string
	Email        string
	UserType     string
	PasswordHash []byte
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NormalizeEmail is the key users are looked up by.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Profile is the public view of a User returned on login and register.
type Profile struct {
	ID        int64  `json:"id"`
	Nombre    string `json:"nombre"`
	Apellido1 string `json:"apellido1"`
	Apellido2 string `json:"apellido2"`
	Email     string `json:"email"`
	UserType  string `json:"userType"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func (u *User) Profile() *Profile {
	return &Profile{
		ID:        u.ID,
		Nombre:    u.Nombre,
		Apellido1: u.Apellido1,
		Apellido2: u.Apellido2,
		Email:     u.Email,
		UserType:  u.UserType,
		CreatedAt: u.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: u.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
