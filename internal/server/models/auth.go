// Package models holds the development server's domain records and the JSON
// bodies of its HTTP API.
package models

// LoginRequest is the body of POST /auth/login. Password is the base64 RSA
// ciphertext produced by the client.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Nonce    string `json:"nonce"`
}

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Nombre    string `json:"nombre"`
	Apellido1 string `json:"apellido1"`
	Apellido2 string `json:"apellido2"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	UserType  string `json:"userType"`
	Nonce     string `json:"nonce"`
}

// NewUser is a registration with the password already decrypted.
type NewUser struct {
	Nombre    string `validate:"required,max=100"`
	Apellido1 string `validate:"required,max=100"`
	Apellido2 string `validate:"max=100"`
	Email     string `validate:"required,email"`
	UserType  string `validate:"required,oneof=STUDENT TEACHER"`
	Password  string `validate:"required,max=72"`
}

// AuthResponse is the reply to every /auth endpoint, successful or not.
type AuthResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Token   string   `json:"token,omitempty"`
	User    *Profile `json:"user,omitempty"`
}

// HealthResponse is the reply to GET /api/health.
type HealthResponse struct {
	Status  string        `json:"status"`
	Details HealthDetails `json:"details"`
}

type HealthDetails struct {
	Database  string `json:"database"`
	DiskSpace string `json:"diskSpace"`
	Uptime    string `json:"uptime"`
	Version   string `json:"version"`
}
