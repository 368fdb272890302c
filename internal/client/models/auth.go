package models

// RegisterFields are the profile fields a new user supplies. They are sent
// unchanged; only the password is encrypted.
type RegisterFields struct {
	Nombre    string   `json:"nombre" validate:"required,max=100"`
	Apellido1 string   `json:"apellido1" validate:"required,max=100"`
	Apellido2 string   `json:"apellido2" validate:"max=100"`
	Email     string   `json:"email" validate:"required,email"`
	UserType  UserType `json:"userType" validate:"required,oneof=STUDENT TEACHER"`
}

// LoginRequest is the body of POST /auth/login. Password holds the
// base64 RSA ciphertext.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Nonce    string `json:"nonce"`
}

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Nombre    string   `json:"nombre"`
	Apellido1 string   `json:"apellido1"`
	Apellido2 string   `json:"apellido2"`
	Email     string   `json:"email"`
	Password  string   `json:"password"`
	UserType  UserType `json:"userType"`
	Nonce     string   `json:"nonce"`
}

// AuthResponse is the server reply to login, register and logout.
type AuthResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Token   string   `json:"token,omitempty"`
	User    *Profile `json:"user,omitempty"`
}

// AuthResult is what auth operations hand back to the UI. Err carries the
// classified cause (see package common) when Success is false.
type AuthResult struct {
	Success bool
	Message string
	Token   string
	User    *Profile
	Err     error
}

// Failed builds an unsuccessful result.
func Failed(message string, err error) AuthResult {
	return AuthResult{Success: false, Message: message, Err: err}
}
