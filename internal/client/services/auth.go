// Package services contains application services for the EduCloud client.
// This file defines the authentication service: login, register, logout,
// health probing, and read access to the local session.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/educloud/internal/client/client"
	"github.com/dmitrijs2005/educloud/internal/client/envelope"
	"github.com/dmitrijs2005/educloud/internal/client/models"
	"github.com/dmitrijs2005/educloud/internal/common"
	"github.com/dmitrijs2005/educloud/internal/logging"
	"github.com/golang-jwt/jwt/v5"
)

// User-facing messages for failures that carry no server text.
const (
	MsgConnectionError = "Error connecting to the server"
	MsgEncryptionError = "Could not encrypt the password"
	MsgValidationError = "Invalid registration data"
	MsgStorageError    = "Could not save the session locally"
)

var ErrNoSession = errors.New("no active session")

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Login/Register: protect the password, call the backend once, and
//     persist the session only on {success:true}.
//   - Logout: notify the backend, then clear local session state whatever
//     the outcome.
//   - Health: probe the backend; never fails.
//
// Auth operations report failures inside models.AuthResult instead of
// returning an error.
type AuthService interface {
	Login(ctx context.Context, email, password string) models.AuthResult
	Register(ctx context.Context, fields models.RegisterFields, password string) models.AuthResult
	Logout(ctx context.Context) models.AuthResult
	Health(ctx context.Context) models.HealthStatus
	CurrentUser(ctx context.Context) (*models.Profile, error)
	IsAuthenticated(ctx context.Context) bool
	TokenClaims(ctx context.Context) (*models.TokenClaims, error)
	Close(ctx context.Context) error
}

type authService struct {
	client client.Client
	env    *envelope.Envelope
	log    logging.Logger
	now    func() time.Time
}

// NewAuthService binds the backend client to the credential envelope.
func NewAuthService(c client.Client, env *envelope.Envelope, log logging.Logger) AuthService {
	if log == nil {
		log = logging.Discard()
	}
	return &authService{client: c, env: env, log: log, now: time.Now}
}

func (a *authService) Login(ctx context.Context, email, password string) models.AuthResult {
	req, err := a.env.PrepareLogin(email, password)
	if err != nil {
		return a.envelopeFailure(ctx, "login", err)
	}

	resp, err := a.client.Login(ctx, req)
	return a.complete(ctx, "login", resp, err)
}

func (a *authService) Register(ctx context.Context, fields models.RegisterFields, password string) models.AuthResult {
	req, err := a.env.PrepareRegister(fields, password)
	if err != nil {
		return a.envelopeFailure(ctx, "register", err)
	}

	resp, err := a.client.Register(ctx, req)
	return a.complete(ctx, "register", resp, err)
}

func (a *authService) envelopeFailure(ctx context.Context, op string, err error) models.AuthResult {
	a.log.Warn(ctx, op+" payload rejected before sending", "error", err)
	if errors.Is(err, common.ErrValidation) {
		return models.Failed(MsgValidationError, err)
	}
	return models.Failed(MsgEncryptionError, err)
}

// complete turns a backend reply into a result, persisting the session on
// success.
func (a *authService) complete(ctx context.Context, op string, resp *models.AuthResponse, err error) models.AuthResult {
	if err != nil {
		a.log.Error(ctx, op+" request failed", "error", err)
		return models.Failed(MsgConnectionError, err)
	}

	if !resp.Success {
		a.log.Info(ctx, op+" rejected by server", "message", resp.Message)
		return models.Failed(resp.Message, fmt.Errorf("%w: %s", common.ErrAuthRejected, resp.Message))
	}

	res := models.AuthResult{Success: true, Message: resp.Message, Token: resp.Token, User: resp.User}
	if resp.Token == "" {
		a.log.Warn(ctx, op+" succeeded without a token, session not stored")
		return res
	}

	session := models.Session{Token: resp.Token}
	if resp.User != nil {
		session.User = *resp.User
	}
	if err := a.env.PersistSession(ctx, session); err != nil {
		return models.Failed(MsgStorageError, err)
	}

	a.log.Info(ctx, op+" succeeded", "user_id", session.User.ID)
	return res
}

// Logout always clears the local session, even when the backend cannot be
// reached or ctx is already cancelled.
func (a *authService) Logout(ctx context.Context) models.AuthResult {
	token, err := a.env.Token(ctx)
	if err != nil {
		a.log.Warn(ctx, "reading session token failed", "error", err)
		token = ""
	}

	resp, netErr := a.client.Logout(ctx, token)

	clearErr := a.env.ClearSession(context.WithoutCancel(ctx))
	if clearErr != nil {
		a.log.Error(ctx, "clearing session failed", "error", clearErr)
	}

	switch {
	case netErr != nil:
		a.log.Warn(ctx, "logout request failed, local session cleared", "error", netErr)
		return models.Failed(MsgConnectionError, netErr)
	case clearErr != nil:
		return models.Failed(MsgStorageError, clearErr)
	case !resp.Success:
		return models.Failed(resp.Message, fmt.Errorf("%w: %s", common.ErrAuthRejected, resp.Message))
	}

	a.log.Info(ctx, "logged out")
	return models.AuthResult{Success: true, Message: resp.Message}
}

// Health reports UP when GET /api/health answers 2xx with an empty or JSON
// body in time.
func (a *authService) Health(ctx context.Context) models.HealthStatus {
	start := a.now()
	details, err := a.client.Health(ctx)
	elapsed := a.now().Sub(start)

	st := models.HealthStatus{Timestamp: a.now().UTC(), ResponseTime: elapsed}
	if err != nil {
		a.log.Debug(ctx, "health check failed", "error", err)
		st.Status = models.HealthDown
		return st
	}
	st.Status = models.HealthUp
	st.Details = details
	return st
}

func (a *authService) CurrentUser(ctx context.Context) (*models.Profile, error) {
	return a.env.CurrentUser(ctx)
}

func (a *authService) IsAuthenticated(ctx context.Context) bool {
	return a.env.IsAuthenticated(ctx)
}

type sessionClaims struct {
	Email    string `json:"email,omitempty"`
	UserType string `json:"userType,omitempty"`
	jwt.RegisteredClaims
}

// TokenClaims decodes the session token without verifying its signature.
// The result is informational only.
func (a *authService) TokenClaims(ctx context.Context) (*models.TokenClaims, error) {
	token, err := a.env.Token(ctx)
	if err != nil {
		return nil, err
	}
	if token == "" {
		return nil, ErrNoSession
	}

	var claims sessionClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	out := &models.TokenClaims{
		Subject:  claims.Subject,
		Email:    claims.Email,
		UserType: models.UserType(claims.UserType),
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}

// Close releases resources held by the underlying client.
func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}
