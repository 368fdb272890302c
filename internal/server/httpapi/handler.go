// Package httpapi exposes the development server over HTTP/JSON with Echo.
package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/educloud/internal/common"
	"github.com/dmitrijs2005/educloud/internal/logging"
	"github.com/dmitrijs2005/educloud/internal/server/models"
	"github.com/dmitrijs2005/educloud/internal/server/users"
	"github.com/labstack/echo/v4"
)

// Decryptor opens the base64 RSA password envelope.
type Decryptor interface {
	Decrypt(ciphertext string) (string, error)
}

// NonceChecker enforces the replay window.
type NonceChecker interface {
	Check(scope, header, body string) error
}

type Handler struct {
	users     *users.Service
	decryptor Decryptor
	nonces    NonceChecker
	logger    logging.Logger
	version   string
	started   time.Time
	now       func() time.Time
}

func NewHandler(us *users.Service, d Decryptor, n NonceChecker, l logging.Logger, version string) *Handler {
	return &Handler{
		users:     us,
		decryptor: d,
		nonces:    n,
		logger:    l.With("module", "httpapi"),
		version:   version,
		started:   time.Now(),
		now:       time.Now,
	}
}

func (h *Handler) login(c echo.Context) error {
	ctx := c.Request().Context()

	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return errBadBody
	}
	if err := h.nonces.Check(models.NormalizeEmail(req.Email), c.Request().Header.Get(common.NonceHeaderName), req.Nonce); err != nil {
		return err
	}

	password, err := h.decryptor.Decrypt(req.Password)
	if err != nil {
		return err
	}

	user, token, err := h.users.Login(ctx, req.Email, password)
	if err != nil {
		return err
	}

	h.logger.Info(ctx, "Logged in", "user_id", user.ID)
	return c.JSON(http.StatusOK, models.AuthResponse{
		Success: true,
		Message: "Login successful",
		Token:   token,
		User:    user.Profile(),
	})
}

func (h *Handler) register(c echo.Context) error {
	ctx := c.Request().Context()

	var req models.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return errBadBody
	}
	if err := h.nonces.Check(models.NormalizeEmail(req.Email), c.Request().Header.Get(common.NonceHeaderName), req.Nonce); err != nil {
		return err
	}

	password, err := h.decryptor.Decrypt(req.Password)
	if err != nil {
		return err
	}

	user, token, err := h.users.Register(ctx, models.NewUser{
		Nombre:    req.Nombre,
		Apellido1: req.Apellido1,
		Apellido2: req.Apellido2,
		Email:     req.Email,
		UserType:  req.UserType,
		Password:  password,
	})
	if err != nil {
		return err
	}

	h.logger.Info(ctx, "Registered", "user_id", user.ID, "user_type", user.UserType)
	return c.JSON(http.StatusCreated, models.AuthResponse{
		Success: true,
		Message: "User registered successfully",
		Token:   token,
		User:    user.Profile(),
	})
}

func (h *Handler) logout(c echo.Context) error {
	token := bearerToken(c.Request().Header.Get(common.AuthorizationHeaderName))
	if token == "" {
		return errMissingToken
	}
	if err := h.users.Logout(c.Request().Context(), token); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, models.AuthResponse{Success: true, Message: "Logout successful"})
}

func (h *Handler) health(c echo.Context) error {
	return c.JSON(http.StatusOK, models.HealthResponse{
		Status:  "UP",
		Details: h.healthDetails(c.Request().Context()),
	})
}

func (h *Handler) healthDetails(ctx context.Context) models.HealthDetails {
	db := "in-memory"
	if n, err := h.users.UserCount(ctx); err == nil {
		db = fmt.Sprintf("in-memory (%d users)", n)
	}
	return models.HealthDetails{
		Database:  db,
		DiskSpace: "n/a",
		Uptime:    h.now().Sub(h.started).Truncate(time.Second).String(),
		Version:   h.version,
	}
}

func bearerToken(header string) string {
	if !strings.HasPrefix(header, common.BearerPrefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, common.BearerPrefix))
}
