package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/educloud/internal/common"
	"github.com/dmitrijs2005/educloud/internal/server/auth"
	"github.com/dmitrijs2005/educloud/internal/server/config"
	"github.com/dmitrijs2005/educloud/internal/server/models"
	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
)

// Service owns account and session lifecycle: register, login, logout and
// token authentication.
type Service struct {
	repo                  Repository
	revoked               *auth.RevocationList
	validate              *validator.Validate
	jwtSecret             []byte
	tokenValidityDuration time.Duration
	bcryptCost            int
	dummyHash             []byte
	now                   func() time.Time
}

// Option tweaks a Service at construction.
type Option func(*Service)

// WithBcryptCost overrides bcrypt.DefaultCost.
func WithBcryptCost(cost int) Option {
	return func(s *Service) { s.bcryptCost = cost }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(repo Repository, cfg *config.Config, opts ...Option) *Service {
	s := &Service{
		repo:                  repo,
		revoked:               auth.NewRevocationList(cfg.SecretKey),
		validate:              validator.New(validator.WithRequiredStructEnabled()),
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
		bcryptCost:            bcrypt.DefaultCost,
		now:                   time.Now,
	}
	for _, o := range opts {
		o(s)
	}

	// Compared against when the email is unknown so both failure paths cost
	// one bcrypt comparison.
	s.dummyHash, _ = bcrypt.GenerateFromPassword(common.GenerateRandByteArray(16), s.bcryptCost)
	return s
}

// Register validates nu, hashes the password and stores the account. The
// returned token starts a session right away.
func (s *Service) Register(ctx context.Context, nu models.NewUser) (*models.User, string, error) {
	nu.Email = strings.TrimSpace(nu.Email)
	if err := s.validate.Struct(nu); err != nil {
		return nil, "", fmt.Errorf("%w: %v", common.ErrValidation, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(nu.Password), s.bcryptCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, "", fmt.Errorf("%w: password too long", common.ErrValidation)
		}
		return nil, "", fmt.Errorf("error hashing password: %w", err)
	}

	now := s.now()
	user, err := s.repo.Create(ctx, &models.User{
		Nombre:       nu.Nombre,
		Apellido1:    nu.Apellido1,
		Apellido2:    nu.Apellido2,
		Email:        nu.Email,
		UserType:     nu.UserType,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		if errors.Is(err, common.ErrorUserExists) {
			return nil, "", err
		}
		return nil, "", fmt.Errorf("error creating user: %w", err)
	}

	token, err := auth.GenerateToken(user, s.jwtSecret, s.tokenValidityDuration, now)
	if err != nil {
		return nil, "", fmt.Errorf("error generating token: %w", err)
	}
	return user, token, nil
}

// Login checks the password and issues a session token. Unknown email and
// wrong password both yield common.ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
			return nil, "", common.ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("error searching user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return nil, "", common.ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user, s.jwtSecret, s.tokenValidityDuration, s.now())
	if err != nil {
		return nil, "", fmt.Errorf("error generating token: %w", err)
	}
	return user, token, nil
}

// Authenticate resolves a bearer token to its account. Revoked tokens fail
// with common.ErrTokenRevoked; any other token problem wraps
// common.ErrInvalidToken.
func (s *Service) Authenticate(ctx context.Context, token string) (*models.User, *auth.Claims, error) {
	claims, err := auth.ParseToken(token, s.jwtSecret, s.now())
	if err != nil {
		return nil, nil, err
	}
	if s.revoked.IsRevoked(claims) {
		return nil, nil, common.ErrTokenRevoked
	}

	id, err := claims.UserID()
	if err != nil {
		return nil, nil, err
	}
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil, fmt.Errorf("%w: unknown subject", common.ErrInvalidToken)
		}
		return nil, nil, err
	}
	return user, claims, nil
}

// Logout revokes token. Logging out twice with the same token reports
// common.ErrTokenRevoked the second time.
func (s *Service) Logout(ctx context.Context, token string) error {
	_, claims, err := s.Authenticate(ctx, token)
	if err != nil {
		return err
	}
	s.revoked.Revoke(claims, s.now())
	return nil
}

// UserCount reports the number of registered accounts.
func (s *Service) UserCount(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}
