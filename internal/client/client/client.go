package client

import (
	"context"

	"github.com/dmitrijs2005/educloud/internal/client/models"
)

// Client is the transport contract with the EduCloud backend.
type Client interface {
	Close() error
	Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error)
	Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error)
	Logout(ctx context.Context, token string) (*models.AuthResponse, error)
	Health(ctx context.Context) (*models.HealthDetails, error)
}

// API is the authenticated generic JSON client.
type API interface {
	Get(ctx context.Context, path string, out any) error
	Post(ctx context.Context, path string, body, out any) error
	Put(ctx context.Context, path string, body, out any) error
	Delete(ctx context.Context, path string, out any) error
}

// TokenSource returns the current bearer token, "" when there is none.
type TokenSource func(ctx context.Context) (string, error)
