// Package users implements account registration, login and logout for the
// development server.
package users

import (
	"context"

	"github.com/dmitrijs2005/educloud/internal/server/models"
)

// Repository persists accounts. GetByEmail and GetByID return
// common.ErrorNotFound on a miss; Create returns common.ErrorUserExists when
// the email is taken.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	Count(ctx context.Context) (int, error)
}
