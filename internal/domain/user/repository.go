package user

import (
	"context"
)

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	LinkGoogleAccount(ctx context.Context, userID string, googleID string) error
	CountByRole(ctx context.Context, role Role) (int64, error)
}
