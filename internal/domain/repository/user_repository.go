package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/rentify/internal/domain/entity"
)

// ErrNotFound is returned by stores when no document matches.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned by stores when a unique constraint is violated.
var ErrDuplicate = errors.New("duplicate key")

// UserRepository defines the credential store operations.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	SetWishList(ctx context.Context, id string, wishList []string) error
}
