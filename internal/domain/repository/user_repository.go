package repository

import (
	"context"
	"errors"

	"go-consult-api/internal/domain/entity"
)

var (
	// ErrNotFound is returned by Find methods when no document matches.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned by Create when a unique index rejects the write.
	ErrDuplicate = errors.New("duplicate record")
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByID(ctx context.Context, id string) (*entity.User, error)
}
