package repository

import (
	"context"
	"time"
)

// TokenStore records issued access tokens so they can be revoked before
// their natural expiry. A token absent from the store is treated as revoked.
type TokenStore interface {
	Save(ctx context.Context, userID, tokenID string, ttl time.Duration) error
	Exists(ctx context.Context, userID, tokenID string) (bool, error)
	Delete(ctx context.Context, userID, tokenID string) error
}
