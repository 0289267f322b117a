package repository

import (
	"context"
	"fmt"
	"time"

	domainRepo "go-consult-api/internal/domain/repository"

	"github.com/redis/go-redis/v9"
)

type redisTokenStore struct {
	client *redis.Client
}

// NewRedisTokenStore keys revocation records as
// access_token:<userID>:<tokenID> with TTL equal to the token lifetime.
func NewRedisTokenStore(client *redis.Client) domainRepo.TokenStore {
	return &redisTokenStore{client: client}
}

func tokenKey(userID, tokenID string) string {
	return fmt.Sprintf("access_token:%s:%s", userID, tokenID)
}

func (s *redisTokenStore) Save(ctx context.Context, userID, tokenID string, ttl time.Duration) error {
	return s.client.Set(ctx, tokenKey(userID, tokenID), "valid", ttl).Err()
}

func (s *redisTokenStore) Exists(ctx context.Context, userID, tokenID string) (bool, error) {
	n, err := s.client.Exists(ctx, tokenKey(userID, tokenID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *redisTokenStore) Delete(ctx context.Context, userID, tokenID string) error {
	return s.client.Del(ctx, tokenKey(userID, tokenID)).Err()
}
