package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sthaniya/sthaniya-api/internal/core/domain"
)

// CodeStore implements ports.CodeStore on Redis, for deployments running more
// than one API instance. Entries are JSON values under verify:<email> with the
// key TTL mirroring the entry expiry.
type CodeStore struct {
	client *redis.Client
}

// NewCodeStore creates a CodeStore wrapping the given Redis client.
func NewCodeStore(client *redis.Client) *CodeStore {
	return &CodeStore{client: client}
}

func (s *CodeStore) Get(ctx context.Context, email string) (*domain.VerificationEntry, error) {
	raw, err := s.client.Get(ctx, s.key(email)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrCodeNotFound
		}
		return nil, fmt.Errorf("code store get: %w", err)
	}

	var entry domain.VerificationEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil, fmt.Errorf("code store decode: %w", err)
	}
	return &entry, nil
}

func (s *CodeStore) Set(ctx context.Context, email string, entry *domain.VerificationEntry, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = time.Second
	}
	raw, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("code store encode: %w", err)
	}
	if err := s.client.Set(ctx, s.key(email), raw, ttl).Err(); err != nil {
		return fmt.Errorf("code store set: %w", err)
	}
	return nil
}

func (s *CodeStore) Delete(ctx context.Context, email string) error {
	if err := s.client.Del(ctx, s.key(email)).Err(); err != nil {
		return fmt.Errorf("code store delete: %w", err)
	}
	return nil
}

func (s *CodeStore) key(email string) string {
	return "verify:" + email
}
