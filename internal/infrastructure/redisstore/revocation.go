package redisstore

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/rentify/internal/domain/repository"
)

func revokedKey(tokenID string) string { return "session:revoked:" + tokenID }

// RevocationList stores revoked token ids in Redis until the token would expire anyway.
type RevocationList struct {
	rdb *redis.Client
}

func NewRevocationList(rdb *redis.Client) *RevocationList {
	return &RevocationList{rdb: rdb}
}

func (r *RevocationList) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		return nil
	}
	return r.rdb.Set(ctx, revokedKey(tokenID), "1", ttl).Err()
}

func (r *RevocationList) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	err := r.rdb.Get(ctx, revokedKey(tokenID)).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// LocalRevocationList keeps revoked ids in memory; entries are pruned on write.
type LocalRevocationList struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	now     func() time.Time
}

func NewLocalRevocationList() *LocalRevocationList {
	return &LocalRevocationList{revoked: make(map[string]time.Time), now: time.Now}
}

func (r *LocalRevocationList) Revoke(_ context.Context, tokenID string, until time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	for id, exp := range r.revoked {
		if !exp.After(now) {
			delete(r.revoked, id)
		}
	}
	if until.After(now) {
		r.revoked[tokenID] = until
	}
	return nil
}

func (r *LocalRevocationList) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	exp, ok := r.revoked[tokenID]
	return ok && exp.After(r.now()), nil
}

var (
	_ repository.RevocationList = (*RevocationList)(nil)
	_ repository.RevocationList = (*LocalRevocationList)(nil)
)
