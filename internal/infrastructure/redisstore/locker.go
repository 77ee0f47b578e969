package redisstore

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/rentify/internal/domain/repository"
)

// ErrLockTimeout is returned when the lock could not be taken before ctx expired.
var ErrLockTimeout = errors.New("lock: timed out waiting for lock")

const lockRetryInterval = 25 * time.Millisecond

// Lua script: delete the key only if we still own it
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
  return redis.call("DEL", KEYS[1])
end
return 0
`)

func lockKey(key string) string { return "lock:" + key }

// Locker is a Redis SET NX PX mutex. The TTL bounds how long a crashed
// holder can block others.
type Locker struct {
	rdb *redis.Client
}

func NewLocker(rdb *redis.Client) *Locker {
	return &Locker{rdb: rdb}
}

func (l *Locker) Acquire(ctx context.Context, key string, ttl time.Duration) (func(), error) {
	k := lockKey(key)
	token := uuid.NewString()
	ticker := time.NewTicker(lockRetryInterval)
	defer ticker.Stop()
	for {
		ok, err := l.rdb.SetNX(ctx, k, token, ttl).Result()
		if err != nil && ctx.Err() == nil {
			return nil, err
		}
		if ok {
			return func() {
				// release with a fresh context so a cancelled request still unlocks
				c, cancel := context.WithTimeout(context.Background(), time.Second)
				defer cancel()
				_ = releaseScript.Run(c, l.rdb, []string{k}, token).Err()
			}, nil
		}
		select {
		case <-ctx.Done():
			return nil, ErrLockTimeout
		case <-ticker.C:
		}
	}
}

// LocalLocker serialises on per-key channels inside one process.
// It is used when Redis is not configured.
type LocalLocker struct {
	mu    sync.Mutex
	locks map[string]chan struct{}
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{locks: make(map[string]chan struct{})}
}

func (l *LocalLocker) slot(key string) chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()
	ch, ok := l.locks[key]
	if !ok {
		ch = make(chan struct{}, 1)
		l.locks[key] = ch
	}
	return ch
}

func (l *LocalLocker) Acquire(ctx context.Context, key string, _ time.Duration) (func(), error) {
	ch := l.slot(key)
	select {
	case ch <- struct{}{}:
		var once sync.Once
		return func() { once.Do(func() { <-ch }) }, nil
	case <-ctx.Done():
		return nil, ErrLockTimeout
	}
}

var (
	_ repository.Locker = (*Locker)(nil)
	_ repository.Locker = (*LocalLocker)(nil)
)
