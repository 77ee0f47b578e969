package redisstore

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func TestLockerBlocksUntilReleased(t *testing.T) {
	mr, rdb := newRedis(t)
	l := NewLocker(rdb)

	release, err := l.Acquire(context.Background(), "listing:L", 5*time.Second)
	require.NoError(t, err)
	assert.True(t, mr.Exists("lock:listing:L"))

	got := make(chan error, 1)
	var waited time.Duration
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		start := time.Now()
		second, err := l.Acquire(ctx, "listing:L", 5*time.Second)
		waited = time.Since(start)
		if err == nil {
			second()
		}
		got <- err
	}()

	time.Sleep(60 * time.Millisecond)
	release()

	require.NoError(t, <-got)
	assert.GreaterOrEqual(t, waited, 50*time.Millisecond, "second holder waited for the first")
	assert.False(t, mr.Exists("lock:listing:L"))
}

func TestLockerTimesOut(t *testing.T) {
	_, rdb := newRedis(t)
	l := NewLocker(rdb)

	release, err := l.Acquire(context.Background(), "listing:L", 5*time.Second)
	require.NoError(t, err)
	defer release()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
	defer cancel()
	_, err = l.Acquire(ctx, "listing:L", 5*time.Second)
	assert.ErrorIs(t, err, ErrLockTimeout)

	other, err := l.Acquire(context.Background(), "listing:M", 5*time.Second)
	require.NoError(t, err, "keys are independent")
	other()
}

func TestLockerStaleReleaseKeepsNewHolder(t *testing.T) {
	mr, rdb := newRedis(t)
	l := NewLocker(rdb)

	stale, err := l.Acquire(context.Background(), "listing:L", 100*time.Millisecond)
	require.NoError(t, err)
	ttl := mr.TTL("lock:listing:L")
	assert.True(t, ttl > 0 && ttl <= 100*time.Millisecond, ttl)

	mr.FastForward(200 * time.Millisecond)
	require.False(t, mr.Exists("lock:listing:L"), "ttl expired")

	fresh, err := l.Acquire(context.Background(), "listing:L", 5*time.Second)
	require.NoError(t, err)
	owner, err := mr.Get("lock:listing:L")
	require.NoError(t, err)

	stale()
	still, err := mr.Get("lock:listing:L")
	require.NoError(t, err, "stale release must not delete another holder's lock")
	assert.Equal(t, owner, still)

	fresh()
	assert.False(t, mr.Exists("lock:listing:L"))
}

func TestLockerSerialisesAcrossInstances(t *testing.T) {
	_, rdb := newRedis(t)
	lockers := []*Locker{NewLocker(rdb), NewLocker(rdb)}

	var inside, maxInside int32
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(l *Locker) {
			defer wg.Done()
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			release, err := l.Acquire(ctx, "listing:L", 5*time.Second)
			if !assert.NoError(t, err) {
				return
			}
			n := atomic.AddInt32(&inside, 1)
			for {
				m := atomic.LoadInt32(&maxInside)
				if n <= m || atomic.CompareAndSwapInt32(&maxInside, m, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			atomic.AddInt32(&inside, -1)
			release()
		}(lockers[i%2])
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxInside)
}

func TestRevocationList(t *testing.T) {
	mr, rdb := newRedis(t)
	r := NewRevocationList(rdb)
	ctx := context.Background()

	revoked, err := r.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, r.Revoke(ctx, "jti-1", time.Now().Add(time.Hour)))
	revoked, err = r.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	ttl := mr.TTL("session:revoked:jti-1")
	assert.True(t, ttl > 59*time.Minute && ttl <= time.Hour, ttl)

	require.NoError(t, r.Revoke(ctx, "jti-old", time.Now().Add(-time.Minute)))
	assert.False(t, mr.Exists("session:revoked:jti-old"), "expired tokens need no entry")

	mr.FastForward(2 * time.Hour)
	revoked, err = r.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked, "entry lapses with the token")
}

func TestRevocationListReportsStoreErrors(t *testing.T) {
	mr, rdb := newRedis(t)
	r := NewRevocationList(rdb)

	mr.SetError("LOADING")
	_, err := r.IsRevoked(context.Background(), "jti-1")
	assert.Error(t, err)
}
