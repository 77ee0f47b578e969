package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/rentify/pkg/response"
)

// KeyFunc builds the counter key for a request.
type KeyFunc func(c *gin.Context) string

// Limit is a fixed-window quota: at most Max requests per Window for each Key.
type Limit struct {
	Max    int
	Window time.Duration
	Key    KeyFunc
}

var (
	RegisterLimit = Limit{Max: 5, Window: time.Minute, Key: KeyByIPAndPath()}
	LoginLimit    = Limit{Max: 10, Window: time.Minute, Key: KeyByIPAndPath()}
	BookingLimit  = Limit{Max: 30, Window: time.Minute, Key: KeyByUserIDAndPath()}
)

func clientKeyIP(c *gin.Context) string {
	if ip := c.GetString("real_ip"); ip != "" {
		return ip
	}
	if ip := c.ClientIP(); ip != "" {
		return ip
	}
	return "unknown"
}

func routeOf(c *gin.Context) string {
	if fp := c.FullPath(); fp != "" {
		return fp
	}
	return c.Request.URL.Path
}

// KeyByIPAndPath counts per client IP and route.
func KeyByIPAndPath() KeyFunc {
	return func(c *gin.Context) string {
		return "rl:" + routeOf(c) + ":ip:" + clientKeyIP(c)
	}
}

// KeyByUserIDAndPath counts per authenticated user and route, or per IP for anonymous callers.
func KeyByUserIDAndPath() KeyFunc {
	return func(c *gin.Context) string {
		if uid := c.GetString("userID"); uid != "" {
			return "rl:" + routeOf(c) + ":user:" + uid
		}
		return "rl:" + routeOf(c) + ":ip:" + clientKeyIP(c)
	}
}

// returns {count, pttl}; the window starts on the first hit
var hitScript = redis.NewScript(`
local n = redis.call("INCR", KEYS[1])
if n == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return {n, redis.call("PTTL", KEYS[1])}
`)

// AllowFunc returns true to skip limiting for a request.
type AllowFunc func(*gin.Context) bool

// RateLimit enforces l with a Redis counter. A nil client disables it and Redis errors let the request through.
func RateLimit(rdb *redis.Client, l Limit, allow AllowFunc) gin.HandlerFunc {
	if rdb == nil || l.Max <= 0 || l.Window <= 0 || l.Key == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions || (allow != nil && allow(c)) {
			c.Next()
			return
		}

		count, ttl, err := hit(c, rdb, l.Key(c), l.Window)
		if err != nil {
			c.Next()
			return
		}
		reset := int((ttl + time.Second - 1) / time.Second)

		c.Header("X-RateLimit-Limit", strconv.Itoa(l.Max))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(max(l.Max-count, 0)))
		c.Header("X-RateLimit-Reset", strconv.Itoa(reset))

		if count > l.Max {
			if reset > 0 {
				c.Header("Retry-After", strconv.Itoa(reset))
			}
			response.Error(c, http.StatusTooManyRequests, "rate limit exceeded", nil)
			return
		}
		c.Next()
	}
}

func hit(c *gin.Context, rdb *redis.Client, key string, window time.Duration) (int, time.Duration, error) {
	res, err := hitScript.Run(c.Request.Context(), rdb, []string{key}, window.Milliseconds()).Int64Slice()
	if err != nil {
		return 0, 0, err
	}
	if len(res) != 2 {
		return 0, 0, redis.Nil
	}
	ttl := time.Duration(res[1]) * time.Millisecond
	if ttl < 0 {
		ttl = 0
	}
	return int(res[0]), ttl, nil
}
