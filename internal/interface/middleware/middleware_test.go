package middleware

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"github.com/oksasatya/rentify/pkg/apperror"
	"github.com/oksasatya/rentify/pkg/helpers"
)

func init() { gin.SetMode(gin.TestMode) }

type stubAuth struct {
	claims *helpers.Claims
	err    error
	got    string
}

func (s *stubAuth) Authenticate(_ context.Context, token string) (*helpers.Claims, error) {
	s.got = token
	return s.claims, s.err
}

func authEngine(a Authenticator) *gin.Engine {
	r := gin.New()
	r.GET("/me", Auth(a), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("userID"))
	})
	return r
}

func TestAuthBearerHeader(t *testing.T) {
	a := &stubAuth{claims: &helpers.Claims{UserID: "u1"}}
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer tok-123")
	w := httptest.NewRecorder()

	authEngine(a).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u1", w.Body.String())
	assert.Equal(t, "tok-123", a.got)
}

func TestAuthCookieFallback(t *testing.T) {
	a := &stubAuth{claims: &helpers.Claims{UserID: "u2"}}
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: helpers.AccessTokenCookie, Value: "from-cookie"})
	w := httptest.NewRecorder()

	authEngine(a).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "from-cookie", a.got)
}

func TestAuthFailures(t *testing.T) {
	cases := []struct {
		name   string
		header string
		err    error
		want   int
	}{
		{"missing", "", nil, http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", nil, http.StatusUnauthorized},
		{"rejected", "Bearer bad", apperror.Authentication("session has been revoked"), http.StatusUnauthorized},
		{"store down", "Bearer tok", apperror.Internal("session lookup failed", context.DeadlineExceeded), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			authEngine(&stubAuth{err: tc.err}).ServeHTTP(w, req)
			assert.Equal(t, tc.want, w.Code)
		})
	}
}

func TestRequireAllowedPrivateIP(t *testing.T) {
	r := gin.New()
	r.Use(RealIP(true))
	r.GET("/metrics", RequireAllowed(AllowPrivateIP()), func(c *gin.Context) { c.Status(http.StatusOK) })

	for ip, want := range map[string]int{
		"10.1.2.3":    http.StatusOK,
		"127.0.0.1":   http.StatusOK,
		"203.0.113.9": http.StatusForbidden,
	} {
		req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
		req.Header.Set("X-Forwarded-For", ip+", 10.0.0.1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, want, w.Code, ip)
	}
}

func TestRealIPIgnoresHeadersUnlessTrusted(t *testing.T) {
	r := gin.New()
	r.Use(RealIP(false))
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("real_ip")) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "198.51.100.7:4000"
	req.Header.Set("CF-Connecting-IP", "10.0.0.1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "198.51.100.7", w.Body.String())
}

func TestRateLimitWithoutRedisIsNoop(t *testing.T) {
	r := gin.New()
	r.GET("/", RateLimit(nil, Limit{Max: 1, Window: time.Minute, Key: KeyByIPAndPath()}, nil), func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestRequestIDReusesValidHeader(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("request_id")) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "7d444840-9dc0-11d1-b245-5ffdce74fad2")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "7d444840-9dc0-11d1-b245-5ffdce74fad2", w.Body.String())

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "not-a-uuid")
	r.ServeHTTP(w, req)
	assert.NotEqual(t, "not-a-uuid", w.Body.String())
	assert.Equal(t, w.Body.String(), w.Header().Get(RequestIDHeader))
}

func TestRateLimitKeys(t *testing.T) {
	r := gin.New()
	r.Use(RealIP(false))
	var byIP, byUser, anon string
	r.POST("/bookings/create", func(c *gin.Context) {
		byIP = KeyByIPAndPath()(c)
		anon = KeyByUserIDAndPath()(c)
		c.Set("userID", "u1")
		byUser = KeyByUserIDAndPath()(c)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/bookings/create", nil)
	req.RemoteAddr = "203.0.113.9:1234"
	r.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "rl:/bookings/create:ip:203.0.113.9", byIP)
	assert.Equal(t, byIP, anon)
	assert.Equal(t, "rl:/bookings/create:user:u1", byUser)
}

func TestBodyLimit(t *testing.T) {
	r := gin.New()
	r.POST("/", BodyLimit(8), func(c *gin.Context) {
		if _, err := io.ReadAll(c.Request.Body); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				c.Status(http.StatusRequestEntityTooLarge)
				return
			}
			c.Status(http.StatusInternalServerError)
			return
		}
		c.Status(http.StatusOK)
	})

	send := func(body string, declared bool) int {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		if !declared {
			req.ContentLength = -1
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, send("small", true))
	assert.Equal(t, http.StatusRequestEntityTooLarge, send("far too large", true), "declared length")
	assert.Equal(t, http.StatusRequestEntityTooLarge, send("far too large", false), "streamed body")
}

func TestRateLimitWithRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	r := gin.New()
	r.Use(RealIP(false))
	r.POST("/auth/login", RateLimit(rdb, Limit{Max: 2, Window: time.Minute, Key: KeyByIPAndPath()}, nil), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	call := func(ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
		req.RemoteAddr = ip + ":5000"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	w := call("203.0.113.1")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, "60", w.Header().Get("X-RateLimit-Reset"))

	assert.Equal(t, http.StatusOK, call("203.0.113.1").Code)

	w = call("203.0.113.1")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, "60", w.Header().Get("Retry-After"))

	assert.Equal(t, http.StatusOK, call("203.0.113.2").Code, "other clients keep their own quota")

	mr.FastForward(time.Minute)
	assert.Equal(t, http.StatusOK, call("203.0.113.1").Code, "window reset")

	mr.SetError("LOADING")
	assert.Equal(t, http.StatusOK, call("203.0.113.1").Code, "redis errors fail open")
}
