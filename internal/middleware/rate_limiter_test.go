package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func rateLimitedHandler(mw echo.MiddlewareFunc) echo.HandlerFunc {
	return mw(func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
}

func doRequest(e *echo.Echo, handler echo.HandlerFunc, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.RemoteAddr = remoteAddr
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler(c); err != nil {
		panic(err)
	}
	return rec
}

func TestRateLimiterWithConfig(t *testing.T) {
	e := echo.New()
	handler := rateLimitedHandler(RateLimiterWithConfig(2, 4))

	// The full burst is allowed
	for i := 0; i < 4; i++ {
		rec := doRequest(e, handler, "192.168.1.2:12345")
		assert.Equal(t, http.StatusOK, rec.Code, "burst request %d", i)
	}

	// The request after the burst is rejected with the rate limit code
	rec := doRequest(e, handler, "192.168.1.2:12345")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), "SYSTEM_004")
}

func TestRateLimiter_DefaultsExceeded(t *testing.T) {
	e := echo.New()
	handler := rateLimitedHandler(RateLimiter())

	rateLimited := false
	for i := 0; i < 25; i++ {
		rec := doRequest(e, handler, "192.168.1.100:12345")
		if rec.Code == http.StatusTooManyRequests {
			rateLimited = true
			break
		}
	}

	assert.True(t, rateLimited, "sustained traffic from one IP should hit the limit")
}

func TestRateLimiter_IndependentPerIP(t *testing.T) {
	e := echo.New()
	handler := rateLimitedHandler(RateLimiterWithConfig(5, 5))

	for _, ip := range []string{"10.0.0.1:1234", "10.0.0.2:1234", "10.0.0.3:1234"} {
		for i := 0; i < 5; i++ {
			rec := doRequest(e, handler, ip)
			assert.Equal(t, http.StatusOK, rec.Code, "request %d for %s", i, ip)
		}
	}
}

func TestGetIP(t *testing.T) {
	tests := []struct {
		name       string
		headers    map[string]string
		remoteAddr string
		expected   string
	}{
		{
			name:       "X-Forwarded-For header",
			headers:    map[string]string{"X-Forwarded-For": "192.168.1.1"},
			remoteAddr: "127.0.0.1:12345",
			expected:   "192.168.1.1",
		},
		{
			name:       "X-Real-IP header",
			headers:    map[string]string{"X-Real-IP": "192.168.1.2"},
			remoteAddr: "127.0.0.1:12345",
			expected:   "192.168.1.2",
		},
		{
			name: "X-Forwarded-For takes precedence",
			headers: map[string]string{
				"X-Forwarded-For": "192.168.1.1",
				"X-Real-IP":       "192.168.1.2",
			},
			remoteAddr: "127.0.0.1:12345",
			expected:   "192.168.1.1",
		},
		{
			name:       "Falls back to socket address",
			headers:    map[string]string{},
			remoteAddr: "192.168.1.3:12345",
			expected:   "192.168.1.3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			req.RemoteAddr = tt.remoteAddr
			c := e.NewContext(req, httptest.NewRecorder())

			assert.Equal(t, tt.expected, getIP(c))
		})
	}
}

func TestIPRateLimiter_Cleanup(t *testing.T) {
	rl := newIPRateLimiter(5, 10)

	rl.allow("stale-ip")
	rl.allow("fresh-ip")

	rl.mu.Lock()
	rl.visitors["stale-ip"].lastSeen = time.Now().Add(-visitorTTL - time.Minute)
	for ip, v := range rl.visitors {
		if time.Since(v.lastSeen) > visitorTTL {
			delete(rl.visitors, ip)
		}
	}
	_, staleExists := rl.visitors["stale-ip"]
	_, freshExists := rl.visitors["fresh-ip"]
	rl.mu.Unlock()

	assert.False(t, staleExists)
	assert.True(t, freshExists)
}

func TestRateLimiter_Concurrency(t *testing.T) {
	e := echo.New()
	handler := rateLimitedHandler(RateLimiterWithConfig(5, 10))

	var wg sync.WaitGroup
	var mu sync.Mutex
	successCount := 0
	rateLimitCount := 0

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			rec := doRequest(e, handler, "192.168.1.100:12345")

			mu.Lock()
			switch rec.Code {
			case http.StatusOK:
				successCount++
			case http.StatusTooManyRequests:
				rateLimitCount++
			}
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Greater(t, successCount, 0)
	assert.Greater(t, rateLimitCount, 0)
	assert.Equal(t, 20, successCount+rateLimitCount)
}
