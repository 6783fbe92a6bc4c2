package webhttp

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLimiter_PerIPAndRefill(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	l := NewLimiter(60)
	l.now = func() time.Time { return now }

	for i := 0; i < 60; i++ {
		assert.True(t, l.Allow("10.0.0.1"), "request %d", i)
	}
	assert.False(t, l.Allow("10.0.0.1"))
	assert.True(t, l.Allow("10.0.0.2"), "other clients are independent")

	now = now.Add(time.Second)
	assert.True(t, l.Allow("10.0.0.1"), "one token per second at 60/min")
	assert.False(t, l.Allow("10.0.0.1"))
}

func TestLimiter_CleanupIdleClients(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	l := NewLimiter(1)
	l.now = func() time.Time { return now }

	l.Allow("stale")
	now = now.Add(clientIdleTTL + time.Minute)

	l.mu.Lock()
	l.cleanupLocked(now.Add(-clientIdleTTL))
	_, ok := l.perIP["stale"]
	l.mu.Unlock()
	assert.False(t, ok)
}

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest("POST", "/api/upload", nil)
	r.RemoteAddr = "192.0.2.1:1234"
	assert.Equal(t, "192.0.2.1", clientIP(r))

	r.RemoteAddr = "203.0.113.7"
	assert.Equal(t, "203.0.113.7", clientIP(r))
}
