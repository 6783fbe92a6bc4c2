package webhttp

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/sir_venger/s3_gallery/internal/models"
	"github.com/sir_venger/s3_gallery/pkg/httperrors"
	"golang.org/x/time/rate"
)

const (
	maxTrackedClients = 10_000
	clientIdleTTL     = 10 * time.Minute
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Limiter ограничивает число загрузок с одного IP в минуту.
type Limiter struct {
	mu    sync.Mutex
	perIP map[string]*clientLimiter

	rps   rate.Limit
	burst int
	now   func() time.Time
}

// NewLimiter разрешает perMinute загрузок в минуту с всплеском той же величины.
func NewLimiter(perMinute int) *Limiter {
	return &Limiter{
		perIP: make(map[string]*clientLimiter),
		rps:   rate.Limit(float64(perMinute) / 60),
		burst: perMinute,
		now:   time.Now,
	}
}

// Allow сообщает, можно ли пропустить ещё один запрос с ip.
func (l *Limiter) Allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	item, ok := l.perIP[ip]
	if !ok {
		item = &clientLimiter{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.perIP[ip] = item
	}
	item.lastSeen = now

	if len(l.perIP) > maxTrackedClients {
		l.cleanupLocked(now.Add(-clientIdleTTL))
	}

	return item.limiter.AllowN(now, 1)
}

func (l *Limiter) cleanupLocked(threshold time.Time) {
	for ip, entry := range l.perIP {
		if entry.lastSeen.Before(threshold) {
			delete(l.perIP, ip)
		}
	}
}

// rateLimit — middleware для POST /api/upload.
func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.Limiter != nil && !s.Limiter.Allow(clientIP(r)) {
			if s.Metrics != nil {
				s.Metrics.RateLimitDropped.Inc()
			}
			httperrors.Write(w, models.ErrRateLimited)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP: после middleware.RealIP RemoteAddr уже содержит адрес клиента, иногда без порта.
func clientIP(r *http.Request) string {
	addr := strings.TrimSpace(r.RemoteAddr)
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	return host
}
