package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPLimiter begrenzt Anfragen pro Client-IP mit einem Token-Bucket je Adresse.
type IPLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    rate.Limit
	burst    int
	ttl      time.Duration
	swept    time.Time
}

// NewIPLimiter erlaubt perMinute Anfragen pro Minute und IP, mit burst als Spitze.
func NewIPLimiter(perMinute, burst int) *IPLimiter {
	if perMinute < 1 {
		perMinute = 1
	}
	if burst < 1 {
		burst = 1
	}
	return &IPLimiter{
		visitors: make(map[string]*visitor),
		limit:    rate.Limit(float64(perMinute) / 60),
		burst:    burst,
		ttl:      10 * time.Minute,
	}
}

// Allow verbraucht ein Token für ip.
func (l *IPLimiter) Allow(ip string) bool {
	now := time.Now()
	l.mu.Lock()
	defer l.mu.Unlock()

	v, ok := l.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.visitors[ip] = v
	}
	v.lastSeen = now
	l.evict(now)
	return v.limiter.AllowN(now, 1)
}

// evict entfernt höchstens einmal pro ttl Adressen, die länger als ttl nichts geschickt haben. Aufrufer hält mu.
func (l *IPLimiter) evict(now time.Time) {
	if now.Sub(l.swept) < l.ttl {
		return
	}
	l.swept = now
	for ip, v := range l.visitors {
		if now.Sub(v.lastSeen) > l.ttl {
			delete(l.visitors, ip)
		}
	}
}

// RateLimit antwortet mit 429, sobald eine IP ihr Kontingent aufgebraucht hat.
// Schlüssel ist c.ClientIP(): Weitergeleitete Adressen zählen nur von vertrauten Proxys
// (gin.Engine.SetTrustedProxies), nie der vom Client frei wählbare erste XFF-Eintrag.
func RateLimit(l *IPLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.Allow(c.ClientIP()) {
			c.Header("Retry-After", "60")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Zu viele Anfragen. Bitte später erneut versuchen."})
			return
		}
		c.Next()
	}
}
