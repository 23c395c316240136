package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/Ayax911/ClothingStore/internal/apierror"

	"github.com/gin-gonic/gin"
)

// ipWindow cuenta requests por IP dentro de una ventana deslizante.
type ipWindow struct {
	count     int
	windowEnd time.Time
}

type limiter struct {
	mu      sync.Mutex
	entries map[string]*ipWindow
	limit   int
	window  time.Duration
}

func newLimiter(limit int, window time.Duration) *limiter {
	l := &limiter{
		entries: make(map[string]*ipWindow),
		limit:   limit,
		window:  window,
	}
	go l.purge()
	return l
}

func (l *limiter) allow(ip string) (bool, time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	entry, ok := l.entries[ip]
	if !ok || now.After(entry.windowEnd) {
		entry = &ipWindow{windowEnd: now.Add(l.window)}
		l.entries[ip] = entry
	}
	entry.count++
	return entry.count <= l.limit, entry.windowEnd
}

// purge elimina periodicamente las IPs cuya ventana ya expiro para que el
// mapa no crezca sin limite.
func (l *limiter) purge() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		now := time.Now()
		l.mu.Lock()
		for ip, entry := range l.entries {
			if now.After(entry.windowEnd) {
				delete(l.entries, ip)
			}
		}
		l.mu.Unlock()
	}
}

// RateLimiter limita requests por IP con ventana deslizante.
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	l := newLimiter(limit, window)
	return func(c *gin.Context) {
		ok, windowEnd := l.allow(c.ClientIP())
		if !ok {
			c.Header("Retry-After", windowEnd.Format(time.RFC1123))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New("Demasiadas solicitudes. Intente nuevamente en un momento."))
			return
		}
		c.Next()
	}
}

// LoginRateLimiter limita los intentos de login a 20 por minuto por IP.
func LoginRateLimiter() gin.HandlerFunc {
	return RateLimiter(20, time.Minute)
}
