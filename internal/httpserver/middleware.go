package httpserver

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"storefront/internal/domain"
)

const (
	sessionCookie = "sessionid"
	sessionMaxAge = 14 * 24 * 60 * 60

	ctxSessionID = "sessionID"
	ctxProfile   = "profile"
)

// sessionMiddleware guarantees every request carries a session id,
// issuing a fresh uuid cookie when none arrived. The cart lives under
// this id in the session store.
func sessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(sessionCookie)
		if err != nil || id == "" {
			id = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(sessionCookie, id, sessionMaxAge, "/", "", false, true)
		}
		c.Set(ctxSessionID, id)
		c.Next()
	}
}

func sessionID(c *gin.Context) string {
	return c.GetString(ctxSessionID)
}

// authRequired resolves the bearer token to a profile or rejects the
// request with 401.
func authRequired(profiles ProfileService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
			return
		}
		p, err := profiles.VerifyToken(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		c.Set(ctxProfile, p)
		c.Next()
	}
}

func currentProfile(c *gin.Context) *domain.Profile {
	v, ok := c.Get(ctxProfile)
	if !ok {
		return nil
	}
	return v.(*domain.Profile)
}

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)

// metricsMiddleware records request counts and latency per route
// template.
func metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		httpRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		httpRequestDuration.WithLabelValues(c.Request.Method, path, status).Observe(time.Since(start).Seconds())
	}
}
