package httpapi

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"orderdesk/internal/auth"
	"orderdesk/internal/logger"
	"orderdesk/internal/metrics"
)

const (
	requestIDHeader = "X-Request-ID"
	maxRequestIDLen = 64
)

// requestContext присваивает запросу id и кладёт логгер с этим id в контекст
func requestContext(base *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if !validRequestID(id) {
			id = uuid.NewString()
		}
		c.Header(requestIDHeader, id)
		l := base.With("request_id", id)
		c.Request = c.Request.WithContext(logger.WithContext(c.Request.Context(), l))
		c.Next()
	}
}

// validRequestID принимает только короткие id из [A-Za-z0-9._-]
func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLen {
		return false
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
		default:
			return false
		}
	}
	return true
}

// instrument records request count and latency per route
func instrument() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.HTTPRequestDuration.WithLabelValues(route, c.Request.Method).Observe(time.Since(start).Seconds())
		metrics.HTTPRequestsTotal.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
	}
}

// requireAuth пропускает запрос дальше только с валидным токеном
func (s *Server) requireAuth(c *gin.Context) {
	uid, err := s.authenticate(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	ctx := c.Request.Context()
	l := logger.FromContext(ctx).With("user_id", uid)
	c.Request = c.Request.WithContext(logger.WithContext(ctx, l))
	c.Next()
}

func (s *Server) authenticate(c *gin.Context) (string, error) {
	token := bearerToken(c.GetHeader("Authorization"))
	if token == "" {
		return "", auth.ErrMissingToken
	}
	return s.auth.Authenticate(token)
}

// bearerToken takes the second word of the Authorization header
func bearerToken(h string) string {
	_, token, ok := strings.Cut(strings.TrimSpace(h), " ")
	if !ok {
		return ""
	}
	return strings.TrimSpace(token)
}
