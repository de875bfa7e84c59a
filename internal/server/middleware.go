package server

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/abhisek/orbitrest/internal/apperr"
	"github.com/abhisek/orbitrest/internal/ratelimit"
)

const (
	requestIDHeader = "X-Request-ID"

	ctxRequestID = "request_id"
	ctxUserID    = "user_id"
	ctxUsername  = "username"
	ctxUser      = "user"
)

var errForbidden = errors.New("forbidden")

// requestID echoes an incoming X-Request-ID or assigns a new UUID.
func (s *Server) requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		c.Set(ctxRequestID, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func (s *Server) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		level := slog.LevelInfo
		if status >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		attrs := []slog.Attr{
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", status),
			slog.Int64("latency_ms", time.Since(start).Milliseconds()),
			slog.String("request_id", c.GetString(ctxRequestID)),
		}
		if uid, ok := c.Get(ctxUserID); ok {
			attrs = append(attrs, slog.Any("user_id", uid))
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, slog.String("error", c.Errors.Last().Error()))
		}
		s.logger.LogAttrs(c.Request.Context(), level, "http request", attrs...)
	}
}

func (s *Server) recovery() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, v any) {
		s.logger.Error("panic in handler", "panic", v, "request_id", c.GetString(ctxRequestID))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
	})
}

// requireAuth resolves the caller from a bearer token or the session
// cookie. A token whose user has been deleted is rejected.
func (s *Server) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("Authorization")
		if token == "" {
			token, _ = c.Cookie(SessionCookie)
		}
		claims, err := s.identity.VerifyToken(token)
		if err != nil {
			s.abort(c, err)
			return
		}
		uid, err := claims.UserID()
		if err != nil {
			s.abort(c, err)
			return
		}
		u, err := s.identity.User(c.Request.Context(), uid)
		if errors.Is(err, apperr.ErrNotFound) {
			s.abort(c, fmt.Errorf("token subject %d no longer exists: %w", uid, apperr.ErrUnauthorized))
			return
		}
		if err != nil {
			s.abort(c, err)
			return
		}
		c.Set(ctxUserID, u.ID)
		c.Set(ctxUsername, u.Username)
		c.Set(ctxUser, u)
		c.Next()
	}
}

// rateLimit rejects clients over their budget with 429. Limiter failures
// are logged and let the request through.
func (s *Server) rateLimit(l ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		d, err := l.Allow(c.Request.Context(), "auth:"+c.ClientIP())
		if err != nil {
			s.logger.Warn("rate limiter unavailable", "error", err, "request_id", c.GetString(ctxRequestID))
			c.Next()
			return
		}
		if !d.Allowed {
			secs := int(math.Ceil(d.RetryAfter.Seconds()))
			c.Header("Retry-After", strconv.Itoa(secs))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"message": "too many requests, slow down"})
			return
		}
		c.Header("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))
		c.Next()
	}
}

func (s *Server) requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.admins[c.GetString(ctxUsername)] {
			s.abort(c, errForbidden)
			return
		}
		c.Next()
	}
}

// abort maps err to a status and JSON body. Unclassified errors become a
// generic 500 and are only logged.
func (s *Server) abort(c *gin.Context, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal server error"
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, gin.H{"message": msg})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperr.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, apperr.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, apperr.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, errForbidden):
		return http.StatusForbidden
	}
	return http.StatusInternalServerError
}

func userID(c *gin.Context) int {
	return c.GetInt(ctxUserID)
}
