// Package server exposes orbitrest over HTTP with gin.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/orbitrest/internal/catalog"
	"github.com/abhisek/orbitrest/internal/identity"
	"github.com/abhisek/orbitrest/internal/progress"
	"github.com/abhisek/orbitrest/internal/quiz"
	"github.com/abhisek/orbitrest/internal/ratelimit"
	"github.com/abhisek/orbitrest/internal/store"
)

// SessionCookie carries the session token for browser clients.
const SessionCookie = "orbitrest_session"

// Options tune a Server.
type Options struct {
	// Admins may call the admin routes.
	Admins []string

	// SessionTTL is the session cookie max age.
	SessionTTL time.Duration

	// SecureCookie sets the Secure flag on the session cookie.
	SecureCookie bool

	// TrustedProxies may set X-Forwarded-For. Empty trusts none, so the
	// client IP is the connection's remote address.
	TrustedProxies []string

	// AuthLimiter throttles register and login per client IP. Nil
	// disables throttling.
	AuthLimiter ratelimit.Limiter

	Logger *slog.Logger
}

// Server routes HTTP requests to the catalog, quiz, progress and identity
// services.
type Server struct {
	store    *store.Store
	identity *identity.Service
	catalog  *catalog.Service
	quiz     *quiz.Engine
	progress *progress.Tracker

	admins map[string]bool
	opts   Options
	logger *slog.Logger
	router *gin.Engine
}

// New wires the services over st and builds the router.
func New(st *store.Store, ident *identity.Service, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = identity.DefaultTokenTTL
	}
	s := &Server{
		store:    st,
		identity: ident,
		catalog:  catalog.NewService(st.ConceptRepo(), st.PlanetRepo()),
		quiz:     quiz.NewEngine(st.ConceptRepo(), st.QuestionRepo(), st.AttemptRepo()),
		progress: progress.NewTracker(st.ConceptRepo(), st.ProgressRepo()),
		admins:   make(map[string]bool, len(opts.Admins)),
		opts:     opts,
		logger:   opts.Logger,
	}
	for _, a := range opts.Admins {
		s.admins[a] = true
	}
	s.router = s.routes()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	if err := r.SetTrustedProxies(s.opts.TrustedProxies); err != nil {
		s.logger.Warn("ignoring trusted proxies", "error", err)
		_ = r.SetTrustedProxies(nil)
	}
	r.Use(s.requestID(), s.accessLog(), s.recovery())
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "route not found"})
	})

	api := r.Group("/api")
	api.GET("/health", s.handleHealth)

	auth := api.Group("/auth")
	if s.opts.AuthLimiter != nil {
		auth.Use(s.rateLimit(s.opts.AuthLimiter))
	}
	auth.POST("/register", s.handleRegister)
	auth.POST("/login", s.handleLogin)
	auth.POST("/logout", s.handleLogout)

	api.GET("/planets", s.handleListPlanets)
	api.POST("/planets", s.handleCreatePlanet)
	api.GET("/planets/:id", s.handleGetPlanet)
	api.PUT("/planets/:id", s.handleReplacePlanet)
	api.PATCH("/planets/:id", s.handleUpdatePlanet)
	api.DELETE("/planets/:id", s.handleDeletePlanet)

	api.GET("/concepts", s.handleListConcepts)
	api.GET("/concepts/:id", s.handleGetConcept)

	authed := api.Group("", s.requireAuth())
	authed.GET("/user", s.handleCurrentUser)
	authed.GET("/concepts/:id/quiz", s.handleListQuestions)
	authed.GET("/concepts/:id/quiz/progress", s.handleQuizSummary)
	authed.GET("/concepts/:id/quiz/attempts", s.handleListAttempts)
	authed.POST("/quiz/submit", s.handleSubmitAnswer)
	authed.GET("/progress", s.handleGetProgress)
	authed.POST("/progress/:conceptId", s.handleUpsertProgress)

	admin := authed.Group("/admin", s.requireAdmin())
	admin.POST("/questions", s.handleCreateQuestion)

	return r
}

// Run serves on addr until ctx is cancelled, then drains in-flight
// requests for up to five seconds.
func (s *Server) Run(ctx context.Context, addr string, readTimeout, writeTimeout time.Duration) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadTimeout:       readTimeout,
		ReadHeaderTimeout: readTimeout,
		WriteTimeout:      writeTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen %s: %w", addr, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.logger.Info("http server shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
