package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/orbitrest/internal/apperr"
	"github.com/abhisek/orbitrest/internal/catalog"
	"github.com/abhisek/orbitrest/internal/identity"
	"github.com/abhisek/orbitrest/internal/progress"
	"github.com/abhisek/orbitrest/internal/quiz"
)

type credentials struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	User      *identity.User `json:"user"`
	Token     string         `json:"token"`
	ExpiresAt time.Time      `json:"expiresAt"`
}

type submitRequest struct {
	QuestionID     int             `json:"questionId"`
	SelectedAnswer json.RawMessage `json:"selectedAnswer"`
}

type summaryResponse struct {
	quiz.Summary
	Percent int `json:"percent"`
}

func (s *Server) handleHealth(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	if err := s.store.Ping(ctx); err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "dialect": s.store.Dialect()})
}

func (s *Server) handleRegister(c *gin.Context) {
	var in credentials
	if !s.bind(c, &in) {
		return
	}
	u, err := s.identity.Register(c.Request.Context(), in.Username, in.Email, in.Password)
	if err != nil {
		s.abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, u)
}

func (s *Server) handleLogin(c *gin.Context) {
	var in credentials
	if !s.bind(c, &in) {
		return
	}
	u, err := s.identity.Authenticate(c.Request.Context(), in.Username, in.Password)
	if err != nil {
		s.abort(c, err)
		return
	}
	token, expires, err := s.identity.IssueToken(u)
	if err != nil {
		s.abort(c, err)
		return
	}
	s.setSession(c, token, int(s.opts.SessionTTL/time.Second))
	c.JSON(http.StatusOK, sessionResponse{User: u, Token: token, ExpiresAt: expires})
}

func (s *Server) handleLogout(c *gin.Context) {
	s.setSession(c, "", -1)
	c.Status(http.StatusNoContent)
}

func (s *Server) setSession(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, token, maxAge, "/", "", s.opts.SecureCookie, true)
}

func (s *Server) handleCurrentUser(c *gin.Context) {
	c.JSON(http.StatusOK, c.MustGet(ctxUser))
}

func (s *Server) handleListPlanets(c *gin.Context) {
	planets, err := s.catalog.ListPlanets(c.Request.Context(), catalog.PlanetFilter{Type: c.Query("type")})
	if err != nil {
		s.abort(c, err)
		return
	}
	c.JSON(http.StatusOK, planets)
}

func (s *Server) handleGetPlanet(c *gin.Context) {
	id, ok := s.pathID(c, "id")
	if !ok {
		return
	}
	p, err := s.catalog.GetPlanet(c.Request.Context(), id)
	if err != nil {
		s.abort(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (s *Server) handleCreatePlanet(c *gin.Context) {
	var in catalog.PlanetInput
	if !s.bind(c, &in) {
		return
	}
	p, err := s.catalog.CreatePlanet(c.Request.Context(), in)
	if err != nil {
		s.abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (s *Server) handleReplacePlanet(c *gin.Context) {
	id, ok := s.pathID(c, "id")
	if !ok {
		return
	}
	var in catalog.PlanetInput
	if !s.bind(c, &in) {
		return
	}
	p, err := s.catalog.ReplacePlanet(c.Request.Context(), id, in)
	if err != nil {
		s.abort(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (s *Server) handleUpdatePlanet(c *gin.Context) {
	id, ok := s.pathID(c, "id")
	if !ok {
		return
	}
	var patch catalog.PlanetPatch
	if !s.bind(c, &patch) {
		return
	}
	p, err := s.catalog.UpdatePlanet(c.Request.Context(), id, patch)
	if err != nil {
		s.abort(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (s *Server) handleDeletePlanet(c *gin.Context) {
	id, ok := s.pathID(c, "id")
	if !ok {
		return
	}
	if err := s.catalog.DeletePlanet(c.Request.Context(), id); err != nil {
		s.abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleListConcepts(c *gin.Context) {
	concepts, err := s.catalog.ListConcepts(c.Request.Context())
	if err != nil {
		s.abort(c, err)
		return
	}
	c.JSON(http.StatusOK, concepts)
}

func (s *Server) handleGetConcept(c *gin.Context) {
	id, ok := s.pathID(c, "id")
	if !ok {
		return
	}
	concept, err := s.catalog.GetConcept(c.Request.Context(), id)
	if err != nil {
		s.abort(c, err)
		return
	}
	c.JSON(http.StatusOK, concept)
}

func (s *Server) handleListQuestions(c *gin.Context) {
	id, ok := s.pathID(c, "id")
	if !ok {
		return
	}
	qs, err := s.quiz.ListQuestions(c.Request.Context(), id)
	if err != nil {
		s.abort(c, err)
		return
	}
	c.JSON(http.StatusOK, qs)
}

func (s *Server) handleQuizSummary(c *gin.Context) {
	id, ok := s.pathID(c, "id")
	if !ok {
		return
	}
	sum, err := s.quiz.GetProgressSummary(c.Request.Context(), userID(c), id)
	if err != nil {
		s.abort(c, err)
		return
	}
	c.JSON(http.StatusOK, summaryResponse{Summary: sum, Percent: sum.Percent()})
}

func (s *Server) handleListAttempts(c *gin.Context) {
	id, ok := s.pathID(c, "id")
	if !ok {
		return
	}
	attempts, err := s.quiz.ListAttempts(c.Request.Context(), userID(c), id)
	if err != nil {
		s.abort(c, err)
		return
	}
	c.JSON(http.StatusOK, attempts)
}

// handleSubmitAnswer grades a submission. Only questionId and
// selectedAnswer are read; a client-supplied isCorrect is ignored.
func (s *Server) handleSubmitAnswer(c *gin.Context) {
	var in submitRequest
	if !s.bind(c, &in) {
		return
	}
	if in.QuestionID <= 0 {
		s.abort(c, apperr.Invalid("questionId is required"))
		return
	}
	selected, err := quiz.ParseSelectedAnswer(in.SelectedAnswer)
	if err != nil {
		s.abort(c, err)
		return
	}
	res, err := s.quiz.SubmitAnswer(c.Request.Context(), userID(c), in.QuestionID, selected)
	if err != nil {
		s.abort(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (s *Server) handleGetProgress(c *gin.Context) {
	rows, err := s.progress.Get(c.Request.Context(), userID(c))
	if err != nil {
		s.abort(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (s *Server) handleUpsertProgress(c *gin.Context) {
	conceptID, ok := s.pathID(c, "conceptId")
	if !ok {
		return
	}
	var patch progress.Patch
	if !s.bind(c, &patch) {
		return
	}
	p, err := s.progress.Upsert(c.Request.Context(), userID(c), conceptID, patch)
	if err != nil {
		s.abort(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (s *Server) handleCreateQuestion(c *gin.Context) {
	var nq quiz.NewQuestion
	if !s.bind(c, &nq) {
		return
	}
	q, err := s.quiz.CreateQuestion(c.Request.Context(), nq)
	if err != nil {
		s.abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, q)
}

// bind decodes the JSON body into v, answering 400 on failure.
func (s *Server) bind(c *gin.Context, v any) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		s.abort(c, apperr.Invalid("invalid request body: %v", err))
		return false
	}
	return true
}

func (s *Server) pathID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		s.abort(c, apperr.Invalid("invalid %s %q", name, c.Param(name)))
		return 0, false
	}
	return id, true
}
