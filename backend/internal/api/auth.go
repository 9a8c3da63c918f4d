package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"post-spot/backend/internal/graph"
	"post-spot/backend/internal/identity"
	"post-spot/backend/internal/session"
	apperrors "post-spot/backend/pkg/errors"
)

const userKey = "user"

type registerRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleRegister(c *gin.Context) {
	var req registerRequest
	if !s.bindJSON(c, &req) {
		return
	}

	user, err := s.identity.Register(c.Request.Context(), identity.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		s.respondError(c, "Register", err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

func (s *Server) handleSignIn(c *gin.Context) {
	var req signInRequest
	if !s.bindJSON(c, &req) {
		return
	}

	user, err := s.identity.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		s.respondError(c, "Sign in", err)
		return
	}
	if user == nil {
		s.respondError(c, "Sign in", apperrors.ErrInvalidCredentials)
		return
	}

	token, expires, err := s.sessions.Issue(*user)
	if err != nil {
		s.respondError(c, "Issue session", err)
		return
	}
	s.setSessionCookie(c, token, time.Until(expires))

	c.JSON(http.StatusOK, gin.H{"user": user, "expires": expires.UTC()})
}

func (s *Server) handleSignOut(c *gin.Context) {
	s.setSessionCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"status": "signed out"})
}

func (s *Server) handleSession(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"user": currentUser(c)})
}

// requireSession rejects requests without a valid session cookie and stores
// the session identity on the context.
func (s *Server) requireSession(c *gin.Context) {
	token, err := c.Cookie(session.CookieName)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msgUnauthorized})
		return
	}

	user, err := s.sessions.Parse(token)
	if err != nil {
		s.log.Debug("Session rejected", zap.Error(err))
		s.setSessionCookie(c, "", -1)
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msgUnauthorized})
		return
	}

	c.Set(userKey, user)
	c.Next()
}

// currentUser returns the identity stored by requireSession
func currentUser(c *gin.Context) *graph.User {
	if v, ok := c.Get(userKey); ok {
		if user, ok := v.(*graph.User); ok {
			return user
		}
	}
	return nil
}

// setSessionCookie writes the session cookie; a negative maxAge deletes it
func (s *Server) setSessionCookie(c *gin.Context, token string, maxAge time.Duration) {
	seconds := int(maxAge.Seconds())
	if maxAge < 0 {
		seconds = -1
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(session.CookieName, token, seconds, "/", "", s.secureCookies, true)
}
