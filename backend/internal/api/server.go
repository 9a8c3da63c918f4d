// Package api exposes the identity, content and engagement services over HTTP.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"post-spot/backend/internal/graph"
	"post-spot/backend/internal/identity"
	"post-spot/backend/internal/session"
)

// IdentityService registers and authenticates users
type IdentityService interface {
	Register(ctx context.Context, in identity.RegisterInput) (*graph.User, error)
	Authenticate(ctx context.Context, email, password string) (*graph.User, error)
}

// ContentService manages posts and comments
type ContentService interface {
	CreatePost(ctx context.Context, authorEmail, text string) (*graph.Post, error)
	ListPosts(ctx context.Context, viewerEmail string) ([]graph.DetailedPost, error)
	DeletePost(ctx context.Context, postUUID, requesterEmail string) (bool, error)
	ListComments(ctx context.Context, postUUID string) ([]graph.DetailedComment, error)
	AddComment(ctx context.Context, postUUID, authorEmail, text string) (*graph.Comment, error)
	DeleteComment(ctx context.Context, commentUUID, requesterEmail string) (bool, error)
}

// EngagementService toggles likes
type EngagementService interface {
	Like(ctx context.Context, postUUID, userEmail string) error
	Unlike(ctx context.Context, postUUID, userEmail string) error
}

// HealthChecker reports whether the store is reachable
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// Deps wires the router
type Deps struct {
	Identity       IdentityService
	Content        ContentService
	Engagement     EngagementService
	Sessions       *session.Manager
	Health         HealthChecker
	Logger         *zap.Logger
	AllowedOrigins []string
	SecureCookies  bool
}

// Server holds the handlers' dependencies
type Server struct {
	identity      IdentityService
	content       ContentService
	engagement    EngagementService
	sessions      *session.Manager
	health        HealthChecker
	log           *zap.Logger
	secureCookies bool
}

// NewRouter builds the gin engine with every route registered
func NewRouter(d Deps) *gin.Engine {
	s := &Server{
		identity:      d.Identity,
		content:       d.Content,
		engagement:    d.Engagement,
		sessions:      d.Sessions,
		health:        d.Health,
		log:           d.Logger,
		secureCookies: d.SecureCookies,
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}

	router := gin.New()
	router.Use(ginLogger(s.log))
	router.Use(gin.Recovery())

	// credentials are cookies, so origins must be explicit rather than "*"
	if len(d.AllowedOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     d.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Accept", "Content-Type", "X-Requested-With"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	router.GET("/health", s.handleHealth)

	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		auth.POST("/register", s.handleRegister)
		auth.POST("/signin", s.handleSignIn)
		auth.POST("/signout", s.handleSignOut)
		auth.GET("/session", s.requireSession, s.handleSession)

		protected := api.Group("")
		protected.Use(s.requireSession)
		{
			protected.GET("/posts", s.handleListPosts)
			protected.POST("/posts", s.handleCreatePost)
			protected.DELETE("/posts/:uuid", s.handleDeletePost)

			protected.GET("/posts/:uuid/comments", s.handleListComments)
			protected.POST("/posts/:uuid/comments", s.handleAddComment)
			protected.DELETE("/comments/:uuid", s.handleDeleteComment)

			protected.POST("/posts/:uuid/like", s.handleLike)
			protected.DELETE("/posts/:uuid/like", s.handleUnlike)
		}
	}

	return router
}

func (s *Server) handleHealth(c *gin.Context) {
	if s.health != nil {
		if err := s.health.Ping(c.Request.Context()); err != nil {
			s.log.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "store": "unreachable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "store": "ok"})
}

// ginLogger is a custom logger middleware for Gin
func ginLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		if raw != "" {
			path = path + "?" + raw
		}

		fields := []zap.Field{
			zap.Int("status", status),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Duration("latency", latency),
			zap.String("ip", c.ClientIP()),
		}
		if status >= http.StatusInternalServerError {
			log.Error("HTTP Request", fields...)
			return
		}
		log.Info("HTTP Request", fields...)
	}
}
