// Package echo owns the local test server the client is exercised against.
//
// Ownership boundary:
// - echo routes mirroring request attributes back to the caller
// - health/readiness/metrics endpoints
//
// It holds no state beyond uptime; every response derives from the request.
package echo

import (
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/davrosz/actionhttp/internal/auth"
	"github.com/davrosz/actionhttp/internal/observability"
)

type Server struct {
	App     string
	Started time.Time

	validator auth.Validator
	router    *gin.Engine
}

// NewServer builds an open echo server. Use WithValidator before the first
// request to require an X-Echo-Token on the echo routes.
func NewServer(app string, corsOrigins []string) *Server {
	observability.RegisterMetrics()
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(observability.RequestLogger(log.Logger))
	r.Use(observability.RequestMetricsMiddleware(app))
	r.Use(cors.New(cors.Config{
		AllowOrigins: normalizeOrigins(corsOrigins),
		AllowMethods: []string{"GET", "POST"},
		AllowHeaders: []string{"Origin", "Content-Type", auth.HeaderName},
		MaxAge:       12 * time.Hour,
	}))
	_ = r.SetTrustedProxies([]string{"127.0.0.1", "::1"})

	s := &Server{
		App:     app,
		Started: time.Now(),
		router:  r,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Router() *gin.Engine {
	return s.router
}

// WithValidator requires a valid X-Echo-Token on the echo routes.
func (s *Server) WithValidator(v auth.Validator) *Server {
	s.validator = v
	return s
}

func (s *Server) authorized(c *gin.Context) bool {
	if s.validator == nil {
		return true
	}
	if err := s.validator.Validate(auth.FromRequest(c.Request)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return false
	}
	return true
}

func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

func (s *Server) registerRoutes() {
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"uptime":    time.Since(s.Started).String(),
			"component": s.App,
		})
	})

	s.router.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"ready":     true,
			"uptime":    time.Since(s.Started).String(),
			"component": s.App,
		})
	})

	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	s.router.GET("/echo/:id", func(c *gin.Context) {
		if !s.authorized(c) {
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"id":    c.Param("id"),
			"query": c.Request.URL.Query(),
			"token": auth.FromRequest(c.Request),
		})
	})

	s.router.POST("/echo", func(c *gin.Context) {
		if !s.authorized(c) {
			return
		}
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable body"})
			return
		}
		c.Header("X-Echo-Length", strconv.Itoa(len(body)))
		c.Data(http.StatusOK, c.ContentType(), body)
	})

	// Always fails; useful for driving the request-error path end to end.
	s.router.GET("/deny", func(c *gin.Context) {
		c.JSON(http.StatusForbidden, gin.H{"error": "denied"})
	})
}

func normalizeOrigins(origins []string) []string {
	out := make([]string, 0, len(origins))
	for _, o := range origins {
		o = strings.TrimSpace(o)
		if o != "" {
			out = append(out, o)
		}
	}
	if len(out) == 0 {
		out = []string{"http://localhost"}
	}
	return out
}
