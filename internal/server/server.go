// Package server exposes the lead desk over HTTP.
package server

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/aoemotors/leaddesk/internal/service"
)

// Options tunes the HTTP surface. An empty APIKey disables the X-API-KEY
// check; TestEmailTo is the default recipient for the test-email endpoint.
type Options struct {
	APIKey      string
	TestEmailTo string
}

// Server routes HTTP requests to the lead desk services.
type Server struct {
	engine    *gin.Engine
	bookings  service.BookingService
	analytics service.AnalyticsService
	outreach  service.OutreachService
	opts      Options
}

// New builds the gin engine with all routes registered.
func New(
	bookings service.BookingService,
	analytics service.AnalyticsService,
	outreach service.OutreachService,
	opts Options,
) *Server {
	s := &Server{
		engine:    gin.Default(),
		bookings:  bookings,
		analytics: analytics,
		outreach:  outreach,
		opts:      opts,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.engine.GET("/health", s.health)

	v1 := s.engine.Group("/api/v1")
	v1.Use(cors.Default(), apiKeyMiddleware(s.opts.APIKey))
	{
		v1.GET("/bookings", s.listBookings)
		v1.GET("/bookings/export", s.exportBookings)
		v1.POST("/bookings/import", s.importBookings)
		v1.PATCH("/bookings/:id", s.updateBooking)
		v1.POST("/bookings/:id/emails", s.sendBookingEmail)
		v1.GET("/bookings/:id/notes", s.analyzeNotes)
		v1.POST("/analytics/ask", s.askAnalytics)
		v1.POST("/emails/test", s.sendTestEmail)
	}
}

// Run blocks serving HTTP on addr.
func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

// Handler exposes the engine for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "leaddesk",
	})
}

func apiKeyMiddleware(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if key == "" {
			c.Next()
			return
		}
		if c.GetHeader("X-API-KEY") != key {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Next()
	}
}
