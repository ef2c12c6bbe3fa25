// Package stubserver is an in-memory double of the remote scheduling API,
// used for local development and integration tests. It is not a backend
// implementation: slot generation and transition rules here are the minimum
// needed to exercise the client.
package stubserver

import (
	"net/http"
	"time"

	"clinica/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Server struct {
	store  *memoryStore
	router *gin.Engine
}

// New builds a stub server with seeded accounts.
func New() *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{store: newMemoryStore()}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(errorHandler())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	s.registerRoutes(router)
	s.router = router
	return s
}

// Router exposes the underlying handler for http.Server or httptest.
func (s *Server) Router() http.Handler {
	return s.router
}

// SeedEmails returns the seeded account emails by role for harnesses.
func (s *Server) SeedEmails() (patient, provider, admin string) {
	return "patient@clinica.dev", "dr.garcia@clinica.dev", "admin@clinica.dev"
}

func (s *Server) registerRoutes(r *gin.Engine) {
	r.POST("/auth/login", s.loginHandler)
	r.POST("/auth/register", s.registerHandler)

	authed := r.Group("")
	authed.Use(authMiddleware())
	{
		authed.GET("/users/me", s.meHandler)
		authed.PUT("/users/me/change-password", s.changePasswordHandler)
		authed.GET("/users/doctors", s.doctorsHandler)
		authed.GET("/availability/slots", s.slotsHandler)
		authed.GET("/availability/me", s.getAvailabilityHandler)
		authed.POST("/availability/set", s.setAvailabilityHandler)

		authed.POST("/appointments/", s.createAppointmentHandler)
		authed.GET("/appointments/me", s.myAppointmentsHandler)
		authed.GET("/appointments/all", s.allAppointmentsHandler)
		authed.PATCH("/appointments/:id/status", s.updateStatusHandler)
		authed.DELETE("/appointments/:id", s.deleteAppointmentHandler)

		authed.GET("/settings/me", s.getSettingsHandler)
		authed.PUT("/settings/me", s.putSettingsHandler)
	}
}

// errorHandler catches panics and returns a structured error payload.
func errorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				utils.GetLogger().Error("Unhandled panic", zap.Any("error", err))
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"detail": "An unexpected error occurred. Please try again later.",
				})
			}
		}()
		c.Next()
	}
}
