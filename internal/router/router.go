package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/iot-telemetry/internal/handler"
	"github.com/iliyamo/iot-telemetry/internal/middleware"
	"github.com/iliyamo/iot-telemetry/internal/model"
)

// RegisterRoutes registers the unauthenticated utility routes: the root
// endpoint listing and the health check used by load balancers.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/", handler.Root)
	e.GET("/api/health", handler.Health)
}

// RegisterAuth wires the authentication endpoints. Register and login sit
// behind the rate limiter since they are the only credential-guessing
// surface; /api/auth/me requires a valid token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string, rateLimit echo.MiddlewareFunc) {
	g := e.Group("/api/auth")
	g.Use(rateLimit)
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)

	me := e.Group("/api/auth")
	me.Use(middleware.JWTAuth(jwtSecret))
	me.GET("/me", a.Me)
}

// RegisterTelemetry wires the sensor and reading endpoints. Reads are
// public and cached; writes require a valid token from any role, and
// sensor deletion is admin-only because it cascades to every reading.
func RegisterTelemetry(e *echo.Echo, s *handler.SensorHandler, r *handler.ReadingHandler, jwtSecret string, cache echo.MiddlewareFunc) {
	reads := e.Group("/api")
	reads.Use(cache)
	reads.GET("/sensors", s.List)
	reads.GET("/sensors/:id", s.Get)
	reads.GET("/readings", r.List)

	writes := e.Group("/api")
	writes.Use(middleware.JWTAuth(jwtSecret))
	writes.Use(middleware.RequireRole(model.RoleAdmin, model.RoleUser))
	writes.POST("/sensors", s.Create)
	writes.POST("/readings", r.Create)

	admin := e.Group("/api")
	admin.Use(middleware.JWTAuth(jwtSecret))
	admin.Use(middleware.RequireRole(model.RoleAdmin))
	admin.DELETE("/sensors/:id", s.Delete)
}
