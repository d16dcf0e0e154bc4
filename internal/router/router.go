package router // package router defines how HTTP routes are registered for each service

import (
	"github.com/labstack/echo/v4"   // import the Echo web framework to handle routing
	"github.com/redis/go-redis/v9" // Redis client backing rate limiting and caching

	"github.com/fmhcampus/attendance-platform/internal/config"     // middleware configuration
	"github.com/fmhcampus/attendance-platform/internal/handler"    // import the handlers that implement business logic
	"github.com/fmhcampus/attendance-platform/internal/middleware" // middleware for credential authentication and role enforcement
	"github.com/fmhcampus/attendance-platform/internal/model"      // role constants
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check used by
// load balancers and monitoring systems.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAttendance registers the attendance service surface: device
// credential issuance, presence submission and ledger listing.  All routes
// require a valid credential; the presence endpoint additionally sits behind
// the per-institution token-bucket rate limiter (check-in devices are the
// one caller class that can stampede).
func RegisterAttendance(e *echo.Echo, cred *handler.CredentialHandler, att *handler.AttendanceHandler,
	secret string, rdb *redis.Client, rl config.RateLimitConfig) {

	g := e.Group("/v1/attendance")
	g.Use(middleware.CredentialAuth(secret))

	// Credential minting and ledger reads are administrative operations.
	g.POST("/credential", cred.IssueDeviceCredential, middleware.RequireRole(model.RoleAdmin))
	g.GET("", att.List, middleware.RequireRole(model.RoleAdmin))

	// Presence submission accepts the narrow device role as well as admin.
	g.POST("/presence", att.SubmitPresence,
		middleware.RequireRole(model.RoleServiceAgent, model.RoleAdmin),
		middleware.NewTokenBucket(rl, rdb))
}

// RegisterSchedule registers the schedule service surface.  Every operation
// is admin-only; the listing sits behind the Redis response cache with
// institution-scoped keys.
func RegisterSchedule(e *echo.Echo, sched *handler.ScheduleHandler,
	secret string, rdb *redis.Client, cache config.CacheConfig) {

	g := e.Group("/v1/schedules")
	g.Use(middleware.CredentialAuth(secret))
	g.Use(middleware.RequireRole(model.RoleAdmin))

	g.POST("", sched.Create)
	// Creates do not invalidate cached listings: a fresh entry can be
	// absent from GET responses (and from the orchestrator's session
	// resolution, which reads this route) for up to the cache TTL.
	// Deployments that cannot tolerate that window lower CACHE_TTL or set
	// CACHE_ENABLED=false.
	g.GET("", sched.List, middleware.NewRedisCache(cache, rdb))
	g.POST("/validate-availability", sched.ValidateAvailability)
}
