// Package router wires handlers, middleware and route groups together.
package router

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/aiverse/aiverse-api/internal/config"
	"github.com/aiverse/aiverse-api/internal/handler"
	"github.com/aiverse/aiverse-api/internal/middleware"
)

// Handlers carries the constructed handler set for registration.
type Handlers struct {
	Auth       *handler.AuthHandler
	Profile    *handler.ProfileHandler
	Generation *handler.GenerationHandler
}

// Register sets up CORS, rate limiting, caching and all route groups on the
// provided Echo instance.  rdb may be nil, in which case the limiter and
// the cache become no-ops.
func Register(e *echo.Echo, cfg config.Config, h Handlers, rdb *redis.Client) {
	// Credentials (the session cookie) only flow to the origins the
	// deployment mode allows; there is no wildcard fallback.
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowCredentials: true,
	}))

	e.GET("/healthz", handler.Health)
	e.GET("/v1/plans", handler.ListPlans, middleware.NewRedisCache(config.LoadCacheConfig(), rdb))

	session := middleware.SessionAuth(cfg.JWTSecret)

	// Credential endpoints sit behind the rate limiter; nothing in this
	// service retries a failed login on the caller's behalf.
	auth := e.Group("/v1/auth", middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	auth.POST("/register", h.Auth.Register)
	auth.POST("/login", h.Auth.Login)
	auth.POST("/logout", h.Auth.Logout)
	auth.GET("/me", h.Auth.Me, session)

	user := e.Group("/v1/user", session)
	user.GET("/profile", h.Profile.GetProfile)
	user.PUT("/profile", h.Profile.UpdateProfile)

	tools := e.Group("/v1/tools", session)
	tools.POST("/caption", h.Generation.Caption)
	tools.POST("/music", h.Generation.Music)
	tools.POST("/voice", h.Generation.Voice)
}
