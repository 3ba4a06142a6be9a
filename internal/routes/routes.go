package routes

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/ishpytoing/backend/internal/config"
	"github.com/ishpytoing/backend/internal/handlers"
	"github.com/ishpytoing/backend/internal/middleware"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	beatmapHandler *handlers.BeatmapHandler,
	setHandler *handlers.BeatmapsetHandler,
	scoreHandler *handlers.ScoreHandler,
	healthHandler *handlers.HealthHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 120 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               120,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)
	api.Get("/whoami", authHandler.Whoami)
	api.Get("/unauthorized", authHandler.Unauthorized)

	// OAuth login. Stricter rate limit: 10 req/min per IP.
	login := api.Group("/login")
	login.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	login.Get("/:provider/request", authHandler.Request)
	login.Post("/:provider/authorize", authHandler.Authorize)

	api.Post("/auth/refresh", authHandler.Refresh)
	api.Post("/logout", authHandler.Logout)

	// Users
	api.Get("/users", userHandler.Search)
	api.Get("/users/:id", userHandler.Get)
	api.Post("/me/changename", middleware.JWTProtected(cfg), userHandler.ChangeName)

	// Beatmapsets
	api.Get("/beatmapsets", setHandler.List)
	api.Get("/beatmapsets/:id", setHandler.Get)
	api.Post("/beatmapsets", middleware.JWTProtected(cfg), setHandler.Create)
	api.Put("/beatmapsets/:id", middleware.JWTProtected(cfg), setHandler.Update)
	api.Delete("/beatmapsets/:id", middleware.JWTProtected(cfg), setHandler.Delete)

	// Beatmaps
	api.Get("/beatmaps/:id", beatmapHandler.Get)
	api.Post("/beatmaps", middleware.JWTProtected(cfg), beatmapHandler.Create)
	api.Put("/beatmaps/:id", middleware.JWTProtected(cfg), beatmapHandler.Update)
	api.Delete("/beatmaps/:id", middleware.JWTProtected(cfg), beatmapHandler.Delete)

	// Scores
	api.Post("/scores", middleware.JWTProtected(cfg), scoreHandler.Submit)
	api.Get("/scores/:id/replay", scoreHandler.GetReplay)

	// Static frontend bundle with SPA fallback for non-API paths.
	app.Static("/", cfg.StaticDir)
	app.Get("/*", func(c *fiber.Ctx) error {
		if strings.HasPrefix(c.Path(), "/api") {
			return fiber.ErrNotFound
		}
		return c.SendFile(filepath.Join(cfg.StaticDir, "index.html"))
	})
}
