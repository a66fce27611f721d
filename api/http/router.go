package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/artemkav/moviebox/api/http/handlers"
)

// Register wires all HTTP routes onto given Fiber app.
func Register(
	app *fiber.App,
	auth *handlers.AuthHandler,
	movies *handlers.MovieHandler,
	watchlists *handlers.WatchlistHandler,
	health *handlers.HealthHandler,
	authMW fiber.Handler,
) {
	// Health and readiness endpoints for probes/monitoring
	app.Get("/health", health.Health)
	app.Get("/ready", health.Ready)

	u := app.Group("/user")
	u.Post("/register", auth.Register)
	u.Post("/login", auth.Login)

	m := app.Group("/movies")
	m.Get("/", movies.List)
	m.Get("/recommend/:id", movies.Recommend)
	m.Get("/watchlist", authMW, watchlists.List)
	m.Post("/watchlist/add/:movieId", authMW, watchlists.Add)
	m.Post("/add", movies.Add)
	m.Put("/update/:id", movies.Update)
	m.Delete("/delete/:id", movies.Delete)
}
