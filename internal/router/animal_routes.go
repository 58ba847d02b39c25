package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/animal-shelter/internal/handler"
	"github.com/iliyamo/animal-shelter/internal/middleware"
	"github.com/iliyamo/animal-shelter/internal/model"
)

// animalsCacheTag groups the cached animal responses.
const animalsCacheTag = "animals"

// RegisterAnimals registers /api/animals.  Every route needs a token.
// Reads are served through the Redis cache; any successful write drops
// the cached entries.
func RegisterAnimals(e *echo.Echo, h *handler.AnimalHandler, o Options) {
	g := e.Group("/api/animals", middleware.JWTAuth(o.JWTSecret))

	cache := middleware.NewRedisCache(o.Cache, o.Redis, animalsCacheTag)
	g.GET("", h.List, cache)
	g.GET("/:id", h.Get, cache)

	invalidate := middleware.InvalidateOnWrite(o.Cache, o.Redis, animalsCacheTag)
	editors := middleware.RequireRole(model.RoleCareTaker, model.RoleAdministrator)
	g.POST("", h.Create, editors, invalidate)
	g.PATCH("/:id", h.Patch, editors, invalidate)
	g.DELETE("/:id", h.Delete, middleware.RequireRole(model.RoleAdministrator), invalidate)

	// Sub-resources are staff only and never cached; they change with
	// reservation and medical writes.
	staff := middleware.RequireRole(model.RoleAdministrator, model.RoleCareTaker, model.RoleVeterinarian)
	g.GET("/:id/reservations", h.Reservations, staff)
	g.GET("/:id/examinations", h.Examinations, staff)
	g.GET("/:id/medications", h.Medications, staff)
}
