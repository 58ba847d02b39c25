package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/animal-shelter/internal/handler"
	"github.com/iliyamo/animal-shelter/internal/middleware"
	"github.com/iliyamo/animal-shelter/internal/model"
)

// RegisterStaff registers account management.  /api/users is for
// administrators; /api/volunteers lets caretakers review and verify
// volunteers.
func RegisterStaff(e *echo.Echo, u *handler.UserHandler, v *handler.VolunteerHandler, jwtSecret string) {
	users := e.Group(
		"/api/users",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleAdministrator),
	)
	users.GET("", u.List)
	users.POST("", u.Create)
	users.GET("/:id", u.Get)
	users.DELETE("/:id", u.Delete)

	volunteers := e.Group(
		"/api/volunteers",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleCareTaker),
	)
	volunteers.GET("", v.List)
	volunteers.GET("/:id", v.Get)
	volunteers.PATCH("/:id", v.Patch)
}
