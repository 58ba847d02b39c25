package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/animal-shelter/internal/handler"
	"github.com/iliyamo/animal-shelter/internal/middleware"
	"github.com/iliyamo/animal-shelter/internal/model"
)

// RegisterCare registers reservations and the medical endpoints.
// Volunteers may use /api/reservations but only for their own bookings,
// which the service checks against the caller.
func RegisterCare(e *echo.Echo, r *handler.ReservationHandler, x *handler.ExaminationHandler, m *handler.MedicationHandler, jwtSecret string) {
	auth := middleware.JWTAuth(jwtSecret)

	res := e.Group(
		"/api/reservations",
		auth,
		middleware.RequireRole(model.RoleVolunteer, model.RoleCareTaker, model.RoleAdministrator),
	)
	res.GET("", r.List)
	res.POST("", r.Create)
	res.GET("/:id", r.Get)
	res.PATCH("/:id", r.Patch)
	res.DELETE("/:id", r.Delete)

	exams := e.Group(
		"/api/examinations",
		auth,
		middleware.RequireRole(model.RoleCareTaker, model.RoleVeterinarian),
	)
	exams.GET("", x.List)
	exams.POST("", x.Create)
	exams.GET("/:id", x.Get)
	exams.PATCH("/:id", x.Patch)
	exams.DELETE("/:id", x.Delete)

	// caretakers read schedules, only veterinarians write them
	meds := e.Group(
		"/api/medications",
		auth,
		middleware.RequireRole(model.RoleVeterinarian, model.RoleCareTaker),
	)
	vet := middleware.RequireRole(model.RoleVeterinarian)
	meds.GET("", m.List)
	meds.GET("/:id", m.Get)
	meds.POST("", m.Create, vet)
	meds.PATCH("/:id", m.Patch, vet)
	meds.DELETE("/:id", m.Delete, vet)
}
