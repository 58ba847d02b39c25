package repository

import (
	"math"
	"strings"

	"github.com/iliyamo/animal-shelter/internal/model"
)

// Pagination defaults.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Page holds 1-based pagination input.
type Page struct {
	Page     int
	PageSize int
}

// Normalize clamps the page to sane values.
func (p Page) Normalize() Page {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
	// keeps Offset from overflowing
	if maxPage := math.MaxInt/p.PageSize + 1; p.Page > maxPage {
		p.Page = maxPage
	}
	return p
}

// Offset returns the number of rows to skip.  Call on a normalized page.
func (p Page) Offset() int { return (p.Page - 1) * p.PageSize }

// AnimalFilter defines conjunctive filters & pagination for listing
// animals.  Nil pointers and empty strings mean "no constraint".
type AnimalFilter struct {
	MinAge    *int
	MaxAge    *int
	Breed     string // exact match
	Sex       string
	Species   string
	MaxWeight *float64
	Search    string // case-insensitive substring of the name
	Page
}

// Matches reports whether a satisfies every set filter.  Pagination is
// not considered.
func (f AnimalFilter) Matches(a model.Animal) bool {
	if f.MinAge != nil && a.Age < *f.MinAge {
		return false
	}
	if f.MaxAge != nil && a.Age > *f.MaxAge {
		return false
	}
	if f.Breed != "" && a.Breed != f.Breed {
		return false
	}
	if f.Sex != "" && a.Sex != f.Sex {
		return false
	}
	if f.Species != "" && a.Species != f.Species {
		return false
	}
	if f.MaxWeight != nil && a.Weight > *f.MaxWeight {
		return false
	}
	if f.Search != "" && !strings.Contains(strings.ToLower(a.Name), strings.ToLower(f.Search)) {
		return false
	}
	return true
}

// UserFilter filters users by email/phone substring and role.
type UserFilter struct {
	Email string
	Phone string
	Role  model.Role
	Page
}

// Matches reports whether u satisfies every set filter.
func (f UserFilter) Matches(u model.User) bool {
	if f.Email != "" && !strings.Contains(strings.ToLower(u.Email), strings.ToLower(f.Email)) {
		return false
	}
	if f.Phone != "" && !strings.Contains(u.Phone, f.Phone) {
		return false
	}
	if f.Role != "" && u.Role != f.Role {
		return false
	}
	return true
}

// ReservationFilter narrows reservations to a volunteer and/or animal.
// Zero means no constraint.
type ReservationFilter struct {
	VolunteerID uint64
	AnimalID    uint64
}

// Matches reports whether r satisfies every set filter.
func (f ReservationFilter) Matches(r model.Reservation) bool {
	return (f.VolunteerID == 0 || r.VolunteerID == f.VolunteerID) &&
		(f.AnimalID == 0 || r.AnimalID == f.AnimalID)
}

// RecordFilter narrows examination records and medication schedules.
// Zero means no constraint.
type RecordFilter struct {
	AnimalID       uint64
	VeterinarianID uint64
}

// MatchesExamination reports whether e satisfies every set filter.
func (f RecordFilter) MatchesExamination(e model.ExaminationRecord) bool {
	return (f.AnimalID == 0 || e.AnimalID == f.AnimalID) &&
		(f.VeterinarianID == 0 || e.VeterinarianID == f.VeterinarianID)
}

// MatchesMedication reports whether m satisfies every set filter.
func (f RecordFilter) MatchesMedication(m model.MedicationSchedule) bool {
	return (f.AnimalID == 0 || m.AnimalID == f.AnimalID) &&
		(f.VeterinarianID == 0 || m.VeterinarianID == f.VeterinarianID)
}
