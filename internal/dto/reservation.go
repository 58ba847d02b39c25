package dto

import (
	"time"

	"github.com/iliyamo/animal-shelter/internal/model"
)

// ReservationDTO carries the status derived at mapping time.
type ReservationDTO struct {
	ID          uint64    `json:"id"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	IsApproved  bool      `json:"is_approved"`
	IsEnded     bool      `json:"is_ended"`
	Status      string    `json:"status"`
	VolunteerID uint64    `json:"volunteer_id"`
	AnimalID    uint64    `json:"animal_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ReservationCreate books an animal.  VolunteerID is taken from the token
// when a volunteer books for themselves.
type ReservationCreate struct {
	StartDate   time.Time `json:"start_date" validate:"required"`
	EndDate     time.Time `json:"end_date" validate:"required,gtfield=StartDate"`
	VolunteerID uint64    `json:"volunteer_id"`
	AnimalID    uint64    `json:"animal_id" validate:"required"`
}

type ReservationUpdate struct {
	StartDate   time.Time `json:"start_date" validate:"required"`
	EndDate     time.Time `json:"end_date" validate:"required,gtfield=StartDate"`
	IsApproved  bool      `json:"is_approved"`
	IsEnded     bool      `json:"is_ended"`
	VolunteerID uint64    `json:"volunteer_id" validate:"required"`
	AnimalID    uint64    `json:"animal_id" validate:"required"`
}

// ToReservationDTO maps r, deriving its status at now.
func ToReservationDTO(r model.Reservation, now time.Time) ReservationDTO {
	return ReservationDTO{
		ID:          r.ID,
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
		IsApproved:  r.IsApproved,
		IsEnded:     r.IsEnded,
		Status:      string(r.Status(now)),
		VolunteerID: r.VolunteerID,
		AnimalID:    r.AnimalID,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func ToReservationDTOs(rs []model.Reservation, now time.Time) []ReservationDTO {
	return mapSlice(rs, func(r model.Reservation) ReservationDTO { return ToReservationDTO(r, now) })
}

// ReservationFromCreate builds an unapproved, not yet ended reservation.
func ReservationFromCreate(c ReservationCreate) model.Reservation {
	return model.Reservation{
		StartDate:   c.StartDate,
		EndDate:     c.EndDate,
		VolunteerID: c.VolunteerID,
		AnimalID:    c.AnimalID,
	}
}

func ToReservationUpdate(r model.Reservation) ReservationUpdate {
	return ReservationUpdate{
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
		IsApproved:  r.IsApproved,
		IsEnded:     r.IsEnded,
		VolunteerID: r.VolunteerID,
		AnimalID:    r.AnimalID,
	}
}

func ApplyReservationUpdate(r *model.Reservation, u ReservationUpdate) {
	r.StartDate = u.StartDate
	r.EndDate = u.EndDate
	r.IsApproved = u.IsApproved
	r.IsEnded = u.IsEnded
	r.VolunteerID = u.VolunteerID
	r.AnimalID = u.AnimalID
}
