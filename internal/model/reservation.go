package model

import "time"

// ReservationStatus is derived from a reservation's flags and dates at
// read time.  It is never stored.
type ReservationStatus string

const (
    ReservationUpcoming  ReservationStatus = "UPCOMING"
    ReservationCompleted ReservationStatus = "COMPLETED"
    ReservationCanceled  ReservationStatus = "CANCELED"
    ReservationMissed    ReservationStatus = "MISSED"
)

// Reservation records a volunteer's booked time slot with an animal.
// It corresponds to a row in the `reservations` table.
//
// Fields:
//  ID          – primary key identifier.
//  StartDate   – beginning of the slot.
//  EndDate     – end of the slot, always after StartDate.
//  IsApproved  – set by a caretaker once the slot is accepted.
//  IsEnded     – set when the reservation is closed (done or withdrawn).
//  VolunteerID – volunteer who booked the slot.
//  AnimalID    – animal being visited.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type Reservation struct {
    ID          uint64    // reservations.id
    StartDate   time.Time // reservations.start_date
    EndDate     time.Time // reservations.end_date
    IsApproved  bool      // reservations.is_approved
    IsEnded     bool      // reservations.is_ended
    VolunteerID uint64    // reservations.volunteer_id
    AnimalID    uint64    // reservations.animal_id
    CreatedAt   time.Time // reservations.created_at
    UpdatedAt   time.Time // reservations.updated_at
}

// Status computes the reservation status at instant now.  Rules are
// evaluated in order and the first match wins:
//
//  1. approved and not started yet        -> UPCOMING
//  2. ended and past its end date         -> COMPLETED
//  3. not approved and ended              -> CANCELED
//  4. not ended and past its end date     -> MISSED
//  5. anything else                       -> UPCOMING
//
// Rule 1 wins even over an ended reservation.
func (r Reservation) Status(now time.Time) ReservationStatus {
    switch {
    case r.IsApproved && now.Before(r.StartDate):
        return ReservationUpcoming
    case r.IsEnded && now.After(r.EndDate):
        return ReservationCompleted
    case !r.IsApproved && r.IsEnded:
        return ReservationCanceled
    case !r.IsEnded && now.After(r.EndDate):
        return ReservationMissed
    default:
        // TODO: confirm with the shelter staff whether unapproved, open
        // reservations inside their window should read as UPCOMING.
        return ReservationUpcoming
    }
}
