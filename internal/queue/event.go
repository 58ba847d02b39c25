// Package queue carries reservation events over RabbitMQ: the payload,
// the publisher used by the API and the consumer run by the
// reservation-logger binary.
package queue

// ReservationQueue is the durable queue reservation events go to.
const ReservationQueue = "shelter.reservations"

// Reservation event actions.
const (
    ActionCreated = "created"
    ActionUpdated = "updated"
)

// ReservationEvent is published after a reservation is created or
// patched.  It contains enough information for downstream consumers to
// log or notify without querying the primary database.  Times are
// RFC 3339 in UTC.
type ReservationEvent struct {
    Action        string `json:"action"`
    ReservationID uint64 `json:"reservation_id"`
    VolunteerID   uint64 `json:"volunteer_id"`
    AnimalID      uint64 `json:"animal_id"`
    StartDate     string `json:"start_date"`
    EndDate       string `json:"end_date"`
    IsApproved    bool   `json:"is_approved"`
    IsEnded       bool   `json:"is_ended"`
    Status        string `json:"status"`
    ActorID       uint64 `json:"actor_id"`
    OccurredAt    string `json:"occurred_at"`
}
