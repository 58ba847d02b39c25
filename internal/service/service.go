// Package service holds the shelter's use cases.  Services validate
// input, enforce who may touch what, talk to repositories and return
// *apperror.Error values the HTTP layer maps to status codes.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/iliyamo/animal-shelter/internal/apperror"
	"github.com/iliyamo/animal-shelter/internal/model"
	"github.com/iliyamo/animal-shelter/internal/queue"
	"github.com/iliyamo/animal-shelter/internal/repository"
)

// EventPublisher delivers reservation events.  *queue.Publisher
// satisfies it.
type EventPublisher interface {
	PublishReservation(ctx context.Context, ev queue.ReservationEvent) error
}

// Settings are the tunables shared by the services.
type Settings struct {
	JWTSecret  string
	AccessTTL  time.Duration
	BcryptCost int
	// Now defaults to time.Now in UTC.
	Now func() time.Time
	// Events is optional; nil disables reservation events.
	Events EventPublisher
}

// Services groups every use case.  Build it once at startup with New.
type Services struct {
	Auth         *AuthService
	Animals      *AnimalService
	Users        *UserService
	Volunteers   *VolunteerService
	Reservations *ReservationService
	Examinations *ExaminationService
	Medications  *MedicationService
}

// New wires the services onto repos.
func New(repos repository.Set, s Settings) *Services {
	if s.Now == nil {
		s.Now = func() time.Time { return time.Now().UTC() }
	}
	return &Services{
		Auth:         &AuthService{users: repos.Users, settings: s},
		Animals:      &AnimalService{animals: repos.Animals, reservations: repos.Reservations, examinations: repos.Examinations, medications: repos.Medications, now: s.Now},
		Users:        &UserService{users: repos.Users, bcryptCost: s.BcryptCost},
		Volunteers:   &VolunteerService{users: repos.Users},
		Reservations: &ReservationService{reservations: repos.Reservations, animals: repos.Animals, users: repos.Users, now: s.Now, events: s.Events},
		Examinations: &ExaminationService{examinations: repos.Examinations, animals: repos.Animals, users: repos.Users},
		Medications:  &MedicationService{medications: repos.Medications, animals: repos.Animals, users: repos.Users},
	}
}

// Actor is the authenticated caller.
type Actor struct {
	ID   uint64
	Role model.Role
}

// Is reports whether the actor holds one of roles.
func (a Actor) Is(roles ...model.Role) bool {
	for _, r := range roles {
		if a.Role == r {
			return true
		}
	}
	return false
}

// storeErr converts repository errors into application errors.  entity
// and id name the row the operation targeted.
func storeErr(entity string, id uint64, err error) error {
	if err == nil {
		return nil
	}
	var dup *repository.DuplicateError
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return apperror.NotFound(entity, id)
	case errors.As(err, &dup):
		return apperror.Duplicate(dup.Field, err)
	case errors.Is(err, repository.ErrReferenced):
		return apperror.Conflict(fmt.Sprintf("%s is referenced by, or references, records that block this change", entity), err)
	}
	return apperror.Internal(err.Error(), err)
}
