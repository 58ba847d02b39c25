package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/iliyamo/animal-shelter/internal/apperror"
	"github.com/iliyamo/animal-shelter/internal/dto"
	"github.com/iliyamo/animal-shelter/internal/model"
	"github.com/iliyamo/animal-shelter/internal/queue"
	"github.com/iliyamo/animal-shelter/internal/repository"
)

const entityReservation = "reservation"

// ReservationService books volunteers' time with animals.  Volunteers
// only see and change their own reservations and cannot approve them;
// caretakers and administrators act on any.
type ReservationService struct {
	reservations repository.ReservationRepository
	animals      repository.AnimalRepository
	users        repository.UserRepository
	now          func() time.Time
	events       EventPublisher
}

func (s *ReservationService) List(ctx context.Context, actor Actor, f repository.ReservationFilter) ([]dto.ReservationDTO, error) {
	if actor.Role == model.RoleVolunteer {
		f.VolunteerID = actor.ID
	}
	rs, err := s.reservations.List(ctx, f)
	if err != nil {
		return nil, storeErr(entityReservation, 0, err)
	}
	return dto.ToReservationDTOs(rs, s.now()), nil
}

func (s *ReservationService) Get(ctx context.Context, actor Actor, id uint64) (dto.ReservationDTO, error) {
	r, err := s.load(ctx, actor, id)
	if err != nil {
		return dto.ReservationDTO{}, err
	}
	return dto.ToReservationDTO(r, s.now()), nil
}

// load fetches a reservation the actor may see.  Another volunteer's
// reservation is reported as missing.
func (s *ReservationService) load(ctx context.Context, actor Actor, id uint64) (model.Reservation, error) {
	r, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		return model.Reservation{}, storeErr(entityReservation, id, err)
	}
	if actor.Role == model.RoleVolunteer && r.VolunteerID != actor.ID {
		return model.Reservation{}, apperror.NotFound(entityReservation, id)
	}
	return r, nil
}

// Create books an animal.  A volunteer always books for themselves;
// staff must name the volunteer.
func (s *ReservationService) Create(ctx context.Context, actor Actor, in dto.ReservationCreate) (dto.ReservationDTO, error) {
	if actor.Role == model.RoleVolunteer {
		in.VolunteerID = actor.ID
	}
	if err := check(in); err != nil {
		return dto.ReservationDTO{}, err
	}
	if in.VolunteerID == 0 {
		return dto.ReservationDTO{}, apperror.InvalidField("volunteer_id", "is required")
	}
	if err := s.ensureVolunteer(ctx, in.VolunteerID); err != nil {
		return dto.ReservationDTO{}, err
	}
	if err := animalExists(ctx, s.animals, in.AnimalID); err != nil {
		return dto.ReservationDTO{}, err
	}
	r := dto.ReservationFromCreate(in)
	if err := s.reservations.Create(ctx, &r); err != nil {
		return dto.ReservationDTO{}, storeErr(entityReservation, 0, err)
	}
	s.publish(ctx, queue.ActionCreated, actor, r)
	return dto.ToReservationDTO(r, s.now()), nil
}

// Patch applies p to the reservation.  Volunteers may move or end their
// own booking but cannot approve it or hand it to someone else.
func (s *ReservationService) Patch(ctx context.Context, actor Actor, id uint64, p Patch) (dto.ReservationDTO, error) {
	r, err := s.load(ctx, actor, id)
	if err != nil {
		return dto.ReservationDTO{}, err
	}
	upd, err := applyPatch(dto.ToReservationUpdate(r), p)
	if err != nil {
		return dto.ReservationDTO{}, err
	}
	if err := check(upd); err != nil {
		return dto.ReservationDTO{}, err
	}
	if actor.Role == model.RoleVolunteer && (upd.IsApproved != r.IsApproved || upd.VolunteerID != r.VolunteerID) {
		return dto.ReservationDTO{}, apperror.Forbidden("volunteers cannot approve or reassign reservations")
	}
	if upd.AnimalID != r.AnimalID {
		if err := animalExists(ctx, s.animals, upd.AnimalID); err != nil {
			return dto.ReservationDTO{}, err
		}
	}
	if upd.VolunteerID != r.VolunteerID {
		if err := s.ensureVolunteer(ctx, upd.VolunteerID); err != nil {
			return dto.ReservationDTO{}, err
		}
	}
	dto.ApplyReservationUpdate(&r, upd)
	if err := s.reservations.Update(ctx, &r); err != nil {
		return dto.ReservationDTO{}, storeErr(entityReservation, id, err)
	}
	s.publish(ctx, queue.ActionUpdated, actor, r)
	return dto.ToReservationDTO(r, s.now()), nil
}

func (s *ReservationService) Delete(ctx context.Context, actor Actor, id uint64) error {
	if _, err := s.load(ctx, actor, id); err != nil {
		return err
	}
	return storeErr(entityReservation, id, s.reservations.Delete(ctx, id))
}

// ensureVolunteer rejects reservations for users that are not volunteers.
func (s *ReservationService) ensureVolunteer(ctx context.Context, id uint64) error {
	u, err := s.users.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return apperror.InvalidField("volunteer_id", "unknown volunteer")
	}
	if err != nil {
		return storeErr(entityVolunteer, id, err)
	}
	if u.Role != model.RoleVolunteer {
		return apperror.InvalidField("volunteer_id", "must reference a volunteer")
	}
	return nil
}

// publish sends the event and only logs a failure; the reservation is
// already stored.
func (s *ReservationService) publish(ctx context.Context, action string, actor Actor, r model.Reservation) {
	if s.events == nil {
		return
	}
	now := s.now()
	ev := queue.ReservationEvent{
		Action:        action,
		ReservationID: r.ID,
		VolunteerID:   r.VolunteerID,
		AnimalID:      r.AnimalID,
		StartDate:     r.StartDate.UTC().Format(time.RFC3339),
		EndDate:       r.EndDate.UTC().Format(time.RFC3339),
		IsApproved:    r.IsApproved,
		IsEnded:       r.IsEnded,
		Status:        string(r.Status(now)),
		ActorID:       actor.ID,
		OccurredAt:    now.UTC().Format(time.RFC3339),
	}
	if err := s.events.PublishReservation(ctx, ev); err != nil {
		log.Warn().Err(err).Uint64("reservation_id", r.ID).Str("action", action).Msg("reservation event not published")
	}
}
