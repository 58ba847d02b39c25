package service

import (
	"context"
	"time"

	"github.com/iliyamo/animal-shelter/internal/dto"
	"github.com/iliyamo/animal-shelter/internal/repository"
)

const entityAnimal = "animal"

// AnimalService manages animal records.
type AnimalService struct {
	animals      repository.AnimalRepository
	reservations repository.ReservationRepository
	examinations repository.ExaminationRepository
	medications  repository.MedicationRepository
	now          func() time.Time
}

// List returns one page of animals matching f.
func (s *AnimalService) List(ctx context.Context, f repository.AnimalFilter) (dto.Page[dto.AnimalDTO], error) {
	f.Page = f.Page.Normalize()
	animals, total, err := s.animals.List(ctx, f)
	if err != nil {
		return dto.Page[dto.AnimalDTO]{}, storeErr(entityAnimal, 0, err)
	}
	return dto.NewPage(dto.ToAnimalDTOs(animals), total, f.Page.Page, f.PageSize), nil
}

func (s *AnimalService) Get(ctx context.Context, id uint64) (dto.AnimalDTO, error) {
	a, err := s.animals.GetByID(ctx, id)
	if err != nil {
		return dto.AnimalDTO{}, storeErr(entityAnimal, id, err)
	}
	return dto.ToAnimalDTO(a), nil
}

func (s *AnimalService) Create(ctx context.Context, in dto.AnimalCreate) (dto.AnimalDTO, error) {
	if err := check(in); err != nil {
		return dto.AnimalDTO{}, err
	}
	a := dto.AnimalFromCreate(in)
	if err := s.animals.Create(ctx, &a); err != nil {
		return dto.AnimalDTO{}, storeErr(entityAnimal, 0, err)
	}
	return dto.ToAnimalDTO(a), nil
}

// Patch loads the animal, applies p to its update projection,
// re-validates and saves.  A missing animal is reported before anything
// is written.
func (s *AnimalService) Patch(ctx context.Context, id uint64, p Patch) (dto.AnimalDTO, error) {
	a, err := s.animals.GetByID(ctx, id)
	if err != nil {
		return dto.AnimalDTO{}, storeErr(entityAnimal, id, err)
	}
	upd, err := applyPatch(dto.ToAnimalUpdate(a), p)
	if err != nil {
		return dto.AnimalDTO{}, err
	}
	if err := check(upd); err != nil {
		return dto.AnimalDTO{}, err
	}
	dto.ApplyAnimalUpdate(&a, upd)
	if err := s.animals.Update(ctx, &a); err != nil {
		return dto.AnimalDTO{}, storeErr(entityAnimal, id, err)
	}
	return dto.ToAnimalDTO(a), nil
}

// Delete removes the animal with its reservations, examinations and
// medication schedules.
func (s *AnimalService) Delete(ctx context.Context, id uint64) error {
	return storeErr(entityAnimal, id, s.animals.Delete(ctx, id))
}

// exists returns NotFound for an unknown animal.
func (s *AnimalService) exists(ctx context.Context, id uint64) error {
	_, err := s.animals.GetByID(ctx, id)
	return storeErr(entityAnimal, id, err)
}

// Reservations lists the animal's reservations with their current status.
func (s *AnimalService) Reservations(ctx context.Context, id uint64) ([]dto.ReservationDTO, error) {
	if err := s.exists(ctx, id); err != nil {
		return nil, err
	}
	rs, err := s.reservations.List(ctx, repository.ReservationFilter{AnimalID: id})
	if err != nil {
		return nil, storeErr(entityReservation, 0, err)
	}
	return dto.ToReservationDTOs(rs, s.now()), nil
}

func (s *AnimalService) Examinations(ctx context.Context, id uint64) ([]dto.ExaminationDTO, error) {
	if err := s.exists(ctx, id); err != nil {
		return nil, err
	}
	es, err := s.examinations.List(ctx, repository.RecordFilter{AnimalID: id})
	if err != nil {
		return nil, storeErr(entityExamination, 0, err)
	}
	return dto.ToExaminationDTOs(es), nil
}

func (s *AnimalService) Medications(ctx context.Context, id uint64) ([]dto.MedicationDTO, error) {
	if err := s.exists(ctx, id); err != nil {
		return nil, err
	}
	ms, err := s.medications.List(ctx, repository.RecordFilter{AnimalID: id})
	if err != nil {
		return nil, storeErr(entityMedication, 0, err)
	}
	return dto.ToMedicationDTOs(ms), nil
}
