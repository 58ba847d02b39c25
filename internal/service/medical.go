package service

import (
	"context"
	"errors"

	"github.com/iliyamo/animal-shelter/internal/apperror"
	"github.com/iliyamo/animal-shelter/internal/dto"
	"github.com/iliyamo/animal-shelter/internal/model"
	"github.com/iliyamo/animal-shelter/internal/repository"
)

const (
	entityExamination = "examination record"
	entityMedication  = "medication schedule"
)

// ExaminationService manages examination records.
type ExaminationService struct {
	examinations repository.ExaminationRepository
	animals      repository.AnimalRepository
	users        repository.UserRepository
}

func (s *ExaminationService) List(ctx context.Context, f repository.RecordFilter) ([]dto.ExaminationDTO, error) {
	es, err := s.examinations.List(ctx, f)
	if err != nil {
		return nil, storeErr(entityExamination, 0, err)
	}
	return dto.ToExaminationDTOs(es), nil
}

func (s *ExaminationService) Get(ctx context.Context, id uint64) (dto.ExaminationDTO, error) {
	e, err := s.examinations.GetByID(ctx, id)
	if err != nil {
		return dto.ExaminationDTO{}, storeErr(entityExamination, id, err)
	}
	return dto.ToExaminationDTO(e), nil
}

// Create records an examination.  The caller fills in for the role they
// hold when the matching id is omitted.
func (s *ExaminationService) Create(ctx context.Context, actor Actor, in dto.ExaminationCreate) (dto.ExaminationDTO, error) {
	if in.CareTakerID == 0 && actor.Role == model.RoleCareTaker {
		in.CareTakerID = actor.ID
	}
	if in.VeterinarianID == 0 && actor.Role == model.RoleVeterinarian {
		in.VeterinarianID = actor.ID
	}
	if err := check(in); err != nil {
		return dto.ExaminationDTO{}, err
	}
	if err := animalExists(ctx, s.animals, in.AnimalID); err != nil {
		return dto.ExaminationDTO{}, err
	}
	e := dto.ExaminationFromCreate(in)
	if err := s.staff(ctx, e.CareTakerID, e.VeterinarianID); err != nil {
		return dto.ExaminationDTO{}, err
	}
	if err := s.examinations.Create(ctx, &e); err != nil {
		return dto.ExaminationDTO{}, storeErr(entityExamination, 0, err)
	}
	return dto.ToExaminationDTO(e), nil
}

func (s *ExaminationService) Patch(ctx context.Context, id uint64, p Patch) (dto.ExaminationDTO, error) {
	e, err := s.examinations.GetByID(ctx, id)
	if err != nil {
		return dto.ExaminationDTO{}, storeErr(entityExamination, id, err)
	}
	upd, err := applyPatch(dto.ToExaminationUpdate(e), p)
	if err != nil {
		return dto.ExaminationDTO{}, err
	}
	if err := check(upd); err != nil {
		return dto.ExaminationDTO{}, err
	}
	if upd.AnimalID != e.AnimalID {
		if err := animalExists(ctx, s.animals, upd.AnimalID); err != nil {
			return dto.ExaminationDTO{}, err
		}
	}
	if upd.CareTakerID != e.CareTakerID || upd.VeterinarianID != e.VeterinarianID {
		if err := s.staff(ctx, upd.CareTakerID, upd.VeterinarianID); err != nil {
			return dto.ExaminationDTO{}, err
		}
	}
	dto.ApplyExaminationUpdate(&e, upd)
	if err := s.examinations.Update(ctx, &e); err != nil {
		return dto.ExaminationDTO{}, storeErr(entityExamination, id, err)
	}
	return dto.ToExaminationDTO(e), nil
}

func (s *ExaminationService) Delete(ctx context.Context, id uint64) error {
	return storeErr(entityExamination, id, s.examinations.Delete(ctx, id))
}

// staff checks that the named users hold the caretaker and veterinarian
// roles.
func (s *ExaminationService) staff(ctx context.Context, caretakerID, vetID uint64) error {
	fields := map[string][]string{}
	if err := hasRole(ctx, s.users, caretakerID, model.RoleCareTaker); err != nil {
		if !apperror.Is(err, apperror.KindValidation) {
			return err
		}
		fields["caretaker_id"] = []string{"must reference a caretaker"}
	}
	if err := hasRole(ctx, s.users, vetID, model.RoleVeterinarian); err != nil {
		if !apperror.Is(err, apperror.KindValidation) {
			return err
		}
		fields["veterinarian_id"] = []string{"must reference a veterinarian"}
	}
	if len(fields) > 0 {
		return apperror.Validation(fields)
	}
	return nil
}

// hasRole returns a validation error when id is unknown or holds another
// role.
func hasRole(ctx context.Context, users repository.UserRepository, id uint64, role model.Role) error {
	u, err := users.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return apperror.InvalidField("id", "unknown user")
	}
	if err != nil {
		return storeErr(entityUser, id, err)
	}
	if u.Role != role {
		return apperror.InvalidField("id", "wrong role")
	}
	return nil
}

// MedicationService manages medication schedules.
type MedicationService struct {
	medications repository.MedicationRepository
	animals     repository.AnimalRepository
	users       repository.UserRepository
}

func (s *MedicationService) List(ctx context.Context, f repository.RecordFilter) ([]dto.MedicationDTO, error) {
	ms, err := s.medications.List(ctx, f)
	if err != nil {
		return nil, storeErr(entityMedication, 0, err)
	}
	return dto.ToMedicationDTOs(ms), nil
}

func (s *MedicationService) Get(ctx context.Context, id uint64) (dto.MedicationDTO, error) {
	m, err := s.medications.GetByID(ctx, id)
	if err != nil {
		return dto.MedicationDTO{}, storeErr(entityMedication, id, err)
	}
	return dto.ToMedicationDTO(m), nil
}

// Create prescribes a medication.  A veterinarian prescribing without a
// veterinarian_id prescribes in their own name.
func (s *MedicationService) Create(ctx context.Context, actor Actor, in dto.MedicationCreate) (dto.MedicationDTO, error) {
	if in.VeterinarianID == 0 && actor.Role == model.RoleVeterinarian {
		in.VeterinarianID = actor.ID
	}
	if err := check(in); err != nil {
		return dto.MedicationDTO{}, err
	}
	if in.VeterinarianID == 0 {
		return dto.MedicationDTO{}, apperror.InvalidField("veterinarian_id", "is required")
	}
	if err := s.vet(ctx, in.VeterinarianID); err != nil {
		return dto.MedicationDTO{}, err
	}
	if err := animalExists(ctx, s.animals, in.AnimalID); err != nil {
		return dto.MedicationDTO{}, err
	}
	m := dto.MedicationFromCreate(in)
	if err := s.medications.Create(ctx, &m); err != nil {
		return dto.MedicationDTO{}, storeErr(entityMedication, 0, err)
	}
	return dto.ToMedicationDTO(m), nil
}

func (s *MedicationService) Patch(ctx context.Context, id uint64, p Patch) (dto.MedicationDTO, error) {
	m, err := s.medications.GetByID(ctx, id)
	if err != nil {
		return dto.MedicationDTO{}, storeErr(entityMedication, id, err)
	}
	upd, err := applyPatch(dto.ToMedicationUpdate(m), p)
	if err != nil {
		return dto.MedicationDTO{}, err
	}
	if err := check(upd); err != nil {
		return dto.MedicationDTO{}, err
	}
	if upd.AnimalID != m.AnimalID {
		if err := animalExists(ctx, s.animals, upd.AnimalID); err != nil {
			return dto.MedicationDTO{}, err
		}
	}
	if upd.VeterinarianID != m.VeterinarianID {
		if err := s.vet(ctx, upd.VeterinarianID); err != nil {
			return dto.MedicationDTO{}, err
		}
	}
	dto.ApplyMedicationUpdate(&m, upd)
	if err := s.medications.Update(ctx, &m); err != nil {
		return dto.MedicationDTO{}, storeErr(entityMedication, id, err)
	}
	return dto.ToMedicationDTO(m), nil
}

func (s *MedicationService) Delete(ctx context.Context, id uint64) error {
	return storeErr(entityMedication, id, s.medications.Delete(ctx, id))
}

func (s *MedicationService) vet(ctx context.Context, id uint64) error {
	if err := hasRole(ctx, s.users, id, model.RoleVeterinarian); err != nil {
		if apperror.Is(err, apperror.KindValidation) {
			return apperror.InvalidField("veterinarian_id", "must reference a veterinarian")
		}
		return err
	}
	return nil
}

// animalExists reports an unknown animal as a validation error on
// animal_id.
func animalExists(ctx context.Context, animals repository.AnimalRepository, id uint64) error {
	_, err := animals.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return apperror.InvalidField("animal_id", "unknown animal")
	}
	return storeErr(entityAnimal, id, err)
}
