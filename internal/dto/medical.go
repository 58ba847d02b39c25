package dto

import (
	"time"

	"github.com/iliyamo/animal-shelter/internal/model"
)

type ExaminationDTO struct {
	ID             uint64    `json:"id"`
	Description    string    `json:"description"`
	Status         string    `json:"status"`
	Diagnosis      string    `json:"diagnosis"`
	Date           time.Time `json:"date"`
	Type           string    `json:"type"`
	AnimalID       uint64    `json:"animal_id"`
	CareTakerID    uint64    `json:"caretaker_id"`
	VeterinarianID uint64    `json:"veterinarian_id"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ExaminationCreate leaves the caretaker or veterinarian id empty when
// the caller fills that role themselves.
type ExaminationCreate struct {
	Description    string    `json:"description"`
	Status         string    `json:"status" validate:"omitempty,oneof=SCHEDULED IN_PROGRESS COMPLETED CANCELED"`
	Diagnosis      string    `json:"diagnosis" validate:"max=512"`
	Date           time.Time `json:"date" validate:"required"`
	Type           string    `json:"type" validate:"omitempty,oneof=ROUTINE VACCINATION EMERGENCY SURGERY FOLLOW_UP"`
	AnimalID       uint64    `json:"animal_id" validate:"required"`
	CareTakerID    uint64    `json:"caretaker_id"`
	VeterinarianID uint64    `json:"veterinarian_id"`
}

type ExaminationUpdate struct {
	Description    string    `json:"description"`
	Status         string    `json:"status" validate:"oneof=SCHEDULED IN_PROGRESS COMPLETED CANCELED"`
	Diagnosis      string    `json:"diagnosis" validate:"max=512"`
	Date           time.Time `json:"date" validate:"required"`
	Type           string    `json:"type" validate:"oneof=ROUTINE VACCINATION EMERGENCY SURGERY FOLLOW_UP"`
	AnimalID       uint64    `json:"animal_id" validate:"required"`
	CareTakerID    uint64    `json:"caretaker_id" validate:"required"`
	VeterinarianID uint64    `json:"veterinarian_id" validate:"required"`
}

func ToExaminationDTO(e model.ExaminationRecord) ExaminationDTO {
	return ExaminationDTO{
		ID:             e.ID,
		Description:    e.Description,
		Status:         e.Status,
		Diagnosis:      e.Diagnosis,
		Date:           e.Date,
		Type:           e.Type,
		AnimalID:       e.AnimalID,
		CareTakerID:    e.CareTakerID,
		VeterinarianID: e.VeterinarianID,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}
}

func ToExaminationDTOs(es []model.ExaminationRecord) []ExaminationDTO {
	return mapSlice(es, ToExaminationDTO)
}

// ExaminationFromCreate defaults status to SCHEDULED and type to ROUTINE.
func ExaminationFromCreate(c ExaminationCreate) model.ExaminationRecord {
	e := model.ExaminationRecord{
		Description:    c.Description,
		Status:         c.Status,
		Diagnosis:      c.Diagnosis,
		Date:           c.Date,
		Type:           c.Type,
		AnimalID:       c.AnimalID,
		CareTakerID:    c.CareTakerID,
		VeterinarianID: c.VeterinarianID,
	}
	if e.Status == "" {
		e.Status = model.ExaminationScheduled
	}
	if e.Type == "" {
		e.Type = model.ExaminationRoutine
	}
	return e
}

func ToExaminationUpdate(e model.ExaminationRecord) ExaminationUpdate {
	return ExaminationUpdate{
		Description:    e.Description,
		Status:         e.Status,
		Diagnosis:      e.Diagnosis,
		Date:           e.Date,
		Type:           e.Type,
		AnimalID:       e.AnimalID,
		CareTakerID:    e.CareTakerID,
		VeterinarianID: e.VeterinarianID,
	}
}

func ApplyExaminationUpdate(e *model.ExaminationRecord, u ExaminationUpdate) {
	e.Description = u.Description
	e.Status = u.Status
	e.Diagnosis = u.Diagnosis
	e.Date = u.Date
	e.Type = u.Type
	e.AnimalID = u.AnimalID
	e.CareTakerID = u.CareTakerID
	e.VeterinarianID = u.VeterinarianID
}

type MedicationDTO struct {
	ID                  uint64    `json:"id"`
	Drug                string    `json:"drug"`
	Count               int       `json:"count"`
	Unit                string    `json:"unit"`
	StartDate           time.Time `json:"start_date"`
	EndDate             time.Time `json:"end_date"`
	Description         string    `json:"description"`
	Diagnosis           string    `json:"diagnosis"`
	AnimalID            uint64    `json:"animal_id"`
	VeterinarianID      uint64    `json:"veterinarian_id"`
	ExaminationRecordID *uint64   `json:"examination_record_id"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

type MedicationCreate struct {
	Drug                string    `json:"drug" validate:"required,max=160"`
	Count               int       `json:"count" validate:"required,gt=0"`
	Unit                string    `json:"unit" validate:"required,max=40"`
	StartDate           time.Time `json:"start_date" validate:"required"`
	EndDate             time.Time `json:"end_date" validate:"required,gtefield=StartDate"`
	Description         string    `json:"description"`
	Diagnosis           string    `json:"diagnosis" validate:"max=512"`
	AnimalID            uint64    `json:"animal_id" validate:"required"`
	VeterinarianID      uint64    `json:"veterinarian_id"`
	ExaminationRecordID *uint64   `json:"examination_record_id"`
}

type MedicationUpdate struct {
	Drug                string    `json:"drug" validate:"required,max=160"`
	Count               int       `json:"count" validate:"required,gt=0"`
	Unit                string    `json:"unit" validate:"required,max=40"`
	StartDate           time.Time `json:"start_date" validate:"required"`
	EndDate             time.Time `json:"end_date" validate:"required,gtefield=StartDate"`
	Description         string    `json:"description"`
	Diagnosis           string    `json:"diagnosis" validate:"max=512"`
	AnimalID            uint64    `json:"animal_id" validate:"required"`
	VeterinarianID      uint64    `json:"veterinarian_id" validate:"required"`
	ExaminationRecordID *uint64   `json:"examination_record_id"`
}

func ToMedicationDTO(m model.MedicationSchedule) MedicationDTO {
	return MedicationDTO{
		ID:                  m.ID,
		Drug:                m.Drug,
		Count:               m.Count,
		Unit:                m.Unit,
		StartDate:           m.StartDate,
		EndDate:             m.EndDate,
		Description:         m.Description,
		Diagnosis:           m.Diagnosis,
		AnimalID:            m.AnimalID,
		VeterinarianID:      m.VeterinarianID,
		ExaminationRecordID: m.ExaminationRecordID,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
}

func ToMedicationDTOs(ms []model.MedicationSchedule) []MedicationDTO {
	return mapSlice(ms, ToMedicationDTO)
}

func MedicationFromCreate(c MedicationCreate) model.MedicationSchedule {
	return model.MedicationSchedule{
		Drug:                c.Drug,
		Count:               c.Count,
		Unit:                c.Unit,
		StartDate:           c.StartDate,
		EndDate:             c.EndDate,
		Description:         c.Description,
		Diagnosis:           c.Diagnosis,
		AnimalID:            c.AnimalID,
		VeterinarianID:      c.VeterinarianID,
		ExaminationRecordID: c.ExaminationRecordID,
	}
}

func ToMedicationUpdate(m model.MedicationSchedule) MedicationUpdate {
	return MedicationUpdate{
		Drug:                m.Drug,
		Count:               m.Count,
		Unit:                m.Unit,
		StartDate:           m.StartDate,
		EndDate:             m.EndDate,
		Description:         m.Description,
		Diagnosis:           m.Diagnosis,
		AnimalID:            m.AnimalID,
		VeterinarianID:      m.VeterinarianID,
		ExaminationRecordID: m.ExaminationRecordID,
	}
}

func ApplyMedicationUpdate(m *model.MedicationSchedule, u MedicationUpdate) {
	m.Drug = u.Drug
	m.Count = u.Count
	m.Unit = u.Unit
	m.StartDate = u.StartDate
	m.EndDate = u.EndDate
	m.Description = u.Description
	m.Diagnosis = u.Diagnosis
	m.AnimalID = u.AnimalID
	m.VeterinarianID = u.VeterinarianID
	m.ExaminationRecordID = u.ExaminationRecordID
}
