package model

import "time"

// Examination status values.
const (
    ExaminationScheduled  = "SCHEDULED"
    ExaminationInProgress = "IN_PROGRESS"
    ExaminationCompleted  = "COMPLETED"
    ExaminationCanceled   = "CANCELED"
)

// Examination type values.
const (
    ExaminationRoutine     = "ROUTINE"
    ExaminationVaccination = "VACCINATION"
    ExaminationEmergency   = "EMERGENCY"
    ExaminationSurgery     = "SURGERY"
    ExaminationFollowUp    = "FOLLOW_UP"
)

// ExaminationRecord logs a medical examination of an animal.  It is
// written by a caretaker and performed by a veterinarian.  Deleting the
// caretaker or veterinarian is refused while records reference them.
//
// Fields:
//  ID             – primary key identifier.
//  Description    – reason for the examination.
//  Status         – SCHEDULED, IN_PROGRESS, COMPLETED or CANCELED.
//  Diagnosis      – outcome, may be empty until completed.
//  Date           – when the examination takes place (required).
//  Type           – ROUTINE, VACCINATION, EMERGENCY, SURGERY or FOLLOW_UP.
//  AnimalID       – examined animal.
//  CareTakerID    – caretaker who logged the record.
//  VeterinarianID – veterinarian in charge.
type ExaminationRecord struct {
    ID             uint64    // examination_records.id
    Description    string    // examination_records.description
    Status         string    // examination_records.status
    Diagnosis      string    // examination_records.diagnosis
    Date           time.Time // examination_records.date
    Type           string    // examination_records.type
    AnimalID       uint64    // examination_records.animal_id
    CareTakerID    uint64    // examination_records.caretaker_id
    VeterinarianID uint64    // examination_records.veterinarian_id
    CreatedAt      time.Time // examination_records.created_at
    UpdatedAt      time.Time // examination_records.updated_at
}
