package model

import "time"

// MedicationSchedule prescribes a drug course for an animal.  It may be
// attached to the examination record that led to it.
type MedicationSchedule struct {
    ID                  uint64    // medication_schedules.id
    Drug                string    // medication_schedules.drug
    Count               int       // medication_schedules.count (doses per intake)
    Unit                string    // medication_schedules.unit (mg, ml, tablet ...)
    StartDate           time.Time // medication_schedules.start_date
    EndDate             time.Time // medication_schedules.end_date
    Description         string    // medication_schedules.description
    Diagnosis           string    // medication_schedules.diagnosis
    AnimalID            uint64    // medication_schedules.animal_id
    VeterinarianID      uint64    // medication_schedules.veterinarian_id
    ExaminationRecordID *uint64   // medication_schedules.examination_record_id (nullable)
    CreatedAt           time.Time // medication_schedules.created_at
    UpdatedAt           time.Time // medication_schedules.updated_at
}
