package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/animal-shelter/internal/model"
)

// AnimalRepository persists animals.  Delete cascades to the animal's
// reservations, examination records and medication schedules.
type AnimalRepository interface {
	List(ctx context.Context, f AnimalFilter) ([]model.Animal, int64, error)
	GetByID(ctx context.Context, id uint64) (model.Animal, error)
	Create(ctx context.Context, a *model.Animal) error
	Update(ctx context.Context, a *model.Animal) error
	Delete(ctx context.Context, id uint64) error
}

// UserRepository persists users of every role in one table.  Email and
// phone are unique across all roles.
type UserRepository interface {
	List(ctx context.Context, f UserFilter) ([]model.User, int64, error)
	GetByID(ctx context.Context, id uint64) (model.User, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
	GetByPhone(ctx context.Context, phone string) (model.User, error)
	Create(ctx context.Context, u *model.User) error
	Update(ctx context.Context, u *model.User) error
	Delete(ctx context.Context, id uint64) error
}

// ReservationRepository persists reservations.
type ReservationRepository interface {
	List(ctx context.Context, f ReservationFilter) ([]model.Reservation, error)
	GetByID(ctx context.Context, id uint64) (model.Reservation, error)
	Create(ctx context.Context, r *model.Reservation) error
	Update(ctx context.Context, r *model.Reservation) error
	Delete(ctx context.Context, id uint64) error
}

// ExaminationRepository persists examination records.
type ExaminationRepository interface {
	List(ctx context.Context, f RecordFilter) ([]model.ExaminationRecord, error)
	GetByID(ctx context.Context, id uint64) (model.ExaminationRecord, error)
	Create(ctx context.Context, e *model.ExaminationRecord) error
	Update(ctx context.Context, e *model.ExaminationRecord) error
	Delete(ctx context.Context, id uint64) error
}

// MedicationRepository persists medication schedules.
type MedicationRepository interface {
	List(ctx context.Context, f RecordFilter) ([]model.MedicationSchedule, error)
	GetByID(ctx context.Context, id uint64) (model.MedicationSchedule, error)
	Create(ctx context.Context, m *model.MedicationSchedule) error
	Update(ctx context.Context, m *model.MedicationSchedule) error
	Delete(ctx context.Context, id uint64) error
}

// Set groups one repository per entity.  Both the MySQL and the
// in-memory storage build a Set.
type Set struct {
	Animals      AnimalRepository
	Users        UserRepository
	Reservations ReservationRepository
	Examinations ExaminationRepository
	Medications  MedicationRepository
}

// NewMySQLSet wires the MySQL repositories onto one connection pool.
func NewMySQLSet(db *sql.DB) Set {
	return Set{
		Animals:      NewAnimalRepo(db),
		Users:        NewUserRepo(db),
		Reservations: NewReservationRepo(db),
		Examinations: NewExaminationRepo(db),
		Medications:  NewMedicationRepo(db),
	}
}
