package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/doug-martin/goqu/v9"

	"github.com/iliyamo/animal-shelter/internal/model"
)

// MedicationRepo stores medication schedules.
type MedicationRepo struct {
	db *sql.DB
}

func NewMedicationRepo(db *sql.DB) *MedicationRepo { return &MedicationRepo{db: db} }

const medicationSelect = `SELECT id, drug, count, unit, start_date, end_date, description, diagnosis, animal_id, veterinarian_id, examination_record_id, created_at, updated_at FROM medication_schedules`

func (r *MedicationRepo) List(ctx context.Context, f RecordFilter) ([]model.MedicationSchedule, error) {
	q, args, err := dialect.From("medication_schedules").
		Select("id", "drug", "count", "unit", "start_date", "end_date", "description", "diagnosis",
			"animal_id", "veterinarian_id", "examination_record_id", "created_at", "updated_at").
		Where(recordConditions(f)...).
		Order(goqu.C("start_date").Asc(), goqu.C("id").Asc()).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.MedicationSchedule
	for rows.Next() {
		m, err := scanMedication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *MedicationRepo) GetByID(ctx context.Context, id uint64) (model.MedicationSchedule, error) {
	m, err := scanMedication(r.db.QueryRowContext(ctx, medicationSelect+" WHERE id = ?", id))
	if err != nil {
		return model.MedicationSchedule{}, translate(err)
	}
	return m, nil
}

func (r *MedicationRepo) Create(ctx context.Context, m *model.MedicationSchedule) error {
	now := time.Now().UTC()
	m.CreatedAt, m.UpdatedAt = now, now
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO medication_schedules (drug, count, unit, start_date, end_date, description, diagnosis, animal_id, veterinarian_id, examination_record_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.Drug, m.Count, m.Unit, m.StartDate.UTC(), m.EndDate.UTC(), m.Description, m.Diagnosis,
		m.AnimalID, m.VeterinarianID, nullID(m.ExaminationRecordID), m.CreatedAt, m.UpdatedAt)
	if err != nil {
		return translate(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = uint64(id)
	return nil
}

func (r *MedicationRepo) Update(ctx context.Context, m *model.MedicationSchedule) error {
	m.UpdatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx,
		`UPDATE medication_schedules SET drug = ?, count = ?, unit = ?, start_date = ?, end_date = ?, description = ?,
		 diagnosis = ?, animal_id = ?, veterinarian_id = ?, examination_record_id = ?, updated_at = ? WHERE id = ?`,
		m.Drug, m.Count, m.Unit, m.StartDate.UTC(), m.EndDate.UTC(), m.Description, m.Diagnosis,
		m.AnimalID, m.VeterinarianID, nullID(m.ExaminationRecordID), m.UpdatedAt, m.ID)
	if err != nil {
		return translate(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MedicationRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM medication_schedules WHERE id = ?`, id)
	if err != nil {
		return translate(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func nullID(id *uint64) sql.NullInt64 {
	if id == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*id), Valid: true}
}

func scanMedication(s rowScanner) (model.MedicationSchedule, error) {
	var (
		m    model.MedicationSchedule
		exam sql.NullInt64
	)
	if err := s.Scan(&m.ID, &m.Drug, &m.Count, &m.Unit, &m.StartDate, &m.EndDate, &m.Description, &m.Diagnosis,
		&m.AnimalID, &m.VeterinarianID, &exam, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return m, err
	}
	if exam.Valid {
		id := uint64(exam.Int64)
		m.ExaminationRecordID = &id
	}
	return m, nil
}
