package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"

	"github.com/iliyamo/animal-shelter/internal/model"
)

// ExaminationRepo stores examination records.  Records reference an
// animal (cascading) and the caretaker and veterinarian involved
// (restricting).
type ExaminationRepo struct {
	db *sql.DB
}

func NewExaminationRepo(db *sql.DB) *ExaminationRepo { return &ExaminationRepo{db: db} }

const examinationSelect = `SELECT id, description, status, diagnosis, date, type, animal_id, caretaker_id, veterinarian_id, created_at, updated_at FROM examination_records`

// recordConditions is shared by examinations and medications.
func recordConditions(f RecordFilter) []exp.Expression {
	var where []exp.Expression
	if f.AnimalID != 0 {
		where = append(where, goqu.C("animal_id").Eq(f.AnimalID))
	}
	if f.VeterinarianID != 0 {
		where = append(where, goqu.C("veterinarian_id").Eq(f.VeterinarianID))
	}
	return where
}

func (r *ExaminationRepo) List(ctx context.Context, f RecordFilter) ([]model.ExaminationRecord, error) {
	q, args, err := dialect.From("examination_records").
		Select("id", "description", "status", "diagnosis", "date", "type",
			"animal_id", "caretaker_id", "veterinarian_id", "created_at", "updated_at").
		Where(recordConditions(f)...).
		Order(goqu.C("date").Desc(), goqu.C("id").Asc()).
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
	var out []model.ExaminationRecord
	for rows.Next() {
		e, err := scanExamination(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *ExaminationRepo) GetByID(ctx context.Context, id uint64) (model.ExaminationRecord, error) {
	e, err := scanExamination(r.db.QueryRowContext(ctx, examinationSelect+" WHERE id = ?", id))
	if err != nil {
		return model.ExaminationRecord{}, translate(err)
	}
	return e, nil
}

func (r *ExaminationRepo) Create(ctx context.Context, e *model.ExaminationRecord) error {
	now := time.Now().UTC()
	e.CreatedAt, e.UpdatedAt = now, now
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO examination_records (description, status, diagnosis, date, type, animal_id, caretaker_id, veterinarian_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.Description, e.Status, e.Diagnosis, e.Date.UTC(), e.Type, e.AnimalID, e.CareTakerID, e.VeterinarianID, e.CreatedAt, e.UpdatedAt)
	if err != nil {
		return translate(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	e.ID = uint64(id)
	return nil
}

func (r *ExaminationRepo) Update(ctx context.Context, e *model.ExaminationRecord) error {
	e.UpdatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx,
		`UPDATE examination_records SET description = ?, status = ?, diagnosis = ?, date = ?, type = ?,
		 animal_id = ?, caretaker_id = ?, veterinarian_id = ?, updated_at = ? WHERE id = ?`,
		e.Description, e.Status, e.Diagnosis, e.Date.UTC(), e.Type, e.AnimalID, e.CareTakerID, e.VeterinarianID, e.UpdatedAt, e.ID)
	if err != nil {
		return translate(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the record.  Medication schedules pointing at it keep
// their row; the schema nulls the reference.
func (r *ExaminationRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM examination_records WHERE id = ?`, id)
	if err != nil {
		return translate(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanExamination(s rowScanner) (model.ExaminationRecord, error) {
	var e model.ExaminationRecord
	err := s.Scan(&e.ID, &e.Description, &e.Status, &e.Diagnosis, &e.Date, &e.Type,
		&e.AnimalID, &e.CareTakerID, &e.VeterinarianID, &e.CreatedAt, &e.UpdatedAt)
	return e, err
}
