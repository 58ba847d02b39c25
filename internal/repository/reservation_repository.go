package repository

import (
    "context"
    "database/sql"
    "time"

    "github.com/doug-martin/goqu/v9"
    "github.com/doug-martin/goqu/v9/exp"

    "github.com/iliyamo/animal-shelter/internal/model"
)

// ReservationRepo provides CRUD operations for reservations.  A
// reservation books a time window with one animal for one volunteer.
// The derived status is never stored; only the approval and ended flags
// are.  All timestamps are stored in UTC.
type ReservationRepo struct {
    db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

const reservationSelect = `SELECT id, start_date, end_date, is_approved, is_ended, volunteer_id, animal_id, created_at, updated_at FROM reservations`

// List returns reservations matching the optional volunteer and animal
// constraints ordered by start date.
func (r *ReservationRepo) List(ctx context.Context, f ReservationFilter) ([]model.Reservation, error) {
    var where []exp.Expression
    if f.VolunteerID != 0 {
        where = append(where, goqu.C("volunteer_id").Eq(f.VolunteerID))
    }
    if f.AnimalID != 0 {
        where = append(where, goqu.C("animal_id").Eq(f.AnimalID))
    }
    q, args, err := dialect.From("reservations").
        Select("id", "start_date", "end_date", "is_approved", "is_ended",
            "volunteer_id", "animal_id", "created_at", "updated_at").
        Where(where...).
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
    var out []model.Reservation
    for rows.Next() {
        res, err := scanReservation(rows)
        if err != nil {
            return nil, err
        }
        out = append(out, res)
    }
    return out, rows.Err()
}

// GetByID loads one reservation or returns ErrNotFound.
func (r *ReservationRepo) GetByID(ctx context.Context, id uint64) (model.Reservation, error) {
    res, err := scanReservation(r.db.QueryRowContext(ctx, reservationSelect+" WHERE id = ?", id))
    if err != nil {
        return model.Reservation{}, translate(err)
    }
    return res, nil
}

// Create inserts the reservation.  An unknown volunteer or animal id
// surfaces as ErrReferenced from the foreign key check.
func (r *ReservationRepo) Create(ctx context.Context, res *model.Reservation) error {
    now := time.Now().UTC()
    res.CreatedAt, res.UpdatedAt = now, now
    const q = `INSERT INTO reservations (start_date, end_date, is_approved, is_ended, volunteer_id, animal_id, created_at, updated_at)
               VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
    result, err := r.db.ExecContext(ctx, q,
        res.StartDate.UTC(), res.EndDate.UTC(), res.IsApproved, res.IsEnded,
        res.VolunteerID, res.AnimalID, res.CreatedAt, res.UpdatedAt)
    if err != nil {
        return translate(err)
    }
    id, err := result.LastInsertId()
    if err != nil {
        return err
    }
    res.ID = uint64(id)
    return nil
}

// Update overwrites the reservation's mutable columns.
func (r *ReservationRepo) Update(ctx context.Context, res *model.Reservation) error {
    res.UpdatedAt = time.Now().UTC()
    const q = `UPDATE reservations SET start_date = ?, end_date = ?, is_approved = ?, is_ended = ?,
               volunteer_id = ?, animal_id = ?, updated_at = ? WHERE id = ?`
    result, err := r.db.ExecContext(ctx, q,
        res.StartDate.UTC(), res.EndDate.UTC(), res.IsApproved, res.IsEnded,
        res.VolunteerID, res.AnimalID, res.UpdatedAt, res.ID)
    if err != nil {
        return translate(err)
    }
    if n, _ := result.RowsAffected(); n == 0 {
        return ErrNotFound
    }
    return nil
}

// Delete removes a reservation.
func (r *ReservationRepo) Delete(ctx context.Context, id uint64) error {
    result, err := r.db.ExecContext(ctx, `DELETE FROM reservations WHERE id = ?`, id)
    if err != nil {
        return translate(err)
    }
    if n, _ := result.RowsAffected(); n == 0 {
        return ErrNotFound
    }
    return nil
}

func scanReservation(s rowScanner) (model.Reservation, error) {
    var res model.Reservation
    err := s.Scan(&res.ID, &res.StartDate, &res.EndDate, &res.IsApproved, &res.IsEnded,
        &res.VolunteerID, &res.AnimalID, &res.CreatedAt, &res.UpdatedAt)
    return res, err
}
