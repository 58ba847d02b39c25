package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"

	"github.com/iliyamo/animal-shelter/internal/model"
)

const userSelect = `SELECT id, full_name, email, phone, photo_url, password_hash, role,
	is_verified, volunteer_status, created_at, updated_at FROM users`

var userColumns = []any{
	"id", "full_name", "email", "phone", "photo_url", "password_hash", "role",
	"is_verified", "volunteer_status", "created_at", "updated_at",
}

// UserRepo persists users of every role in the single `users` table.
// The role column is the discriminator; volunteer columns are NULL for
// other roles.
type UserRepo struct{ db *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{db: db} }

// List returns one page of users matching f and the total match count.
func (r *UserRepo) List(ctx context.Context, f UserFilter) ([]model.User, int64, error) {
	f.Page = f.Page.Normalize()
	var where []exp.Expression
	if f.Email != "" {
		where = append(where, goqu.Func("LOWER", goqu.C("email")).Like("%"+likeEscaper.Replace(strings.ToLower(f.Email))+"%"))
	}
	if f.Phone != "" {
		where = append(where, goqu.C("phone").Like("%"+likeEscaper.Replace(f.Phone)+"%"))
	}
	if f.Role != "" {
		where = append(where, goqu.C("role").Eq(string(f.Role)))
	}

	countSQL, countArgs, err := dialect.From("users").Select(goqu.COUNT("*")).Where(where...).Prepared(true).ToSQL()
	if err != nil {
		return nil, 0, err
	}
	var total int64
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	q, args, err := dialect.From("users").
		Select(userColumns...).
		Where(where...).
		Order(goqu.C("id").Asc()).
		Limit(uint(f.PageSize)).
		Offset(uint(f.Offset())).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, 0, err
	}
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var out []model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, userSelect+" WHERE id=? LIMIT 1", id))
	return u, translate(err)
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	u, err := scanUser(r.db.QueryRowContext(ctx, userSelect+" WHERE email=? LIMIT 1", email))
	return u, translate(err)
}

// GetByPhone fetches a user by phone number.
func (r *UserRepo) GetByPhone(ctx context.Context, phone string) (model.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, userSelect+" WHERE phone=? LIMIT 1", strings.TrimSpace(phone)))
	return u, translate(err)
}

// Create inserts the user and sets its ID.  A duplicate email or phone
// yields a *DuplicateError naming the field.
func (r *UserRepo) Create(ctx context.Context, u *model.User) error {
	now := time.Now().UTC()
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	u.CreatedAt, u.UpdatedAt = now, now
	verified, status := volunteerColumns(u)
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO users (full_name, email, phone, photo_url, password_hash, role, is_verified, volunteer_status, created_at, updated_at)
		 VALUES (?,?,?,?,?,?,?,?,?,?)`,
		u.FullName, u.Email, u.Phone, u.PhotoURL, u.PasswordHash, string(u.Role), verified, status, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		return translate(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	u.ID = uint64(id)
	return nil
}

// Update overwrites the mutable columns.  The role never changes.
func (r *UserRepo) Update(ctx context.Context, u *model.User) error {
	u.UpdatedAt = time.Now().UTC()
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	verified, status := volunteerColumns(u)
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET full_name=?, email=?, phone=?, photo_url=?, password_hash=?, is_verified=?, volunteer_status=?, updated_at=?
		 WHERE id=?`,
		u.FullName, u.Email, u.Phone, u.PhotoURL, u.PasswordHash, verified, status, u.UpdatedAt, u.ID)
	if err != nil {
		return translate(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a user.  A volunteer's reservations go with it; a
// caretaker or veterinarian still referenced by examination records or
// medication schedules is kept and ErrReferenced is returned.
func (r *UserRepo) Delete(ctx context.Context, id uint64) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()
	if _, err = tx.ExecContext(ctx, `DELETE FROM reservations WHERE volunteer_id = ?`, id); err != nil {
		return translate(err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		err = translate(err)
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		err = ErrNotFound
		return err
	}
	return nil
}

func volunteerColumns(u *model.User) (sql.NullBool, sql.NullString) {
	if u.Role != model.RoleVolunteer || u.Volunteer == nil {
		return sql.NullBool{}, sql.NullString{}
	}
	return sql.NullBool{Bool: u.Volunteer.IsVerified, Valid: true},
		sql.NullString{String: u.Volunteer.Status, Valid: true}
}

// scanUser reads a users row and resolves the role variant.
func scanUser(s rowScanner) (model.User, error) {
	var (
		u        model.User
		role     string
		verified sql.NullBool
		status   sql.NullString
	)
	if err := s.Scan(&u.ID, &u.FullName, &u.Email, &u.Phone, &u.PhotoURL, &u.PasswordHash, &role,
		&verified, &status, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return model.User{}, err
	}
	u.Role = model.Role(role)
	if u.Role == model.RoleVolunteer {
		u.Volunteer = &model.VolunteerDetails{IsVerified: verified.Bool, Status: status.String}
		if u.Volunteer.Status == "" {
			u.Volunteer.Status = model.VolunteerPending
		}
	}
	return u, nil
}
