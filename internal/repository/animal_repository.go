package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/mysql" // registers the mysql dialect
	"github.com/doug-martin/goqu/v9/exp"

	"github.com/iliyamo/animal-shelter/internal/model"
)

// dialect builds MySQL statements with `?` placeholders.  Dynamic
// queries (filters, partial column sets) go through goqu; fixed
// statements are written by hand.
var dialect = goqu.Dialect("mysql")

var animalColumns = []any{
	"id", "name", "breed", "age", "sex", "size", "species", "weight", "health",
	"photo_url", "description", "has_medical_issues", "has_behavior_issues",
	"date_found", "created_at", "updated_at",
}

// likeEscaper escapes LIKE wildcards in user supplied search terms.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// AnimalRepo encapsulates all database queries related to animals.
type AnimalRepo struct {
	db *sql.DB
}

// NewAnimalRepo constructs an AnimalRepo with the provided DB handle.
func NewAnimalRepo(db *sql.DB) *AnimalRepo {
	return &AnimalRepo{db: db}
}

// animalConditions turns the set filters into WHERE expressions.
func animalConditions(f AnimalFilter) []exp.Expression {
	var where []exp.Expression
	if f.MinAge != nil {
		where = append(where, goqu.C("age").Gte(*f.MinAge))
	}
	if f.MaxAge != nil {
		where = append(where, goqu.C("age").Lte(*f.MaxAge))
	}
	if f.Breed != "" {
		where = append(where, goqu.C("breed").Eq(f.Breed))
	}
	if f.Sex != "" {
		where = append(where, goqu.C("sex").Eq(f.Sex))
	}
	if f.Species != "" {
		where = append(where, goqu.C("species").Eq(f.Species))
	}
	if f.MaxWeight != nil {
		where = append(where, goqu.C("weight").Lte(*f.MaxWeight))
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		where = append(where, goqu.Func("LOWER", goqu.C("name")).Like("%"+likeEscaper.Replace(strings.ToLower(s))+"%"))
	}
	return where
}

// List returns one page of animals matching f together with the total
// number of matching rows.
func (r *AnimalRepo) List(ctx context.Context, f AnimalFilter) ([]model.Animal, int64, error) {
	f.Page = f.Page.Normalize()
	where := animalConditions(f)

	countSQL, countArgs, err := dialect.From("animals").
		Select(goqu.COUNT("*")).
		Where(where...).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, 0, err
	}
	var total int64
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	dataSQL, args, err := dialect.From("animals").
		Select(animalColumns...).
		Where(where...).
		Order(goqu.C("id").Asc()).
		Limit(uint(f.PageSize)).
		Offset(uint(f.Offset())).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, 0, err
	}
	rows, err := r.db.QueryContext(ctx, dataSQL, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]model.Animal, 0, f.PageSize)
	for rows.Next() {
		a, err := scanAnimal(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// GetByID fetches an animal by its ID.  It returns ErrNotFound if no row
// is found.
func (r *AnimalRepo) GetByID(ctx context.Context, id uint64) (model.Animal, error) {
	q, args, err := dialect.From("animals").
		Select(animalColumns...).
		Where(goqu.C("id").Eq(id)).
		Prepared(true).
		ToSQL()
	if err != nil {
		return model.Animal{}, err
	}
	a, err := scanAnimal(r.db.QueryRowContext(ctx, q, args...))
	if err != nil {
		return model.Animal{}, translate(err)
	}
	return a, nil
}

// Create inserts a new animal and populates its ID and timestamps.
func (r *AnimalRepo) Create(ctx context.Context, a *model.Animal) error {
	now := time.Now().UTC()
	a.CreatedAt, a.UpdatedAt = now, now
	rec := animalRecord(a)
	rec["created_at"] = a.CreatedAt
	q, args, err := dialect.Insert("animals").Rows(rec).Prepared(true).ToSQL()
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return translate(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	a.ID = uint64(id)
	return nil
}

// Update overwrites every mutable column of the animal.  The ID never
// changes.  ErrNotFound is returned when no row has the ID.
func (r *AnimalRepo) Update(ctx context.Context, a *model.Animal) error {
	a.UpdatedAt = time.Now().UTC()
	q, args, err := dialect.Update("animals").
		Set(animalRecord(a)).
		Where(goqu.C("id").Eq(a.ID)).
		Prepared(true).
		ToSQL()
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return translate(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes an animal and its dependent reservations, medication
// schedules and examination records in one transaction.
func (r *AnimalRepo) Delete(ctx context.Context, id uint64) (err error) {
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
	for _, q := range []string{
		`DELETE FROM reservations WHERE animal_id = ?`,
		`DELETE FROM medication_schedules WHERE animal_id = ?`,
		`DELETE FROM examination_records WHERE animal_id = ?`,
	} {
		if _, err = tx.ExecContext(ctx, q, id); err != nil {
			return translate(err)
		}
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM animals WHERE id = ?`, id)
	if err != nil {
		return translate(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		err = ErrNotFound
		return err
	}
	return nil
}

func animalRecord(a *model.Animal) goqu.Record {
	return goqu.Record{
		"name":                a.Name,
		"breed":               a.Breed,
		"age":                 a.Age,
		"sex":                 a.Sex,
		"size":                a.Size,
		"species":             a.Species,
		"weight":              a.Weight,
		"health":              a.Health,
		"photo_url":           a.PhotoURL,
		"description":         a.Description,
		"has_medical_issues":  a.HasMedicalIssues,
		"has_behavior_issues": a.HasBehaviorIssues,
		"date_found":          a.DateFound,
		"updated_at":          a.UpdatedAt,
	}
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanAnimal(s rowScanner) (model.Animal, error) {
	var a model.Animal
	err := s.Scan(
		&a.ID, &a.Name, &a.Breed, &a.Age, &a.Sex, &a.Size, &a.Species, &a.Weight, &a.Health,
		&a.PhotoURL, &a.Description, &a.HasMedicalIssues, &a.HasBehaviorIssues,
		&a.DateFound, &a.CreatedAt, &a.UpdatedAt,
	)
	return a, err
}
