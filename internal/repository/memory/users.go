package memory

import (
	"context"
	"strings"

	"github.com/iliyamo/animal-shelter/internal/model"
	"github.com/iliyamo/animal-shelter/internal/repository"
)

type userRepo struct{ s *Store }

func (r userRepo) List(_ context.Context, f repository.UserFilter) ([]model.User, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var matched []model.User
	for _, id := range sortedIDs(r.s.users) {
		if u := r.s.users[id]; f.Matches(u) {
			matched = append(matched, cloneUser(u))
		}
	}
	return paginate(matched, f.Page), int64(len(matched)), nil
}

func (r userRepo) GetByID(_ context.Context, id uint64) (model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return model.User{}, repository.ErrNotFound
	}
	return cloneUser(u), nil
}

func (r userRepo) GetByEmail(_ context.Context, email string) (model.User, error) {
	email = normalizeEmail(email)
	return r.find(func(u model.User) bool { return u.Email == email })
}

func (r userRepo) GetByPhone(_ context.Context, phone string) (model.User, error) {
	phone = strings.TrimSpace(phone)
	return r.find(func(u model.User) bool { return u.Phone == phone })
}

func (r userRepo) find(match func(model.User) bool) (model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if match(u) {
			return cloneUser(u), nil
		}
	}
	return model.User{}, repository.ErrNotFound
}

// unique reports the first unique field u collides on.  Callers hold
// the lock.
func (r userRepo) unique(u *model.User) error {
	for id, other := range r.s.users {
		if id == u.ID {
			continue
		}
		if other.Email == u.Email {
			return &repository.DuplicateError{Field: "email"}
		}
		if other.Phone == u.Phone {
			return &repository.DuplicateError{Field: "phone"}
		}
	}
	return nil
}

func (r userRepo) Create(_ context.Context, u *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u.Email = normalizeEmail(u.Email)
	if err := r.unique(u); err != nil {
		return err
	}
	now := r.s.now()
	u.ID = r.s.id()
	u.CreatedAt, u.UpdatedAt = now, now
	r.s.users[u.ID] = cloneUser(*u)
	return nil
}

func (r userRepo) Update(_ context.Context, u *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	old, ok := r.s.users[u.ID]
	if !ok {
		return repository.ErrNotFound
	}
	u.Email = normalizeEmail(u.Email)
	if err := r.unique(u); err != nil {
		return err
	}
	u.Role = old.Role
	u.CreatedAt = old.CreatedAt
	u.UpdatedAt = r.s.now()
	r.s.users[u.ID] = cloneUser(*u)
	return nil
}

// Delete cascades a volunteer's reservations and refuses to remove a
// caretaker or veterinarian still named on a record or schedule.
func (r userRepo) Delete(_ context.Context, id uint64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[id]; !ok {
		return repository.ErrNotFound
	}
	for _, e := range r.s.examinations {
		if e.CareTakerID == id || e.VeterinarianID == id {
			return repository.ErrReferenced
		}
	}
	for _, m := range r.s.medications {
		if m.VeterinarianID == id {
			return repository.ErrReferenced
		}
	}
	for rid, res := range r.s.reservations {
		if res.VolunteerID == id {
			delete(r.s.reservations, rid)
		}
	}
	delete(r.s.users, id)
	return nil
}
