package memory

import (
	"context"

	"github.com/iliyamo/animal-shelter/internal/model"
	"github.com/iliyamo/animal-shelter/internal/repository"
)

type animalRepo struct{ s *Store }

func (r animalRepo) List(_ context.Context, f repository.AnimalFilter) ([]model.Animal, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var matched []model.Animal
	for _, id := range sortedIDs(r.s.animals) {
		if a := r.s.animals[id]; f.Matches(a) {
			matched = append(matched, a)
		}
	}
	return paginate(matched, f.Page), int64(len(matched)), nil
}

func (r animalRepo) GetByID(_ context.Context, id uint64) (model.Animal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	a, ok := r.s.animals[id]
	if !ok {
		return model.Animal{}, repository.ErrNotFound
	}
	return a, nil
}

func (r animalRepo) Create(_ context.Context, a *model.Animal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	now := r.s.now()
	a.ID = r.s.id()
	a.CreatedAt, a.UpdatedAt = now, now
	r.s.animals[a.ID] = *a
	return nil
}

func (r animalRepo) Update(_ context.Context, a *model.Animal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	old, ok := r.s.animals[a.ID]
	if !ok {
		return repository.ErrNotFound
	}
	a.CreatedAt = old.CreatedAt
	a.UpdatedAt = r.s.now()
	r.s.animals[a.ID] = *a
	return nil
}

// Delete removes the animal with its reservations, examination records
// and medication schedules.
func (r animalRepo) Delete(_ context.Context, id uint64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.animals[id]; !ok {
		return repository.ErrNotFound
	}
	for rid, res := range r.s.reservations {
		if res.AnimalID == id {
			delete(r.s.reservations, rid)
		}
	}
	for mid, m := range r.s.medications {
		if m.AnimalID == id {
			delete(r.s.medications, mid)
		}
	}
	for eid, e := range r.s.examinations {
		if e.AnimalID == id {
			delete(r.s.examinations, eid)
		}
	}
	delete(r.s.animals, id)
	return nil
}
