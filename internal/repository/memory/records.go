package memory

import (
	"context"
	"sort"

	"github.com/iliyamo/animal-shelter/internal/model"
	"github.com/iliyamo/animal-shelter/internal/repository"
)

type reservationRepo struct{ s *Store }

func (r reservationRepo) List(_ context.Context, f repository.ReservationFilter) ([]model.Reservation, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []model.Reservation
	for _, res := range r.s.reservations {
		if f.Matches(res) {
			out = append(out, res)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartDate.Equal(out[j].StartDate) {
			return out[i].StartDate.Before(out[j].StartDate)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r reservationRepo) GetByID(_ context.Context, id uint64) (model.Reservation, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	res, ok := r.s.reservations[id]
	if !ok {
		return model.Reservation{}, repository.ErrNotFound
	}
	return res, nil
}

// refs checks the reservation's foreign keys.  Callers hold the lock.
func (r reservationRepo) refs(res *model.Reservation) error {
	if _, ok := r.s.animals[res.AnimalID]; !ok {
		return repository.ErrReferenced
	}
	if _, ok := r.s.users[res.VolunteerID]; !ok {
		return repository.ErrReferenced
	}
	return nil
}

func (r reservationRepo) Create(_ context.Context, res *model.Reservation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.refs(res); err != nil {
		return err
	}
	now := r.s.now()
	res.ID = r.s.id()
	res.CreatedAt, res.UpdatedAt = now, now
	r.s.reservations[res.ID] = *res
	return nil
}

func (r reservationRepo) Update(_ context.Context, res *model.Reservation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	old, ok := r.s.reservations[res.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if err := r.refs(res); err != nil {
		return err
	}
	res.CreatedAt = old.CreatedAt
	res.UpdatedAt = r.s.now()
	r.s.reservations[res.ID] = *res
	return nil
}

func (r reservationRepo) Delete(_ context.Context, id uint64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.reservations[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.reservations, id)
	return nil
}

type examinationRepo struct{ s *Store }

func (r examinationRepo) List(_ context.Context, f repository.RecordFilter) ([]model.ExaminationRecord, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []model.ExaminationRecord
	for _, e := range r.s.examinations {
		if f.MatchesExamination(e) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r examinationRepo) GetByID(_ context.Context, id uint64) (model.ExaminationRecord, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	e, ok := r.s.examinations[id]
	if !ok {
		return model.ExaminationRecord{}, repository.ErrNotFound
	}
	return e, nil
}

func (r examinationRepo) refs(e *model.ExaminationRecord) error {
	if _, ok := r.s.animals[e.AnimalID]; !ok {
		return repository.ErrReferenced
	}
	for _, uid := range []uint64{e.CareTakerID, e.VeterinarianID} {
		if _, ok := r.s.users[uid]; !ok {
			return repository.ErrReferenced
		}
	}
	return nil
}

func (r examinationRepo) Create(_ context.Context, e *model.ExaminationRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.refs(e); err != nil {
		return err
	}
	now := r.s.now()
	e.ID = r.s.id()
	e.CreatedAt, e.UpdatedAt = now, now
	r.s.examinations[e.ID] = *e
	return nil
}

func (r examinationRepo) Update(_ context.Context, e *model.ExaminationRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	old, ok := r.s.examinations[e.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if err := r.refs(e); err != nil {
		return err
	}
	e.CreatedAt = old.CreatedAt
	e.UpdatedAt = r.s.now()
	r.s.examinations[e.ID] = *e
	return nil
}

// Delete removes the record and clears it from any medication schedule
// that pointed at it.
func (r examinationRepo) Delete(_ context.Context, id uint64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.examinations[id]; !ok {
		return repository.ErrNotFound
	}
	for mid, m := range r.s.medications {
		if m.ExaminationRecordID != nil && *m.ExaminationRecordID == id {
			m.ExaminationRecordID = nil
			r.s.medications[mid] = m
		}
	}
	delete(r.s.examinations, id)
	return nil
}

type medicationRepo struct{ s *Store }

func (r medicationRepo) List(_ context.Context, f repository.RecordFilter) ([]model.MedicationSchedule, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []model.MedicationSchedule
	for _, m := range r.s.medications {
		if f.MatchesMedication(m) {
			out = append(out, cloneMedication(m))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartDate.Equal(out[j].StartDate) {
			return out[i].StartDate.Before(out[j].StartDate)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r medicationRepo) GetByID(_ context.Context, id uint64) (model.MedicationSchedule, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	m, ok := r.s.medications[id]
	if !ok {
		return model.MedicationSchedule{}, repository.ErrNotFound
	}
	return cloneMedication(m), nil
}

func (r medicationRepo) refs(m *model.MedicationSchedule) error {
	if _, ok := r.s.animals[m.AnimalID]; !ok {
		return repository.ErrReferenced
	}
	if _, ok := r.s.users[m.VeterinarianID]; !ok {
		return repository.ErrReferenced
	}
	if m.ExaminationRecordID != nil {
		if _, ok := r.s.examinations[*m.ExaminationRecordID]; !ok {
			return repository.ErrReferenced
		}
	}
	return nil
}

func (r medicationRepo) Create(_ context.Context, m *model.MedicationSchedule) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.refs(m); err != nil {
		return err
	}
	now := r.s.now()
	m.ID = r.s.id()
	m.CreatedAt, m.UpdatedAt = now, now
	r.s.medications[m.ID] = cloneMedication(*m)
	return nil
}

func (r medicationRepo) Update(_ context.Context, m *model.MedicationSchedule) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	old, ok := r.s.medications[m.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if err := r.refs(m); err != nil {
		return err
	}
	m.CreatedAt = old.CreatedAt
	m.UpdatedAt = r.s.now()
	r.s.medications[m.ID] = cloneMedication(*m)
	return nil
}

func (r medicationRepo) Delete(_ context.Context, id uint64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.medications[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.medications, id)
	return nil
}
