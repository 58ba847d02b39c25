// Package memory is an in-process implementation of the repository
// interfaces.  It keeps every entity in maps guarded by one RWMutex and
// mirrors the MySQL schema's rules: unique email and phone, cascading
// animal and volunteer deletes, restricted caretaker and veterinarian
// deletes, and foreign key checks on insert.
package memory

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/iliyamo/animal-shelter/internal/model"
	"github.com/iliyamo/animal-shelter/internal/repository"
)

// Store holds all shelter data in memory.  The zero value is not usable;
// call New.
type Store struct {
	mu     sync.RWMutex
	nextID uint64
	now    func() time.Time

	animals      map[uint64]model.Animal
	users        map[uint64]model.User
	reservations map[uint64]model.Reservation
	examinations map[uint64]model.ExaminationRecord
	medications  map[uint64]model.MedicationSchedule
}

// New returns an empty store.
func New() *Store {
	return &Store{
		now:          func() time.Time { return time.Now().UTC() },
		animals:      map[uint64]model.Animal{},
		users:        map[uint64]model.User{},
		reservations: map[uint64]model.Reservation{},
		examinations: map[uint64]model.ExaminationRecord{},
		medications:  map[uint64]model.MedicationSchedule{},
	}
}

// Set exposes the store through the repository interfaces.
func (s *Store) Set() repository.Set {
	return repository.Set{
		Animals:      animalRepo{s},
		Users:        userRepo{s},
		Reservations: reservationRepo{s},
		Examinations: examinationRepo{s},
		Medications:  medicationRepo{s},
	}
}

// id hands out ids from one sequence shared by every table.  Callers
// hold the write lock.
func (s *Store) id() uint64 {
	s.nextID++
	return s.nextID
}

// sortedIDs returns map keys in ascending order.
func sortedIDs[V any](m map[uint64]V) []uint64 {
	ids := make([]uint64, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// paginate cuts one normalized page out of items.
func paginate[T any](items []T, p repository.Page) []T {
	p = p.Normalize()
	off := p.Offset()
	if off < 0 || off >= len(items) {
		return []T{}
	}
	end := off + p.PageSize
	if end > len(items) {
		end = len(items)
	}
	return items[off:end]
}

func cloneUser(u model.User) model.User {
	if u.Volunteer != nil {
		v := *u.Volunteer
		u.Volunteer = &v
	}
	return u
}

func cloneMedication(m model.MedicationSchedule) model.MedicationSchedule {
	if m.ExaminationRecordID != nil {
		id := *m.ExaminationRecordID
		m.ExaminationRecordID = &id
	}
	return m
}

func normalizeEmail(e string) string { return strings.ToLower(strings.TrimSpace(e)) }
