package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/iliyamo/animal-shelter/internal/model"
	"github.com/iliyamo/animal-shelter/internal/queue"
	"github.com/iliyamo/animal-shelter/internal/repository"
)

type mockAnimalRepo struct{ mock.Mock }

func (m *mockAnimalRepo) List(ctx context.Context, f repository.AnimalFilter) ([]model.Animal, int64, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]model.Animal), args.Get(1).(int64), args.Error(2)
}

func (m *mockAnimalRepo) GetByID(ctx context.Context, id uint64) (model.Animal, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Animal), args.Error(1)
}

func (m *mockAnimalRepo) Create(ctx context.Context, a *model.Animal) error {
	return m.Called(ctx, a).Error(0)
}

func (m *mockAnimalRepo) Update(ctx context.Context, a *model.Animal) error {
	return m.Called(ctx, a).Error(0)
}

func (m *mockAnimalRepo) Delete(ctx context.Context, id uint64) error {
	return m.Called(ctx, id).Error(0)
}

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) List(ctx context.Context, f repository.UserFilter) ([]model.User, int64, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]model.User), args.Get(1).(int64), args.Error(2)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *mockUserRepo) GetByPhone(ctx context.Context, phone string) (model.User, error) {
	args := m.Called(ctx, phone)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *mockUserRepo) Create(ctx context.Context, u *model.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockUserRepo) Update(ctx context.Context, u *model.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockUserRepo) Delete(ctx context.Context, id uint64) error {
	return m.Called(ctx, id).Error(0)
}

type mockPublisher struct{ mock.Mock }

func (m *mockPublisher) PublishReservation(ctx context.Context, ev queue.ReservationEvent) error {
	return m.Called(ctx, ev).Error(0)
}
