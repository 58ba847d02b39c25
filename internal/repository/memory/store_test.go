package memory

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/animal-shelter/internal/model"
	"github.com/iliyamo/animal-shelter/internal/repository"
)

func seedAnimals(t *testing.T, repo repository.AnimalRepository, animals ...model.Animal) {
	t.Helper()
	for i := range animals {
		require.NoError(t, repo.Create(context.Background(), &animals[i]))
	}
}

func TestAnimals_BreedIsExactMatch(t *testing.T) {
	set := New().Set()
	seedAnimals(t, set.Animals,
		model.Animal{Name: "Rex", Breed: "Labrador"},
		model.Animal{Name: "Max", Breed: "Labrador Retriever"},
		model.Animal{Name: "Bo", Breed: "labrador"},
	)

	got, total, err := set.Animals.List(context.Background(), repository.AnimalFilter{Breed: "Labrador"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, got, 1)
	assert.Equal(t, "Rex", got[0].Name)
}

func TestAnimals_AgeRangeInclusive(t *testing.T) {
	set := New().Set()
	for _, age := range []int{1, 2, 3, 5, 6} {
		seedAnimals(t, set.Animals, model.Animal{Name: "a", Age: age})
	}
	minAge, maxAge := 2, 5

	got, _, err := set.Animals.List(context.Background(), repository.AnimalFilter{MinAge: &minAge, MaxAge: &maxAge})
	require.NoError(t, err)
	var ages []int
	for _, a := range got {
		ages = append(ages, a.Age)
	}
	assert.Equal(t, []int{2, 3, 5}, ages)
}

func TestAnimals_Pagination(t *testing.T) {
	set := New().Set()
	for i := 0; i < 5; i++ {
		seedAnimals(t, set.Animals, model.Animal{Name: "a"})
	}

	got, total, err := set.Animals.List(context.Background(), repository.AnimalFilter{Page: repository.Page{Page: 2, PageSize: 2}})
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	assert.Len(t, got, 2)

	got, _, err = set.Animals.List(context.Background(), repository.AnimalFilter{Page: repository.Page{Page: 9, PageSize: 2}})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestUsers_DuplicatePhone(t *testing.T) {
	set := New().Set()
	ctx := context.Background()
	first := model.NewUser(model.RoleVolunteer, "Ann", "ann@example.com", "555-0100")
	require.NoError(t, set.Users.Create(ctx, &first))

	second := model.NewUser(model.RoleVolunteer, "Bob", "bob@example.com", "555-0100")
	err := set.Users.Create(ctx, &second)
	assert.ErrorIs(t, err, repository.ErrDuplicate)
	var dup *repository.DuplicateError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, "phone", dup.Field)

	third := model.NewUser(model.RoleCareTaker, "Cy", "ANN@example.com ", "555-0199")
	err = set.Users.Create(ctx, &third)
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, "email", dup.Field)
}

func TestUsers_ReturnsCopies(t *testing.T) {
	set := New().Set()
	ctx := context.Background()
	u := model.NewUser(model.RoleVolunteer, "Ann", "ann@example.com", "1")
	require.NoError(t, set.Users.Create(ctx, &u))

	got, err := set.Users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	got.Volunteer.Status = model.VolunteerActive

	again, err := set.Users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, model.VolunteerPending, again.Volunteer.Status)
}

func TestDeleteRules(t *testing.T) {
	ctx := context.Background()
	set := New().Set()

	animal := model.Animal{Name: "Rex"}
	require.NoError(t, set.Animals.Create(ctx, &animal))
	volunteer := model.NewUser(model.RoleVolunteer, "Vol", "v@example.com", "1")
	vet := model.NewUser(model.RoleVeterinarian, "Vet", "vet@example.com", "2")
	keeper := model.NewUser(model.RoleCareTaker, "Keeper", "k@example.com", "3")
	for _, u := range []*model.User{&volunteer, &vet, &keeper} {
		require.NoError(t, set.Users.Create(ctx, u))
	}

	start := time.Now().Add(time.Hour)
	res := model.Reservation{StartDate: start, EndDate: start.Add(time.Hour), VolunteerID: volunteer.ID, AnimalID: animal.ID}
	require.NoError(t, set.Reservations.Create(ctx, &res))
	exam := model.ExaminationRecord{Date: start, AnimalID: animal.ID, CareTakerID: keeper.ID, VeterinarianID: vet.ID}
	require.NoError(t, set.Examinations.Create(ctx, &exam))
	med := model.MedicationSchedule{Drug: "x", AnimalID: animal.ID, VeterinarianID: vet.ID, ExaminationRecordID: &exam.ID}
	require.NoError(t, set.Medications.Create(ctx, &med))

	assert.ErrorIs(t, set.Users.Delete(ctx, vet.ID), repository.ErrReferenced)
	assert.ErrorIs(t, set.Users.Delete(ctx, keeper.ID), repository.ErrReferenced)

	require.NoError(t, set.Users.Delete(ctx, volunteer.ID))
	_, err := set.Reservations.GetByID(ctx, res.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, set.Animals.Delete(ctx, animal.ID))
	_, err = set.Examinations.GetByID(ctx, exam.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = set.Medications.GetByID(ctx, med.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, set.Users.Delete(ctx, vet.ID))
	assert.ErrorIs(t, set.Animals.Delete(ctx, animal.ID), repository.ErrNotFound)
}

func TestReservations_UnknownAnimal(t *testing.T) {
	set := New().Set()
	res := model.Reservation{AnimalID: 404, VolunteerID: 1}
	assert.ErrorIs(t, set.Reservations.Create(context.Background(), &res), repository.ErrReferenced)
}

func TestExaminationDelete_ClearsMedicationLink(t *testing.T) {
	ctx := context.Background()
	set := New().Set()
	animal := model.Animal{Name: "Rex"}
	require.NoError(t, set.Animals.Create(ctx, &animal))
	vet := model.NewUser(model.RoleVeterinarian, "Vet", "vet@example.com", "2")
	require.NoError(t, set.Users.Create(ctx, &vet))
	exam := model.ExaminationRecord{AnimalID: animal.ID, CareTakerID: vet.ID, VeterinarianID: vet.ID}
	require.NoError(t, set.Examinations.Create(ctx, &exam))
	med := model.MedicationSchedule{AnimalID: animal.ID, VeterinarianID: vet.ID, ExaminationRecordID: &exam.ID}
	require.NoError(t, set.Medications.Create(ctx, &med))

	require.NoError(t, set.Examinations.Delete(ctx, exam.ID))
	got, err := set.Medications.GetByID(ctx, med.ID)
	require.NoError(t, err)
	assert.Nil(t, got.ExaminationRecordID)
}

func TestAnimals_HugePageIsEmpty(t *testing.T) {
	set := New().Set()
	seedAnimals(t, set.Animals, model.Animal{Name: "Rex"}, model.Animal{Name: "Max"})

	f := repository.AnimalFilter{Page: repository.Page{Page: math.MaxInt64, PageSize: 100}}
	got, total, err := set.Animals.List(context.Background(), f)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Empty(t, got)

	users, _, err := set.Users.List(context.Background(), repository.UserFilter{Page: repository.Page{Page: math.MaxInt64}})
	require.NoError(t, err)
	assert.Empty(t, users)
}
