package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/animal-shelter/internal/model"
)

func TestToUserDTO_VolunteerFieldsOnlyForVolunteers(t *testing.T) {
	vol := model.NewUser(model.RoleVolunteer, "Ann", "ann@example.com", "1")
	vol.Volunteer.IsVerified = true

	out := ToUserDTO(vol)
	require.NotNil(t, out.IsVerified)
	assert.True(t, *out.IsVerified)
	assert.Equal(t, model.VolunteerPending, out.Status)

	vet := ToUserDTO(model.NewUser(model.RoleVeterinarian, "Vet", "vet@example.com", "2"))
	raw, err := json.Marshal(vet)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "is_verified")
	assert.NotContains(t, string(raw), `"status"`)
	assert.Contains(t, string(raw), `"full_name":"Vet"`)
}

func TestToReservationDTO_DerivesStatus(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	r := model.Reservation{
		StartDate: now.Add(-3 * time.Hour),
		EndDate:   now.Add(-time.Hour),
		IsEnded:   false,
	}
	assert.Equal(t, string(model.ReservationMissed), ToReservationDTO(r, now).Status)

	r.IsEnded = true
	assert.Equal(t, string(model.ReservationCompleted), ToReservationDTO(r, now).Status)
}

func TestAnimalFromCreate_Defaults(t *testing.T) {
	a := AnimalFromCreate(AnimalCreate{Name: "Rex", Species: "dog"})
	assert.Equal(t, model.SexUnknown, a.Sex)
	assert.Equal(t, model.SizeMedium, a.Size)
}

func TestAnimalUpdateRoundTrip(t *testing.T) {
	a := model.Animal{ID: 4, Name: "Rex", Breed: "Labrador", Age: 3, Sex: model.SexMale, Size: model.SizeLarge}
	u := ToAnimalUpdate(a)
	u.Age = 4

	ApplyAnimalUpdate(&a, u)
	assert.EqualValues(t, 4, a.ID)
	assert.Equal(t, 4, a.Age)
	assert.Equal(t, "Labrador", a.Breed)
}

func TestNewPage_EmptyItemsEncodeAsList(t *testing.T) {
	raw, err := json.Marshal(NewPage[AnimalDTO](nil, 0, 1, 20))
	require.NoError(t, err)
	assert.JSONEq(t, `{"items":[],"total":0,"page":1,"page_size":20}`, string(raw))
}
