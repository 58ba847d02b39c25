package dto

import (
	"time"

	"github.com/iliyamo/animal-shelter/internal/model"
)

// AnimalDTO is the response shape of an animal.
type AnimalDTO struct {
	ID                uint64    `json:"id"`
	Name              string    `json:"name"`
	Breed             string    `json:"breed"`
	Age               int       `json:"age"`
	Sex               string    `json:"sex"`
	Size              string    `json:"size"`
	Species           string    `json:"species"`
	Weight            float64   `json:"weight"`
	Health            string    `json:"health"`
	PhotoURL          string    `json:"photo_url"`
	Description       string    `json:"description"`
	HasMedicalIssues  bool      `json:"has_medical_issues"`
	HasBehaviorIssues bool      `json:"has_behavior_issues"`
	DateFound         time.Time `json:"date_found"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// AnimalCreate is the body of POST /api/animals.
type AnimalCreate struct {
	Name              string    `json:"name" validate:"required,max=120"`
	Breed             string    `json:"breed" validate:"max=120"`
	Age               int       `json:"age" validate:"gte=0,lte=100"`
	Sex               string    `json:"sex" validate:"omitempty,oneof=MALE FEMALE UNKNOWN"`
	Size              string    `json:"size" validate:"omitempty,oneof=SMALL MEDIUM LARGE"`
	Species           string    `json:"species" validate:"required,max=80"`
	Weight            float64   `json:"weight" validate:"gte=0"`
	Health            string    `json:"health" validate:"max=255"`
	PhotoURL          string    `json:"photo_url" validate:"omitempty,url,max=512"`
	Description       string    `json:"description"`
	HasMedicalIssues  bool      `json:"has_medical_issues"`
	HasBehaviorIssues bool      `json:"has_behavior_issues"`
	DateFound         time.Time `json:"date_found" validate:"required"`
}

// AnimalUpdate is the patchable projection of an animal.  Every field is
// present so a patch document always lands on a complete value.
type AnimalUpdate struct {
	Name              string    `json:"name" validate:"required,max=120"`
	Breed             string    `json:"breed" validate:"max=120"`
	Age               int       `json:"age" validate:"gte=0,lte=100"`
	Sex               string    `json:"sex" validate:"oneof=MALE FEMALE UNKNOWN"`
	Size              string    `json:"size" validate:"oneof=SMALL MEDIUM LARGE"`
	Species           string    `json:"species" validate:"required,max=80"`
	Weight            float64   `json:"weight" validate:"gte=0"`
	Health            string    `json:"health" validate:"max=255"`
	PhotoURL          string    `json:"photo_url" validate:"omitempty,url,max=512"`
	Description       string    `json:"description"`
	HasMedicalIssues  bool      `json:"has_medical_issues"`
	HasBehaviorIssues bool      `json:"has_behavior_issues"`
	DateFound         time.Time `json:"date_found" validate:"required"`
}

func ToAnimalDTO(a model.Animal) AnimalDTO {
	return AnimalDTO{
		ID:                a.ID,
		Name:              a.Name,
		Breed:             a.Breed,
		Age:               a.Age,
		Sex:               a.Sex,
		Size:              a.Size,
		Species:           a.Species,
		Weight:            a.Weight,
		Health:            a.Health,
		PhotoURL:          a.PhotoURL,
		Description:       a.Description,
		HasMedicalIssues:  a.HasMedicalIssues,
		HasBehaviorIssues: a.HasBehaviorIssues,
		DateFound:         a.DateFound,
		CreatedAt:         a.CreatedAt,
		UpdatedAt:         a.UpdatedAt,
	}
}

func ToAnimalDTOs(as []model.Animal) []AnimalDTO { return mapSlice(as, ToAnimalDTO) }

// AnimalFromCreate builds a new animal.  Sex and size default to
// UNKNOWN and MEDIUM.
func AnimalFromCreate(c AnimalCreate) model.Animal {
	a := model.Animal{
		Name:              c.Name,
		Breed:             c.Breed,
		Age:               c.Age,
		Sex:               c.Sex,
		Size:              c.Size,
		Species:           c.Species,
		Weight:            c.Weight,
		Health:            c.Health,
		PhotoURL:          c.PhotoURL,
		Description:       c.Description,
		HasMedicalIssues:  c.HasMedicalIssues,
		HasBehaviorIssues: c.HasBehaviorIssues,
		DateFound:         c.DateFound,
	}
	if a.Sex == "" {
		a.Sex = model.SexUnknown
	}
	if a.Size == "" {
		a.Size = model.SizeMedium
	}
	return a
}

func ToAnimalUpdate(a model.Animal) AnimalUpdate {
	return AnimalUpdate{
		Name:              a.Name,
		Breed:             a.Breed,
		Age:               a.Age,
		Sex:               a.Sex,
		Size:              a.Size,
		Species:           a.Species,
		Weight:            a.Weight,
		Health:            a.Health,
		PhotoURL:          a.PhotoURL,
		Description:       a.Description,
		HasMedicalIssues:  a.HasMedicalIssues,
		HasBehaviorIssues: a.HasBehaviorIssues,
		DateFound:         a.DateFound,
	}
}

// ApplyAnimalUpdate copies the projection onto a.  ID and timestamps are
// left untouched.
func ApplyAnimalUpdate(a *model.Animal, u AnimalUpdate) {
	a.Name = u.Name
	a.Breed = u.Breed
	a.Age = u.Age
	a.Sex = u.Sex
	a.Size = u.Size
	a.Species = u.Species
	a.Weight = u.Weight
	a.Health = u.Health
	a.PhotoURL = u.PhotoURL
	a.Description = u.Description
	a.HasMedicalIssues = u.HasMedicalIssues
	a.HasBehaviorIssues = u.HasBehaviorIssues
	a.DateFound = u.DateFound
}
