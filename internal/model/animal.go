package model

import "time"

// Sex values accepted for animals.
const (
    SexMale    = "MALE"
    SexFemale  = "FEMALE"
    SexUnknown = "UNKNOWN"
)

// Size values accepted for animals.
const (
    SizeSmall  = "SMALL"
    SizeMedium = "MEDIUM"
    SizeLarge  = "LARGE"
)

// Animal represents an animal housed by the shelter.  It corresponds
// to a row in the `animals` table.  Reservations, examination records
// and medication schedules reference an animal by its ID and are
// removed together with it.
//
// Fields:
//  ID                – primary key identifier, immutable once created.
//  Name              – name given by the shelter.
//  Breed             – breed, matched exactly by list filters.
//  Age               – age in whole years.
//  Sex               – MALE, FEMALE or UNKNOWN.
//  Size              – SMALL, MEDIUM or LARGE.
//  Species           – species (dog, cat, ...).
//  Weight            – weight in kilograms.
//  Health            – free text health summary.
//  PhotoURL          – URL of the profile photo.
//  Description       – free text description.
//  HasMedicalIssues  – flag for animals needing medical attention.
//  HasBehaviorIssues – flag for animals with behavioral problems.
//  DateFound         – day the animal was found or surrendered.
//  CreatedAt         – creation timestamp.
//  UpdatedAt         – last update timestamp.
type Animal struct {
    ID                uint64    // animals.id
    Name              string    // animals.name
    Breed             string    // animals.breed
    Age               int       // animals.age
    Sex               string    // animals.sex
    Size              string    // animals.size
    Species           string    // animals.species
    Weight            float64   // animals.weight
    Health            string    // animals.health
    PhotoURL          string    // animals.photo_url
    Description       string    // animals.description
    HasMedicalIssues  bool      // animals.has_medical_issues
    HasBehaviorIssues bool      // animals.has_behavior_issues
    DateFound         time.Time // animals.date_found
    CreatedAt         time.Time // animals.created_at
    UpdatedAt         time.Time // animals.updated_at
}
