package model

import "time"

// Role is the discriminator stored in users.role.  The set of roles is
// closed: every user row carries exactly one of the values below.
type Role string

const (
    RoleAdministrator Role = "ADMINISTRATOR"
    RoleCareTaker     Role = "CARETAKER"
    RoleVeterinarian  Role = "VETERINARIAN"
    RoleVolunteer     Role = "VOLUNTEER"
)

// Roles lists every valid role in a stable order.
var Roles = []Role{RoleAdministrator, RoleCareTaker, RoleVeterinarian, RoleVolunteer}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
    switch r {
    case RoleAdministrator, RoleCareTaker, RoleVeterinarian, RoleVolunteer:
        return true
    }
    return false
}

// Volunteer status values.  A volunteer only moves between them through
// an explicit PATCH issued by a caretaker.
const (
    VolunteerPending  = "PENDING"
    VolunteerActive   = "ACTIVE"
    VolunteerInactive = "INACTIVE"
)

// User represents an application user record as stored in the `users`
// table.  All roles share one table; the Role column tells which variant
// a row is.  Variant specific data is resolved when the row is loaded:
// Volunteer is non-nil exactly when Role is RoleVolunteer.
//
// Fields:
//  ID           – primary key identifier of the user.
//  FullName     – display name.
//  Email        – unique email address (across all roles).
//  Phone        – unique phone number (across all roles).
//  PhotoURL     – optional profile photo.
//  PasswordHash – bcrypt hashed password.
//  Role         – discriminator (ADMINISTRATOR, CARETAKER, VETERINARIAN, VOLUNTEER).
//  Volunteer    – volunteer specific fields, nil for other roles.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
    ID           uint64            // users.id
    FullName     string            // users.full_name
    Email        string            // users.email
    Phone        string            // users.phone
    PhotoURL     string            // users.photo_url
    PasswordHash string            // users.password_hash
    Role         Role              // users.role
    Volunteer    *VolunteerDetails // users.is_verified, users.volunteer_status
    CreatedAt    time.Time         // users.created_at
    UpdatedAt    time.Time         // users.updated_at
}

// VolunteerDetails holds the columns only meaningful for volunteers.
type VolunteerDetails struct {
    IsVerified bool   // users.is_verified
    Status     string // users.volunteer_status
}

// IsVolunteer reports whether the user is the volunteer variant.
func (u User) IsVolunteer() bool { return u.Role == RoleVolunteer && u.Volunteer != nil }

// NewUser builds a user of the given role and attaches the variant data
// the role requires.  Volunteers start unverified and PENDING.
func NewUser(role Role, fullName, email, phone string) User {
    u := User{Role: role, FullName: fullName, Email: email, Phone: phone}
    if role == RoleVolunteer {
        u.Volunteer = &VolunteerDetails{Status: VolunteerPending}
    }
    return u
}
