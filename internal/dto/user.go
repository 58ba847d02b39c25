package dto

import (
	"time"

	"github.com/iliyamo/animal-shelter/internal/model"
)

// UserDTO is the response shape of any user.  The volunteer fields are
// only present for volunteers.
type UserDTO struct {
	ID         uint64    `json:"id"`
	FullName   string    `json:"full_name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	PhotoURL   string    `json:"photo_url"`
	Role       string    `json:"role"`
	IsVerified *bool     `json:"is_verified,omitempty"`
	Status     string    `json:"status,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// RegisterRequest is the self sign-up body.  The account is always a
// volunteer.
type RegisterRequest struct {
	FullName string `json:"full_name" validate:"required,max=160"`
	Email    string `json:"email" validate:"required,email,max=190"`
	Phone    string `json:"phone" validate:"required,max=32"`
	PhotoURL string `json:"photo_url" validate:"omitempty,url,max=512"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserCreate is the administrator's body for creating a user of any role.
type UserCreate struct {
	FullName string `json:"full_name" validate:"required,max=160"`
	Email    string `json:"email" validate:"required,email,max=190"`
	Phone    string `json:"phone" validate:"required,max=32"`
	PhotoURL string `json:"photo_url" validate:"omitempty,url,max=512"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Role     string `json:"role" validate:"required,oneof=ADMINISTRATOR CARETAKER VETERINARIAN VOLUNTEER"`
}

// VolunteerUpdate is the patchable projection of a volunteer.
type VolunteerUpdate struct {
	FullName   string `json:"full_name" validate:"required,max=160"`
	Email      string `json:"email" validate:"required,email,max=190"`
	Phone      string `json:"phone" validate:"required,max=32"`
	PhotoURL   string `json:"photo_url" validate:"omitempty,url,max=512"`
	IsVerified bool   `json:"is_verified"`
	Status     string `json:"status" validate:"required,oneof=PENDING ACTIVE INACTIVE"`
}

type TokenDTO struct {
	Token   string    `json:"token"`
	Type    string    `json:"type"`
	Expires time.Time `json:"expires"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	User   UserDTO  `json:"user"`
	Access TokenDTO `json:"access"`
}

func ToUserDTO(u model.User) UserDTO {
	out := UserDTO{
		ID:        u.ID,
		FullName:  u.FullName,
		Email:     u.Email,
		Phone:     u.Phone,
		PhotoURL:  u.PhotoURL,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
	if u.IsVolunteer() {
		verified := u.Volunteer.IsVerified
		out.IsVerified = &verified
		out.Status = u.Volunteer.Status
	}
	return out
}

func ToUserDTOs(us []model.User) []UserDTO { return mapSlice(us, ToUserDTO) }

// UserFromCreate builds the user without its password hash.
func UserFromCreate(c UserCreate) model.User {
	u := model.NewUser(model.Role(c.Role), c.FullName, c.Email, c.Phone)
	u.PhotoURL = c.PhotoURL
	return u
}

// UserFromRegister builds a pending volunteer without its password hash.
func UserFromRegister(r RegisterRequest) model.User {
	u := model.NewUser(model.RoleVolunteer, r.FullName, r.Email, r.Phone)
	u.PhotoURL = r.PhotoURL
	return u
}

func ToVolunteerUpdate(u model.User) VolunteerUpdate {
	out := VolunteerUpdate{
		FullName: u.FullName,
		Email:    u.Email,
		Phone:    u.Phone,
		PhotoURL: u.PhotoURL,
		Status:   model.VolunteerPending,
	}
	if u.Volunteer != nil {
		out.IsVerified = u.Volunteer.IsVerified
		out.Status = u.Volunteer.Status
	}
	return out
}

func ApplyVolunteerUpdate(u *model.User, v VolunteerUpdate) {
	u.FullName = v.FullName
	u.Email = v.Email
	u.Phone = v.Phone
	u.PhotoURL = v.PhotoURL
	if u.Volunteer == nil {
		u.Volunteer = &model.VolunteerDetails{}
	}
	u.Volunteer.IsVerified = v.IsVerified
	u.Volunteer.Status = v.Status
}
