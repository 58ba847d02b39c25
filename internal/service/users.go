package service

import (
	"context"
	"strings"

	"github.com/iliyamo/animal-shelter/internal/apperror"
	"github.com/iliyamo/animal-shelter/internal/dto"
	"github.com/iliyamo/animal-shelter/internal/model"
	"github.com/iliyamo/animal-shelter/internal/repository"
	"github.com/iliyamo/animal-shelter/internal/utils"
)

const entityVolunteer = "volunteer"

// UserService is the administrator's view of all accounts.
type UserService struct {
	users      repository.UserRepository
	bcryptCost int
}

func (s *UserService) List(ctx context.Context, f repository.UserFilter) (dto.Page[dto.UserDTO], error) {
	f.Page = f.Page.Normalize()
	if f.Role != "" && !f.Role.Valid() {
		return dto.Page[dto.UserDTO]{}, apperror.InvalidField("role", "must be one of ADMINISTRATOR, CARETAKER, VETERINARIAN, VOLUNTEER")
	}
	users, total, err := s.users.List(ctx, f)
	if err != nil {
		return dto.Page[dto.UserDTO]{}, storeErr(entityUser, 0, err)
	}
	return dto.NewPage(dto.ToUserDTOs(users), total, f.Page.Page, f.PageSize), nil
}

func (s *UserService) Get(ctx context.Context, id uint64) (dto.UserDTO, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return dto.UserDTO{}, storeErr(entityUser, id, err)
	}
	return dto.ToUserDTO(u), nil
}

// Create adds an account of any role.  New volunteers start PENDING and
// unverified.
func (s *UserService) Create(ctx context.Context, in dto.UserCreate) (dto.UserDTO, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Phone = strings.TrimSpace(in.Phone)
	in.Role = strings.ToUpper(strings.TrimSpace(in.Role))
	if err := check(in); err != nil {
		return dto.UserDTO{}, err
	}
	if err := ensureUnique(ctx, s.users, 0, in.Email, in.Phone); err != nil {
		return dto.UserDTO{}, err
	}
	u := dto.UserFromCreate(in)
	hash, err := utils.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return dto.UserDTO{}, apperror.Internal("hash password", err)
	}
	u.PasswordHash = hash
	if err := s.users.Create(ctx, &u); err != nil {
		return dto.UserDTO{}, storeErr(entityUser, 0, err)
	}
	return dto.ToUserDTO(u), nil
}

// Delete removes an account.  Volunteers take their reservations with
// them; caretakers and veterinarians named on medical records cannot be
// removed.
func (s *UserService) Delete(ctx context.Context, actor Actor, id uint64) error {
	if actor.ID == id {
		return apperror.Forbidden("you cannot delete your own account")
	}
	return storeErr(entityUser, id, s.users.Delete(ctx, id))
}

// VolunteerService lets caretakers manage volunteers.
type VolunteerService struct {
	users repository.UserRepository
}

// List only ever returns volunteers, whatever role f asks for.
func (s *VolunteerService) List(ctx context.Context, f repository.UserFilter) (dto.Page[dto.UserDTO], error) {
	f.Role = model.RoleVolunteer
	f.Page = f.Page.Normalize()
	users, total, err := s.users.List(ctx, f)
	if err != nil {
		return dto.Page[dto.UserDTO]{}, storeErr(entityVolunteer, 0, err)
	}
	return dto.NewPage(dto.ToUserDTOs(users), total, f.Page.Page, f.PageSize), nil
}

func (s *VolunteerService) Get(ctx context.Context, id uint64) (dto.UserDTO, error) {
	u, err := s.load(ctx, id)
	if err != nil {
		return dto.UserDTO{}, err
	}
	return dto.ToUserDTO(u), nil
}

// load fetches a user and hides non-volunteers behind NotFound.
func (s *VolunteerService) load(ctx context.Context, id uint64) (model.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return model.User{}, storeErr(entityVolunteer, id, err)
	}
	if u.Role != model.RoleVolunteer {
		return model.User{}, apperror.NotFound(entityVolunteer, id)
	}
	return u, nil
}

// Patch changes verification, status or contact fields.  This is the
// only way a volunteer's status moves.
func (s *VolunteerService) Patch(ctx context.Context, id uint64, p Patch) (dto.UserDTO, error) {
	u, err := s.load(ctx, id)
	if err != nil {
		return dto.UserDTO{}, err
	}
	upd, err := applyPatch(dto.ToVolunteerUpdate(u), p)
	if err != nil {
		return dto.UserDTO{}, err
	}
	upd.Email = strings.ToLower(strings.TrimSpace(upd.Email))
	upd.Phone = strings.TrimSpace(upd.Phone)
	if err := check(upd); err != nil {
		return dto.UserDTO{}, err
	}
	if err := ensureUnique(ctx, s.users, u.ID, upd.Email, upd.Phone); err != nil {
		return dto.UserDTO{}, err
	}
	dto.ApplyVolunteerUpdate(&u, upd)
	if err := s.users.Update(ctx, &u); err != nil {
		return dto.UserDTO{}, storeErr(entityVolunteer, id, err)
	}
	return dto.ToUserDTO(u), nil
}
