package service

import (
	"context"
	"errors"
	"strings"

	"github.com/iliyamo/animal-shelter/internal/apperror"
	"github.com/iliyamo/animal-shelter/internal/dto"
	"github.com/iliyamo/animal-shelter/internal/model"
	"github.com/iliyamo/animal-shelter/internal/repository"
	"github.com/iliyamo/animal-shelter/internal/utils"
)

const entityUser = "user"

var errBadCredentials = apperror.Unauthorized("invalid email or password")

// AuthService handles sign-up, login and the current user lookup.
type AuthService struct {
	users    repository.UserRepository
	settings Settings
}

// Register creates a pending volunteer and logs it in.  Email and phone
// must not belong to any existing user.
func (s *AuthService) Register(ctx context.Context, in dto.RegisterRequest) (dto.AuthResponse, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Phone = strings.TrimSpace(in.Phone)
	if err := check(in); err != nil {
		return dto.AuthResponse{}, err
	}
	if err := ensureUnique(ctx, s.users, 0, in.Email, in.Phone); err != nil {
		return dto.AuthResponse{}, err
	}
	u := dto.UserFromRegister(in)
	hash, err := utils.HashPassword(in.Password, s.settings.BcryptCost)
	if err != nil {
		return dto.AuthResponse{}, apperror.Internal("hash password", err)
	}
	u.PasswordHash = hash
	if err := s.users.Create(ctx, &u); err != nil {
		return dto.AuthResponse{}, storeErr(entityUser, 0, err)
	}
	return s.issue(u)
}

// Login checks the password and issues an access token.
func (s *AuthService) Login(ctx context.Context, in dto.LoginRequest) (dto.AuthResponse, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := check(in); err != nil {
		return dto.AuthResponse{}, err
	}
	u, err := s.users.GetByEmail(ctx, in.Email)
	if errors.Is(err, repository.ErrNotFound) {
		return dto.AuthResponse{}, errBadCredentials
	}
	if err != nil {
		return dto.AuthResponse{}, storeErr(entityUser, 0, err)
	}
	if !utils.VerifyPassword(u.PasswordHash, in.Password) {
		return dto.AuthResponse{}, errBadCredentials
	}
	return s.issue(u)
}

// Me returns the caller's own profile.
func (s *AuthService) Me(ctx context.Context, actor Actor) (dto.UserDTO, error) {
	u, err := s.users.GetByID(ctx, actor.ID)
	if err != nil {
		return dto.UserDTO{}, storeErr(entityUser, actor.ID, err)
	}
	return dto.ToUserDTO(u), nil
}

func (s *AuthService) issue(u model.User) (dto.AuthResponse, error) {
	tok, err := utils.NewAccessToken(s.settings.JWTSecret, u.ID, string(u.Role), u.Email, s.settings.AccessTTL, s.settings.Now())
	if err != nil {
		return dto.AuthResponse{}, apperror.Internal("sign token", err)
	}
	return dto.AuthResponse{
		User:   dto.ToUserDTO(u),
		Access: dto.TokenDTO{Token: tok.Token, Type: "Bearer", Expires: tok.Exp},
	}, nil
}

// ensureUnique reports DuplicateValue when email or phone already belongs
// to a user other than self.  The store's unique keys remain the final
// guard against concurrent sign-ups.
func ensureUnique(ctx context.Context, users repository.UserRepository, self uint64, email, phone string) error {
	for _, probe := range []struct {
		field  string
		lookup func(context.Context, string) (model.User, error)
		value  string
	}{
		{"email", users.GetByEmail, email},
		{"phone", users.GetByPhone, phone},
	} {
		u, err := probe.lookup(ctx, probe.value)
		switch {
		case errors.Is(err, repository.ErrNotFound):
		case err != nil:
			return storeErr(entityUser, 0, err)
		case u.ID != self:
			return apperror.Duplicate(probe.field, nil)
		}
	}
	return nil
}
