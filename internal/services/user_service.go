package services

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"civicBack/internal/models"
	"civicBack/utils"
)

type UserService struct {
	UserRepo UserStore
	Tokens   *utils.Manager
}

var allowedRoles = map[string]struct{}{
	models.RoleCitizen: {},
	models.RoleOfficer: {},
	models.RoleVendor:  {},
	models.RoleAdmin:   {},
}

func (s *UserService) SignUp(ctx context.Context, user models.User) (models.User, error) {
	if strings.TrimSpace(user.Name) == "" || strings.TrimSpace(user.Email) == "" || user.Password == "" {
		return models.User{}, models.ErrMissingFields
	}
	if user.Role == "" {
		user.Role = models.RoleCitizen
	}
	if _, ok := allowedRoles[user.Role]; !ok {
		return models.User{}, models.ErrMissingFields
	}

	_, err := s.UserRepo.GetUserByEmail(ctx, user.Email)
	if err == nil {
		return models.User{}, models.ErrDuplicateEmail
	}
	if !errors.Is(err, models.ErrUserNotFound) {
		return models.User{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}
	user.Password = string(hashed)

	created, err := s.UserRepo.CreateUser(ctx, user)
	if err != nil {
		return models.User{}, err
	}
	created.Password = ""
	return created, nil
}

func (s *UserService) SignIn(ctx context.Context, email, password string) (models.SignInResponse, error) {
	user, err := s.UserRepo.GetUserByEmail(ctx, email)
	if errors.Is(err, models.ErrUserNotFound) {
		return models.SignInResponse{}, models.ErrInvalidCredentials
	}
	if err != nil {
		return models.SignInResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return models.SignInResponse{}, models.ErrInvalidCredentials
	}

	token, err := s.Tokens.NewJWT(user.ID, user.Role)
	if err != nil {
		return models.SignInResponse{}, err
	}
	user.Password = ""
	return models.SignInResponse{Token: token, User: user}, nil
}

func (s *UserService) GetUsersByRole(ctx context.Context, role string) ([]models.User, error) {
	return s.UserRepo.GetUsersByRole(ctx, role)
}
