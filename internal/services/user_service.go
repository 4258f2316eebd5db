package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"acheiBack/internal/models"
	"acheiBack/internal/repositories"
	"acheiBack/utils"
)

type UserService struct {
	UserRepo     *repositories.UserRepository
	TokenManager *utils.Manager
	AccessTTL    time.Duration
	RefreshTTL   time.Duration
}

func (s *UserService) SignUp(ctx context.Context, req models.SignUpRequest) (models.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}

	username := req.Username
	if username == "" {
		username = strings.SplitN(req.Email, "@", 2)[0]
	}

	return s.UserRepo.CreateUser(ctx, models.User{
		Username:  username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  string(hashedPassword),
	})
}

func (s *UserService) SignIn(ctx context.Context, req models.SignInRequest) (models.User, models.Tokens, error) {
	user, err := s.UserRepo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return models.User{}, models.Tokens{}, models.ErrInvalidCredentials
		}
		return models.User{}, models.Tokens{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return models.User{}, models.Tokens{}, models.ErrInvalidCredentials
	}

	tokens, err := s.IssueTokens(ctx, user)
	if err != nil {
		return models.User{}, models.Tokens{}, err
	}
	user.Password = ""
	return user, tokens, nil
}

// IssueTokens creates an access/refresh pair and persists the refresh session.
func (s *UserService) IssueTokens(ctx context.Context, user models.User) (models.Tokens, error) {
	access, err := s.TokenManager.NewAccessToken(user.ID, user.IsStaff, s.AccessTTL)
	if err != nil {
		return models.Tokens{}, err
	}
	refresh, err := s.TokenManager.NewRefreshToken()
	if err != nil {
		return models.Tokens{}, err
	}

	err = s.UserRepo.CreateSession(ctx, models.Session{
		UserID:       user.ID,
		RefreshToken: refresh,
		ExpiresAt:    time.Now().Add(s.RefreshTTL),
	})
	if err != nil {
		return models.Tokens{}, err
	}
	return models.Tokens{AccessToken: access, RefreshToken: refresh}, nil
}

// UpsertFromSSO creates or refreshes a user from the institutional login profile.
func (s *UserService) UpsertFromSSO(ctx context.Context, user models.User) (models.User, error) {
	if user.Username == "" {
		user.Username = strings.SplitN(user.Email, "@", 2)[0]
	}
	return s.UserRepo.UpsertByEmail(ctx, user)
}

func (s *UserService) GetUserByID(ctx context.Context, id int) (models.User, error) {
	user, err := s.UserRepo.GetUserByID(ctx, id)
	if err != nil {
		return models.User{}, err
	}
	user.Password = ""
	return user, nil
}

func (s *UserService) GetUsers(ctx context.Context) ([]models.User, error) {
	return s.UserRepo.GetUsers(ctx)
}

func (s *UserService) DeleteUser(ctx context.Context, id int) error {
	return s.UserRepo.DeleteUser(ctx, id)
}
