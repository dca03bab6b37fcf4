package services

import (
	"context"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"toiletBack/internal/models"
	"toiletBack/internal/repositories"
	"toiletBack/utils"
)

const accessTokenTTL = 24 * time.Hour

type UserService struct {
	UserRepo     *repositories.UserRepository
	WilayaRepo   *repositories.WilayaRepository
	TokenManager *utils.Manager
}

// SignUp registers a visitor account and logs it straight in.
func (s *UserService) SignUp(ctx context.Context, req models.SignUpRequest) (models.AuthResponse, error) {
	v := models.NewValidationError()
	if strings.TrimSpace(req.Name) == "" {
		v.Add("name", "is required")
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		v.Add("email", "must be a valid email address")
	}
	if len(req.Password) < 8 {
		v.Add("password", "must be at least 8 characters")
	}
	if req.WilayaID != nil {
		if _, err := s.WilayaRepo.GetWilayaByID(ctx, *req.WilayaID); err != nil {
			if err == models.ErrWilayaNotFound {
				v.Add("wilaya_id", "unknown wilaya")
			} else {
				return models.AuthResponse{}, err
			}
		}
	}
	if v.HasErrors() {
		return models.AuthResponse{}, v
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.AuthResponse{}, err
	}

	user := models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: string(hash),
		RoleCode:     "visitor",
		WilayaID:     req.WilayaID,
	}
	if phone := strings.TrimSpace(req.Phone); phone != "" {
		user.Phone = &phone
	}

	id, err := s.UserRepo.CreateUser(ctx, user)
	if err != nil {
		return models.AuthResponse{}, err
	}
	created, err := s.UserRepo.GetUserByID(ctx, id)
	if err != nil {
		return models.AuthResponse{}, err
	}
	return s.issueTokens(ctx, created)
}

func (s *UserService) SignIn(ctx context.Context, req models.SignInRequest) (models.AuthResponse, error) {
	user, err := s.UserRepo.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if err == models.ErrUserNotFound {
			return models.AuthResponse{}, models.ErrInvalidCredentials
		}
		return models.AuthResponse{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return models.AuthResponse{}, models.ErrInvalidCredentials
	}
	return s.issueTokens(ctx, user)
}

// Refresh exchanges a refresh token for a fresh pair.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (models.AuthResponse, error) {
	user, err := s.UserRepo.GetUserByRefreshToken(ctx, refreshToken)
	if err != nil {
		if err == models.ErrUserNotFound {
			return models.AuthResponse{}, models.ErrInvalidCredentials
		}
		return models.AuthResponse{}, err
	}
	return s.issueTokens(ctx, user)
}

// Me returns the caller's profile with the home wilaya joined in.
func (s *UserService) Me(ctx context.Context, userID int) (models.User, error) {
	user, err := s.UserRepo.GetUserByID(ctx, userID)
	if err != nil {
		return models.User{}, err
	}
	if user.WilayaID != nil {
		if w, err := s.WilayaRepo.GetWilayaByID(ctx, *user.WilayaID); err == nil {
			user.Wilaya = &w
		}
	}
	return user, nil
}

func (s *UserService) issueTokens(ctx context.Context, user models.User) (models.AuthResponse, error) {
	access, err := s.TokenManager.NewJWT(user.ID, user.RoleCode, accessTokenTTL)
	if err != nil {
		return models.AuthResponse{}, err
	}
	refresh, err := s.TokenManager.NewRefreshToken()
	if err != nil {
		return models.AuthResponse{}, err
	}
	if err := s.UserRepo.SaveRefreshToken(ctx, user.ID, refresh); err != nil {
		return models.AuthResponse{}, err
	}

	return models.AuthResponse{
		User:         user,
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}
