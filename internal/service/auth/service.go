package auth

import (
	"context"
	"fmt"

	"github.com/physiocare/physiocare-api/internal/email"
	"github.com/physiocare/physiocare-api/internal/model"
	"github.com/physiocare/physiocare-api/internal/repository"
	"github.com/physiocare/physiocare-api/pkg/auth"
	apperrors "github.com/physiocare/physiocare-api/pkg/errors"
	"github.com/physiocare/physiocare-api/pkg/logger"
	"github.com/physiocare/physiocare-api/pkg/security"
)

type Service struct {
	users    repository.UserRepository
	jwt      auth.JWTService
	hasher   security.PasswordHasher
	emailSvc email.Service
	logger   *logger.Logger
}

func NewService(users repository.UserRepository, jwt auth.JWTService, hasher security.PasswordHasher, emailSvc email.Service, logger *logger.Logger) *Service {
	return &Service{
		users:    users,
		jwt:      jwt,
		hasher:   hasher,
		emailSvc: emailSvc,
		logger:   logger,
	}
}

// Register creates the account plus its role profile and sends the
// welcome mail. Mail failures are logged, never surfaced.
func (s *Service) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	if !req.Role.Valid() {
		return nil, apperrors.BadRequest("invalid role", nil)
	}

	if existing, _ := s.users.GetByEmail(ctx, req.Email); existing != nil {
		return nil, apperrors.Conflict("email already registered", nil)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperrors.BadRequest("invalid password", err)
	}

	user := &model.User{
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: hash,
		Role:         req.Role,
	}
	if req.PhoneNumber != "" {
		user.PhoneNumber = &req.PhoneNumber
	}
	if req.Gender != "" {
		user.Gender = &req.Gender
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	switch user.Role {
	case model.RoleTherapist:
		profile := &model.TherapistProfile{UserID: user.ID}
		if err := s.users.CreateTherapistProfile(ctx, profile); err != nil {
			return nil, fmt.Errorf("failed to create therapist profile: %w", err)
		}
	case model.RolePatient:
		profile := &model.PatientProfile{UserID: user.ID}
		if err := s.users.CreatePatientProfile(ctx, profile); err != nil {
			return nil, fmt.Errorf("failed to create patient profile: %w", err)
		}
	}

	go func() {
		if err := s.emailSvc.Send(user.Email, "Welcome to PhysioCare", email.WelcomeBody(user.Username)); err != nil {
			s.logger.Error(err, "failed to send welcome email", "user_id", user.ID)
		}
	}()

	return user, nil
}

func (s *Service) Login(ctx context.Context, req *model.LoginRequest) (*model.TokenResponse, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, apperrors.Unauthorized(err)
	}

	if err := s.hasher.Compare(user.PasswordHash, req.Password); err != nil {
		return nil, apperrors.Unauthorized(err)
	}

	return s.issueTokens(user)
}

func (s *Service) Refresh(ctx context.Context, refreshToken string) (*model.TokenResponse, error) {
	claims, err := s.jwt.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperrors.Unauthorized(err)
	}

	user, err := s.users.Get(ctx, claims.UserID)
	if err != nil {
		return nil, apperrors.Unauthorized(err)
	}

	return s.issueTokens(user)
}

func (s *Service) issueTokens(user *model.User) (*model.TokenResponse, error) {
	access, err := s.jwt.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	refresh, err := s.jwt.GenerateRefreshToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return &model.TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    86400,
	}, nil
}
