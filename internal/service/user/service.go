package user

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/physiocare/physiocare-api/internal/model"
	"github.com/physiocare/physiocare-api/internal/repository"
)

type Service struct {
	repo repository.UserRepository
}

func NewService(repo repository.UserRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) ListUsers(ctx context.Context, role model.Role) ([]*model.User, error) {
	return s.repo.List(ctx, role)
}

func (s *Service) ListTherapists(ctx context.Context) ([]*model.User, error) {
	return s.repo.List(ctx, model.RoleTherapist)
}

// UpdateUser applies the mutable profile fields. Role never changes
// after registration.
func (s *Service) UpdateUser(ctx context.Context, id uuid.UUID, req *model.UpdateUserRequest) (*model.User, error) {
	user, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.PhoneNumber != nil {
		user.PhoneNumber = req.PhoneNumber
	}
	if req.Gender != nil {
		user.Gender = req.Gender
	}
	if req.Address != nil {
		user.Address = req.Address
	}
	if req.Specialization != nil {
		user.Specialization = req.Specialization
	}
	if req.Qualification != nil {
		user.Qualification = req.Qualification
	}
	if req.LanguagesSpoken != nil {
		user.LanguagesSpoken = req.LanguagesSpoken
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

func (s *Service) DeleteUser(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) GetTherapistProfile(ctx context.Context, userID uuid.UUID) (*model.TherapistProfile, error) {
	return s.repo.GetTherapistProfile(ctx, userID)
}

func (s *Service) GetPatientProfile(ctx context.Context, userID uuid.UUID) (*model.PatientProfile, error) {
	return s.repo.GetPatientProfile(ctx, userID)
}

func (s *Service) UpdateTherapistProfile(ctx context.Context, profile *model.TherapistProfile) error {
	return s.repo.UpdateTherapistProfile(ctx, profile)
}

func (s *Service) UpdatePatientProfile(ctx context.Context, profile *model.PatientProfile) error {
	return s.repo.UpdatePatientProfile(ctx, profile)
}
