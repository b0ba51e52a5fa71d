package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/physiocare/physiocare-api/internal/model"
	"github.com/physiocare/physiocare-api/internal/repository"
	apperrors "github.com/physiocare/physiocare-api/pkg/errors"
)

type Service struct {
	repo repository.ScheduleRepository
}

func NewService(repo repository.ScheduleRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateSlot(ctx context.Context, therapistID uuid.UUID, req *model.CreateSlotRequest) (*model.AvailabilitySlot, error) {
	date, err := time.Parse(model.DateOnly, req.Date)
	if err != nil {
		return nil, apperrors.BadRequest("invalid date", err)
	}

	start, err := time.Parse(model.TimeOfDay, req.StartTime)
	if err != nil {
		return nil, apperrors.BadRequest("invalid start time", err)
	}
	end, err := time.Parse(model.TimeOfDay, req.EndTime)
	if err != nil {
		return nil, apperrors.BadRequest("invalid end time", err)
	}
	if !end.After(start) {
		return nil, apperrors.BadRequest("end time must be after start time", nil)
	}

	slot := &model.AvailabilitySlot{
		TherapistID: therapistID,
		Date:        date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
	}
	if err := s.repo.CreateSlot(ctx, slot); err != nil {
		return nil, fmt.Errorf("failed to create slot: %w", err)
	}
	return slot, nil
}

func (s *Service) GetSlot(ctx context.Context, id uuid.UUID) (*model.AvailabilitySlot, error) {
	return s.repo.GetSlot(ctx, id)
}

func (s *Service) ListSlots(ctx context.Context, filters *model.SlotFilters) ([]*model.AvailabilitySlot, error) {
	return s.repo.ListSlots(ctx, filters)
}

// DeleteSlot refuses to drop a slot that already carries a booking.
func (s *Service) DeleteSlot(ctx context.Context, id, therapistID uuid.UUID) error {
	slot, err := s.repo.GetSlot(ctx, id)
	if err != nil {
		return err
	}
	// uuid.Nil skips the ownership check for admin callers. A foreign
	// slot reads as not-found so its existence is not leaked.
	if therapistID != uuid.Nil && slot.TherapistID != therapistID {
		return apperrors.NotFound("slot", nil)
	}
	if slot.IsBooked {
		return apperrors.Conflict("slot is already booked", nil)
	}
	return s.repo.DeleteSlot(ctx, id)
}

func (s *Service) RequestLeave(ctx context.Context, therapistID uuid.UUID, req *model.CreateLeaveRequest) (*model.TherapistLeave, error) {
	from, err := time.Parse(model.DateOnly, req.FromDate)
	if err != nil {
		return nil, apperrors.BadRequest("invalid from date", err)
	}
	to, err := time.Parse(model.DateOnly, req.ToDate)
	if err != nil {
		return nil, apperrors.BadRequest("invalid to date", err)
	}
	if to.Before(from) {
		return nil, apperrors.BadRequest("leave must end on or after its start", nil)
	}

	leave := &model.TherapistLeave{
		TherapistID: therapistID,
		FromDate:    from,
		ToDate:      to,
		Reason:      req.Reason,
	}
	if err := s.repo.CreateLeave(ctx, leave); err != nil {
		return nil, fmt.Errorf("failed to request leave: %w", err)
	}
	return leave, nil
}

func (s *Service) ListLeaves(ctx context.Context, therapistID uuid.UUID) ([]*model.TherapistLeave, error) {
	return s.repo.ListLeaves(ctx, therapistID)
}

func (s *Service) ApproveLeave(ctx context.Context, id, approverID uuid.UUID) error {
	return s.repo.ApproveLeave(ctx, id, approverID)
}

func (s *Service) CreateCoverage(ctx context.Context, therapistID uuid.UUID, req *model.CreateCoverageRequest) (*model.LocationCoverage, error) {
	coverage := &model.LocationCoverage{
		TherapistID:     therapistID,
		ServiceAreaName: req.ServiceAreaName,
		Location:        req.Location,
	}
	if err := s.repo.CreateCoverage(ctx, coverage); err != nil {
		return nil, fmt.Errorf("failed to create coverage area: %w", err)
	}
	return coverage, nil
}

func (s *Service) ListCoverage(ctx context.Context, therapistID uuid.UUID) ([]*model.LocationCoverage, error) {
	return s.repo.ListCoverageForTherapist(ctx, therapistID)
}

// UpdateCoverage is owner-only. A foreign area reads as not-found so
// its existence is not leaked.
func (s *Service) UpdateCoverage(ctx context.Context, id, therapistID uuid.UUID, req *model.UpdateCoverageRequest) (*model.LocationCoverage, error) {
	coverage, err := s.repo.GetCoverage(ctx, id)
	if err != nil {
		return nil, err
	}
	if coverage.TherapistID != therapistID {
		return nil, apperrors.NotFound("coverage area", nil)
	}

	if req.ServiceAreaName != nil {
		coverage.ServiceAreaName = *req.ServiceAreaName
	}
	if req.Location != nil {
		coverage.Location = *req.Location
	}

	if err := s.repo.UpdateCoverage(ctx, coverage); err != nil {
		return nil, err
	}
	return coverage, nil
}

// DeleteCoverage is owner-only, with the same not-found scoping.
func (s *Service) DeleteCoverage(ctx context.Context, id, therapistID uuid.UUID) error {
	coverage, err := s.repo.GetCoverage(ctx, id)
	if err != nil {
		return err
	}
	if coverage.TherapistID != therapistID {
		return apperrors.NotFound("coverage area", nil)
	}
	return s.repo.DeleteCoverage(ctx, id)
}
