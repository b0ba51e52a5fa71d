package treatment

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/physiocare/physiocare-api/internal/model"
	"github.com/physiocare/physiocare-api/internal/repository"
	apperrors "github.com/physiocare/physiocare-api/pkg/errors"
	"github.com/physiocare/physiocare-api/pkg/logger"
)

type mockTreatmentRepo struct {
	createPlanFn           func(ctx context.Context, plan *model.TreatmentPlan) error
	getPlanFn              func(ctx context.Context, id uuid.UUID) (*model.TreatmentPlan, error)
	updatePlanFn           func(ctx context.Context, plan *model.TreatmentPlan) error
	findOrCreateProgressFn func(ctx context.Context, patientID, exerciseID, planID uuid.UUID) (*model.ProgressTracking, error)
}

var _ repository.TreatmentRepository = (*mockTreatmentRepo)(nil)

func (m *mockTreatmentRepo) CreatePlan(ctx context.Context, plan *model.TreatmentPlan) error {
	return m.createPlanFn(ctx, plan)
}

func (m *mockTreatmentRepo) GetPlan(ctx context.Context, id uuid.UUID) (*model.TreatmentPlan, error) {
	return m.getPlanFn(ctx, id)
}

func (m *mockTreatmentRepo) UpdatePlan(ctx context.Context, plan *model.TreatmentPlan) error {
	return m.updatePlanFn(ctx, plan)
}

func (m *mockTreatmentRepo) ListPlansForPatient(ctx context.Context, patientID uuid.UUID) ([]*model.TreatmentPlan, error) {
	panic("unexpected call")
}

func (m *mockTreatmentRepo) FindOrCreateProgress(ctx context.Context, patientID, exerciseID, planID uuid.UUID) (*model.ProgressTracking, error) {
	return m.findOrCreateProgressFn(ctx, patientID, exerciseID, planID)
}

func (m *mockTreatmentRepo) GetProgress(ctx context.Context, id uuid.UUID) (*model.ProgressTracking, error) {
	panic("unexpected call")
}

func (m *mockTreatmentRepo) UpdateProgress(ctx context.Context, progress *model.ProgressTracking) error {
	panic("unexpected call")
}

func (m *mockTreatmentRepo) ListProgressForPatient(ctx context.Context, patientID uuid.UUID) ([]*model.ProgressTracking, error) {
	panic("unexpected call")
}

type mockAppointmentRepo struct {
	getFn func(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
}

var _ repository.AppointmentRepository = (*mockAppointmentRepo)(nil)

func (m *mockAppointmentRepo) Create(ctx context.Context, appointment *model.Appointment) error {
	panic("unexpected call")
}

func (m *mockAppointmentRepo) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	return m.getFn(ctx, id)
}

func (m *mockAppointmentRepo) Update(ctx context.Context, appointment *model.Appointment) error {
	panic("unexpected call")
}

func (m *mockAppointmentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	panic("unexpected call")
}

func (m *mockAppointmentRepo) List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	panic("unexpected call")
}

func (m *mockAppointmentRepo) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status string) error {
	panic("unexpected call")
}

// exerciseStore backs the catalog mock with a working find-or-create.
type exerciseStore struct {
	byName  map[string]*model.Exercise
	created []string
}

func newExerciseStore(existing ...string) *exerciseStore {
	s := &exerciseStore{byName: make(map[string]*model.Exercise)}
	for _, name := range existing {
		s.byName[name] = &model.Exercise{Base: model.Base{ID: uuid.New()}, Name: name}
	}
	return s
}

type mockCatalogRepo struct {
	store *exerciseStore
}

var _ repository.CatalogRepository = (*mockCatalogRepo)(nil)

func (m *mockCatalogRepo) CreateService(ctx context.Context, service *model.Service) error {
	panic("unexpected call")
}

func (m *mockCatalogRepo) GetService(ctx context.Context, id uuid.UUID) (*model.Service, error) {
	panic("unexpected call")
}

func (m *mockCatalogRepo) UpdateService(ctx context.Context, service *model.Service) error {
	panic("unexpected call")
}

func (m *mockCatalogRepo) DeleteService(ctx context.Context, id uuid.UUID) error {
	panic("unexpected call")
}

func (m *mockCatalogRepo) ListServices(ctx context.Context, onlyActive bool) ([]*model.Service, error) {
	panic("unexpected call")
}

func (m *mockCatalogRepo) CreateExercise(ctx context.Context, exercise *model.Exercise) error {
	exercise.ID = uuid.New()
	m.store.byName[exercise.Name] = exercise
	m.store.created = append(m.store.created, exercise.Name)
	return nil
}

func (m *mockCatalogRepo) UpdateExercise(ctx context.Context, exercise *model.Exercise) error {
	panic("unexpected call")
}

func (m *mockCatalogRepo) GetExercise(ctx context.Context, id uuid.UUID) (*model.Exercise, error) {
	panic("unexpected call")
}

func (m *mockCatalogRepo) GetExerciseByName(ctx context.Context, name string) (*model.Exercise, error) {
	if e, ok := m.store.byName[name]; ok {
		return e, nil
	}
	return nil, fmt.Errorf("exercise %s: %w", name, apperrors.ErrNotFound)
}

func (m *mockCatalogRepo) ListExercises(ctx context.Context) ([]*model.Exercise, error) {
	panic("unexpected call")
}

type progressCall struct {
	exerciseName string
	patientID    uuid.UUID
}

func TestCreatePlanFansOut(t *testing.T) {
	therapistID := uuid.New()
	patientID := uuid.New()
	appointmentID := uuid.New()

	store := newExerciseStore("Stretch")
	catalog := &mockCatalogRepo{store: store}

	var progress []progressCall
	repo := &mockTreatmentRepo{
		createPlanFn: func(_ context.Context, plan *model.TreatmentPlan) error {
			plan.ID = uuid.New()
			return nil
		},
		findOrCreateProgressFn: func(_ context.Context, pID, eID, _ uuid.UUID) (*model.ProgressTracking, error) {
			var name string
			for n, e := range store.byName {
				if e.ID == eID {
					name = n
				}
			}
			progress = append(progress, progressCall{exerciseName: name, patientID: pID})
			return &model.ProgressTracking{}, nil
		},
	}
	appointments := &mockAppointmentRepo{
		getFn: func(_ context.Context, id uuid.UUID) (*model.Appointment, error) {
			return &model.Appointment{
				Base:        model.Base{ID: id},
				PatientID:   patientID,
				TherapistID: therapistID,
			}, nil
		},
	}

	svc := NewService(repo, appointments, catalog, logger.NewLogger(nil))
	plan, err := svc.CreatePlan(context.Background(), therapistID, &model.CreateTreatmentPlanRequest{
		AppointmentID: appointmentID.String(),
		ExercisesList: "Stretch\n\n  Plank \n",
	})
	require.NoError(t, err)
	assert.Equal(t, model.TreatmentPlanStatusActive, plan.Status)

	// Existing exercises are reused, new ones are created on the fly.
	assert.Equal(t, []string{"Plank"}, store.created)
	require.Len(t, progress, 2)
	assert.Equal(t, "Stretch", progress[0].exerciseName)
	assert.Equal(t, "Plank", progress[1].exerciseName)
	assert.Equal(t, patientID, progress[0].patientID)
}

func TestCreatePlanRejectsForeignAppointment(t *testing.T) {
	appointments := &mockAppointmentRepo{
		getFn: func(_ context.Context, id uuid.UUID) (*model.Appointment, error) {
			return &model.Appointment{TherapistID: uuid.New()}, nil
		},
	}

	svc := NewService(&mockTreatmentRepo{}, appointments, &mockCatalogRepo{store: newExerciseStore()}, logger.NewLogger(nil))
	_, err := svc.CreatePlan(context.Background(), uuid.New(), &model.CreateTreatmentPlanRequest{
		AppointmentID: uuid.NewString(),
		ExercisesList: "Stretch",
	})
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)
}

func TestCreatePlanSurvivesFanOutFailure(t *testing.T) {
	therapistID := uuid.New()
	appointmentID := uuid.New()

	store := newExerciseStore("Stretch", "Plank")
	catalog := &mockCatalogRepo{store: store}

	var progressed int
	repo := &mockTreatmentRepo{
		createPlanFn: func(_ context.Context, plan *model.TreatmentPlan) error {
			plan.ID = uuid.New()
			return nil
		},
		findOrCreateProgressFn: func(_ context.Context, _, eID, _ uuid.UUID) (*model.ProgressTracking, error) {
			if eID == store.byName["Stretch"].ID {
				return nil, errors.New("store unavailable")
			}
			progressed++
			return &model.ProgressTracking{}, nil
		},
	}
	appointments := &mockAppointmentRepo{
		getFn: func(_ context.Context, id uuid.UUID) (*model.Appointment, error) {
			return &model.Appointment{Base: model.Base{ID: id}, PatientID: uuid.New(), TherapistID: therapistID}, nil
		},
	}

	svc := NewService(repo, appointments, catalog, logger.NewLogger(nil))
	_, err := svc.CreatePlan(context.Background(), therapistID, &model.CreateTreatmentPlanRequest{
		AppointmentID: appointmentID.String(),
		ExercisesList: "Stretch\nPlank",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, progressed)
}

func TestUpdatePlanNeverFansOut(t *testing.T) {
	therapistID := uuid.New()
	planID := uuid.New()
	appointmentID := uuid.New()

	store := newExerciseStore("Stretch")
	catalog := &mockCatalogRepo{store: store}

	var saved *model.TreatmentPlan
	repo := &mockTreatmentRepo{
		getPlanFn: func(_ context.Context, id uuid.UUID) (*model.TreatmentPlan, error) {
			return &model.TreatmentPlan{
				Base:          model.Base{ID: id},
				AppointmentID: appointmentID,
				ExercisesList: "Stretch",
				PrescribedBy:  therapistID,
				Status:        model.TreatmentPlanStatusActive,
			}, nil
		},
		updatePlanFn: func(_ context.Context, plan *model.TreatmentPlan) error {
			saved = plan
			return nil
		},
		findOrCreateProgressFn: func(_ context.Context, _, _, _ uuid.UUID) (*model.ProgressTracking, error) {
			t.Fatal("progress fan-out must not run on update")
			return nil, nil
		},
	}
	appointments := &mockAppointmentRepo{
		getFn: func(_ context.Context, id uuid.UUID) (*model.Appointment, error) {
			return &model.Appointment{Base: model.Base{ID: id}, PatientID: uuid.New(), TherapistID: therapistID}, nil
		},
	}

	svc := NewService(repo, appointments, catalog, logger.NewLogger(nil))

	// Even a changed exercise list only rewrites the plan row.
	newList := "Stretch\nPlank"
	plan, err := svc.UpdatePlan(context.Background(), planID, therapistID, &model.UpdateTreatmentPlanRequest{ExercisesList: &newList})
	require.NoError(t, err)
	assert.Equal(t, newList, plan.ExercisesList)
	require.NotNil(t, saved)
	assert.Empty(t, store.created)
}

func TestUpdatePlanScopedToOwnTherapist(t *testing.T) {
	planID := uuid.New()
	appointmentID := uuid.New()

	repo := &mockTreatmentRepo{
		getPlanFn: func(_ context.Context, id uuid.UUID) (*model.TreatmentPlan, error) {
			return &model.TreatmentPlan{
				Base:          model.Base{ID: id},
				AppointmentID: appointmentID,
				ExercisesList: "Stretch",
				Status:        model.TreatmentPlanStatusActive,
			}, nil
		},
		updatePlanFn: func(_ context.Context, _ *model.TreatmentPlan) error {
			t.Fatal("update must not run for a foreign therapist")
			return nil
		},
	}
	appointments := &mockAppointmentRepo{
		getFn: func(_ context.Context, id uuid.UUID) (*model.Appointment, error) {
			return &model.Appointment{Base: model.Base{ID: id}, TherapistID: uuid.New()}, nil
		},
	}

	svc := NewService(repo, appointments, &mockCatalogRepo{store: newExerciseStore()}, logger.NewLogger(nil))

	completed := model.TreatmentPlanStatusCompleted
	_, err := svc.UpdatePlan(context.Background(), planID, uuid.New(), &model.UpdateTreatmentPlanRequest{Status: &completed})
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)

	// uuid.Nil is the admin path and skips the scoping.
	repo.updatePlanFn = func(_ context.Context, _ *model.TreatmentPlan) error { return nil }
	_, err = svc.UpdatePlan(context.Background(), planID, uuid.Nil, &model.UpdateTreatmentPlanRequest{Status: &completed})
	require.NoError(t, err)
}
