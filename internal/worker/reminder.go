package worker

import (
	"context"
	"time"

	"github.com/physiocare/physiocare-api/internal/email"
	"github.com/physiocare/physiocare-api/internal/repository"
	"github.com/physiocare/physiocare-api/pkg/logger"
	"github.com/physiocare/physiocare-api/pkg/metrics"
)

// ReminderDispatcher polls for due exercise reminders and delivers
// them over email. Each reminder is dispatched at most once.
type ReminderDispatcher struct {
	support  repository.SupportRepository
	catalog  repository.CatalogRepository
	users    repository.UserRepository
	emailSvc email.Service
	metrics  *metrics.Metrics
	logger   *logger.Logger
	interval time.Duration
}

func NewReminderDispatcher(
	support repository.SupportRepository,
	catalog repository.CatalogRepository,
	users repository.UserRepository,
	emailSvc email.Service,
	m *metrics.Metrics,
	logger *logger.Logger,
	interval time.Duration,
) *ReminderDispatcher {
	if interval <= 0 {
		interval = time.Minute
	}
	return &ReminderDispatcher{
		support:  support,
		catalog:  catalog,
		users:    users,
		emailSvc: emailSvc,
		metrics:  m,
		logger:   logger,
		interval: interval,
	}
}

// Run blocks until the context is cancelled.
func (d *ReminderDispatcher) Run(ctx context.Context) {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	d.logger.Info("reminder dispatcher started", "interval", d.interval.String())
	for {
		select {
		case <-ctx.Done():
			d.logger.Info("reminder dispatcher stopped")
			return
		case <-ticker.C:
			d.dispatchDue(ctx)
		}
	}
}

func (d *ReminderDispatcher) dispatchDue(ctx context.Context) {
	reminders, err := d.support.ListDueReminders(ctx, time.Now())
	if err != nil {
		d.logger.Error(err, "failed to list due reminders")
		if d.metrics != nil {
			d.metrics.ReminderErrors.Inc()
		}
		return
	}

	for _, reminder := range reminders {
		patient, err := d.users.Get(ctx, reminder.PatientID)
		if err != nil {
			d.logger.Error(err, "failed to load reminder patient", "reminder_id", reminder.ID)
			if d.metrics != nil {
				d.metrics.ReminderErrors.Inc()
			}
			continue
		}
		exercise, err := d.catalog.GetExercise(ctx, reminder.ExerciseID)
		if err != nil {
			d.logger.Error(err, "failed to load reminder exercise", "reminder_id", reminder.ID)
			if d.metrics != nil {
				d.metrics.ReminderErrors.Inc()
			}
			continue
		}

		if err := d.emailSvc.Send(patient.Email, "Exercise Reminder", email.ReminderBody(patient.Username, exercise.Name)); err != nil {
			d.logger.Error(err, "failed to send reminder", "reminder_id", reminder.ID)
			if d.metrics != nil {
				d.metrics.ReminderErrors.Inc()
			}
			continue
		}

		if err := d.support.MarkReminderDispatched(ctx, reminder.ID, time.Now()); err != nil {
			d.logger.Error(err, "failed to mark reminder dispatched", "reminder_id", reminder.ID)
			continue
		}
		if d.metrics != nil {
			d.metrics.RemindersDispatched.Inc()
		}
	}
}
