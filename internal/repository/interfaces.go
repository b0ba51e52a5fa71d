package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/physiocare/physiocare-api/internal/model"
)

// All repository interfaces in one file
type (
	UserRepository interface {
		Create(ctx context.Context, user *model.User) error
		Get(ctx context.Context, id uuid.UUID) (*model.User, error)
		GetByEmail(ctx context.Context, email string) (*model.User, error)
		Update(ctx context.Context, user *model.User) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context, role model.Role) ([]*model.User, error)

		CreateTherapistProfile(ctx context.Context, profile *model.TherapistProfile) error
		CreatePatientProfile(ctx context.Context, profile *model.PatientProfile) error
		GetTherapistProfile(ctx context.Context, userID uuid.UUID) (*model.TherapistProfile, error)
		GetPatientProfile(ctx context.Context, userID uuid.UUID) (*model.PatientProfile, error)
		UpdateTherapistProfile(ctx context.Context, profile *model.TherapistProfile) error
		UpdatePatientProfile(ctx context.Context, profile *model.PatientProfile) error
	}

	CatalogRepository interface {
		CreateService(ctx context.Context, service *model.Service) error
		GetService(ctx context.Context, id uuid.UUID) (*model.Service, error)
		UpdateService(ctx context.Context, service *model.Service) error
		DeleteService(ctx context.Context, id uuid.UUID) error
		ListServices(ctx context.Context, onlyActive bool) ([]*model.Service, error)

		CreateExercise(ctx context.Context, exercise *model.Exercise) error
		UpdateExercise(ctx context.Context, exercise *model.Exercise) error
		GetExercise(ctx context.Context, id uuid.UUID) (*model.Exercise, error)
		GetExerciseByName(ctx context.Context, name string) (*model.Exercise, error)
		ListExercises(ctx context.Context) ([]*model.Exercise, error)
	}

	ScheduleRepository interface {
		CreateSlot(ctx context.Context, slot *model.AvailabilitySlot) error
		GetSlot(ctx context.Context, id uuid.UUID) (*model.AvailabilitySlot, error)
		ListSlots(ctx context.Context, filters *model.SlotFilters) ([]*model.AvailabilitySlot, error)
		DeleteSlot(ctx context.Context, id uuid.UUID) error
		ReleaseSlot(ctx context.Context, id uuid.UUID) error

		CreateLeave(ctx context.Context, leave *model.TherapistLeave) error
		GetLeave(ctx context.Context, id uuid.UUID) (*model.TherapistLeave, error)
		ListLeaves(ctx context.Context, therapistID uuid.UUID) ([]*model.TherapistLeave, error)
		ApproveLeave(ctx context.Context, id, approverID uuid.UUID) error

		CreateCoverage(ctx context.Context, coverage *model.LocationCoverage) error
		GetCoverage(ctx context.Context, id uuid.UUID) (*model.LocationCoverage, error)
		UpdateCoverage(ctx context.Context, coverage *model.LocationCoverage) error
		DeleteCoverage(ctx context.Context, id uuid.UUID) error
		ListCoverageForTherapist(ctx context.Context, therapistID uuid.UUID) ([]*model.LocationCoverage, error)
	}

	AppointmentRepository interface {
		// Create persists the appointment and, when SlotID is set,
		// atomically claims the slot in the same transaction. A slot
		// already booked fails the whole operation.
		Create(ctx context.Context, appointment *model.Appointment) error
		Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
		Update(ctx context.Context, appointment *model.Appointment) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error)
		UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status string) error
	}

	TreatmentRepository interface {
		CreatePlan(ctx context.Context, plan *model.TreatmentPlan) error
		GetPlan(ctx context.Context, id uuid.UUID) (*model.TreatmentPlan, error)
		UpdatePlan(ctx context.Context, plan *model.TreatmentPlan) error
		ListPlansForPatient(ctx context.Context, patientID uuid.UUID) ([]*model.TreatmentPlan, error)

		// FindOrCreateProgress returns the existing row for the
		// (patient, exercise, plan) triple or inserts a fresh one.
		FindOrCreateProgress(ctx context.Context, patientID, exerciseID, planID uuid.UUID) (*model.ProgressTracking, error)
		GetProgress(ctx context.Context, id uuid.UUID) (*model.ProgressTracking, error)
		UpdateProgress(ctx context.Context, progress *model.ProgressTracking) error
		ListProgressForPatient(ctx context.Context, patientID uuid.UUID) ([]*model.ProgressTracking, error)
	}

	FeedbackRepository interface {
		// CreateAndRecompute inserts the feedback and recomputes the
		// therapist's ratings_average from all rows in one
		// transaction, returning the new average.
		CreateAndRecompute(ctx context.Context, feedback *model.Feedback) (float64, error)
		ListForTherapist(ctx context.Context, therapistID uuid.UUID) ([]*model.Feedback, error)
	}

	PaymentRepository interface {
		Create(ctx context.Context, payment *model.Payment) error
		Get(ctx context.Context, id uuid.UUID) (*model.Payment, error)
		GetByTransactionID(ctx context.Context, transactionID string) (*model.Payment, error)
		Update(ctx context.Context, payment *model.Payment) error
		ListForAppointment(ctx context.Context, appointmentID uuid.UUID) ([]*model.Payment, error)
	}

	CouponRepository interface {
		Create(ctx context.Context, coupon *model.DiscountCoupon) error
		GetByCode(ctx context.Context, code string) (*model.DiscountCoupon, error)
		List(ctx context.Context) ([]*model.DiscountCoupon, error)
		IncrementUsage(ctx context.Context, id uuid.UUID) error
		Deactivate(ctx context.Context, id uuid.UUID) error
	}

	SubscriptionRepository interface {
		CreatePlan(ctx context.Context, plan *model.SubscriptionPlan) error
		GetPlan(ctx context.Context, id uuid.UUID) (*model.SubscriptionPlan, error)
		ListPlans(ctx context.Context, onlyActive bool) ([]*model.SubscriptionPlan, error)
		CreateTransaction(ctx context.Context, txn *model.Transaction) error
		ListTransactionsForUser(ctx context.Context, userID uuid.UUID) ([]*model.Transaction, error)
	}

	NotificationRepository interface {
		Create(ctx context.Context, notification *model.Notification) error
		ListForUser(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]*model.Notification, error)
		MarkRead(ctx context.Context, id, userID uuid.UUID) error
		CountUnread(ctx context.Context, userID uuid.UUID) (int, error)
	}

	SupportRepository interface {
		CreateEmergency(ctx context.Context, req *model.EmergencyRequest) error
		GetEmergency(ctx context.Context, id uuid.UUID) (*model.EmergencyRequest, error)
		UpdateEmergency(ctx context.Context, req *model.EmergencyRequest) error
		ListEmergencies(ctx context.Context, status model.EmergencyStatus) ([]*model.EmergencyRequest, error)

		CreateChatMessage(ctx context.Context, msg *model.ChatMessage) error
		GetChatMessage(ctx context.Context, id uuid.UUID) (*model.ChatMessage, error)
		DeleteChatMessage(ctx context.Context, id uuid.UUID) error
		ListConversation(ctx context.Context, userA, userB uuid.UUID) ([]*model.ChatMessage, error)

		CreateTicket(ctx context.Context, ticket *model.SupportTicket) error
		GetTicket(ctx context.Context, id uuid.UUID) (*model.SupportTicket, error)
		UpdateTicket(ctx context.Context, ticket *model.SupportTicket) error
		ListTickets(ctx context.Context, userID uuid.UUID) ([]*model.SupportTicket, error)

		CreateReminder(ctx context.Context, reminder *model.HomeExerciseReminder) error
		ListRemindersForPatient(ctx context.Context, patientID uuid.UUID) ([]*model.HomeExerciseReminder, error)
		ListDueReminders(ctx context.Context, now time.Time) ([]*model.HomeExerciseReminder, error)
		MarkReminderDispatched(ctx context.Context, id uuid.UUID, at time.Time) error
		CompleteReminder(ctx context.Context, id uuid.UUID) error
	}

	ContentRepository interface {
		CreateArticle(ctx context.Context, article *model.BlogArticle) error
		GetArticle(ctx context.Context, id uuid.UUID) (*model.BlogArticle, error)
		GetArticleBySlug(ctx context.Context, slug string) (*model.BlogArticle, error)
		UpdateArticle(ctx context.Context, article *model.BlogArticle) error
		DeleteArticle(ctx context.Context, id uuid.UUID) error
		ListArticles(ctx context.Context, publishedOnly bool) ([]*model.BlogArticle, error)

		CreateFAQ(ctx context.Context, faq *model.FAQ) error
		ListFAQs(ctx context.Context, activeOnly bool) ([]*model.FAQ, error)
		DeleteFAQ(ctx context.Context, id uuid.UUID) error

		CreateBranch(ctx context.Context, branch *model.ClinicBranch) error
		GetBranch(ctx context.Context, id uuid.UUID) (*model.ClinicBranch, error)
		UpdateBranch(ctx context.Context, branch *model.ClinicBranch) error
		ListBranches(ctx context.Context) ([]*model.ClinicBranch, error)
	}

	AnalyticsRepository interface {
		CreateReport(ctx context.Context, report *model.AnalyticsReport) error
		ListReportsForTherapist(ctx context.Context, therapistID uuid.UUID) ([]*model.AnalyticsReport, error)
		CreatePrediction(ctx context.Context, prediction *model.RecoveryPrediction) error
		ListPredictions(ctx context.Context) ([]*model.RecoveryPrediction, error)
	}
)
