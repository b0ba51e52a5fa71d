package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/physiocare/physiocare-api/internal/model"
	apperrors "github.com/physiocare/physiocare-api/pkg/errors"
)

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (
			id, email, username, password_hash, role,
			phone_number, gender, date_of_birth, address, profile_picture,
			specialization, years_of_experience, qualification,
			availability_status, ratings_average, languages_spoken,
			verification_status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
	`
	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		user.ID,
		user.Email,
		user.Username,
		user.PasswordHash,
		user.Role,
		user.PhoneNumber,
		user.Gender,
		user.DateOfBirth,
		user.Address,
		user.ProfilePicture,
		user.Specialization,
		user.YearsOfExperience,
		user.Qualification,
		user.AvailabilityStatus,
		user.RatingsAverage,
		user.LanguagesSpoken,
		user.VerificationStatus,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *userRepository) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	query := `
		SELECT id, email, username, password_hash, role,
			   phone_number, gender, date_of_birth, address, profile_picture,
			   specialization, years_of_experience, qualification,
			   availability_status, ratings_average, languages_spoken,
			   verification_status, created_at, updated_at
		FROM users
		WHERE id = $1
	`
	var user model.User
	err := r.db.GetContext(ctx, &user, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %s: %w", id, apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `
		SELECT id, email, username, password_hash, role,
			   phone_number, gender, date_of_birth, address, profile_picture,
			   specialization, years_of_experience, qualification,
			   availability_status, ratings_average, languages_spoken,
			   verification_status, created_at, updated_at
		FROM users
		WHERE email = $1
	`
	var user model.User
	err := r.db.GetContext(ctx, &user, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %s: %w", email, apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return &user, nil
}

func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	query := `
		UPDATE users
		SET phone_number = $1, gender = $2, address = $3, profile_picture = $4,
			specialization = $5, years_of_experience = $6, qualification = $7,
			availability_status = $8, languages_spoken = $9,
			verification_status = $10, updated_at = $11
		WHERE id = $12
	`
	user.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		user.PhoneNumber,
		user.Gender,
		user.Address,
		user.ProfilePicture,
		user.Specialization,
		user.YearsOfExperience,
		user.Qualification,
		user.AvailabilityStatus,
		user.LanguagesSpoken,
		user.VerificationStatus,
		user.UpdatedAt,
		user.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("user %s: %w", user.ID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("user %s: %w", id, apperrors.ErrNotFound)
	}
	return nil
}

func (r *userRepository) List(ctx context.Context, role model.Role) ([]*model.User, error) {
	query := `
		SELECT id, email, username, password_hash, role,
			   phone_number, gender, date_of_birth, address, profile_picture,
			   specialization, years_of_experience, qualification,
			   availability_status, ratings_average, languages_spoken,
			   verification_status, created_at, updated_at
		FROM users
	`
	args := []interface{}{}
	if role != "" {
		query += ` WHERE role = $1`
		args = append(args, role)
	}
	query += ` ORDER BY created_at DESC`

	var users []*model.User
	if err := r.db.SelectContext(ctx, &users, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (r *userRepository) CreateTherapistProfile(ctx context.Context, profile *model.TherapistProfile) error {
	query := `
		INSERT INTO therapist_profiles (
			id, user_id, bio, expertise_areas, certifications,
			visiting_radius_km, consultation_fee, total_patients_treated,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	profile.ID = uuid.New()
	profile.CreatedAt = time.Now()
	profile.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		profile.ID,
		profile.UserID,
		profile.Bio,
		profile.ExpertiseAreas,
		profile.Certifications,
		profile.VisitingRadiusKM,
		profile.ConsultationFee,
		profile.TotalPatientsTreated,
		profile.CreatedAt,
		profile.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create therapist profile: %w", err)
	}
	return nil
}

func (r *userRepository) CreatePatientProfile(ctx context.Context, profile *model.PatientProfile) error {
	query := `
		INSERT INTO patient_profiles (
			id, user_id, medical_history, ongoing_conditions,
			emergency_contact, last_session_date, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	profile.ID = uuid.New()
	profile.CreatedAt = time.Now()
	profile.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		profile.ID,
		profile.UserID,
		profile.MedicalHistory,
		profile.OngoingConditions,
		profile.EmergencyContact,
		profile.LastSessionDate,
		profile.CreatedAt,
		profile.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create patient profile: %w", err)
	}
	return nil
}

func (r *userRepository) GetTherapistProfile(ctx context.Context, userID uuid.UUID) (*model.TherapistProfile, error) {
	query := `
		SELECT id, user_id, bio, expertise_areas, certifications,
			   visiting_radius_km, consultation_fee, total_patients_treated,
			   created_at, updated_at
		FROM therapist_profiles
		WHERE user_id = $1
	`
	var profile model.TherapistProfile
	err := r.db.GetContext(ctx, &profile, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("therapist profile for %s: %w", userID, apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get therapist profile: %w", err)
	}
	return &profile, nil
}

func (r *userRepository) GetPatientProfile(ctx context.Context, userID uuid.UUID) (*model.PatientProfile, error) {
	query := `
		SELECT id, user_id, medical_history, ongoing_conditions,
			   emergency_contact, last_session_date, created_at, updated_at
		FROM patient_profiles
		WHERE user_id = $1
	`
	var profile model.PatientProfile
	err := r.db.GetContext(ctx, &profile, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("patient profile for %s: %w", userID, apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get patient profile: %w", err)
	}
	return &profile, nil
}

func (r *userRepository) UpdateTherapistProfile(ctx context.Context, profile *model.TherapistProfile) error {
	query := `
		UPDATE therapist_profiles
		SET bio = $1, expertise_areas = $2, certifications = $3,
			visiting_radius_km = $4, consultation_fee = $5,
			total_patients_treated = $6, updated_at = $7
		WHERE user_id = $8
	`
	profile.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		profile.Bio,
		profile.ExpertiseAreas,
		profile.Certifications,
		profile.VisitingRadiusKM,
		profile.ConsultationFee,
		profile.TotalPatientsTreated,
		profile.UpdatedAt,
		profile.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update therapist profile: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("therapist profile for %s: %w", profile.UserID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *userRepository) UpdatePatientProfile(ctx context.Context, profile *model.PatientProfile) error {
	query := `
		UPDATE patient_profiles
		SET medical_history = $1, ongoing_conditions = $2,
			emergency_contact = $3, last_session_date = $4, updated_at = $5
		WHERE user_id = $6
	`
	profile.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		profile.MedicalHistory,
		profile.OngoingConditions,
		profile.EmergencyContact,
		profile.LastSessionDate,
		profile.UpdatedAt,
		profile.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update patient profile: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("patient profile for %s: %w", profile.UserID, apperrors.ErrNotFound)
	}
	return nil
}
