package model

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RolePatient      Role = "Patient"
	RoleTherapist    Role = "Therapist"
	RoleAdmin        Role = "Admin"
	RoleSupportStaff Role = "SupportStaff"
)

func (r Role) Valid() bool {
	switch r {
	case RolePatient, RoleTherapist, RoleAdmin, RoleSupportStaff:
		return true
	}
	return false
}

// User represents a registered account. Role is fixed at registration;
// update paths never touch it.
type User struct {
	Base
	Email              string     `json:"email" db:"email"`
	Username           string     `json:"username" db:"username"`
	Password           string     `json:"password,omitempty" db:"-"`
	PasswordHash       string     `json:"-" db:"password_hash"`
	Role               Role       `json:"role" db:"role"`
	PhoneNumber        *string    `json:"phone_number" db:"phone_number"`
	Gender             *string    `json:"gender" db:"gender"`
	DateOfBirth        *time.Time `json:"date_of_birth" db:"date_of_birth"`
	Address            *string    `json:"address" db:"address"`
	ProfilePicture     *string    `json:"profile_picture" db:"profile_picture"`
	Specialization     *string    `json:"specialization" db:"specialization"`
	YearsOfExperience  int        `json:"years_of_experience" db:"years_of_experience"`
	Qualification      *string    `json:"qualification" db:"qualification"`
	AvailabilityStatus bool       `json:"availability_status" db:"availability_status"`
	RatingsAverage     float64    `json:"ratings_average" db:"ratings_average"`
	LanguagesSpoken    *string    `json:"languages_spoken" db:"languages_spoken"`
	VerificationStatus bool       `json:"verification_status" db:"verification_status"`
}

// TherapistProfile is auto-created when a Therapist registers.
type TherapistProfile struct {
	Base
	UserID               uuid.UUID `json:"user_id" db:"user_id"`
	Bio                  *string   `json:"bio" db:"bio"`
	ExpertiseAreas       *string   `json:"expertise_areas" db:"expertise_areas"`
	Certifications       *string   `json:"certifications" db:"certifications"`
	VisitingRadiusKM     float64   `json:"visiting_radius_km" db:"visiting_radius_km"`
	ConsultationFee      float64   `json:"consultation_fee" db:"consultation_fee"`
	TotalPatientsTreated int       `json:"total_patients_treated" db:"total_patients_treated"`
}

// PatientProfile is auto-created when a Patient registers.
type PatientProfile struct {
	Base
	UserID            uuid.UUID  `json:"user_id" db:"user_id"`
	MedicalHistory    *string    `json:"medical_history" db:"medical_history"`
	OngoingConditions *string    `json:"ongoing_conditions" db:"ongoing_conditions"`
	EmergencyContact  *string    `json:"emergency_contact" db:"emergency_contact"`
	LastSessionDate   *time.Time `json:"last_session_date" db:"last_session_date"`
}

type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Username    string `json:"username" binding:"required,min=3,max=50"`
	Password    string `json:"password" binding:"required,min=8"`
	Role        Role   `json:"role" binding:"required,oneof=Patient Therapist Admin SupportStaff"`
	PhoneNumber string `json:"phone_number" binding:"omitempty,max=15"`
	Gender      string `json:"gender" binding:"omitempty,oneof=Male Female Other"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

type TokenClaims struct {
	UserID uuid.UUID
	Email  string
	Role   Role
}

type UpdateUserRequest struct {
	PhoneNumber     *string `json:"phone_number"`
	Gender          *string `json:"gender" binding:"omitempty,oneof=Male Female Other"`
	Address         *string `json:"address"`
	Specialization  *string `json:"specialization"`
	Qualification   *string `json:"qualification"`
	LanguagesSpoken *string `json:"languages_spoken"`
}
