package model

import (
	"time"

	"github.com/google/uuid"
)

// Profile is the application-level record extending an identity with
// role-specific fields. Doctor and patient fields share one shape with an
// is_doctor discriminant, mirroring the portal's single profiles table.
type Profile struct {
	Base
	Email             string     `json:"email" db:"email"`
	PasswordHash      string     `json:"-" db:"password_hash"`
	FullName          *string    `json:"full_name" db:"full_name"`
	DateOfBirth       *time.Time `json:"date_of_birth" db:"date_of_birth"`
	PhoneNumber       *string    `json:"phone_number" db:"phone_number"`
	IsDoctor          bool       `json:"is_doctor" db:"is_doctor"`
	Specialization    *string    `json:"specialization,omitempty" db:"specialization"`
	LicenseNumber     *string    `json:"license_number,omitempty" db:"license_number"`
	ConsultationFee   *float64   `json:"consultation_fee,omitempty" db:"consultation_fee"`
	YearsOfExperience *int       `json:"years_of_experience,omitempty" db:"years_of_experience"`
	CycleLength       *int       `json:"cycle_length,omitempty" db:"cycle_length"`
	LastPeriodDate    *time.Time `json:"last_period_date,omitempty" db:"last_period_date"`
}

// RegisterRequest represents account creation parameters. The role is fixed
// at signup and never changes afterwards.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	FullName string `json:"full_name" binding:"required"`
	IsDoctor bool   `json:"is_doctor"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// UpdateProfileRequest represents profile self-service update parameters.
// Nil fields are left untouched.
type UpdateProfileRequest struct {
	FullName          *string    `json:"full_name"`
	PhoneNumber       *string    `json:"phone_number"`
	DateOfBirth       *time.Time `json:"date_of_birth"`
	CycleLength       *int       `json:"cycle_length" binding:"omitempty,min=1"`
	Specialization    *string    `json:"specialization"`
	LicenseNumber     *string    `json:"license_number"`
	ConsultationFee   *float64   `json:"consultation_fee" binding:"omitempty,min=0"`
	YearsOfExperience *int       `json:"years_of_experience" binding:"omitempty,min=0"`
}

// DoctorProfile is the directory view of a doctor, stripped of private fields.
type DoctorProfile struct {
	ID                uuid.UUID `json:"id" db:"id"`
	FullName          *string   `json:"full_name" db:"full_name"`
	Specialization    *string   `json:"specialization" db:"specialization"`
	ConsultationFee   *float64  `json:"consultation_fee" db:"consultation_fee"`
	YearsOfExperience *int      `json:"years_of_experience" db:"years_of_experience"`
}

// Fee returns the doctor's consultation fee, defaulting to 0 when unset.
func (p *Profile) Fee() float64 {
	if p.ConsultationFee == nil {
		return 0
	}
	return *p.ConsultationFee
}
