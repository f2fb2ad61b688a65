package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/herahealth/portal-api/internal/model"
)

func (r *profileRepository) Create(ctx context.Context, profile *model.Profile) error {
	query := `
		INSERT INTO profiles (
			id, email, password_hash, full_name, is_doctor,
			specialization, license_number, consultation_fee, years_of_experience,
			cycle_length, last_period_date, date_of_birth, phone_number,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`
	profile.CreatedAt = time.Now()
	profile.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		profile.ID,
		profile.Email,
		profile.PasswordHash,
		profile.FullName,
		profile.IsDoctor,
		profile.Specialization,
		profile.LicenseNumber,
		profile.ConsultationFee,
		profile.YearsOfExperience,
		profile.CycleLength,
		profile.LastPeriodDate,
		profile.DateOfBirth,
		profile.PhoneNumber,
		profile.CreatedAt,
		profile.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}
	return nil
}

func (r *profileRepository) Get(ctx context.Context, id uuid.UUID) (*model.Profile, error) {
	query := `
		SELECT id, email, password_hash, full_name, is_doctor,
			   specialization, license_number, consultation_fee, years_of_experience,
			   cycle_length, last_period_date, date_of_birth, phone_number,
			   created_at, updated_at
		FROM profiles
		WHERE id = $1
	`
	var profile model.Profile
	if err := r.db.GetContext(ctx, &profile, query, id); err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &profile, nil
}

func (r *profileRepository) GetByEmail(ctx context.Context, email string) (*model.Profile, error) {
	query := `
		SELECT id, email, password_hash, full_name, is_doctor,
			   specialization, license_number, consultation_fee, years_of_experience,
			   cycle_length, last_period_date, date_of_birth, phone_number,
			   created_at, updated_at
		FROM profiles
		WHERE email = $1
	`
	var profile model.Profile
	if err := r.db.GetContext(ctx, &profile, query, email); err != nil {
		return nil, fmt.Errorf("failed to get profile by email: %w", err)
	}
	return &profile, nil
}

func (r *profileRepository) Update(ctx context.Context, profile *model.Profile) error {
	query := `
		UPDATE profiles
		SET full_name = $1, phone_number = $2, date_of_birth = $3,
			cycle_length = $4, last_period_date = $5,
			specialization = $6, license_number = $7,
			consultation_fee = $8, years_of_experience = $9,
			updated_at = $10
		WHERE id = $11
	`
	profile.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		profile.FullName,
		profile.PhoneNumber,
		profile.DateOfBirth,
		profile.CycleLength,
		profile.LastPeriodDate,
		profile.Specialization,
		profile.LicenseNumber,
		profile.ConsultationFee,
		profile.YearsOfExperience,
		profile.UpdatedAt,
		profile.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("profile not found")
	}

	return nil
}

func (r *profileRepository) ListDoctors(ctx context.Context) ([]*model.DoctorProfile, error) {
	query := `
		SELECT id, full_name, specialization, consultation_fee, years_of_experience
		FROM profiles
		WHERE is_doctor = true
		ORDER BY full_name ASC
	`
	var doctors []*model.DoctorProfile
	if err := r.db.SelectContext(ctx, &doctors, query); err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	return doctors, nil
}
