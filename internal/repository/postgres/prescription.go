package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/herahealth/portal-api/internal/model"
)

func (r *prescriptionRepository) Create(ctx context.Context, prescription *model.Prescription) error {
	query := `
		INSERT INTO prescriptions (
			id, appointment_id, doctor_id, patient_id,
			medications, instructions, valid_until, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	prescription.CreatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		prescription.ID,
		prescription.AppointmentID,
		prescription.DoctorID,
		prescription.PatientID,
		prescription.Medications,
		prescription.Instructions,
		prescription.ValidUntil,
		prescription.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create prescription: %w", err)
	}
	return nil
}

func (r *prescriptionRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]*model.Prescription, error) {
	query := `
		SELECT id, appointment_id, doctor_id, patient_id,
			   medications, instructions, valid_until, created_at
		FROM prescriptions
		WHERE doctor_id = $1 OR patient_id = $1
		ORDER BY created_at DESC
	`
	var prescriptions []*model.Prescription
	if err := r.db.SelectContext(ctx, &prescriptions, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list prescriptions: %w", err)
	}
	return prescriptions, nil
}
