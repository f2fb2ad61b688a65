package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/herahealth/portal-api/internal/model"
)

func (r *appointmentRepository) Create(ctx context.Context, appointment *model.Appointment) error {
	query := `
		INSERT INTO appointments (
			id, patient_id, doctor_id, scheduled_for,
			status, payment_status, payment_amount, notes,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	appointment.CreatedAt = time.Now()
	appointment.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		appointment.ID,
		appointment.PatientID,
		appointment.DoctorID,
		appointment.ScheduledFor,
		appointment.Status,
		appointment.PaymentStatus,
		appointment.PaymentAmount,
		appointment.Notes,
		appointment.CreatedAt,
		appointment.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	return nil
}

func (r *appointmentRepository) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	query := `
		SELECT id, patient_id, doctor_id, scheduled_for,
			   status, payment_status, payment_amount, notes,
			   created_at, updated_at
		FROM appointments
		WHERE id = $1
	`
	var appointment model.Appointment
	if err := r.db.GetContext(ctx, &appointment, query, id); err != nil {
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return &appointment, nil
}

func (r *appointmentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.AppointmentStatus, payment model.PaymentStatus) error {
	query := `
		UPDATE appointments
		SET status = $1, payment_status = $2, updated_at = $3
		WHERE id = $4
	`
	result, err := r.db.ExecContext(ctx, query, status, payment, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update appointment status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("appointment not found")
	}

	return nil
}

func (r *appointmentRepository) ListForPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Appointment, error) {
	query := `
		SELECT a.id, a.patient_id, a.doctor_id, a.scheduled_for,
			   a.status, a.payment_status, a.payment_amount, a.notes,
			   a.created_at, a.updated_at,
			   d.full_name AS doctor_name
		FROM appointments a
		LEFT JOIN profiles d ON d.id = a.doctor_id
		WHERE a.patient_id = $1
		ORDER BY a.scheduled_for ASC
	`
	var appointments []*model.Appointment
	if err := r.db.SelectContext(ctx, &appointments, query, patientID); err != nil {
		return nil, fmt.Errorf("failed to list patient appointments: %w", err)
	}
	return appointments, nil
}

func (r *appointmentRepository) ListForDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.Appointment, error) {
	query := `
		SELECT a.id, a.patient_id, a.doctor_id, a.scheduled_for,
			   a.status, a.payment_status, a.payment_amount, a.notes,
			   a.created_at, a.updated_at,
			   p.full_name AS patient_name
		FROM appointments a
		LEFT JOIN profiles p ON p.id = a.patient_id
		WHERE a.doctor_id = $1
		ORDER BY a.scheduled_for ASC
	`
	var appointments []*model.Appointment
	if err := r.db.SelectContext(ctx, &appointments, query, doctorID); err != nil {
		return nil, fmt.Errorf("failed to list doctor appointments: %w", err)
	}
	return appointments, nil
}

func (r *appointmentRepository) GetDoctorStats(ctx context.Context, doctorID uuid.UUID) (*model.DashboardStats, error) {
	query := `
		SELECT
			(SELECT COUNT(DISTINCT patient_id) FROM appointments
				WHERE doctor_id = $1 AND status <> 'cancelled') AS total_patients,
			(SELECT COALESCE(SUM(payment_amount), 0) FROM appointments
				WHERE doctor_id = $1 AND payment_status = 'completed') AS total_earnings,
			(SELECT COUNT(*) FROM appointments
				WHERE doctor_id = $1 AND status = 'pending') AS pending_appointments
	`
	var stats model.DashboardStats
	if err := r.db.GetContext(ctx, &stats, query, doctorID); err != nil {
		return nil, fmt.Errorf("failed to get doctor stats: %w", err)
	}
	return &stats, nil
}
