package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/herahealth/portal-api/internal/model"
)

// All repository interfaces in one file
type (
	// ProfileRepository handles identity-backed profile rows
	ProfileRepository interface {
		Create(ctx context.Context, profile *model.Profile) error
		Get(ctx context.Context, id uuid.UUID) (*model.Profile, error)
		GetByEmail(ctx context.Context, email string) (*model.Profile, error)
		Update(ctx context.Context, profile *model.Profile) error
		ListDoctors(ctx context.Context) ([]*model.DoctorProfile, error)
	}

	AppointmentRepository interface {
		Create(ctx context.Context, appointment *model.Appointment) error
		Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
		UpdateStatus(ctx context.Context, id uuid.UUID, status model.AppointmentStatus, payment model.PaymentStatus) error
		ListForPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Appointment, error)
		ListForDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.Appointment, error)
		GetDoctorStats(ctx context.Context, doctorID uuid.UUID) (*model.DashboardStats, error)
	}

	PrescriptionRepository interface {
		Create(ctx context.Context, prescription *model.Prescription) error
		ListForUser(ctx context.Context, userID uuid.UUID) ([]*model.Prescription, error)
	}

	HealthRecordRepository interface {
		Create(ctx context.Context, record *model.HealthRecord) error
		ListForUser(ctx context.Context, userID uuid.UUID) ([]*model.HealthRecord, error)
	}

	PeriodLogRepository interface {
		Create(ctx context.Context, log *model.PeriodLog) error
		ListForUser(ctx context.Context, userID uuid.UUID) ([]*model.PeriodLog, error)
	}

	NotificationRepository interface {
		Create(ctx context.Context, notification *model.Notification) error
		ListForUser(ctx context.Context, userID uuid.UUID) ([]*model.Notification, error)
		MarkRead(ctx context.Context, id, userID uuid.UUID) error
	}

	OutboxRepository interface {
		Create(ctx context.Context, event *model.OutboxEvent) error
		GetPendingEvents(ctx context.Context, limit int) ([]*model.OutboxEvent, error)
		MarkProcessed(ctx context.Context, id uuid.UUID) error
		MarkFailed(ctx context.Context, id uuid.UUID, errMsg string, retryCount int) error
	}

	TokenRepository interface {
		StoreRefreshToken(ctx context.Context, userID uuid.UUID, tokenHash string, expiry time.Time) error
		ValidateRefreshToken(ctx context.Context, tokenHash string) (uuid.UUID, error)
		RevokeRefreshToken(ctx context.Context, tokenHash string) error
	}
)
