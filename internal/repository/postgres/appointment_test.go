package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/herahealth/portal-api/internal/model"
	"github.com/herahealth/portal-api/internal/repository"
)

func newMockRepo(t *testing.T) (repository.AppointmentRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewAppointmentRepository(sqlx.NewDb(db, "sqlmock")), mock
}

func TestAppointmentCreate(t *testing.T) {
	repo, mock := newMockRepo(t)

	apt := &model.Appointment{
		Base:          model.Base{ID: uuid.New()},
		PatientID:     uuid.New(),
		DoctorID:      uuid.New(),
		ScheduledFor:  time.Date(2026, 3, 12, 10, 0, 0, 0, time.UTC),
		Status:        model.AppointmentStatusPending,
		PaymentStatus: model.PaymentStatusPending,
		PaymentAmount: 50,
	}

	mock.ExpectExec(`INSERT INTO appointments`).
		WithArgs(apt.ID, apt.PatientID, apt.DoctorID, apt.ScheduledFor,
			apt.Status, apt.PaymentStatus, apt.PaymentAmount, nil,
			sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(context.Background(), apt)
	require.NoError(t, err)
	assert.False(t, apt.CreatedAt.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAppointmentGet(t *testing.T) {
	repo, mock := newMockRepo(t)

	id := uuid.New()
	patientID := uuid.New()
	doctorID := uuid.New()
	scheduledFor := time.Date(2026, 3, 12, 10, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{
		"id", "patient_id", "doctor_id", "scheduled_for",
		"status", "payment_status", "payment_amount", "notes",
		"created_at", "updated_at",
	}).AddRow(id, patientID, doctorID, scheduledFor,
		"pending", "pending", 50.0, nil,
		time.Now(), time.Now())

	mock.ExpectQuery(`SELECT (.+) FROM appointments`).
		WithArgs(id).
		WillReturnRows(rows)

	apt, err := repo.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, apt.ID)
	assert.Equal(t, model.AppointmentStatusPending, apt.Status)
	assert.Equal(t, 50.0, apt.PaymentAmount)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAppointmentUpdateStatus(t *testing.T) {
	repo, mock := newMockRepo(t)
	id := uuid.New()

	mock.ExpectExec(`UPDATE appointments`).
		WithArgs(model.AppointmentStatusConfirmed, model.PaymentStatusCompleted, sqlmock.AnyArg(), id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateStatus(context.Background(), id, model.AppointmentStatusConfirmed, model.PaymentStatusCompleted)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAppointmentUpdateStatusNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)
	id := uuid.New()

	mock.ExpectExec(`UPDATE appointments`).
		WithArgs(model.AppointmentStatusCancelled, model.PaymentStatusPending, sqlmock.AnyArg(), id).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateStatus(context.Background(), id, model.AppointmentStatusCancelled, model.PaymentStatusPending)
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetDoctorStats(t *testing.T) {
	repo, mock := newMockRepo(t)
	doctorID := uuid.New()

	rows := sqlmock.NewRows([]string{"total_patients", "total_earnings", "pending_appointments"}).
		AddRow(3, 150.0, 2)

	mock.ExpectQuery(`SELECT`).
		WithArgs(doctorID).
		WillReturnRows(rows)

	stats, err := repo.GetDoctorStats(context.Background(), doctorID)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalPatients)
	assert.Equal(t, 150.0, stats.TotalEarnings)
	assert.Equal(t, 2, stats.PendingAppointments)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListForDoctorIncludesPatientName(t *testing.T) {
	repo, mock := newMockRepo(t)
	doctorID := uuid.New()

	rows := sqlmock.NewRows([]string{
		"id", "patient_id", "doctor_id", "scheduled_for",
		"status", "payment_status", "payment_amount", "notes",
		"created_at", "updated_at", "patient_name",
	}).AddRow(uuid.New(), uuid.New(), doctorID, time.Now(),
		"confirmed", "completed", 50.0, nil,
		time.Now(), time.Now(), "Jane Doe")

	mock.ExpectQuery(`SELECT (.+) FROM appointments a`).
		WithArgs(doctorID).
		WillReturnRows(rows)

	appointments, err := repo.ListForDoctor(context.Background(), doctorID)
	require.NoError(t, err)
	require.Len(t, appointments, 1)
	require.NotNil(t, appointments[0].PatientName)
	assert.Equal(t, "Jane Doe", *appointments[0].PatientName)
	require.NoError(t, mock.ExpectationsWereMet())
}
