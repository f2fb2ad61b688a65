package prescription

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/herahealth/portal-api/internal/model"
	apperrors "github.com/herahealth/portal-api/pkg/errors"
)

type fakePrescriptionRepo struct {
	prescriptions []*model.Prescription
}

func (r *fakePrescriptionRepo) Create(ctx context.Context, p *model.Prescription) error {
	r.prescriptions = append(r.prescriptions, p)
	return nil
}

func (r *fakePrescriptionRepo) ListForUser(ctx context.Context, userID uuid.UUID) ([]*model.Prescription, error) {
	var out []*model.Prescription
	for _, p := range r.prescriptions {
		if p.DoctorID == userID || p.PatientID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeAppointmentRepo struct {
	appointments map[uuid.UUID]*model.Appointment
}

func (r *fakeAppointmentRepo) Create(ctx context.Context, a *model.Appointment) error { return nil }

func (r *fakeAppointmentRepo) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	a, ok := r.appointments[id]
	if !ok {
		return nil, apperrors.NotFound("appointment", nil)
	}
	return a, nil
}

func (r *fakeAppointmentRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status model.AppointmentStatus, payment model.PaymentStatus) error {
	return nil
}

func (r *fakeAppointmentRepo) ListForPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Appointment, error) {
	return nil, nil
}

func (r *fakeAppointmentRepo) ListForDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.Appointment, error) {
	return nil, nil
}

func (r *fakeAppointmentRepo) GetDoctorStats(ctx context.Context, doctorID uuid.UUID) (*model.DashboardStats, error) {
	return nil, nil
}

type noopNotifier struct{}

func (noopNotifier) Notify(ctx context.Context, userID uuid.UUID, typ model.NotificationType, title, message string) {
}

func (noopNotifier) List(ctx context.Context, userID uuid.UUID) ([]*model.Notification, error) {
	return nil, nil
}

func (noopNotifier) MarkRead(ctx context.Context, id, userID uuid.UUID) error { return nil }

func newTestService(t *testing.T) (*Service, *fakePrescriptionRepo, *fakeAppointmentRepo) {
	t.Helper()
	repo := &fakePrescriptionRepo{}
	appointments := &fakeAppointmentRepo{appointments: make(map[uuid.UUID]*model.Appointment)}
	svc := NewService(repo, appointments, noopNotifier{})
	svc.now = func() time.Time {
		return time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	}
	return svc, repo, appointments
}

func seedAppointment(appointments *fakeAppointmentRepo, doctorID, patientID uuid.UUID) *model.Appointment {
	apt := &model.Appointment{
		Base:      model.Base{ID: uuid.New()},
		PatientID: patientID,
		DoctorID:  doctorID,
		Status:    model.AppointmentStatusConfirmed,
	}
	appointments.appointments[apt.ID] = apt
	return apt
}

func TestCreate(t *testing.T) {
	svc, _, appointments := newTestService(t)
	doctorID := uuid.New()
	patientID := uuid.New()
	apt := seedAppointment(appointments, doctorID, patientID)

	prescription, err := svc.Create(context.Background(), doctorID, &model.CreatePrescriptionRequest{
		AppointmentID: apt.ID.String(),
		Medications: []model.Medication{
			{Name: "Ibuprofen", Dosage: "200mg", Frequency: "twice daily", Duration: "5 days"},
		},
		Instructions: "Take with food",
	})
	require.NoError(t, err)

	assert.Equal(t, patientID, prescription.PatientID, "patient comes from the appointment")
	assert.Equal(t, doctorID, prescription.DoctorID)
	assert.Equal(t, svc.now().Add(30*24*time.Hour), prescription.ValidUntil)
	require.NotNil(t, prescription.Instructions)
	assert.Equal(t, "Take with food", *prescription.Instructions)
}

func TestCreateWrongDoctor(t *testing.T) {
	svc, repo, appointments := newTestService(t)
	apt := seedAppointment(appointments, uuid.New(), uuid.New())

	_, err := svc.Create(context.Background(), uuid.New(), &model.CreatePrescriptionRequest{
		AppointmentID: apt.ID.String(),
		Medications:   []model.Medication{{Name: "X", Dosage: "1", Frequency: "daily", Duration: "1 day"}},
	})
	require.Error(t, err)

	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrForbidden, appErr.Code)
	assert.Empty(t, repo.prescriptions)
}

func TestCreateUnknownAppointment(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Create(context.Background(), uuid.New(), &model.CreatePrescriptionRequest{
		AppointmentID: uuid.NewString(),
		Medications:   []model.Medication{{Name: "X", Dosage: "1", Frequency: "daily", Duration: "1 day"}},
	})
	require.Error(t, err)
}

func TestCreateNoMedications(t *testing.T) {
	svc, repo, appointments := newTestService(t)
	doctorID := uuid.New()
	apt := seedAppointment(appointments, doctorID, uuid.New())

	_, err := svc.Create(context.Background(), doctorID, &model.CreatePrescriptionRequest{
		AppointmentID: apt.ID.String(),
	})
	require.Error(t, err)
	assert.Empty(t, repo.prescriptions)
}

func TestListVisibleToBothParties(t *testing.T) {
	svc, _, appointments := newTestService(t)
	doctorID := uuid.New()
	patientID := uuid.New()
	apt := seedAppointment(appointments, doctorID, patientID)

	_, err := svc.Create(context.Background(), doctorID, &model.CreatePrescriptionRequest{
		AppointmentID: apt.ID.String(),
		Medications:   []model.Medication{{Name: "X", Dosage: "1", Frequency: "daily", Duration: "1 day"}},
	})
	require.NoError(t, err)

	forDoctor, err := svc.List(context.Background(), doctorID)
	require.NoError(t, err)
	forPatient, err := svc.List(context.Background(), patientID)
	require.NoError(t, err)
	forStranger, err := svc.List(context.Background(), uuid.New())
	require.NoError(t, err)

	assert.Len(t, forDoctor, 1)
	assert.Len(t, forPatient, 1)
	assert.Empty(t, forStranger)
}
