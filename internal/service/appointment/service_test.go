package appointment

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

type fakeAppointmentRepo struct {
	appointments map[uuid.UUID]*model.Appointment
	stats        model.DashboardStats
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{appointments: make(map[uuid.UUID]*model.Appointment)}
}

func (r *fakeAppointmentRepo) Create(ctx context.Context, a *model.Appointment) error {
	cp := *a
	r.appointments[a.ID] = &cp
	return nil
}

func (r *fakeAppointmentRepo) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	a, ok := r.appointments[id]
	if !ok {
		return nil, apperrors.NotFound("appointment", nil)
	}
	cp := *a
	return &cp, nil
}

func (r *fakeAppointmentRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status model.AppointmentStatus, payment model.PaymentStatus) error {
	a, ok := r.appointments[id]
	if !ok {
		return apperrors.NotFound("appointment", nil)
	}
	a.Status = status
	a.PaymentStatus = payment
	return nil
}

func (r *fakeAppointmentRepo) ListForPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Appointment, error) {
	var out []*model.Appointment
	for _, a := range r.appointments {
		if a.PatientID == patientID {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeAppointmentRepo) ListForDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.Appointment, error) {
	var out []*model.Appointment
	for _, a := range r.appointments {
		if a.DoctorID == doctorID {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeAppointmentRepo) GetDoctorStats(ctx context.Context, doctorID uuid.UUID) (*model.DashboardStats, error) {
	// Derived the same way the SQL does
	patients := make(map[uuid.UUID]struct{})
	stats := model.DashboardStats{}
	for _, a := range r.appointments {
		if a.DoctorID != doctorID {
			continue
		}
		if a.Status != model.AppointmentStatusCancelled {
			patients[a.PatientID] = struct{}{}
		}
		if a.PaymentStatus == model.PaymentStatusCompleted {
			stats.TotalEarnings += a.PaymentAmount
		}
		if a.Status == model.AppointmentStatusPending {
			stats.PendingAppointments++
		}
	}
	stats.TotalPatients = len(patients)
	return &stats, nil
}

type fakeProfileRepo struct {
	profiles map[uuid.UUID]*model.Profile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[uuid.UUID]*model.Profile)}
}

func (r *fakeProfileRepo) Create(ctx context.Context, p *model.Profile) error {
	r.profiles[p.ID] = p
	return nil
}

func (r *fakeProfileRepo) Get(ctx context.Context, id uuid.UUID) (*model.Profile, error) {
	p, ok := r.profiles[id]
	if !ok {
		return nil, apperrors.NotFound("profile", nil)
	}
	return p, nil
}

func (r *fakeProfileRepo) GetByEmail(ctx context.Context, email string) (*model.Profile, error) {
	for _, p := range r.profiles {
		if p.Email == email {
			return p, nil
		}
	}
	return nil, apperrors.NotFound("profile", nil)
}

func (r *fakeProfileRepo) Update(ctx context.Context, p *model.Profile) error {
	r.profiles[p.ID] = p
	return nil
}

func (r *fakeProfileRepo) ListDoctors(ctx context.Context) ([]*model.DoctorProfile, error) {
	return nil, nil
}

type noopNotifier struct{}

func (noopNotifier) Notify(ctx context.Context, userID uuid.UUID, typ model.NotificationType, title, message string) {
}

func (noopNotifier) List(ctx context.Context, userID uuid.UUID) ([]*model.Notification, error) {
	return nil, nil
}

func (noopNotifier) MarkRead(ctx context.Context, id, userID uuid.UUID) error { return nil }

func newTestService(t *testing.T) (*Service, *fakeAppointmentRepo, *fakeProfileRepo) {
	t.Helper()
	repo := newFakeAppointmentRepo()
	profiles := newFakeProfileRepo()
	svc := NewService(repo, profiles, noopNotifier{}, nil, Config{PaymentDelay: time.Millisecond})
	svc.now = func() time.Time {
		return time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)
	}
	return svc, repo, profiles
}

func addDoctor(t *testing.T, profiles *fakeProfileRepo, fee *float64) uuid.UUID {
	t.Helper()
	id := uuid.New()
	name := "Dr. Test"
	profiles.profiles[id] = &model.Profile{
		Base:            model.Base{ID: id},
		Email:           id.String() + "@example.com",
		FullName:        &name,
		IsDoctor:        true,
		ConsultationFee: fee,
	}
	return id
}

func addPatient(t *testing.T, profiles *fakeProfileRepo) uuid.UUID {
	t.Helper()
	id := uuid.New()
	profiles.profiles[id] = &model.Profile{
		Base:  model.Base{ID: id},
		Email: id.String() + "@example.com",
	}
	return id
}

func TestGetAvailability(t *testing.T) {
	svc, _, profiles := newTestService(t)
	doctorID := addDoctor(t, profiles, nil)

	days, err := svc.GetAvailability(context.Background(), doctorID)
	require.NoError(t, err)
	require.Len(t, days, 7)

	assert.Equal(t, "2026-03-11", days[0].Date)
	assert.Equal(t, "2026-03-17", days[6].Date)

	for _, day := range days {
		assert.True(t, day.Enabled, "date %s should be bookable", day.Date)
		assert.Len(t, day.Slots, 12)
		assert.Equal(t, "09:00", day.Slots[0])
		assert.Equal(t, "16:30", day.Slots[11])
	}
}

func TestGetAvailabilityUnknownDoctor(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.GetAvailability(context.Background(), uuid.New())
	require.Error(t, err)

	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrNotFound, appErr.Code)
}

func TestGetAvailabilityNotADoctor(t *testing.T) {
	svc, _, profiles := newTestService(t)
	patientID := addPatient(t, profiles)

	_, err := svc.GetAvailability(context.Background(), patientID)
	require.Error(t, err)
}

func TestBook(t *testing.T) {
	svc, _, profiles := newTestService(t)
	fee := 50.0
	doctorID := addDoctor(t, profiles, &fee)
	patientID := addPatient(t, profiles)

	apt, err := svc.Book(context.Background(), patientID, &model.BookAppointmentRequest{
		DoctorID: doctorID.String(),
		Date:     "2026-03-12",
		Time:     "10:30",
	})
	require.NoError(t, err)

	assert.Equal(t, model.AppointmentStatusPending, apt.Status)
	assert.Equal(t, model.PaymentStatusPending, apt.PaymentStatus)
	assert.Equal(t, 50.0, apt.PaymentAmount)
	assert.Equal(t, time.Date(2026, 3, 12, 10, 30, 0, 0, time.Local), apt.ScheduledFor)
}

func TestBookDoctorWithoutFee(t *testing.T) {
	svc, _, profiles := newTestService(t)
	doctorID := addDoctor(t, profiles, nil)
	patientID := addPatient(t, profiles)

	apt, err := svc.Book(context.Background(), patientID, &model.BookAppointmentRequest{
		DoctorID: doctorID.String(),
		Date:     "2026-03-12",
		Time:     "09:00",
	})
	require.NoError(t, err)
	assert.Equal(t, 0.0, apt.PaymentAmount)
}

func TestBookValidation(t *testing.T) {
	svc, repo, profiles := newTestService(t)
	doctorID := addDoctor(t, profiles, nil)
	patientID := addPatient(t, profiles)

	tests := []struct {
		name string
		req  model.BookAppointmentRequest
	}{
		{"missing doctor", model.BookAppointmentRequest{Date: "2026-03-12", Time: "09:00"}},
		{"missing date", model.BookAppointmentRequest{DoctorID: doctorID.String(), Time: "09:00"}},
		{"missing time", model.BookAppointmentRequest{DoctorID: doctorID.String(), Date: "2026-03-12"}},
		{"unknown doctor", model.BookAppointmentRequest{DoctorID: uuid.NewString(), Date: "2026-03-12", Time: "09:00"}},
		{"time not in template", model.BookAppointmentRequest{DoctorID: doctorID.String(), Date: "2026-03-12", Time: "12:00"}},
		{"past date", model.BookAppointmentRequest{DoctorID: doctorID.String(), Date: "2026-03-09", Time: "09:00"}},
		{"same day", model.BookAppointmentRequest{DoctorID: doctorID.String(), Date: "2026-03-10", Time: "16:30"}},
		{"beyond thirty days", model.BookAppointmentRequest{DoctorID: doctorID.String(), Date: "2026-04-15", Time: "09:00"}},
		{"malformed date", model.BookAppointmentRequest{DoctorID: doctorID.String(), Date: "12/03/2026", Time: "09:00"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Book(context.Background(), patientID, &tt.req)
			require.Error(t, err)
			assert.Empty(t, repo.appointments, "no row should be written on %s", tt.name)
		})
	}
}

func TestBookWithoutProfile(t *testing.T) {
	svc, repo, profiles := newTestService(t)
	doctorID := addDoctor(t, profiles, nil)

	_, err := svc.Book(context.Background(), uuid.New(), &model.BookAppointmentRequest{
		DoctorID: doctorID.String(),
		Date:     "2026-03-12",
		Time:     "09:00",
	})
	require.Error(t, err)
	assert.Empty(t, repo.appointments)
}

func TestBookDuplicateSlotAllowed(t *testing.T) {
	svc, repo, profiles := newTestService(t)
	doctorID := addDoctor(t, profiles, nil)

	req := model.BookAppointmentRequest{
		DoctorID: doctorID.String(),
		Date:     "2026-03-12",
		Time:     "10:00",
	}

	_, err := svc.Book(context.Background(), addPatient(t, profiles), &req)
	require.NoError(t, err)
	_, err = svc.Book(context.Background(), addPatient(t, profiles), &req)
	require.NoError(t, err)
	assert.Len(t, repo.appointments, 2)
}

func TestConfirm(t *testing.T) {
	svc, repo, profiles := newTestService(t)
	doctorID := addDoctor(t, profiles, nil)
	patientID := addPatient(t, profiles)

	apt := seedAppointment(repo, patientID, doctorID, model.AppointmentStatusPending, model.PaymentStatusPending)

	got, err := svc.Confirm(context.Background(), doctorID, apt.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusConfirmed, got.Status)
	assert.Equal(t, model.PaymentStatusPending, got.PaymentStatus, "confirm must not touch payment")
}

func TestConfirmNonPending(t *testing.T) {
	svc, repo, profiles := newTestService(t)
	doctorID := addDoctor(t, profiles, nil)
	patientID := addPatient(t, profiles)

	for _, status := range []model.AppointmentStatus{model.AppointmentStatusConfirmed, model.AppointmentStatusCancelled} {
		apt := seedAppointment(repo, patientID, doctorID, status, model.PaymentStatusPending)

		_, err := svc.Confirm(context.Background(), doctorID, apt.ID)
		require.Error(t, err)

		appErr, ok := apperrors.As(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.ErrConflict, appErr.Code)

		stored := repo.appointments[apt.ID]
		assert.Equal(t, status, stored.Status, "rejected transition must not change the record")
	}
}

func TestCancelConfirmedRejected(t *testing.T) {
	svc, repo, profiles := newTestService(t)
	doctorID := addDoctor(t, profiles, nil)
	patientID := addPatient(t, profiles)

	apt := seedAppointment(repo, patientID, doctorID, model.AppointmentStatusConfirmed, model.PaymentStatusPending)

	_, err := svc.Cancel(context.Background(), doctorID, apt.ID)
	require.Error(t, err)
	assert.Equal(t, model.AppointmentStatusConfirmed, repo.appointments[apt.ID].Status)
}

func TestTransitionWrongDoctor(t *testing.T) {
	svc, repo, profiles := newTestService(t)
	doctorID := addDoctor(t, profiles, nil)
	otherDoctor := addDoctor(t, profiles, nil)
	patientID := addPatient(t, profiles)

	apt := seedAppointment(repo, patientID, doctorID, model.AppointmentStatusPending, model.PaymentStatusPending)

	_, err := svc.Confirm(context.Background(), otherDoctor, apt.ID)
	require.Error(t, err)

	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrForbidden, appErr.Code)
}

func TestPay(t *testing.T) {
	svc, repo, profiles := newTestService(t)
	doctorID := addDoctor(t, profiles, nil)
	patientID := addPatient(t, profiles)

	for _, status := range []model.AppointmentStatus{model.AppointmentStatusPending, model.AppointmentStatusConfirmed} {
		apt := seedAppointment(repo, patientID, doctorID, status, model.PaymentStatusPending)

		got, err := svc.Pay(context.Background(), patientID, apt.ID)
		require.NoError(t, err)
		assert.Equal(t, model.AppointmentStatusConfirmed, got.Status)
		assert.Equal(t, model.PaymentStatusCompleted, got.PaymentStatus)
	}
}

func TestPayCancelledRejected(t *testing.T) {
	svc, repo, profiles := newTestService(t)
	doctorID := addDoctor(t, profiles, nil)
	patientID := addPatient(t, profiles)

	apt := seedAppointment(repo, patientID, doctorID, model.AppointmentStatusCancelled, model.PaymentStatusPending)

	_, err := svc.Pay(context.Background(), patientID, apt.ID)
	require.Error(t, err)

	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrConflict, appErr.Code)

	stored := repo.appointments[apt.ID]
	assert.Equal(t, model.AppointmentStatusCancelled, stored.Status)
	assert.Equal(t, model.PaymentStatusPending, stored.PaymentStatus)
}

func TestPayTwiceRejected(t *testing.T) {
	svc, repo, profiles := newTestService(t)
	doctorID := addDoctor(t, profiles, nil)
	patientID := addPatient(t, profiles)

	apt := seedAppointment(repo, patientID, doctorID, model.AppointmentStatusConfirmed, model.PaymentStatusCompleted)

	_, err := svc.Pay(context.Background(), patientID, apt.ID)
	require.Error(t, err)
}

func TestPayWrongPatient(t *testing.T) {
	svc, repo, profiles := newTestService(t)
	doctorID := addDoctor(t, profiles, nil)
	patientID := addPatient(t, profiles)

	apt := seedAppointment(repo, patientID, doctorID, model.AppointmentStatusPending, model.PaymentStatusPending)

	_, err := svc.Pay(context.Background(), uuid.New(), apt.ID)
	require.Error(t, err)
}

func TestPayCancelledByContext(t *testing.T) {
	svc, repo, profiles := newTestService(t)
	svc.cfg.PaymentDelay = time.Minute
	doctorID := addDoctor(t, profiles, nil)
	patientID := addPatient(t, profiles)

	apt := seedAppointment(repo, patientID, doctorID, model.AppointmentStatusPending, model.PaymentStatusPending)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Pay(ctx, patientID, apt.ID)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, model.PaymentStatusPending, repo.appointments[apt.ID].PaymentStatus)
}

func TestDashboardBuckets(t *testing.T) {
	svc, repo, profiles := newTestService(t)
	doctorID := addDoctor(t, profiles, nil)
	patientID := addPatient(t, profiles)

	now := svc.now()

	earlierToday := seedAppointmentAt(repo, patientID, doctorID, now.Add(-2*time.Hour))
	laterToday := seedAppointmentAt(repo, patientID, doctorID, now.Add(2*time.Hour))
	nextWeek := seedAppointmentAt(repo, patientID, doctorID, now.AddDate(0, 0, 7))
	lastWeek := seedAppointmentAt(repo, patientID, doctorID, now.AddDate(0, 0, -7))

	dashboard, err := svc.Dashboard(context.Background(), doctorID)
	require.NoError(t, err)

	todayIDs := ids(dashboard.Today)
	upcomingIDs := ids(dashboard.Upcoming)

	assert.Contains(t, todayIDs, earlierToday.ID)
	assert.Contains(t, todayIDs, laterToday.ID)
	assert.NotContains(t, todayIDs, nextWeek.ID)
	assert.NotContains(t, todayIDs, lastWeek.ID)

	assert.Contains(t, upcomingIDs, laterToday.ID)
	assert.Contains(t, upcomingIDs, nextWeek.ID)
	assert.NotContains(t, upcomingIDs, earlierToday.ID)
	assert.NotContains(t, upcomingIDs, lastWeek.ID)
}

func TestDashboardStats(t *testing.T) {
	svc, repo, profiles := newTestService(t)
	doctorID := addDoctor(t, profiles, nil)
	patientID := addPatient(t, profiles)

	// One paid at 50, one pending, one cancelled
	paid := seedAppointment(repo, patientID, doctorID, model.AppointmentStatusConfirmed, model.PaymentStatusCompleted)
	repo.appointments[paid.ID].PaymentAmount = 50
	seedAppointment(repo, patientID, doctorID, model.AppointmentStatusPending, model.PaymentStatusPending)
	seedAppointment(repo, addPatient(t, profiles), doctorID, model.AppointmentStatusCancelled, model.PaymentStatusPending)

	dashboard, err := svc.Dashboard(context.Background(), doctorID)
	require.NoError(t, err)

	assert.Equal(t, 1, dashboard.Stats.TotalPatients, "cancelled-only patients do not count")
	assert.Equal(t, 50.0, dashboard.Stats.TotalEarnings)
	assert.Equal(t, 1, dashboard.Stats.PendingAppointments)
}

func TestEarningsMoveOnPaymentNotConfirm(t *testing.T) {
	svc, repo, profiles := newTestService(t)
	doctorID := addDoctor(t, profiles, nil)
	patientID := addPatient(t, profiles)

	apt := seedAppointment(repo, patientID, doctorID, model.AppointmentStatusPending, model.PaymentStatusPending)
	repo.appointments[apt.ID].PaymentAmount = 50

	_, err := svc.Confirm(context.Background(), doctorID, apt.ID)
	require.NoError(t, err)

	dashboard, err := svc.Dashboard(context.Background(), doctorID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, dashboard.Stats.TotalEarnings)

	_, err = svc.Pay(context.Background(), patientID, apt.ID)
	require.NoError(t, err)

	dashboard, err = svc.Dashboard(context.Background(), doctorID)
	require.NoError(t, err)
	assert.Equal(t, 50.0, dashboard.Stats.TotalEarnings)
}

func seedAppointment(repo *fakeAppointmentRepo, patientID, doctorID uuid.UUID, status model.AppointmentStatus, payment model.PaymentStatus) *model.Appointment {
	apt := &model.Appointment{
		Base:          model.Base{ID: uuid.New()},
		PatientID:     patientID,
		DoctorID:      doctorID,
		ScheduledFor:  time.Date(2026, 3, 12, 10, 0, 0, 0, time.Local),
		Status:        status,
		PaymentStatus: payment,
	}
	repo.appointments[apt.ID] = apt
	return apt
}

func seedAppointmentAt(repo *fakeAppointmentRepo, patientID, doctorID uuid.UUID, at time.Time) *model.Appointment {
	apt := &model.Appointment{
		Base:          model.Base{ID: uuid.New()},
		PatientID:     patientID,
		DoctorID:      doctorID,
		ScheduledFor:  at,
		Status:        model.AppointmentStatusConfirmed,
		PaymentStatus: model.PaymentStatusCompleted,
	}
	repo.appointments[apt.ID] = apt
	return apt
}

func ids(appointments []*model.Appointment) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(appointments))
	for _, a := range appointments {
		out = append(out, a.ID)
	}
	return out
}
