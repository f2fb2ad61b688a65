package appointment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/herahealth/portal-api/internal/model"
	"github.com/herahealth/portal-api/internal/repository"
	"github.com/herahealth/portal-api/internal/service/notification"
	apperrors "github.com/herahealth/portal-api/pkg/errors"
	"github.com/herahealth/portal-api/pkg/metrics"
)

// Business rules for the booking window
const (
	bookingWindowDays = 7
	maxAdvanceBooking = 30 * 24 * time.Hour
	dateLayout        = "2006-01-02"
	timeLayout        = "15:04"
)

// timeSlots is the fixed template offered on every enabled date.
var timeSlots = []string{
	"09:00", "09:30", "10:00", "10:30", "11:00", "11:30",
	"14:00", "14:30", "15:00", "15:30", "16:00", "16:30",
}

type Config struct {
	// PaymentDelay is how long the simulated capture takes. Once the delay
	// elapses the capture always succeeds.
	PaymentDelay time.Duration `yaml:"payment_delay"`
}

type Service struct {
	repo        repository.AppointmentRepository
	profileRepo repository.ProfileRepository
	notifSvc    notification.Service
	metrics     *metrics.Metrics
	cfg         Config

	// now is swappable for tests
	now func() time.Time
}

func NewService(repo repository.AppointmentRepository, profileRepo repository.ProfileRepository,
	notifSvc notification.Service, m *metrics.Metrics, cfg Config) *Service {
	if cfg.PaymentDelay == 0 {
		cfg.PaymentDelay = 2 * time.Second
	}
	return &Service{
		repo:        repo,
		profileRepo: profileRepo,
		notifSvc:    notifSvc,
		metrics:     m,
		cfg:         cfg,
		now:         time.Now,
	}
}

// GetAvailability builds the booking grid for a doctor: the next seven days
// starting tomorrow, each carrying the full slot template. Dates outside
// [tomorrow, tomorrow+30d] are disabled. Existing bookings are deliberately
// not consulted; two sessions may select the same doctor, date and time.
func (s *Service) GetAvailability(ctx context.Context, doctorID uuid.UUID) ([]model.DayAvailability, error) {
	doctor, err := s.profileRepo.Get(ctx, doctorID)
	if err != nil {
		return nil, apperrors.NotFound("doctor", err)
	}
	if !doctor.IsDoctor {
		return nil, apperrors.Validation("selected profile is not a doctor")
	}

	today := startOfDay(s.now())
	tomorrow := today.AddDate(0, 0, 1)
	maxDate := today.Add(maxAdvanceBooking)

	days := make([]model.DayAvailability, 0, bookingWindowDays)
	for i := 0; i < bookingWindowDays; i++ {
		date := tomorrow.AddDate(0, 0, i)
		enabled := !date.Before(tomorrow) && !date.After(maxDate)

		day := model.DayAvailability{
			Date:    date.Format(dateLayout),
			Weekday: date.Weekday().String(),
			Enabled: enabled,
		}
		if enabled {
			day.Slots = append([]string(nil), timeSlots...)
		}
		days = append(days, day)
	}

	return days, nil
}

// Book creates an appointment at (pending, payment pending). The whole
// operation fails before any insert when the doctor, date, time or booking
// profile is missing.
func (s *Service) Book(ctx context.Context, patientID uuid.UUID, req *model.BookAppointmentRequest) (*model.Appointment, error) {
	if req.DoctorID == "" || req.Date == "" || req.Time == "" || patientID == uuid.Nil {
		return nil, apperrors.Validation("doctor, date, time and profile are required")
	}

	// The booking profile must resolve; an identity without a profile
	// cannot book.
	if _, err := s.profileRepo.Get(ctx, patientID); err != nil {
		return nil, apperrors.Validation("booking profile not found")
	}

	doctorID, err := uuid.Parse(req.DoctorID)
	if err != nil {
		return nil, apperrors.Validation("invalid doctor ID")
	}

	doctor, err := s.profileRepo.Get(ctx, doctorID)
	if err != nil {
		return nil, apperrors.NotFound("doctor", err)
	}
	if !doctor.IsDoctor {
		return nil, apperrors.Validation("selected profile is not a doctor")
	}

	scheduledFor, err := s.parseSlot(req.Date, req.Time)
	if err != nil {
		return nil, err
	}

	appointment := &model.Appointment{
		Base: model.Base{
			ID: uuid.New(),
		},
		PatientID:     patientID,
		DoctorID:      doctorID,
		ScheduledFor:  scheduledFor,
		Status:        model.AppointmentStatusPending,
		PaymentStatus: model.PaymentStatusPending,
		PaymentAmount: doctor.Fee(),
	}
	if req.Notes != "" {
		notes := req.Notes
		appointment.Notes = &notes
	}

	if err := s.repo.Create(ctx, appointment); err != nil {
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}

	if s.metrics != nil {
		s.metrics.AppointmentsBooked.Inc()
	}

	s.notifSvc.Notify(ctx, doctorID, model.NotificationTypeAppointment,
		"New appointment request",
		fmt.Sprintf("A patient requested an appointment on %s at %s.", req.Date, req.Time))

	return appointment, nil
}

// Confirm is the doctor-triggered pending → confirmed transition. Any other
// starting state is a rejected transition.
func (s *Service) Confirm(ctx context.Context, doctorID, appointmentID uuid.UUID) (*model.Appointment, error) {
	return s.transition(ctx, doctorID, appointmentID, model.AppointmentStatusConfirmed)
}

// Cancel is the doctor-triggered pending → cancelled transition. Confirmed
// appointments cannot be cancelled.
func (s *Service) Cancel(ctx context.Context, doctorID, appointmentID uuid.UUID) (*model.Appointment, error) {
	return s.transition(ctx, doctorID, appointmentID, model.AppointmentStatusCancelled)
}

func (s *Service) transition(ctx context.Context, doctorID, appointmentID uuid.UUID, target model.AppointmentStatus) (*model.Appointment, error) {
	appointment, err := s.repo.Get(ctx, appointmentID)
	if err != nil {
		return nil, apperrors.NotFound("appointment", err)
	}

	if appointment.DoctorID != doctorID {
		return nil, apperrors.Forbidden("appointment belongs to another doctor")
	}

	if appointment.Status != model.AppointmentStatusPending {
		return nil, apperrors.Conflict(fmt.Sprintf("cannot %s a %s appointment", verb(target), appointment.Status))
	}

	if err := s.repo.UpdateStatus(ctx, appointmentID, target, appointment.PaymentStatus); err != nil {
		return nil, fmt.Errorf("failed to update appointment: %w", err)
	}
	appointment.Status = target

	if s.metrics != nil {
		s.metrics.AppointmentTransition.WithLabelValues(string(target)).Inc()
	}

	s.notifSvc.Notify(ctx, appointment.PatientID, model.NotificationTypeAppointment,
		fmt.Sprintf("Appointment %s", target),
		fmt.Sprintf("Your appointment on %s was %s.", appointment.ScheduledFor.Format("Jan 2, 2006 at 15:04"), target))

	return appointment, nil
}

// Pay runs the simulated capture and moves the appointment to
// (confirmed, completed). Cancelled appointments are a rejected transition;
// paying twice is rejected too. Once the capture delay has elapsed the
// payment always succeeds.
func (s *Service) Pay(ctx context.Context, patientID, appointmentID uuid.UUID) (*model.Appointment, error) {
	appointment, err := s.repo.Get(ctx, appointmentID)
	if err != nil {
		return nil, apperrors.NotFound("appointment", err)
	}

	if appointment.PatientID != patientID {
		return nil, apperrors.Forbidden("appointment belongs to another patient")
	}

	if appointment.Status == model.AppointmentStatusCancelled {
		return nil, apperrors.Conflict("cannot pay a cancelled appointment")
	}

	if appointment.PaymentStatus == model.PaymentStatusCompleted {
		return nil, apperrors.Conflict("payment already completed")
	}

	// Simulated processing. The wait is cancellable; the capture itself
	// is not.
	select {
	case <-time.After(s.cfg.PaymentDelay):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	if err := s.repo.UpdateStatus(ctx, appointmentID, model.AppointmentStatusConfirmed, model.PaymentStatusCompleted); err != nil {
		return nil, fmt.Errorf("failed to complete payment: %w", err)
	}
	appointment.Status = model.AppointmentStatusConfirmed
	appointment.PaymentStatus = model.PaymentStatusCompleted

	if s.metrics != nil {
		s.metrics.PaymentsCaptured.Inc()
	}

	s.notifSvc.Notify(ctx, appointment.DoctorID, model.NotificationTypeAppointment,
		"Payment received",
		fmt.Sprintf("Payment of %.2f received for the appointment on %s.", appointment.PaymentAmount, appointment.ScheduledFor.Format("Jan 2, 2006 at 15:04")))

	return appointment, nil
}

// ListForUser returns the caller's appointments, as patient or as doctor.
func (s *Service) ListForUser(ctx context.Context, userID uuid.UUID, isDoctor bool) ([]*model.Appointment, error) {
	if isDoctor {
		return s.repo.ListForDoctor(ctx, userID)
	}
	return s.repo.ListForPatient(ctx, userID)
}

// Dashboard assembles the doctor view: derived stats plus the today and
// upcoming buckets. The buckets are computed by independent filters over the
// full list; a past appointment on a previous day appears in neither.
func (s *Service) Dashboard(ctx context.Context, doctorID uuid.UUID) (*model.DoctorDashboard, error) {
	appointments, err := s.repo.ListForDoctor(ctx, doctorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}

	stats, err := s.repo.GetDoctorStats(ctx, doctorID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute stats: %w", err)
	}

	now := s.now()
	dashboard := &model.DoctorDashboard{
		Stats:    *stats,
		Today:    []*model.Appointment{},
		Upcoming: []*model.Appointment{},
	}

	for _, apt := range appointments {
		if sameDay(apt.ScheduledFor, now) {
			dashboard.Today = append(dashboard.Today, apt)
		}
		if apt.ScheduledFor.After(now) {
			dashboard.Upcoming = append(dashboard.Upcoming, apt)
		}
	}

	return dashboard, nil
}

// parseSlot combines the date and time selections into one timestamp,
// enforcing the slot template and the booking window.
func (s *Service) parseSlot(date, timeLabel string) (time.Time, error) {
	if !validSlot(timeLabel) {
		return time.Time{}, apperrors.Validation("time is not an offered slot")
	}

	scheduledFor, err := time.ParseInLocation(dateLayout+" "+timeLayout, date+" "+timeLabel, time.Local)
	if err != nil {
		return time.Time{}, apperrors.Validation("invalid date or time format")
	}

	now := s.now()
	if !scheduledFor.After(now) {
		return time.Time{}, apperrors.Validation("appointment must be in the future")
	}

	day := startOfDay(scheduledFor)
	tomorrow := startOfDay(now).AddDate(0, 0, 1)
	if day.Before(tomorrow) || day.After(startOfDay(now).Add(maxAdvanceBooking)) {
		return time.Time{}, apperrors.Validation("date is outside the booking window")
	}

	return scheduledFor, nil
}

func validSlot(timeLabel string) bool {
	for _, slot := range timeSlots {
		if slot == timeLabel {
			return true
		}
	}
	return false
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func verb(target model.AppointmentStatus) string {
	if target == model.AppointmentStatusCancelled {
		return "cancel"
	}
	return "confirm"
}
