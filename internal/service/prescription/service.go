package prescription

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/herahealth/portal-api/internal/model"
	"github.com/herahealth/portal-api/internal/repository"
	"github.com/herahealth/portal-api/internal/service/notification"
	apperrors "github.com/herahealth/portal-api/pkg/errors"
)

// Prescriptions stay valid for 30 days from issue.
const validityPeriod = 30 * 24 * time.Hour

type Service struct {
	repo            repository.PrescriptionRepository
	appointmentRepo repository.AppointmentRepository
	notifSvc        notification.Service

	now func() time.Time
}

func NewService(repo repository.PrescriptionRepository, appointmentRepo repository.AppointmentRepository,
	notifSvc notification.Service) *Service {
	return &Service{
		repo:            repo,
		appointmentRepo: appointmentRepo,
		notifSvc:        notifSvc,
		now:             time.Now,
	}
}

// Create issues a prescription against one of the doctor's appointments. The
// patient is resolved from the appointment, never taken from the request.
func (s *Service) Create(ctx context.Context, doctorID uuid.UUID, req *model.CreatePrescriptionRequest) (*model.Prescription, error) {
	appointmentID, err := uuid.Parse(req.AppointmentID)
	if err != nil {
		return nil, apperrors.Validation("invalid appointment ID")
	}

	appointment, err := s.appointmentRepo.Get(ctx, appointmentID)
	if err != nil {
		return nil, apperrors.NotFound("appointment", err)
	}
	if appointment.DoctorID != doctorID {
		return nil, apperrors.Forbidden("appointment belongs to another doctor")
	}

	if len(req.Medications) == 0 {
		return nil, apperrors.Validation("at least one medication is required")
	}

	now := s.now()
	prescription := &model.Prescription{
		ID:            uuid.New(),
		AppointmentID: appointmentID,
		DoctorID:      doctorID,
		PatientID:     appointment.PatientID,
		Medications:   model.MedicationList(req.Medications),
		ValidUntil:    now.Add(validityPeriod),
		CreatedAt:     now,
	}
	if req.Instructions != "" {
		instructions := req.Instructions
		prescription.Instructions = &instructions
	}

	if err := s.repo.Create(ctx, prescription); err != nil {
		return nil, fmt.Errorf("failed to create prescription: %w", err)
	}

	s.notifSvc.Notify(ctx, appointment.PatientID, model.NotificationTypePrescription,
		"New prescription",
		"Your doctor issued a new prescription. It is valid for 30 days.")

	return prescription, nil
}

// List returns prescriptions where the caller is either the issuing doctor or
// the patient.
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]*model.Prescription, error) {
	prescriptions, err := s.repo.ListForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list prescriptions: %w", err)
	}
	return prescriptions, nil
}
