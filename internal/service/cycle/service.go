package cycle

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/herahealth/portal-api/internal/model"
	"github.com/herahealth/portal-api/internal/repository"
	"github.com/herahealth/portal-api/internal/service/notification"
	apperrors "github.com/herahealth/portal-api/pkg/errors"
)

const dateLayout = "2006-01-02"

// Service manages menstrual cycle tracking entries.
type Service struct {
	repo     repository.PeriodLogRepository
	notifSvc notification.Service
}

func NewService(repo repository.PeriodLogRepository, notifSvc notification.Service) *Service {
	return &Service{
		repo:     repo,
		notifSvc: notifSvc,
	}
}

func (s *Service) Create(ctx context.Context, userID uuid.UUID, req *model.CreatePeriodLogRequest) (*model.PeriodLog, error) {
	startDate, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return nil, apperrors.Validation("invalid start date")
	}

	entry := &model.PeriodLog{
		ID:        uuid.New(),
		UserID:    userID,
		StartDate: startDate,
		Symptoms:  pq.StringArray(req.Symptoms),
	}

	if req.EndDate != "" {
		endDate, err := time.Parse(dateLayout, req.EndDate)
		if err != nil {
			return nil, apperrors.Validation("invalid end date")
		}
		if endDate.Before(startDate) {
			return nil, apperrors.Validation("end date precedes start date")
		}
		entry.EndDate = &endDate
	}
	if req.FlowIntensity != "" {
		flow := req.FlowIntensity
		entry.FlowIntensity = &flow
	}
	if req.Notes != "" {
		notes := req.Notes
		entry.Notes = &notes
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to create period log: %w", err)
	}

	s.notifSvc.Notify(ctx, userID, model.NotificationTypePeriod,
		"Cycle entry saved",
		fmt.Sprintf("Your cycle entry starting %s was recorded.", req.StartDate))

	return entry, nil
}

// List returns the caller's entries, newest first.
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]*model.PeriodLog, error) {
	logs, err := s.repo.ListForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list period logs: %w", err)
	}
	return logs, nil
}
