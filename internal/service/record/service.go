package record

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/herahealth/portal-api/internal/model"
	"github.com/herahealth/portal-api/internal/repository"
	apperrors "github.com/herahealth/portal-api/pkg/errors"
)

// Service manages the append-only health record log. Entries are never
// edited or deleted once written.
type Service struct {
	repo repository.HealthRecordRepository

	now func() time.Time
}

func NewService(repo repository.HealthRecordRepository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

func (s *Service) Create(ctx context.Context, userID uuid.UUID, req *model.CreateHealthRecordRequest) (*model.HealthRecord, error) {
	recordType := model.RecordType(req.RecordType)
	switch recordType {
	case model.RecordTypeGeneral, model.RecordTypeMenstrual, model.RecordTypeMedication,
		model.RecordTypeSymptom, model.RecordTypeTest:
	default:
		return nil, apperrors.Validation("unknown record type")
	}

	record := &model.HealthRecord{
		ID:          uuid.New(),
		UserID:      userID,
		RecordDate:  s.now(),
		RecordType:  recordType,
		Title:       req.Title,
		Description: req.Description,
		Attachments: pq.StringArray(req.Attachments),
	}

	if err := s.repo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create health record: %w", err)
	}

	return record, nil
}

// List returns the caller's records, newest first.
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]*model.HealthRecord, error) {
	records, err := s.repo.ListForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list health records: %w", err)
	}
	return records, nil
}
