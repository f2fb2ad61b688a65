package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/herahealth/portal-api/internal/model"
)

func (r *healthRecordRepository) Create(ctx context.Context, record *model.HealthRecord) error {
	query := `
		INSERT INTO health_records (
			id, user_id, record_date, record_type,
			title, description, attachments, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	record.CreatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		record.ID,
		record.UserID,
		record.RecordDate,
		record.RecordType,
		record.Title,
		record.Description,
		record.Attachments,
		record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create health record: %w", err)
	}
	return nil
}

func (r *healthRecordRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]*model.HealthRecord, error) {
	query := `
		SELECT id, user_id, record_date, record_type,
			   title, description, attachments, created_at
		FROM health_records
		WHERE user_id = $1
		ORDER BY record_date DESC
	`
	var records []*model.HealthRecord
	if err := r.db.SelectContext(ctx, &records, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list health records: %w", err)
	}
	return records, nil
}
