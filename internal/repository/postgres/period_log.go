package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/herahealth/portal-api/internal/model"
)

func (r *periodLogRepository) Create(ctx context.Context, log *model.PeriodLog) error {
	query := `
		INSERT INTO period_logs (
			id, user_id, start_date, end_date,
			flow_intensity, symptoms, notes, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	log.CreatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		log.ID,
		log.UserID,
		log.StartDate,
		log.EndDate,
		log.FlowIntensity,
		log.Symptoms,
		log.Notes,
		log.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create period log: %w", err)
	}
	return nil
}

func (r *periodLogRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]*model.PeriodLog, error) {
	query := `
		SELECT id, user_id, start_date, end_date,
			   flow_intensity, symptoms, notes, created_at
		FROM period_logs
		WHERE user_id = $1
		ORDER BY start_date DESC
	`
	var logs []*model.PeriodLog
	if err := r.db.SelectContext(ctx, &logs, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list period logs: %w", err)
	}
	return logs, nil
}
