package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// PeriodLog records the start of a menstrual cycle, optionally closed later
// with an end date.
type PeriodLog struct {
	ID            uuid.UUID      `db:"id" json:"id"`
	UserID        uuid.UUID      `db:"user_id" json:"user_id"`
	StartDate     time.Time      `db:"start_date" json:"start_date"`
	EndDate       *time.Time     `db:"end_date" json:"end_date,omitempty"`
	FlowIntensity *string        `db:"flow_intensity" json:"flow_intensity,omitempty"`
	Symptoms      pq.StringArray `db:"symptoms" json:"symptoms,omitempty"`
	Notes         *string        `db:"notes" json:"notes,omitempty"`
	CreatedAt     time.Time      `db:"created_at" json:"created_at"`
}

type CreatePeriodLogRequest struct {
	StartDate     string   `json:"start_date" binding:"required"`
	EndDate       string   `json:"end_date"`
	FlowIntensity string   `json:"flow_intensity" binding:"omitempty,oneof=light medium heavy"`
	Symptoms      []string `json:"symptoms"`
	Notes         string   `json:"notes" binding:"max=2000"`
}
