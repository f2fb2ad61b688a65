package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type RecordType string

const (
	RecordTypeGeneral    RecordType = "general"
	RecordTypeMenstrual  RecordType = "menstrual"
	RecordTypeMedication RecordType = "medication"
	RecordTypeSymptom    RecordType = "symptom"
	RecordTypeTest       RecordType = "test"
)

// HealthRecord is an append-only log entry owned by a patient. There is no
// edit or delete flow.
type HealthRecord struct {
	ID          uuid.UUID      `db:"id" json:"id"`
	UserID      uuid.UUID      `db:"user_id" json:"user_id"`
	RecordDate  time.Time      `db:"record_date" json:"record_date"`
	RecordType  RecordType     `db:"record_type" json:"record_type"`
	Title       string         `db:"title" json:"title"`
	Description string         `db:"description" json:"description"`
	Attachments pq.StringArray `db:"attachments" json:"attachments,omitempty"`
	CreatedAt   time.Time      `db:"created_at" json:"created_at"`
}

type CreateHealthRecordRequest struct {
	RecordType  string   `json:"record_type" binding:"required,oneof=general menstrual medication symptom test"`
	Title       string   `json:"title" binding:"required,max=200"`
	Description string   `json:"description" binding:"max=5000"`
	Attachments []string `json:"attachments"`
}
