package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Medication is one entry of a prescription's ordered medication list.
type Medication struct {
	Name      string `json:"name" binding:"required"`
	Dosage    string `json:"dosage" binding:"required"`
	Frequency string `json:"frequency" binding:"required"`
	Duration  string `json:"duration" binding:"required"`
}

// MedicationList is stored as a JSONB column to preserve ordering.
type MedicationList []Medication

func (l MedicationList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	return json.Marshal(l)
}

func (l *MedicationList) Scan(src interface{}) error {
	if src == nil {
		*l = nil
		return nil
	}
	b, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("unsupported type for MedicationList: %T", src)
	}
	return json.Unmarshal(b, l)
}

type Prescription struct {
	ID            uuid.UUID      `db:"id" json:"id"`
	AppointmentID uuid.UUID      `db:"appointment_id" json:"appointment_id"`
	DoctorID      uuid.UUID      `db:"doctor_id" json:"doctor_id"`
	PatientID     uuid.UUID      `db:"patient_id" json:"patient_id"`
	Medications   MedicationList `db:"medications" json:"medications"`
	Instructions  *string        `db:"instructions" json:"instructions,omitempty"`
	ValidUntil    time.Time      `db:"valid_until" json:"valid_until"`
	CreatedAt     time.Time      `db:"created_at" json:"created_at"`
}

type CreatePrescriptionRequest struct {
	AppointmentID string       `json:"appointment_id" binding:"required,uuid"`
	Medications   []Medication `json:"medications" binding:"required,min=1,dive"`
	Instructions  string       `json:"instructions" binding:"max=2000"`
}
