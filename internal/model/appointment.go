package model

import (
	"time"

	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
)

// Appointment is a scheduled consultation between a patient and a doctor.
// Status and payment status are independent axes; records are never deleted.
type Appointment struct {
	Base
	PatientID     uuid.UUID         `db:"patient_id" json:"patient_id"`
	DoctorID      uuid.UUID         `db:"doctor_id" json:"doctor_id"`
	ScheduledFor  time.Time         `db:"scheduled_for" json:"scheduled_for"`
	Status        AppointmentStatus `db:"status" json:"status"`
	PaymentStatus PaymentStatus     `db:"payment_status" json:"payment_status"`
	PaymentAmount float64           `db:"payment_amount" json:"payment_amount"`
	Notes         *string           `db:"notes" json:"notes,omitempty"`
	PatientName   *string           `db:"patient_name" json:"patient_name,omitempty"`
	DoctorName    *string           `db:"doctor_name" json:"doctor_name,omitempty"`
}

// BookAppointmentRequest represents a patient booking submission. Date and
// time are combined into a single timestamp on the server; any missing field
// fails the whole operation before a row is written.
type BookAppointmentRequest struct {
	DoctorID string `json:"doctor_id" binding:"required,uuid"`
	Date     string `json:"date" binding:"required"`
	Time     string `json:"time" binding:"required,timelabel"`
	Notes    string `json:"notes" binding:"max=1000"`
}

// DayAvailability is one date of the booking grid. Disabled dates carry no
// slots and are unreachable for booking, not merely warned about.
type DayAvailability struct {
	Date    string   `json:"date"`
	Weekday string   `json:"weekday"`
	Enabled bool     `json:"enabled"`
	Slots   []string `json:"slots"`
}

// DashboardStats are derived on every read, never stored.
type DashboardStats struct {
	TotalPatients       int     `json:"total_patients" db:"total_patients"`
	TotalEarnings       float64 `json:"total_earnings" db:"total_earnings"`
	PendingAppointments int     `json:"pending_appointments" db:"pending_appointments"`
}

// DoctorDashboard partitions the doctor's appointments into independently
// computed buckets. A past appointment on another day appears in neither.
type DoctorDashboard struct {
	Stats    DashboardStats `json:"stats"`
	Today    []*Appointment `json:"today"`
	Upcoming []*Appointment `json:"upcoming"`
}

type AppointmentFilters struct {
	PatientID uuid.UUID
	DoctorID  uuid.UUID
	Status    AppointmentStatus
}
