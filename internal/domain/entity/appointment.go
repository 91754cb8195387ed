package entity

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus represents the lifecycle status of an appointment
type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "scheduled"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
	AppointmentStatusNoShow    AppointmentStatus = "no-show"
)

// IsValid reports whether the status is one of the known values
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case AppointmentStatusScheduled, AppointmentStatusCompleted,
		AppointmentStatusCancelled, AppointmentStatusNoShow:
		return true
	}
	return false
}

// MinDurationMinutes is the shortest bookable appointment
const MinDurationMinutes = 15

// Appointment represents a booked time slot between a patient and a doctor.
// The two composite unique indexes (doctor_id,date_time) and
// (patient_id,date_time) are the storage-level double-booking guard; they are
// created by the SQL migrations under the names below.
type Appointment struct {
	ID              uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID       uuid.UUID         `gorm:"type:uuid;not null;index;uniqueIndex:uq_appointments_patient_slot" json:"patient_id"`
	DoctorID        uuid.UUID         `gorm:"type:uuid;not null;index;uniqueIndex:uq_appointments_doctor_slot" json:"doctor_id"`
	DateTime        time.Time         `gorm:"column:date_time;not null;uniqueIndex:uq_appointments_doctor_slot;uniqueIndex:uq_appointments_patient_slot" json:"date_time"`
	DurationMinutes int               `gorm:"not null" json:"duration_minutes"`
	Reason          string            `gorm:"type:text;not null" json:"reason"`
	Status          AppointmentStatus `gorm:"type:varchar(20);not null;default:'scheduled';index" json:"status"`
	CreatedAt       time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient User `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor  User `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// IsCancelled checks if the appointment has been cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == AppointmentStatusCancelled
}

// EndsAt returns the end of the booked slot
func (a *Appointment) EndsAt() time.Time {
	return a.DateTime.Add(time.Duration(a.DurationMinutes) * time.Minute)
}
