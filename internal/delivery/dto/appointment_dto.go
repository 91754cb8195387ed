package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateAppointmentRequest struct {
	DoctorID        uuid.UUID `json:"doctor_id" validate:"required"`
	DateTime        time.Time `json:"date_time" validate:"required"`
	DurationMinutes int       `json:"duration_minutes" validate:"required,gte=15"`
	Reason          string    `json:"reason" validate:"required"`
}

// UpdateAppointmentRequest carries a partial update; nil fields are left
// untouched. A non-nil DateTime re-triggers the conflict check.
type UpdateAppointmentRequest struct {
	DoctorID        *uuid.UUID `json:"doctor_id"`
	DateTime        *time.Time `json:"date_time"`
	DurationMinutes *int       `json:"duration_minutes" validate:"omitempty,gte=15"`
	Reason          *string    `json:"reason" validate:"omitempty,min=1"`
	Status          *string    `json:"status" validate:"omitempty,oneof=scheduled completed cancelled no-show"`
}

// Response DTOs

// UserSummary is the joined patient/doctor representation on appointment
// reads: identifier plus display fields only.
type UserSummary struct {
	ID       uuid.UUID `json:"id"`
	FullName string    `json:"full_name"`
	Email    string    `json:"email"`
}

type AppointmentResponse struct {
	ID              uuid.UUID    `json:"id"`
	PatientID       uuid.UUID    `json:"patient_id"`
	DoctorID        uuid.UUID    `json:"doctor_id"`
	Patient         *UserSummary `json:"patient,omitempty"`
	Doctor          *UserSummary `json:"doctor,omitempty"`
	DateTime        time.Time    `json:"date_time"`
	DurationMinutes int          `json:"duration_minutes"`
	Reason          string       `json:"reason"`
	Status          string       `json:"status"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}
