package entity

import "github.com/google/uuid"

// AppointmentScope is a domain-level filter for listing appointments.
// Used by repository layer to avoid coupling with delivery DTOs.
// A nil field means no restriction on that axis; the zero value lists
// everything (admin scope).
type AppointmentScope struct {
	PatientID *uuid.UUID
	DoctorID  *uuid.UUID
}
