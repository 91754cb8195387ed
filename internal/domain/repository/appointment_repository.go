package repository

import (
	"context"
	"time"

	"clinic-appointment-api/internal/domain/entity"

	"github.com/google/uuid"
)

type AppointmentRepository interface {
	Create(ctx context.Context, appointment *entity.Appointment) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Appointment, error)
	FindAll(ctx context.Context, scope entity.AppointmentScope) ([]entity.Appointment, error)
	Update(ctx context.Context, appointment *entity.Appointment) error
	Delete(ctx context.Context, id uuid.UUID) error

	// ExistsAtSlot reports whether any appointment occupies the given
	// date_time for either the doctor or the patient. When excludeID is
	// non-nil that appointment is ignored, which lets an update keep its
	// own slot.
	ExistsAtSlot(ctx context.Context, doctorID, patientID uuid.UUID, at time.Time, excludeID *uuid.UUID) (bool, error)
}
