package service

import (
	"errors"

	"clinic-appointment-api/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrUnknownRole is returned when a requester carries a role outside the
// closed admin/doctor/patient set. Unmatched roles used to fall through to
// full admin visibility; they are now rejected outright.
var ErrUnknownRole = errors.New("unknown role")

// AccessPolicy decides per-appointment authorization. Ownership is always
// compared on the raw patient_id/doctor_id columns, never on the preloaded
// user rows.
type AccessPolicy struct{}

func NewAccessPolicy() *AccessPolicy {
	return &AccessPolicy{}
}

// CanRead reports whether the requester may read the appointment:
// admins always, otherwise only the appointment's patient or doctor.
func (p *AccessPolicy) CanRead(requesterID uuid.UUID, roleID int, appointment *entity.Appointment) bool {
	if roleID == entity.RoleIDAdmin {
		return true
	}
	return requesterID == appointment.PatientID || requesterID == appointment.DoctorID
}

// CanWrite applies the same owner-or-admin rule to update and delete.
func (p *AccessPolicy) CanWrite(requesterID uuid.UUID, roleID int, appointment *entity.Appointment) bool {
	return p.CanRead(requesterID, roleID, appointment)
}

// ListScope returns the listing filter for the requester's role:
// patients see their own appointments, doctors theirs, admins everything.
func (p *AccessPolicy) ListScope(requesterID uuid.UUID, roleID int) (entity.AppointmentScope, error) {
	switch roleID {
	case entity.RoleIDPatient:
		id := requesterID
		return entity.AppointmentScope{PatientID: &id}, nil
	case entity.RoleIDDoctor:
		id := requesterID
		return entity.AppointmentScope{DoctorID: &id}, nil
	case entity.RoleIDAdmin:
		return entity.AppointmentScope{}, nil
	}
	return entity.AppointmentScope{}, ErrUnknownRole
}
