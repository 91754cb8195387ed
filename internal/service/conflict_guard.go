package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"clinic-appointment-api/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrSlotTaken signals a double-booking on either axis: the doctor or
	// the patient already has an appointment at that date_time.
	ErrSlotTaken = errors.New("there is already an appointment scheduled at this time")

	// ErrDateNotFuture signals a date_time at or before the current time.
	ErrDateNotFuture = errors.New("appointment date must be in the future")
)

// slotConstraints are the unique index names created by the migrations.
// A 23505 on either one is a lost race with a concurrent writer.
var slotConstraints = []string{
	"uq_appointments_doctor_slot",
	"uq_appointments_patient_slot",
}

// ConflictGuard rejects writes that would double-book a doctor or a patient.
//
// The repository pre-check only exists to produce a friendly error before the
// write is attempted. Correctness under concurrent writers comes from the two
// composite unique indexes in Postgres; TranslateWriteError folds a constraint
// violation surfaced at write time into the same ErrSlotTaken.
type ConflictGuard struct {
	appointmentRepo repository.AppointmentRepository
}

func NewConflictGuard(appointmentRepo repository.AppointmentRepository) *ConflictGuard {
	return &ConflictGuard{appointmentRepo: appointmentRepo}
}

// CheckCreate validates a proposed (doctor, patient, dateTime) triple for a
// new appointment.
func (g *ConflictGuard) CheckCreate(ctx context.Context, doctorID, patientID uuid.UUID, at, now time.Time) error {
	return g.check(ctx, doctorID, patientID, at, now, nil)
}

// CheckUpdate is CheckCreate with self-exclusion: the appointment being
// updated may keep its current slot. Callers only invoke it when the update
// payload actually changes date_time.
func (g *ConflictGuard) CheckUpdate(ctx context.Context, appointmentID uuid.UUID, doctorID, patientID uuid.UUID, at, now time.Time) error {
	return g.check(ctx, doctorID, patientID, at, now, &appointmentID)
}

func (g *ConflictGuard) check(ctx context.Context, doctorID, patientID uuid.UUID, at, now time.Time, excludeID *uuid.UUID) error {
	if !at.After(now) {
		return ErrDateNotFuture
	}

	taken, err := g.appointmentRepo.ExistsAtSlot(ctx, doctorID, patientID, at, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return ErrSlotTaken
	}
	return nil
}

// TranslateWriteError converts a unique violation on either slot index into
// ErrSlotTaken so a race lost at the storage layer reads the same as one
// caught by the pre-check. Other errors pass through unchanged.
func (g *ConflictGuard) TranslateWriteError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		name := strings.ToLower(pgErr.ConstraintName)
		for _, constraint := range slotConstraints {
			if strings.Contains(name, constraint) {
				return ErrSlotTaken
			}
		}
	}
	return err
}
