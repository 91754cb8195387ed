package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"clinic-appointment-api/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

type mockAppointmentRepo struct {
	ExistsAtSlotFunc func(ctx context.Context, doctorID, patientID uuid.UUID, at time.Time, excludeID *uuid.UUID) (bool, error)
}

func (m *mockAppointmentRepo) Create(ctx context.Context, appointment *entity.Appointment) error {
	return nil
}

func (m *mockAppointmentRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Appointment, error) {
	return nil, nil
}

func (m *mockAppointmentRepo) FindAll(ctx context.Context, scope entity.AppointmentScope) ([]entity.Appointment, error) {
	return nil, nil
}

func (m *mockAppointmentRepo) Update(ctx context.Context, appointment *entity.Appointment) error {
	return nil
}

func (m *mockAppointmentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return nil
}

func (m *mockAppointmentRepo) ExistsAtSlot(ctx context.Context, doctorID, patientID uuid.UUID, at time.Time, excludeID *uuid.UUID) (bool, error) {
	return m.ExistsAtSlotFunc(ctx, doctorID, patientID, at, excludeID)
}

func TestConflictGuardRejectsPastDate(t *testing.T) {
	guard := NewConflictGuard(&mockAppointmentRepo{
		ExistsAtSlotFunc: func(ctx context.Context, doctorID, patientID uuid.UUID, at time.Time, excludeID *uuid.UUID) (bool, error) {
			t.Fatal("repo should not be queried for a past date")
			return false, nil
		},
	})

	now := time.Now()
	for _, at := range []time.Time{now.Add(-time.Hour), now} {
		if err := guard.CheckCreate(context.Background(), uuid.New(), uuid.New(), at, now); err != ErrDateNotFuture {
			t.Errorf("CheckCreate(%v) error = %v, want ErrDateNotFuture", at, err)
		}
	}
}

func TestConflictGuardRejectsTakenSlot(t *testing.T) {
	guard := NewConflictGuard(&mockAppointmentRepo{
		ExistsAtSlotFunc: func(ctx context.Context, doctorID, patientID uuid.UUID, at time.Time, excludeID *uuid.UUID) (bool, error) {
			return true, nil
		},
	})

	now := time.Now()
	err := guard.CheckCreate(context.Background(), uuid.New(), uuid.New(), now.Add(time.Hour), now)
	if err != ErrSlotTaken {
		t.Errorf("CheckCreate() error = %v, want ErrSlotTaken", err)
	}
}

func TestConflictGuardAllowsFreeSlot(t *testing.T) {
	guard := NewConflictGuard(&mockAppointmentRepo{
		ExistsAtSlotFunc: func(ctx context.Context, doctorID, patientID uuid.UUID, at time.Time, excludeID *uuid.UUID) (bool, error) {
			return false, nil
		},
	})

	now := time.Now()
	if err := guard.CheckCreate(context.Background(), uuid.New(), uuid.New(), now.Add(time.Hour), now); err != nil {
		t.Errorf("CheckCreate() error = %v, want nil", err)
	}
}

func TestConflictGuardUpdateExcludesSelf(t *testing.T) {
	appointmentID := uuid.New()
	var gotExclude *uuid.UUID

	guard := NewConflictGuard(&mockAppointmentRepo{
		ExistsAtSlotFunc: func(ctx context.Context, doctorID, patientID uuid.UUID, at time.Time, excludeID *uuid.UUID) (bool, error) {
			gotExclude = excludeID
			return false, nil
		},
	})

	now := time.Now()
	err := guard.CheckUpdate(context.Background(), appointmentID, uuid.New(), uuid.New(), now.Add(time.Hour), now)
	if err != nil {
		t.Fatalf("CheckUpdate() error = %v", err)
	}
	if gotExclude == nil || *gotExclude != appointmentID {
		t.Errorf("excludeID = %v, want %v", gotExclude, appointmentID)
	}
}

func TestTranslateWriteError(t *testing.T) {
	guard := NewConflictGuard(&mockAppointmentRepo{})

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"nil passes through", nil, nil},
		{
			"doctor slot violation",
			&pgconn.PgError{Code: "23505", ConstraintName: "uq_appointments_doctor_slot"},
			ErrSlotTaken,
		},
		{
			"patient slot violation",
			&pgconn.PgError{Code: "23505", ConstraintName: "uq_appointments_patient_slot"},
			ErrSlotTaken,
		},
		{
			"other unique violation untouched",
			&pgconn.PgError{Code: "23505", ConstraintName: "idx_users_email"},
			nil, // compared below by identity
		},
		{
			"non-unique error untouched",
			&pgconn.PgError{Code: "23503"},
			nil,
		},
		{"plain error untouched", errors.New("boom"), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := guard.TranslateWriteError(tt.err)
			if tt.want != nil {
				if !errors.Is(got, tt.want) {
					t.Errorf("TranslateWriteError() = %v, want %v", got, tt.want)
				}
				return
			}
			if got != tt.err {
				t.Errorf("TranslateWriteError() = %v, want original error %v", got, tt.err)
			}
		})
	}
}
