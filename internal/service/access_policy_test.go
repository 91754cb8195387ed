package service

import (
	"testing"

	"clinic-appointment-api/internal/domain/entity"

	"github.com/google/uuid"
)

func TestAccessPolicyCanRead(t *testing.T) {
	patientID := uuid.New()
	doctorID := uuid.New()
	strangerID := uuid.New()
	adminID := uuid.New()

	appointment := &entity.Appointment{
		ID:        uuid.New(),
		PatientID: patientID,
		DoctorID:  doctorID,
	}

	policy := NewAccessPolicy()

	tests := []struct {
		name        string
		requesterID uuid.UUID
		roleID      int
		want        bool
	}{
		{"patient owner", patientID, entity.RoleIDPatient, true},
		{"doctor owner", doctorID, entity.RoleIDDoctor, true},
		{"admin non-owner", adminID, entity.RoleIDAdmin, true},
		{"patient stranger", strangerID, entity.RoleIDPatient, false},
		{"doctor stranger", strangerID, entity.RoleIDDoctor, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := policy.CanRead(tt.requesterID, tt.roleID, appointment); got != tt.want {
				t.Errorf("CanRead() = %v, want %v", got, tt.want)
			}
			if got := policy.CanWrite(tt.requesterID, tt.roleID, appointment); got != tt.want {
				t.Errorf("CanWrite() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAccessPolicyListScope(t *testing.T) {
	policy := NewAccessPolicy()
	requesterID := uuid.New()

	t.Run("patient scoped to own appointments", func(t *testing.T) {
		scope, err := policy.ListScope(requesterID, entity.RoleIDPatient)
		if err != nil {
			t.Fatalf("ListScope() error = %v", err)
		}
		if scope.PatientID == nil || *scope.PatientID != requesterID {
			t.Errorf("PatientID = %v, want %v", scope.PatientID, requesterID)
		}
		if scope.DoctorID != nil {
			t.Errorf("DoctorID = %v, want nil", scope.DoctorID)
		}
	})

	t.Run("doctor scoped to own appointments", func(t *testing.T) {
		scope, err := policy.ListScope(requesterID, entity.RoleIDDoctor)
		if err != nil {
			t.Fatalf("ListScope() error = %v", err)
		}
		if scope.DoctorID == nil || *scope.DoctorID != requesterID {
			t.Errorf("DoctorID = %v, want %v", scope.DoctorID, requesterID)
		}
		if scope.PatientID != nil {
			t.Errorf("PatientID = %v, want nil", scope.PatientID)
		}
	})

	t.Run("admin unrestricted", func(t *testing.T) {
		scope, err := policy.ListScope(requesterID, entity.RoleIDAdmin)
		if err != nil {
			t.Fatalf("ListScope() error = %v", err)
		}
		if scope.PatientID != nil || scope.DoctorID != nil {
			t.Errorf("admin scope should be unrestricted, got %+v", scope)
		}
	})

	t.Run("unknown role rejected", func(t *testing.T) {
		_, err := policy.ListScope(requesterID, 99)
		if err != ErrUnknownRole {
			t.Errorf("ListScope() error = %v, want ErrUnknownRole", err)
		}
	})
}
