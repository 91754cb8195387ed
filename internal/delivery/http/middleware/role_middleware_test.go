package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"clinic-appointment-api/internal/domain/entity"
)

func requestWithRole(roleID int) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", nil)
	ctx := context.WithValue(req.Context(), RoleIDKey, roleID)
	return req.WithContext(ctx)
}

func TestRequirePatientOrAdmin(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	gate := RequirePatientOrAdmin(next)

	tests := []struct {
		name   string
		roleID int
		want   int
	}{
		{"patient allowed", entity.RoleIDPatient, http.StatusOK},
		{"admin allowed", entity.RoleIDAdmin, http.StatusOK},
		{"doctor forbidden", entity.RoleIDDoctor, http.StatusForbidden},
		{"unknown role forbidden", 99, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			gate.ServeHTTP(rec, requestWithRole(tt.roleID))
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestRequireRoleWithoutIdentity(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run without an authenticated identity")
	})
	gate := RequireAdmin(next)

	rec := httptest.NewRecorder()
	gate.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/admin/audit-logs", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}
