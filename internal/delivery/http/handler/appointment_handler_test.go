package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"clinic-appointment-api/internal/delivery/dto"
	"clinic-appointment-api/internal/service"
	"clinic-appointment-api/internal/usecase"
	"clinic-appointment-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type mockAppointmentUsecase struct {
	ListFunc   func(ctx context.Context) ([]dto.AppointmentResponse, error)
	GetFunc    func(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error)
	CreateFunc func(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	UpdateFunc func(ctx context.Context, id uuid.UUID, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error)
	DeleteFunc func(ctx context.Context, id uuid.UUID) error
}

func (m *mockAppointmentUsecase) ListAppointments(ctx context.Context) ([]dto.AppointmentResponse, error) {
	return m.ListFunc(ctx)
}

func (m *mockAppointmentUsecase) GetAppointment(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error) {
	return m.GetFunc(ctx, id)
}

func (m *mockAppointmentUsecase) CreateAppointment(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	return m.CreateFunc(ctx, req)
}

func (m *mockAppointmentUsecase) UpdateAppointment(ctx context.Context, id uuid.UUID, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error) {
	return m.UpdateFunc(ctx, id, req)
}

func (m *mockAppointmentUsecase) DeleteAppointment(ctx context.Context, id uuid.UUID) error {
	return m.DeleteFunc(ctx, id)
}

type envelope struct {
	Success bool            `json:"success"`
	Count   *int            `json:"count"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func newTestHandler(uc usecase.AppointmentUsecase) *AppointmentHandler {
	return NewAppointmentHandler(uc, validator.NewValidator())
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
	return env
}

func TestListAppointmentsEnvelope(t *testing.T) {
	uc := &mockAppointmentUsecase{
		ListFunc: func(ctx context.Context) ([]dto.AppointmentResponse, error) {
			return []dto.AppointmentResponse{
				{ID: uuid.New(), Status: "scheduled"},
				{ID: uuid.New(), Status: "completed"},
			}, nil
		},
	}
	h := newTestHandler(uc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/appointments", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if !env.Success {
		t.Error("success = false, want true")
	}
	if env.Count == nil || *env.Count != 2 {
		t.Errorf("count = %v, want 2", env.Count)
	}
}

func TestGetAppointmentNotFound(t *testing.T) {
	uc := &mockAppointmentUsecase{
		GetFunc: func(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error) {
			return nil, usecase.ErrAppointmentNotFound
		},
	}
	h := newTestHandler(uc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/appointments/"+uuid.NewString(), nil)
	req = mux.SetURLVars(req, map[string]string{"id": uuid.NewString()})
	rec := httptest.NewRecorder()
	h.Get(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if env.Success {
		t.Error("success = true, want false")
	}
	if env.Error == "" {
		t.Error("expected an error message")
	}
}

func TestGetAppointmentMalformedID(t *testing.T) {
	h := newTestHandler(&mockAppointmentUsecase{
		GetFunc: func(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error) {
			t.Fatal("usecase should not be reached for malformed IDs")
			return nil, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/appointments/not-a-uuid", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "not-a-uuid"})
	rec := httptest.NewRecorder()
	h.Get(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestGetAppointmentOwnershipDenied(t *testing.T) {
	uc := &mockAppointmentUsecase{
		GetFunc: func(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error) {
			return nil, usecase.ErrNotAppointmentOwner
		},
	}
	h := newTestHandler(uc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/appointments/"+uuid.NewString(), nil)
	req = mux.SetURLVars(req, map[string]string{"id": uuid.NewString()})
	rec := httptest.NewRecorder()
	h.Get(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestCreateAppointmentSuccess(t *testing.T) {
	doctorID := uuid.New()
	uc := &mockAppointmentUsecase{
		CreateFunc: func(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
			return &dto.AppointmentResponse{
				ID:       uuid.New(),
				DoctorID: req.DoctorID,
				Status:   "scheduled",
			}, nil
		},
	}
	h := newTestHandler(uc)

	body, _ := json.Marshal(dto.CreateAppointmentRequest{
		DoctorID:        doctorID,
		DateTime:        time.Now().Add(time.Hour),
		DurationMinutes: 30,
		Reason:          "checkup",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201, body: %s", rec.Code, rec.Body.String())
	}
	env := decodeEnvelope(t, rec)
	if !env.Success {
		t.Error("success = false, want true")
	}
}

func TestCreateAppointmentValidation(t *testing.T) {
	h := newTestHandler(&mockAppointmentUsecase{
		CreateFunc: func(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
			t.Fatal("usecase should not be reached for invalid payloads")
			return nil, nil
		},
	})

	// duration below the 15 minute floor, no reason
	body := []byte(`{"doctor_id":"` + uuid.NewString() + `","date_time":"2026-03-10T09:00:00Z","duration_minutes":5}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if env.Error == "" {
		t.Error("expected validation error message")
	}
}

func TestCreateAppointmentConflict(t *testing.T) {
	uc := &mockAppointmentUsecase{
		CreateFunc: func(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
			return nil, service.ErrSlotTaken
		},
	}
	h := newTestHandler(uc)

	body, _ := json.Marshal(dto.CreateAppointmentRequest{
		DoctorID:        uuid.New(),
		DateTime:        time.Now().Add(time.Hour),
		DurationMinutes: 30,
		Reason:          "checkup",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if env.Error != service.ErrSlotTaken.Error() {
		t.Errorf("error = %q, want %q", env.Error, service.ErrSlotTaken.Error())
	}
}

func TestCreateAppointmentDoctorMissing(t *testing.T) {
	uc := &mockAppointmentUsecase{
		CreateFunc: func(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
			return nil, usecase.ErrDoctorNotFound
		},
	}
	h := newTestHandler(uc)

	body, _ := json.Marshal(dto.CreateAppointmentRequest{
		DoctorID:        uuid.New(),
		DateTime:        time.Now().Add(time.Hour),
		DurationMinutes: 30,
		Reason:          "checkup",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestDeleteAppointmentSuccess(t *testing.T) {
	uc := &mockAppointmentUsecase{
		DeleteFunc: func(ctx context.Context, id uuid.UUID) error { return nil },
	}
	h := newTestHandler(uc)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/appointments/"+uuid.NewString(), nil)
	req = mux.SetURLVars(req, map[string]string{"id": uuid.NewString()})
	rec := httptest.NewRecorder()
	h.Delete(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if !env.Success {
		t.Error("success = false, want true")
	}
}
