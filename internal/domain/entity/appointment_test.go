package entity

import (
	"testing"
	"time"
)

func TestAppointmentStatusIsValid(t *testing.T) {
	valid := []AppointmentStatus{
		AppointmentStatusScheduled,
		AppointmentStatusCompleted,
		AppointmentStatusCancelled,
		AppointmentStatusNoShow,
	}
	for _, s := range valid {
		if !s.IsValid() {
			t.Errorf("IsValid(%q) = false, want true", s)
		}
	}

	for _, s := range []AppointmentStatus{"", "pending", "SCHEDULED"} {
		if s.IsValid() {
			t.Errorf("IsValid(%q) = true, want false", s)
		}
	}
}

func TestAppointmentEndsAt(t *testing.T) {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	a := &Appointment{DateTime: start, DurationMinutes: 30}

	want := start.Add(30 * time.Minute)
	if got := a.EndsAt(); !got.Equal(want) {
		t.Errorf("EndsAt() = %v, want %v", got, want)
	}
}
