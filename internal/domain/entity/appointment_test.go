package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestAppointmentStatusChecks(t *testing.T) {
	a := &Appointment{Status: AppointmentBooked}
	if !a.IsBooked() || a.IsCompleted() || a.IsCancelled() {
		t.Fatalf("expected booked state, got %s", a.Status)
	}

	a.Status = AppointmentCompleted
	if a.IsBooked() || !a.IsCompleted() {
		t.Fatalf("expected completed state, got %s", a.Status)
	}

	a.Status = AppointmentCancelled
	if a.IsBooked() || !a.IsCancelled() {
		t.Fatalf("expected cancelled state, got %s", a.Status)
	}
}

func TestAppointmentCancellableBy(t *testing.T) {
	patientID := uuid.New()
	doctorID := uuid.New()
	a := &Appointment{PatientID: patientID, DoctorID: doctorID, Status: AppointmentBooked}

	tests := []struct {
		name  string
		actor Actor
		want  bool
	}{
		{"owning patient", Actor{ID: patientID, Role: RolePatient}, true},
		{"other patient", Actor{ID: uuid.New(), Role: RolePatient}, false},
		{"assigned doctor", Actor{ID: doctorID, Role: RoleDoctor}, true},
		{"other doctor", Actor{ID: uuid.New(), Role: RoleDoctor}, false},
		{"admin", Actor{ID: uuid.New(), Role: RoleAdmin}, true},
		{"unknown role", Actor{ID: patientID, Role: Role("guest")}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.CancellableBy(tt.actor); got != tt.want {
				t.Errorf("CancellableBy(%s) = %v, want %v", tt.actor.Role, got, tt.want)
			}
		})
	}
}

func TestAppointmentDateComparison(t *testing.T) {
	today := time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name   string
		date   time.Time
		future bool
		past   bool
	}{
		{"same day", time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), false, false},
		{"same day later clock", time.Date(2026, 3, 10, 23, 0, 0, 0, time.UTC), false, false},
		{"tomorrow", time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC), true, false},
		{"yesterday", time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &Appointment{Date: tt.date}
			if got := a.IsFutureDated(today); got != tt.future {
				t.Errorf("IsFutureDated() = %v, want %v", got, tt.future)
			}
			if got := a.IsPastDated(today); got != tt.past {
				t.Errorf("IsPastDated() = %v, want %v", got, tt.past)
			}
		})
	}
}

func TestAppointmentOwnership(t *testing.T) {
	patientID := uuid.New()
	doctorID := uuid.New()
	a := &Appointment{PatientID: patientID, DoctorID: doctorID}

	if !a.OwnedByPatient(patientID) {
		t.Error("expected appointment to be owned by its patient")
	}
	if a.OwnedByPatient(doctorID) {
		t.Error("expected ownership check to fail for another ID")
	}
	if !a.AssignedToDoctor(doctorID) {
		t.Error("expected appointment to be assigned to its doctor")
	}
	if a.AssignedToDoctor(patientID) {
		t.Error("expected assignment check to fail for another ID")
	}
}
