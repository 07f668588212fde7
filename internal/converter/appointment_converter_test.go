package converter

import (
	"testing"
	"time"

	"hospital-appointment-system/internal/domain/entity"

	"github.com/google/uuid"
)

func TestAppointmentToResponse(t *testing.T) {
	appointment := &entity.Appointment{
		ID:        uuid.New(),
		PatientID: uuid.New(),
		DoctorID:  uuid.New(),
		Date:      time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		Time:      "09:30",
		Reason:    "checkup",
		Status:    entity.AppointmentBooked,
	}

	resp := AppointmentToResponse(appointment)
	if resp == nil {
		t.Fatal("expected a response")
	}
	if resp.Date != "2026-03-10" {
		t.Errorf("Date = %s, want 2026-03-10", resp.Date)
	}
	if resp.Status != "Booked" {
		t.Errorf("Status = %s, want Booked", resp.Status)
	}
	if resp.Patient != nil || resp.Doctor != nil || resp.Treatment != nil {
		t.Error("relations must be omitted when not preloaded")
	}
}

func TestAppointmentToResponseIncludesPreloadedRelations(t *testing.T) {
	appointment := &entity.Appointment{
		ID:     uuid.New(),
		Date:   time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		Status: entity.AppointmentCompleted,
		Patient: entity.Patient{
			ID:   uuid.New(),
			Name: "Jordan Smith",
		},
		Doctor: entity.Doctor{
			ID:   uuid.New(),
			Name: "Dr. Lee",
		},
		Treatment: &entity.Treatment{
			ID:        7,
			Diagnosis: "flu",
		},
	}

	resp := AppointmentToResponse(appointment)
	if resp.Patient == nil || resp.Patient.Name != "Jordan Smith" {
		t.Error("expected preloaded patient in response")
	}
	if resp.Doctor == nil || resp.Doctor.Name != "Dr. Lee" {
		t.Error("expected preloaded doctor in response")
	}
	if resp.Treatment == nil || resp.Treatment.Diagnosis != "flu" {
		t.Error("expected preloaded treatment in response")
	}
}

func TestAppointmentToResponseNil(t *testing.T) {
	if AppointmentToResponse(nil) != nil {
		t.Error("nil appointment must convert to nil")
	}
}
