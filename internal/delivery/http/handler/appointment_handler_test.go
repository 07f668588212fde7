package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"hospital-appointment-system/internal/delivery/dto"
	"hospital-appointment-system/internal/delivery/http/middleware"
	"hospital-appointment-system/internal/domain/entity"
	"hospital-appointment-system/internal/usecase"
	"hospital-appointment-system/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type fakeAppointmentUsecase struct {
	bookFn     func(ctx context.Context, actor entity.Actor, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error)
	cancelFn   func(ctx context.Context, actor entity.Actor, appointmentID uuid.UUID) error
	completeFn func(ctx context.Context, actor entity.Actor, appointmentID uuid.UUID, req *dto.CompleteAppointmentRequest) (*dto.CompleteAppointmentResponse, error)
}

func (f *fakeAppointmentUsecase) Book(ctx context.Context, actor entity.Actor, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error) {
	return f.bookFn(ctx, actor, req)
}

func (f *fakeAppointmentUsecase) Cancel(ctx context.Context, actor entity.Actor, appointmentID uuid.UUID) error {
	return f.cancelFn(ctx, actor, appointmentID)
}

func (f *fakeAppointmentUsecase) Complete(ctx context.Context, actor entity.Actor, appointmentID uuid.UUID, req *dto.CompleteAppointmentRequest) (*dto.CompleteAppointmentResponse, error) {
	return f.completeFn(ctx, actor, appointmentID, req)
}

func (f *fakeAppointmentUsecase) ListForPatient(ctx context.Context, actor entity.Actor) (*dto.AppointmentListResponse, error) {
	return &dto.AppointmentListResponse{}, nil
}

func (f *fakeAppointmentUsecase) ListForDoctor(ctx context.Context, actor entity.Actor) (*dto.AppointmentListResponse, error) {
	return &dto.AppointmentListResponse{}, nil
}

func (f *fakeAppointmentUsecase) ListAll(ctx context.Context) (*dto.AppointmentListResponse, error) {
	return &dto.AppointmentListResponse{}, nil
}

func (f *fakeAppointmentUsecase) ListUpcoming(ctx context.Context) (*dto.AppointmentListResponse, error) {
	return &dto.AppointmentListResponse{}, nil
}

func (f *fakeAppointmentUsecase) TreatmentHistory(ctx context.Context, actor entity.Actor) (*dto.AppointmentListResponse, error) {
	return &dto.AppointmentListResponse{}, nil
}

func (f *fakeAppointmentUsecase) PatientHistory(ctx context.Context, actor entity.Actor, patientID uuid.UUID) (*dto.PatientHistoryResponse, error) {
	return &dto.PatientHistoryResponse{}, nil
}

func authedRequest(t *testing.T, method, target string, body interface{}, actor entity.Actor) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, target, &buf)
	ctx := context.WithValue(req.Context(), middleware.UserIDKey, actor.ID)
	ctx = context.WithValue(ctx, middleware.RoleKey, actor.Role)
	return req.WithContext(ctx)
}

func TestBookReturnsCreated(t *testing.T) {
	doctorID := uuid.New()
	fake := &fakeAppointmentUsecase{
		bookFn: func(ctx context.Context, actor entity.Actor, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error) {
			return &dto.AppointmentResponse{
				ID:       uuid.New(),
				DoctorID: req.DoctorID,
				Date:     req.Date,
				Time:     req.Time,
				Status:   string(entity.AppointmentBooked),
			}, nil
		},
	}
	h := NewAppointmentHandler(fake, validator.NewValidator())

	actor := entity.Actor{ID: uuid.New(), Role: entity.RolePatient}
	body := dto.BookAppointmentRequest{DoctorID: doctorID, Date: "2026-03-10", Time: "09:30"}
	req := authedRequest(t, http.MethodPost, "/api/v1/patient/appointments", body, actor)
	rec := httptest.NewRecorder()

	h.Book(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d, body: %s", rec.Code, http.StatusCreated, rec.Body.String())
	}
}

func TestBookSlotTakenReturnsConflict(t *testing.T) {
	fake := &fakeAppointmentUsecase{
		bookFn: func(ctx context.Context, actor entity.Actor, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error) {
			return nil, usecase.ErrSlotTaken
		},
	}
	h := NewAppointmentHandler(fake, validator.NewValidator())

	actor := entity.Actor{ID: uuid.New(), Role: entity.RolePatient}
	body := dto.BookAppointmentRequest{DoctorID: uuid.New(), Date: "2026-03-10", Time: "09:30"}
	req := authedRequest(t, http.MethodPost, "/api/v1/patient/appointments", body, actor)
	rec := httptest.NewRecorder()

	h.Book(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusConflict)
	}
}

func TestBookRejectsBadDate(t *testing.T) {
	h := NewAppointmentHandler(&fakeAppointmentUsecase{}, validator.NewValidator())

	actor := entity.Actor{ID: uuid.New(), Role: entity.RolePatient}
	body := dto.BookAppointmentRequest{DoctorID: uuid.New(), Date: "10-03-2026", Time: "09:30"}
	req := authedRequest(t, http.MethodPost, "/api/v1/patient/appointments", body, actor)
	rec := httptest.NewRecorder()

	h.Book(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestCancelForbiddenForOtherActor(t *testing.T) {
	fake := &fakeAppointmentUsecase{
		cancelFn: func(ctx context.Context, actor entity.Actor, appointmentID uuid.UUID) error {
			return usecase.ErrNotAppointmentActor
		},
	}
	h := NewAppointmentHandler(fake, validator.NewValidator())

	actor := entity.Actor{ID: uuid.New(), Role: entity.RolePatient}
	appointmentID := uuid.New()
	req := authedRequest(t, http.MethodPost, "/api/v1/patient/appointments/"+appointmentID.String()+"/cancel", nil, actor)
	req = mux.SetURLVars(req, map[string]string{"id": appointmentID.String()})
	rec := httptest.NewRecorder()

	h.Cancel(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusForbidden)
	}
}

func TestCancelAlreadyTerminalReturnsConflict(t *testing.T) {
	fake := &fakeAppointmentUsecase{
		cancelFn: func(ctx context.Context, actor entity.Actor, appointmentID uuid.UUID) error {
			return usecase.ErrAppointmentNotActive
		},
	}
	h := NewAppointmentHandler(fake, validator.NewValidator())

	actor := entity.Actor{ID: uuid.New(), Role: entity.RoleAdmin}
	appointmentID := uuid.New()
	req := authedRequest(t, http.MethodPost, "/api/v1/admin/appointments/"+appointmentID.String()+"/cancel", nil, actor)
	req = mux.SetURLVars(req, map[string]string{"id": appointmentID.String()})
	rec := httptest.NewRecorder()

	h.Cancel(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusConflict)
	}
}

func TestCompleteFutureDateRejected(t *testing.T) {
	fake := &fakeAppointmentUsecase{
		completeFn: func(ctx context.Context, actor entity.Actor, appointmentID uuid.UUID, req *dto.CompleteAppointmentRequest) (*dto.CompleteAppointmentResponse, error) {
			return nil, usecase.ErrFutureAppointment
		},
	}
	h := NewAppointmentHandler(fake, validator.NewValidator())

	actor := entity.Actor{ID: uuid.New(), Role: entity.RoleDoctor}
	appointmentID := uuid.New()
	body := dto.CompleteAppointmentRequest{Diagnosis: "flu", Prescription: "rest"}
	req := authedRequest(t, http.MethodPost, "/api/v1/doctor/appointments/"+appointmentID.String()+"/complete", body, actor)
	req = mux.SetURLVars(req, map[string]string{"id": appointmentID.String()})
	rec := httptest.NewRecorder()

	h.Complete(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestCompleteRequiresDiagnosis(t *testing.T) {
	h := NewAppointmentHandler(&fakeAppointmentUsecase{}, validator.NewValidator())

	actor := entity.Actor{ID: uuid.New(), Role: entity.RoleDoctor}
	appointmentID := uuid.New()
	body := dto.CompleteAppointmentRequest{Prescription: "rest"}
	req := authedRequest(t, http.MethodPost, "/api/v1/doctor/appointments/"+appointmentID.String()+"/complete", body, actor)
	req = mux.SetURLVars(req, map[string]string{"id": appointmentID.String()})
	rec := httptest.NewRecorder()

	h.Complete(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestCompletePastDateCarriesNotice(t *testing.T) {
	fake := &fakeAppointmentUsecase{
		completeFn: func(ctx context.Context, actor entity.Actor, appointmentID uuid.UUID, req *dto.CompleteAppointmentRequest) (*dto.CompleteAppointmentResponse, error) {
			return &dto.CompleteAppointmentResponse{
				Appointment: &dto.AppointmentResponse{ID: appointmentID, Status: string(entity.AppointmentCompleted)},
				Notice:      "appointment was completed after its scheduled date",
			}, nil
		},
	}
	h := NewAppointmentHandler(fake, validator.NewValidator())

	actor := entity.Actor{ID: uuid.New(), Role: entity.RoleDoctor}
	appointmentID := uuid.New()
	body := dto.CompleteAppointmentRequest{Diagnosis: "flu", Prescription: "rest"}
	req := authedRequest(t, http.MethodPost, "/api/v1/doctor/appointments/"+appointmentID.String()+"/complete", body, actor)
	req = mux.SetURLVars(req, map[string]string{"id": appointmentID.String()})
	rec := httptest.NewRecorder()

	h.Complete(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d, body: %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	var resp struct {
		Data dto.CompleteAppointmentResponse `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Data.Notice == "" {
		t.Error("expected a notice for late completion")
	}
}

func TestBookWithoutIdentityIsUnauthorized(t *testing.T) {
	h := NewAppointmentHandler(&fakeAppointmentUsecase{}, validator.NewValidator())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/patient/appointments", nil)
	rec := httptest.NewRecorder()

	h.Book(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}
