package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"hospital-appointment-system/internal/delivery/dto"
	"hospital-appointment-system/internal/domain/entity"
	"hospital-appointment-system/internal/usecase"
	"hospital-appointment-system/pkg/validator"

	"github.com/google/uuid"
)

type fakeAuthUsecase struct {
	registerFn func(ctx context.Context, req *dto.RegisterPatientRequest) (*dto.PatientResponse, error)
	loginFn    func(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
}

func (f *fakeAuthUsecase) RegisterPatient(ctx context.Context, req *dto.RegisterPatientRequest) (*dto.PatientResponse, error) {
	return f.registerFn(ctx, req)
}

func (f *fakeAuthUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	return f.loginFn(ctx, req)
}

func (f *fakeAuthUsecase) Logout(ctx context.Context, actor entity.Actor, tokenID string) error {
	return nil
}

func (f *fakeAuthUsecase) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	return &dto.TokenResponse{}, nil
}

func (f *fakeAuthUsecase) GetCurrentUser(ctx context.Context, actor entity.Actor) (*dto.SessionResponse, error) {
	return &dto.SessionResponse{}, nil
}

func postJSON(t *testing.T, target string, body interface{}) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		t.Fatalf("failed to encode body: %v", err)
	}
	return httptest.NewRequest(http.MethodPost, target, &buf)
}

func TestRegisterDuplicateEmailReturnsConflict(t *testing.T) {
	fake := &fakeAuthUsecase{
		registerFn: func(ctx context.Context, req *dto.RegisterPatientRequest) (*dto.PatientResponse, error) {
			return nil, usecase.ErrEmailAlreadyExists
		},
	}
	h := NewAuthHandler(fake, validator.NewValidator())

	body := dto.RegisterPatientRequest{Name: "Jordan Smith", Email: "jordan@example.com", Password: "secret1"}
	rec := httptest.NewRecorder()

	h.Register(rec, postJSON(t, "/api/v1/auth/register", body))

	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusConflict)
	}
}

func TestRegisterCreatesPatient(t *testing.T) {
	fake := &fakeAuthUsecase{
		registerFn: func(ctx context.Context, req *dto.RegisterPatientRequest) (*dto.PatientResponse, error) {
			return &dto.PatientResponse{ID: uuid.New(), Name: req.Name, Email: req.Email}, nil
		},
	}
	h := NewAuthHandler(fake, validator.NewValidator())

	body := dto.RegisterPatientRequest{Name: "Jordan Smith", Email: "jordan@example.com", Password: "secret1"}
	rec := httptest.NewRecorder()

	h.Register(rec, postJSON(t, "/api/v1/auth/register", body))

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d, body: %s", rec.Code, http.StatusCreated, rec.Body.String())
	}
}

func TestRegisterValidationFailure(t *testing.T) {
	h := NewAuthHandler(&fakeAuthUsecase{}, validator.NewValidator())

	body := dto.RegisterPatientRequest{Name: "J", Email: "not-an-email", Password: "x"}
	rec := httptest.NewRecorder()

	h.Register(rec, postJSON(t, "/api/v1/auth/register", body))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	fake := &fakeAuthUsecase{
		loginFn: func(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
			return nil, usecase.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(fake, validator.NewValidator())

	body := dto.LoginRequest{Email: "jordan@example.com", Password: "wrong", Role: "patient"}
	rec := httptest.NewRecorder()

	h.Login(rec, postJSON(t, "/api/v1/auth/login", body))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestLoginDeactivatedAccount(t *testing.T) {
	fake := &fakeAuthUsecase{
		loginFn: func(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
			return nil, usecase.ErrAccountDeactivated
		},
	}
	h := NewAuthHandler(fake, validator.NewValidator())

	body := dto.LoginRequest{Email: "jordan@example.com", Password: "secret1", Role: "doctor"}
	rec := httptest.NewRecorder()

	h.Login(rec, postJSON(t, "/api/v1/auth/login", body))

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusForbidden)
	}
}

func TestLoginRejectsUnknownRoleTag(t *testing.T) {
	h := NewAuthHandler(&fakeAuthUsecase{}, validator.NewValidator())

	body := dto.LoginRequest{Email: "jordan@example.com", Password: "secret1", Role: "nurse"}
	rec := httptest.NewRecorder()

	h.Login(rec, postJSON(t, "/api/v1/auth/login", body))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestLoginSuccessReturnsTokens(t *testing.T) {
	fake := &fakeAuthUsecase{
		loginFn: func(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
			return &dto.TokenResponse{AccessToken: "at", RefreshToken: "rt", ExpiresIn: 900}, nil
		},
	}
	h := NewAuthHandler(fake, validator.NewValidator())

	body := dto.LoginRequest{Email: "jordan@example.com", Password: "secret1", Role: "admin"}
	rec := httptest.NewRecorder()

	h.Login(rec, postJSON(t, "/api/v1/auth/login", body))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var resp struct {
		Data dto.TokenResponse `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Data.AccessToken == "" || resp.Data.RefreshToken == "" {
		t.Error("expected both tokens in the response")
	}
}
