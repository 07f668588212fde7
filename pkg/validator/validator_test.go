package validator

import (
	"strings"
	"testing"
)

type sampleRequest struct {
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"required,oneof=admin doctor patient"`
	Date  string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Age   int    `json:"age" validate:"omitempty,gte=0,lte=150"`
}

func TestValidatePasses(t *testing.T) {
	cv := NewValidator()
	err := cv.Validate(&sampleRequest{
		Email: "pat@hospital.com",
		Role:  "patient",
		Date:  "2026-03-10",
		Age:   42,
	})
	if err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
}

func TestFormatValidationErrors(t *testing.T) {
	cv := NewValidator()

	tests := []struct {
		name    string
		req     sampleRequest
		field   string
		wantMsg string
	}{
		{"missing email", sampleRequest{Role: "admin"}, "Email", "required"},
		{"bad email", sampleRequest{Email: "nope", Role: "admin"}, "Email", "valid email"},
		{"bad role", sampleRequest{Email: "a@b.com", Role: "nurse"}, "Role", "one of"},
		{"bad date", sampleRequest{Email: "a@b.com", Role: "admin", Date: "10-03-2026"}, "Date", "format"},
		{"age too high", sampleRequest{Email: "a@b.com", Role: "admin", Age: 200}, "Age", "less than or equal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := cv.Validate(&tt.req)
			if err == nil {
				t.Fatal("expected a validation error")
			}
			formatted := cv.FormatValidationErrors(err)
			msg, ok := formatted[tt.field]
			if !ok {
				t.Fatalf("expected an error for field %s, got %v", tt.field, formatted)
			}
			if !strings.Contains(msg, tt.wantMsg) {
				t.Errorf("message %q does not mention %q", msg, tt.wantMsg)
			}
		})
	}
}
