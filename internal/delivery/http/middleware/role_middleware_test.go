package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"hospital-appointment-system/internal/domain/entity"

	"github.com/google/uuid"
)

func requestWithRole(role entity.Role) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/dashboard", nil)
	ctx := context.WithValue(req.Context(), UserIDKey, uuid.New())
	ctx = context.WithValue(ctx, RoleKey, role)
	return req.WithContext(ctx)
}

func TestRequireRoleAllowsMatchingRole(t *testing.T) {
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	rec := httptest.NewRecorder()
	RequireAdmin(next).ServeHTTP(rec, requestWithRole(entity.RoleAdmin))

	if !called {
		t.Fatal("expected the wrapped handler to run")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestRequireRoleBlocksOtherRoles(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("wrapped handler must not run")
	})

	for _, role := range []entity.Role{entity.RoleDoctor, entity.RolePatient} {
		rec := httptest.NewRecorder()
		RequireAdmin(next).ServeHTTP(rec, requestWithRole(role))

		if rec.Code != http.StatusForbidden {
			t.Errorf("role %s: status = %d, want %d", role, rec.Code, http.StatusForbidden)
		}
	}
}

func TestRequireRoleWithoutIdentity(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("wrapped handler must not run")
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/dashboard", nil)
	RequireAdmin(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestGetActorFromContext(t *testing.T) {
	userID := uuid.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	ctx := context.WithValue(req.Context(), UserIDKey, userID)
	ctx = context.WithValue(ctx, RoleKey, entity.RoleDoctor)

	actor, ok := GetActorFromContext(ctx)
	if !ok {
		t.Fatal("expected an actor from a populated context")
	}
	if actor.ID != userID || actor.Role != entity.RoleDoctor {
		t.Errorf("actor = %+v, want ID %s role %s", actor, userID, entity.RoleDoctor)
	}

	if _, ok := GetActorFromContext(req.Context()); ok {
		t.Error("expected no actor from an empty context")
	}
}
