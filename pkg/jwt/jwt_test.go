package jwt

import (
	"testing"
	"time"

	"hospital-appointment-system/config"
	"hospital-appointment-system/internal/domain/entity"

	"github.com/google/uuid"
)

func newTestService(secret string) *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:        secret,
		AccessExpiry:  time.Minute,
		RefreshExpiry: time.Hour,
	})
}

func TestAccessTokenRoundtrip(t *testing.T) {
	svc := newTestService("test-secret")
	userID := uuid.New()

	token, tokenID, err := svc.GenerateAccessToken(userID, "doc@hospital.com", entity.RoleDoctor)
	if err != nil {
		t.Fatalf("GenerateAccessToken() error: %v", err)
	}
	if tokenID == "" {
		t.Fatal("expected a non-empty token ID")
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken() error: %v", err)
	}
	if claims.UserID != userID {
		t.Errorf("UserID = %s, want %s", claims.UserID, userID)
	}
	if claims.Email != "doc@hospital.com" {
		t.Errorf("Email = %s, want doc@hospital.com", claims.Email)
	}
	if claims.Role != entity.RoleDoctor {
		t.Errorf("Role = %s, want %s", claims.Role, entity.RoleDoctor)
	}
	if claims.TokenType != AccessToken {
		t.Errorf("TokenType = %s, want %s", claims.TokenType, AccessToken)
	}
	if claims.TokenID != tokenID {
		t.Errorf("TokenID = %s, want %s", claims.TokenID, tokenID)
	}
}

func TestRefreshTokenType(t *testing.T) {
	svc := newTestService("test-secret")

	token, _, err := svc.GenerateRefreshToken(uuid.New(), "pat@hospital.com", entity.RolePatient)
	if err != nil {
		t.Fatalf("GenerateRefreshToken() error: %v", err)
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken() error: %v", err)
	}
	if claims.TokenType != RefreshToken {
		t.Errorf("TokenType = %s, want %s", claims.TokenType, RefreshToken)
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	svc := newTestService("secret-a")
	token, _, err := svc.GenerateAccessToken(uuid.New(), "admin@hospital.com", entity.RoleAdmin)
	if err != nil {
		t.Fatalf("GenerateAccessToken() error: %v", err)
	}

	other := newTestService("secret-b")
	if _, err := other.ValidateToken(token); err == nil {
		t.Error("expected validation to fail with a different secret")
	}
}

func TestValidateTokenExpired(t *testing.T) {
	svc := NewJWTService(config.JWTConfig{
		Secret:        "test-secret",
		AccessExpiry:  -time.Minute,
		RefreshExpiry: time.Hour,
	})

	token, _, err := svc.GenerateAccessToken(uuid.New(), "doc@hospital.com", entity.RoleDoctor)
	if err != nil {
		t.Fatalf("GenerateAccessToken() error: %v", err)
	}

	if _, err := svc.ValidateToken(token); err == nil {
		t.Error("expected validation to fail for an expired token")
	}
}

func TestValidateTokenGarbage(t *testing.T) {
	svc := newTestService("test-secret")
	if _, err := svc.ValidateToken("not-a-token"); err == nil {
		t.Error("expected validation to fail for a malformed token")
	}
}
