package utils

import (
	"testing"
	"time"

	"clinica/models"
)

func TestGenerateAndDecodeTokenClaims(t *testing.T) {
	token, err := GenerateToken("user-42", models.RoleProvider, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := DecodeTokenClaims(token)
	if err != nil {
		t.Fatalf("DecodeTokenClaims: %v", err)
	}
	if claims.Subject != "user-42" {
		t.Errorf("subject = %q, want user-42", claims.Subject)
	}
	if claims.Role != models.RoleProvider {
		t.Errorf("role = %q, want provider", claims.Role)
	}
}

func TestDecodeTokenClaimsRejectsGarbage(t *testing.T) {
	for _, garbage := range []string{"", "not-a-token", "a.b", "x.y.z"} {
		if _, err := DecodeTokenClaims(garbage); err == nil {
			t.Errorf("expected error for %q", garbage)
		}
	}
}

func TestDecodeTokenClaimsUnknownRoleDegradesToNone(t *testing.T) {
	token, err := GenerateToken("user-7", models.Role("superuser"), time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	claims, err := DecodeTokenClaims(token)
	if err != nil {
		t.Fatalf("DecodeTokenClaims: %v", err)
	}
	if claims.Role != models.RoleNone {
		t.Errorf("role = %q, want none", claims.Role)
	}
}

func TestValidateTokenRejectsTampering(t *testing.T) {
	token, err := GenerateToken("user-42", models.RolePatient, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if _, err := ValidateToken(token); err != nil {
		t.Fatalf("ValidateToken on fresh token: %v", err)
	}
	if _, err := ValidateToken(token + "x"); err == nil {
		t.Error("expected tampered token to be rejected")
	}
}
