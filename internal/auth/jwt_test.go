package auth

import (
	"testing"
	"time"
)

// TestGenerateToken tests JWT token generation.
func TestGenerateToken(t *testing.T) {
	secret := "test-secret-key-min-32-chars-long-1234567890"
	userDetailID := uint(123)

	token, err := GenerateToken(userDetailID, secret, 15*time.Minute)
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}
	if token == "" {
		t.Fatal("Token is empty")
	}

	// Verify the token can be validated
	claims, err := ValidateJWT(token, secret)
	if err != nil {
		t.Fatalf("Failed to validate generated token: %v", err)
	}

	if claims.Subject != "123" {
		t.Errorf("Expected subject '123', got '%s'", claims.Subject)
	}

	if claims.UserDetailID != userDetailID {
		t.Errorf("Expected user detail ID %d, got %d", userDetailID, claims.UserDetailID)
	}

	if claims.Issuer != "bighammer-catalog" {
		t.Errorf("Expected issuer 'bighammer-catalog', got '%s'", claims.Issuer)
	}
}

// TestGenerateTokenWeakSecret tests that weak secrets are rejected.
func TestGenerateTokenWeakSecret(t *testing.T) {
	_, err := GenerateToken(123, "short", 15*time.Minute)
	if err == nil {
		t.Error("Expected error for weak secret, but got none")
	}

	if err.Error() != "JWT key too weak" {
		t.Errorf("Expected 'JWT key too weak' error, got '%s'", err.Error())
	}
}

// TestValidateJWT tests JWT token validation failure modes.
func TestValidateJWT(t *testing.T) {
	secret := "test-secret-key-min-32-chars-long-1234567890"

	token, err := GenerateToken(456, secret, 15*time.Minute)
	if err != nil {
		t.Fatalf("Failed to generate token for validation test: %v", err)
	}

	tests := []struct {
		name    string
		token   string
		secret  string
		wantErr bool
	}{
		{
			name:    "valid token",
			token:   token,
			secret:  secret,
			wantErr: false,
		},
		{
			name:    "wrong secret",
			token:   token,
			secret:  "another-secret-key-min-32-chars-long-0987654321",
			wantErr: true,
		},
		{
			name:    "malformed token",
			token:   "not.a.token",
			secret:  secret,
			wantErr: true,
		},
		{
			name:    "empty token",
			token:   "",
			secret:  secret,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateJWT(tt.token, tt.secret)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateJWT() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestValidateJWTExpired tests that expired tokens are rejected.
func TestValidateJWTExpired(t *testing.T) {
	secret := "test-secret-key-min-32-chars-long-1234567890"

	token, err := GenerateToken(789, secret, -1*time.Minute)
	if err != nil {
		t.Fatalf("Failed to generate expired token: %v", err)
	}

	if _, err := ValidateJWT(token, secret); err == nil {
		t.Error("Expected error for expired token, but got none")
	}
}
