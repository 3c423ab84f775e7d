package auth

import (
	"testing"

	"eventhub-backend/internal/config"
	"eventhub-backend/internal/models"
)

func testConfig(secret string) *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{Secret: secret, Expiry: "1h"},
	}
}

func TestTokenRoundTrip(t *testing.T) {
	manager := NewJWTManager(testConfig("test-secret"))

	user := &models.User{ID: 7, Username: "maria_o", Role: "organizer"}
	token, err := manager.GenerateToken(user)
	if err != nil {
		t.Fatalf("GenerateToken returned error: %v", err)
	}

	claims, err := manager.VerifyToken(token)
	if err != nil {
		t.Fatalf("VerifyToken returned error: %v", err)
	}
	if claims.UserID != 7 || claims.Username != "maria_o" || claims.Role != "organizer" {
		t.Errorf("Claims mismatch: %+v", claims)
	}
	if claims.ID == "" {
		t.Error("Expected a token ID")
	}
}

func TestVerifyTokenWrongSecret(t *testing.T) {
	manager := NewJWTManager(testConfig("test-secret"))
	other := NewJWTManager(testConfig("another-secret"))

	token, err := manager.GenerateToken(&models.User{ID: 1, Username: "carlos_p", Role: "participant"})
	if err != nil {
		t.Fatalf("GenerateToken returned error: %v", err)
	}

	if _, err := other.VerifyToken(token); err == nil {
		t.Error("Expected verification to fail with a different secret")
	}
}

func TestInvalidExpiryFallsBack(t *testing.T) {
	manager := NewJWTManager(&config.Config{
		JWT: config.JWTConfig{Secret: "s", Expiry: "not-a-duration"},
	})

	token, err := manager.GenerateToken(&models.User{ID: 2, Username: "lucia_p", Role: "participant"})
	if err != nil {
		t.Fatalf("GenerateToken returned error: %v", err)
	}
	if _, err := manager.VerifyToken(token); err != nil {
		t.Errorf("Token should verify with fallback expiry: %v", err)
	}
}
