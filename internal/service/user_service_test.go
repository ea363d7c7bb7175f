package service

import (
	"testing"
	"time"

	"quizbank-service/internal/config"
	"quizbank-service/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateToken(t *testing.T) {
	s := &UserService{Auth: config.AuthConfig{JWTSecret: "secret", TokenTTL: 7 * 24 * time.Hour}}
	user := &models.User{ID: "u1", Email: "user@example.com", IsPaid: true}

	signed, err := s.generateToken(user)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	var claims Claims
	token, err := jwt.ParseWithClaims(signed, &claims, func(t *jwt.Token) (any, error) {
		return []byte("secret"), nil
	})
	if err != nil || !token.Valid {
		t.Fatalf("Token did not parse as valid: %v", err)
	}
	if claims.UserID != "u1" || claims.Email != "user@example.com" || !claims.IsPaid {
		t.Errorf("Claims lost fields: %+v", claims)
	}
	if claims.ExpiresAt == nil || time.Until(claims.ExpiresAt.Time) < 6*24*time.Hour {
		t.Error("Expected roughly seven-day expiry")
	}
}
