package testutil

import (
	"testing"
	"time"

	authMiddleware "prode-api/packages/auth/middleware"

	"github.com/golang-jwt/jwt/v5"
)

const JWTSecret = "test-secret"

// Token signs an access token for userID with JWTSecret.
func Token(t *testing.T, userID uint) string {
	t.Helper()
	claims := authMiddleware.Claims{
		UserID: userID,
		Email:  "user@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(JWTSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}
