package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	ContextUserID    = "user_id"
	ContextUserEmail = "user_email"
)

// Claims carried by access tokens. Tokens are issued elsewhere; this
// service only verifies them.
type Claims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// JWTMiddleware rejects requests without a valid HS256 bearer token and
// stores the caller's id and email in the gin context.
func JWTMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := parseBearer(c.GetHeader("Authorization"), secret)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUserEmail, claims.Email)
		c.Next()
	}
}

func parseBearer(header, secret string) (*Claims, error) {
	if header == "" {
		return nil, errMissingToken
	}
	tokenString, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || tokenString == "" {
		return nil, errMalformedHeader
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, errInvalidToken
	}
	if claims.UserID == 0 {
		return nil, errInvalidToken
	}
	return claims, nil
}

type authError string

func (e authError) Error() string { return string(e) }

const (
	errMissingToken    = authError("Authorization header required")
	errMalformedHeader = authError("Authorization header must be: Bearer <token>")
	errInvalidToken    = authError("Invalid or expired token")
)

func GetUserID(c *gin.Context) (uint, bool) {
	v, exists := c.Get(ContextUserID)
	if !exists {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

func GetUserEmail(c *gin.Context) (string, bool) {
	v, exists := c.Get(ContextUserEmail)
	if !exists {
		return "", false
	}
	email, ok := v.(string)
	return email, ok
}
