package auth

import (
	"fmt"
	"time"

	"github.com/Atharva2908/task-manager/internal/entity"
	"github.com/golang-jwt/jwt/v5"
)

// JWTManager validates access tokens issued by the backend. The signing
// secret is shared with the backend so the BFF can read the role and
// subject claims without a round trip.
type JWTManager struct {
	secretKey string
}

func NewJWTManager(secretKey string) *JWTManager {
	return &JWTManager{
		secretKey: secretKey,
	}
}

// GenerateAccessToken signs an access token. The backend is the normal
// issuer; this is used for service tokens and in tests.
func (m *JWTManager) GenerateAccessToken(userID, email string, role entity.Role, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":   userID,
		"email": email,
		"role":  string(role),
		"exp":   time.Now().Add(ttl).Unix(),
		"iat":   time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(m.secretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}

	return tokenString, nil
}

// ValidateAccessToken checks the signature and extracts the identity claims.
func (m *JWTManager) ValidateAccessToken(tokenString string) (*entity.JWTClaims, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(m.secretKey), nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	userID, ok := claims["sub"].(string)
	if !ok || userID == "" {
		return nil, fmt.Errorf("invalid sub in token")
	}

	// email and role are optional in older tokens; role defaults to the
	// most restricted one
	email, _ := claims["email"].(string)
	role := entity.RoleEmployee
	if r, ok := claims["role"].(string); ok && r != "" {
		role = entity.Role(r)
	}

	return &entity.JWTClaims{
		UserID: userID,
		Email:  email,
		Role:   role,
	}, nil
}
