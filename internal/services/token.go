package services

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenIssuer mints and checks the stateless bearer credential. Tokens carry
// the user id and role and nothing else; there is no refresh and no
// revocation list, so expiry is the only way a token dies.
type TokenIssuer interface {
	Issue(userID uuid.UUID, role string) (string, error)
	Verify(tokenString string) (uuid.UUID, string, error)
	TTL() time.Duration
}

type tokenIssuer struct {
	secretKey []byte
	ttl       time.Duration
}

func NewTokenIssuer(secretKey string, ttl time.Duration) (TokenIssuer, error) {
	if secretKey == "" {
		return nil, fmt.Errorf("jwt secret key is required")
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &tokenIssuer{secretKey: []byte(secretKey), ttl: ttl}, nil
}

func (ti *tokenIssuer) Issue(userID uuid.UUID, role string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  userID.String(),
		"role": role,
		"iat":  now.Unix(),
		"exp":  now.Add(ti.ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(ti.secretKey)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (ti *tokenIssuer) Verify(tokenString string) (uuid.UUID, string, error) {
	parsed, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return ti.secretKey, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return uuid.Nil, "", fmt.Errorf("parse token: %w", err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return uuid.Nil, "", fmt.Errorf("invalid token claims")
	}

	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, "", fmt.Errorf("invalid subject claim: %w", err)
	}
	role, _ := claims["role"].(string)
	if role == "" {
		return uuid.Nil, "", fmt.Errorf("missing role claim")
	}
	return userID, role, nil
}

func (ti *tokenIssuer) TTL() time.Duration { return ti.ttl }
