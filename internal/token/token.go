package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	AccessTTL  = 15 * time.Minute
	RefreshTTL = 7 * 24 * time.Hour
)

type Claims struct {
	UserID uuid.UUID
	Email  string
	Role   string
}

func SignAccess(c Claims, secret []byte) (string, time.Time, error) {
	exp := time.Now().Add(AccessTTL)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   c.UserID.String(),
		"email": c.Email,
		"role":  c.Role,
		"exp":   exp.Unix(),
	})
	signed, err := t.SignedString(secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign access token: %w", err)
	}
	return signed, exp, nil
}

func SignRefresh(c Claims, secret []byte) (string, time.Time, error) {
	exp := time.Now().Add(RefreshTTL)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   c.UserID.String(),
		"email": c.Email,
		"role":  c.Role,
		"exp":   exp.Unix(),
		"typ":   "refresh",
	})
	signed, err := t.SignedString(secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign refresh token: %w", err)
	}
	return signed, exp, nil
}

// Parse validates the signature and expiry and extracts the claims.
func Parse(raw string, secret []byte) (Claims, error) {
	t, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return Claims{}, err
	}

	mc, ok := t.Claims.(jwt.MapClaims)
	if !ok || !t.Valid {
		return Claims{}, fmt.Errorf("invalid token claims")
	}

	sub, _ := mc["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return Claims{}, fmt.Errorf("invalid subject: %w", err)
	}

	email, _ := mc["email"].(string)
	role, _ := mc["role"].(string)
	return Claims{UserID: userID, Email: email, Role: role}, nil
}
