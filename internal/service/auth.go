package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"

	"gorm.io/gorm"

	"github.com/cartoolsbd/storefront/internal/hash"
	"github.com/cartoolsbd/storefront/internal/models"
	"github.com/cartoolsbd/storefront/internal/repo"
	"github.com/cartoolsbd/storefront/internal/token"
)

type AuthService struct {
	Users         *repo.UserRepo
	Tokens        *repo.RefreshTokenRepo
	JWTSecret     []byte
	RefreshSecret []byte
}

type TokenPair struct {
	Access     string
	AccessExp  time.Time
	Refresh    string
	RefreshExp time.Time
	User       *models.User
}

func (s *AuthService) Register(ctx context.Context, email, password string) (*models.User, error) {
	fe := FieldErrors{}
	if email == "" {
		fe["email"] = "Email is required"
	} else if _, err := mail.ParseAddress(email); err != nil {
		fe["email"] = "Invalid email"
	}
	if len(password) < 8 {
		fe["password"] = "Password must be at least 8 characters"
	}
	if len(fe) > 0 {
		return nil, fe
	}

	if _, err := s.Users.FindByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("%w: user already exists", ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check existing user: %w", err)
	}

	h, err := hash.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &models.User{Email: email, PasswordHash: h, Role: "user"}
	if err := s.Users.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	u, err := s.Users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	if !hash.CheckPassword(u.PasswordHash, password) {
		return nil, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}

	return s.issue(ctx, u)
}

// Rotate exchanges a valid, unrevoked refresh token for a fresh pair. The
// used token is revoked so it cannot be replayed.
func (s *AuthService) Rotate(ctx context.Context, rawRefresh string) (*TokenPair, error) {
	claims, err := token.Parse(rawRefresh, s.RefreshSecret)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}

	if _, err := s.Tokens.FindValid(ctx, rawRefresh); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: refresh token revoked or unknown", ErrUnauthorized)
		}
		return nil, fmt.Errorf("look up refresh token: %w", err)
	}

	if err := s.Tokens.Revoke(ctx, rawRefresh); err != nil {
		return nil, fmt.Errorf("revoke refresh token: %w", err)
	}

	u := &models.User{ID: claims.UserID, Email: claims.Email, Role: claims.Role}
	return s.issue(ctx, u)
}

func (s *AuthService) Logout(ctx context.Context, rawRefresh string) error {
	if err := s.Tokens.Revoke(ctx, rawRefresh); err != nil {
		return fmt.Errorf("revoke refresh token: %w", err)
	}
	return nil
}

func (s *AuthService) issue(ctx context.Context, u *models.User) (*TokenPair, error) {
	claims := token.Claims{UserID: u.ID, Email: u.Email, Role: u.Role}

	access, accessExp, err := token.SignAccess(claims, s.JWTSecret)
	if err != nil {
		return nil, err
	}
	refresh, refreshExp, err := token.SignRefresh(claims, s.RefreshSecret)
	if err != nil {
		return nil, err
	}

	if err := s.Tokens.Save(ctx, refresh, u.ID, u.Role, refreshExp); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	return &TokenPair{
		Access:     access,
		AccessExp:  accessExp,
		Refresh:    refresh,
		RefreshExp: refreshExp,
		User:       u,
	}, nil
}
