// Package auth issues access tokens for the planning API. Members log in
// with their nickname; the admin key elevates a login to admin.
package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"pinya-planner/internal/domain"
)

// DefaultTokenTTL is how long issued tokens stay valid.
const DefaultTokenTTL = 12 * time.Hour

// Service issues HS256 tokens accepted by the Auth middleware.
type Service struct {
	members  domain.MemberRepository
	secret   []byte
	adminKey string
	ttl      time.Duration
	now      func() time.Time
}

// New creates an auth service.
func New(members domain.MemberRepository, secret []byte, adminKey string) *Service {
	return &Service{
		members:  members,
		secret:   secret,
		adminKey: adminKey,
		ttl:      DefaultTokenTTL,
		now:      time.Now,
	}
}

// Token is an issued access token with its expiry.
type Token struct {
	AccessToken string
	ExpiresAt   time.Time
	IsAdmin     bool
}

// Login issues a token for a nickname, registering unknown nicknames as
// new members. Admin rights require either the admin key or a stored
// admin flag on the member.
func (s *Service) Login(ctx context.Context, nickname, adminKey string) (*Token, error) {
	if strings.TrimSpace(nickname) == "" {
		return nil, domain.ErrValidation("nickname is required")
	}
	m, err := s.members.EnsureExists(ctx, nickname)
	if err != nil {
		return nil, fmt.Errorf("ensure member: %w", err)
	}

	isAdmin := m.IsAdmin
	if adminKey != "" {
		if s.adminKey == "" || adminKey != s.adminKey {
			return nil, domain.ErrAccessDenied("invalid admin key")
		}
		isAdmin = true
	}

	now := s.now()
	expiresAt := now.Add(s.ttl)
	claims := jwt.MapClaims{
		"sub":   m.Nickname,
		"admin": isAdmin,
		"iat":   now.Unix(),
		"exp":   expiresAt.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &Token{AccessToken: signed, ExpiresAt: expiresAt, IsAdmin: isAdmin}, nil
}
