package auth

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pinya-planner/internal/db"
	"pinya-planner/internal/db/repository"
	"pinya-planner/internal/domain"
)

func setupAuth(t *testing.T) (*Service, *repository.MemberRepo) {
	t.Helper()
	writeDB, _ := db.OpenTestSQLite(t)
	members := repository.NewMemberRepo(writeDB)
	return New(members, []byte("test-secret"), "clau-admin"), members
}

func parseClaims(t *testing.T, tokenStr string) jwt.MapClaims {
	t.Helper()
	token, err := jwt.Parse(tokenStr, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	require.NoError(t, err)
	require.True(t, token.Valid)
	return token.Claims.(jwt.MapClaims)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("registers unknown nickname and issues token", func(t *testing.T) {
		svc, members := setupAuth(t)
		tok, err := svc.Login(ctx, "ana", "")
		require.NoError(t, err)
		assert.False(t, tok.IsAdmin)

		claims := parseClaims(t, tok.AccessToken)
		assert.Equal(t, "ana", claims["sub"])
		assert.Equal(t, false, claims["admin"])

		_, err = members.GetByNickname(ctx, "ana")
		assert.NoError(t, err)
	})

	t.Run("admin key elevates the token", func(t *testing.T) {
		svc, _ := setupAuth(t)
		tok, err := svc.Login(ctx, "ana", "clau-admin")
		require.NoError(t, err)
		assert.True(t, tok.IsAdmin)

		claims := parseClaims(t, tok.AccessToken)
		assert.Equal(t, true, claims["admin"])
	})

	t.Run("wrong admin key is denied", func(t *testing.T) {
		svc, _ := setupAuth(t)
		_, err := svc.Login(ctx, "ana", "wrong")
		var denied *domain.AccessDeniedError
		assert.ErrorAs(t, err, &denied)
	})

	t.Run("stored admin flag carries into the token", func(t *testing.T) {
		svc, members := setupAuth(t)
		_, err := members.Create(ctx, &domain.Member{Nickname: "cap", IsAdmin: true})
		require.NoError(t, err)

		tok, err := svc.Login(ctx, "cap", "")
		require.NoError(t, err)
		assert.True(t, tok.IsAdmin)
	})

	t.Run("blank nickname is rejected", func(t *testing.T) {
		svc, _ := setupAuth(t)
		_, err := svc.Login(ctx, "  ", "")
		var verr *domain.ValidationError
		assert.ErrorAs(t, err, &verr)
	})
}
