package session

import (
	"testing"
	"time"

	"github.com/hugohenrick/go-chat/internal/domain/user"
	"github.com/stretchr/testify/require"
)

func TestService_IssueAndValidate(t *testing.T) {
	req := require.New(t)

	svc, err := NewService("segredo-de-teste", time.Hour)
	req.NoError(err)

	u := &user.User{ID: "u1", Username: "alice", Email: "alice@example.com"}
	token, err := svc.Issue(u)
	req.NoError(err)
	req.NotEmpty(token)

	claims, err := svc.Validate(token)
	req.NoError(err)
	req.Equal("u1", claims.UserID)
	req.Equal("alice", claims.Username)
	req.Equal("alice@example.com", claims.Email)
}

func TestService_ValidateRejectsExpiredToken(t *testing.T) {
	req := require.New(t)

	svc, err := NewService("segredo-de-teste", time.Hour)
	req.NoError(err)
	svc.expiration = -time.Minute

	token, err := svc.Issue(&user.User{ID: "u1", Username: "alice"})
	req.NoError(err)

	_, err = svc.Validate(token)
	req.ErrorIs(err, ErrExpiredToken)
}

func TestService_ValidateRejectsForeignToken(t *testing.T) {
	req := require.New(t)

	svc, err := NewService("segredo-de-teste", time.Hour)
	req.NoError(err)
	other, err := NewService("outro-segredo", time.Hour)
	req.NoError(err)

	token, err := other.Issue(&user.User{ID: "u1", Username: "alice"})
	req.NoError(err)

	_, err = svc.Validate(token)
	req.ErrorIs(err, ErrInvalidToken)

	_, err = svc.Validate("nem-um-token")
	req.ErrorIs(err, ErrInvalidToken)
}

func TestNewService_RequiresSecret(t *testing.T) {
	_, err := NewService("", time.Hour)
	require.ErrorIs(t, err, ErrMissingSecret)
}
