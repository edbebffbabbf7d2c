package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"beerservice/internal/domain"
	"beerservice/internal/repos"
	"beerservice/internal/services"
)

func TestAuthenticate(t *testing.T) {
	s := services.NewAuthService(repos.NewUserRepo(memdb(t)), "secret", time.Hour)
	ctx := context.Background()

	u, err := s.Authenticate(ctx, "admin", "admin")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, u.Role)

	_, err = s.Authenticate(ctx, "admin", "wrong")
	assert.ErrorIs(t, err, services.ErrBadCredentials)
	_, err = s.Authenticate(ctx, "ghost", "ghost")
	assert.ErrorIs(t, err, services.ErrBadCredentials)
}

func TestTokenRoundTrip(t *testing.T) {
	s := services.NewAuthService(nil, "secret", time.Hour)
	tok, exp, err := s.IssueToken(&domain.User{Username: "user", Role: domain.RoleUser})
	require.NoError(t, err)
	assert.True(t, exp.After(time.Now()))

	u, err := s.ParseToken(tok)
	require.NoError(t, err)
	assert.Equal(t, "user", u.Username)
	assert.Equal(t, domain.RoleUser, u.Role)
}

func TestTokenRejected(t *testing.T) {
	s := services.NewAuthService(nil, "secret", time.Hour)
	tok, _, err := s.IssueToken(&domain.User{Username: "user", Role: domain.RoleUser})
	require.NoError(t, err)

	other := services.NewAuthService(nil, "another-secret", time.Hour)
	_, err = other.ParseToken(tok)
	assert.ErrorIs(t, err, services.ErrBadCredentials)

	expired := services.NewAuthService(nil, "secret", -time.Minute)
	old, _, err := expired.IssueToken(&domain.User{Username: "user", Role: domain.RoleUser})
	require.NoError(t, err)
	_, err = s.ParseToken(old)
	assert.ErrorIs(t, err, services.ErrBadCredentials)

	_, err = s.ParseToken("not-a-token")
	assert.ErrorIs(t, err, services.ErrBadCredentials)
}
