package auth

import (
	"context"
	"testing"

	"github.com/garagepro/garage-backend-go/internal/domain/auth"
	"github.com/garagepro/garage-backend-go/internal/domain/user"
	"github.com/garagepro/garage-backend-go/internal/pkg/jwt"
	"github.com/garagepro/garage-backend-go/internal/pkg/validator"
	"github.com/garagepro/garage-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret    = "test-secret-key-for-jwt"
	testAccessExp = "1h"
)

func newTestAuthService(t *testing.T) (auth.AuthService, jwt.Service) {
	t.Helper()
	jwtService, err := jwt.NewJWTService(testSecret, testAccessExp)
	require.NoError(t, err)
	return NewAuthService(memory.NewUserRepository(memory.NewStore()), jwtService), jwtService
}

func TestAuthService_Login_Success(t *testing.T) {
	ctx := context.Background()
	svc, jwtService := newTestAuthService(t)
	require.NoError(t, svc.SeedAdmin(ctx, "Owner@Garage.test", "password123"))

	resp, err := svc.Login(ctx, auth.LoginRequest{Email: "owner@garage.test", Password: "password123"})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, "admin", resp.Role)

	token, err := jwtService.JWTAuth().Decode(resp.AccessToken)
	require.NoError(t, err)
	claims, err := token.AsMap(ctx)
	require.NoError(t, err)
	assert.Equal(t, "owner@garage.test", claims["email"])
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestAuthService(t)
	require.NoError(t, svc.SeedAdmin(ctx, "owner@garage.test", "password123"))

	_, err := svc.Login(ctx, auth.LoginRequest{Email: "owner@garage.test", Password: "wrongpassword"})

	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.Login(context.Background(), auth.LoginRequest{Email: "nobody@garage.test", Password: "password123"})

	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestAuthService_Login_ValidationError(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.Login(context.Background(), auth.LoginRequest{Email: "not-an-email"})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "password")
}

func TestAuthService_SeedAdmin_OnlyWhenEmpty(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestAuthService(t)

	require.NoError(t, svc.SeedAdmin(ctx, "owner@garage.test", "password123"))
	require.NoError(t, svc.SeedAdmin(ctx, "second@garage.test", "password123"))

	_, err := svc.Login(ctx, auth.LoginRequest{Email: "second@garage.test", Password: "password123"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestAuthService_CreateUser_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestAuthService(t)
	req := user.CreateUserRequest{Email: "floor@garage.test", Password: "password123", Role: "manager"}

	created, err := svc.CreateUser(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "manager", created.Role)

	me, err := svc.Me(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "floor@garage.test", me.Email)

	_, err = svc.CreateUser(ctx, req)
	assert.ErrorIs(t, err, user.ErrUserEmailExists)
}

func TestAuthService_Logout_RevokesToken(t *testing.T) {
	ctx := context.Background()
	svc, jwtService := newTestAuthService(t)
	require.NoError(t, svc.SeedAdmin(ctx, "owner@garage.test", "password123"))
	resp, err := svc.Login(ctx, auth.LoginRequest{Email: "owner@garage.test", Password: "password123"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, resp.AccessToken, resp.AccessTokenExpiresAt))

	assert.True(t, jwtService.IsTokenRevoked(resp.AccessToken))
	assert.ErrorIs(t, svc.Logout(ctx, "", 0), auth.ErrInvalidToken)
}
