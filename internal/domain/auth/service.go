package auth

import (
	"context"

	"github.com/garagepro/garage-backend-go/internal/domain/user"
)

type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)
	// Logout revokes the presented access token until it expires.
	Logout(ctx context.Context, token string, expiresAt int64) error
	Me(ctx context.Context, userID string) (user.UserResponse, error)
	CreateUser(ctx context.Context, req user.CreateUserRequest) (user.UserResponse, error)
	// SeedAdmin creates the first admin account when no user exists yet.
	SeedAdmin(ctx context.Context, email, password string) error
}
