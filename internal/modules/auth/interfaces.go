package auth

import (
	"context"

	"hotelbooking/internal/backend"
	"hotelbooking/internal/pkg/jwt"
)

type LoginClient interface {
	Login(ctx context.Context, email, password string) (*backend.LoginResponse, error)
}

type TokenValidator interface {
	ValidateToken(tokenStr string) (*jwt.Claims, error)
}
