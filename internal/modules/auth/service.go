package auth

import (
	"context"
	"fmt"
	"strings"

	"hotelbooking/internal/backend"
)

type Service struct {
	backend LoginClient
	tokens  TokenValidator
	loggerf func(format string, args ...interface{})
}

func NewService(backend LoginClient, tokens TokenValidator, loggerf func(format string, args ...interface{})) *Service {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &Service{backend: backend, tokens: tokens, loggerf: loggerf}
}

// Login authenticates against the backend and checks that the issued token
// is one this gateway can verify, so a successful login is always usable.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	out, err := s.backend.Login(ctx, email, req.Password)
	if err != nil {
		if backend.IsUnauthorized(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("backend login: %w", err)
	}

	session, err := s.SessionFromToken(out.Token)
	if err != nil {
		s.loggerf("level=error msg=backend issued unverifiable token email=%s err=%v", email, err)
		return nil, err
	}

	return &LoginResponse{
		Token: out.Token,
		User: UserPublic{
			ID:    out.User.ID,
			Name:  out.User.Nombre,
			Email: out.User.Email,
			Role:  out.User.Rol,
		},
		Session: session,
	}, nil
}

func (s *Service) SessionFromToken(token string) (Session, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Session{}, ErrUnauthorized
	}
	claims, err := s.tokens.ValidateToken(token)
	if err != nil {
		return Session{}, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	return NewSession(claims, token), nil
}
