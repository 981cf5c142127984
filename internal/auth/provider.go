package auth

import (
	"context"

	"github.com/emretit/paftamobile-sub005/internal/config"
)

// Claims is the validated identity extracted from a bearer token
type Claims struct {
	UserID   string
	TenantID string
}

type AuthRequest struct {
	Email    string
	Password string
}

type AuthResponse struct {
	UserID    string
	AuthToken string
}

// Provider validates bearer tokens and manages user credentials against the
// configured identity backend.
type Provider interface {
	SignUp(ctx context.Context, req AuthRequest) (*AuthResponse, error)
	Login(ctx context.Context, req AuthRequest) (*AuthResponse, error)
	ValidateToken(ctx context.Context, token string) (*Claims, error)
	AssignUserToTenant(ctx context.Context, userID string, tenantID string) error
}

func NewProvider(cfg *config.Configuration) Provider {
	return NewSupabaseAuth(cfg)
}
