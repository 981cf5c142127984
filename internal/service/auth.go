package service

import (
	"context"

	"github.com/emretit/paftamobile-sub005/internal/api/dto"
	"github.com/emretit/paftamobile-sub005/internal/auth"
	"github.com/emretit/paftamobile-sub005/internal/types"
)

// AuthService handles credential flows against the identity backend. Token
// validation on incoming requests is done by the middleware, not here.
type AuthService interface {
	SignUp(ctx context.Context, req *dto.SignUpRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
}

type authService struct {
	ServiceParams
	authProvider auth.Provider
}

func NewAuthService(params ServiceParams) AuthService {
	return &authService{
		ServiceParams: params,
		authProvider:  auth.NewProvider(params.Config),
	}
}

// SignUp registers the user with the identity backend and binds them to a
// fresh tenant. The tenant binding lives in the provider's app metadata so
// every later token carries it.
func (s *authService) SignUp(ctx context.Context, req *dto.SignUpRequest) (*dto.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	resp, err := s.authProvider.SignUp(ctx, auth.AuthRequest{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return nil, err
	}

	tenantID := types.GenerateUUIDWithPrefix(types.UUID_PREFIX_TENANT)
	if err := s.authProvider.AssignUserToTenant(ctx, resp.UserID, tenantID); err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		Token:    resp.AuthToken,
		UserID:   resp.UserID,
		TenantID: tenantID,
	}, nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	resp, err := s.authProvider.Login(ctx, auth.AuthRequest{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return nil, err
	}

	claims, err := s.authProvider.ValidateToken(ctx, resp.AuthToken)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		Token:    resp.AuthToken,
		UserID:   resp.UserID,
		TenantID: claims.TenantID,
	}, nil
}
