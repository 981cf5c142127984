package service

import (
	"context"
	"strings"
	"testing"

	"github.com/emretit/paftamobile-sub005/internal/api/dto"
	"github.com/emretit/paftamobile-sub005/internal/auth"
	ierr "github.com/emretit/paftamobile-sub005/internal/errors"
	"github.com/stretchr/testify/suite"

	"github.com/emretit/paftamobile-sub005/internal/testutil"
)

// fakeAuthProvider is an in-memory stand-in for the identity backend
type fakeAuthProvider struct {
	users   map[string]string
	tenants map[string]string
}

func newFakeAuthProvider() *fakeAuthProvider {
	return &fakeAuthProvider{
		users:   make(map[string]string),
		tenants: make(map[string]string),
	}
}

func (f *fakeAuthProvider) SignUp(ctx context.Context, req auth.AuthRequest) (*auth.AuthResponse, error) {
	if _, ok := f.users[req.Email]; ok {
		return nil, ierr.NewError("user already exists").Mark(ierr.ErrAlreadyExists)
	}
	f.users[req.Email] = req.Password
	return f.Login(ctx, req)
}

func (f *fakeAuthProvider) Login(ctx context.Context, req auth.AuthRequest) (*auth.AuthResponse, error) {
	password, ok := f.users[req.Email]
	if !ok || password != req.Password {
		return nil, ierr.NewError("invalid credentials").
			WithHint("E-posta veya şifre hatalı").
			Mark(ierr.ErrPermissionDenied)
	}
	return &auth.AuthResponse{
		UserID:    "user_" + req.Email,
		AuthToken: "token:user_" + req.Email,
	}, nil
}

func (f *fakeAuthProvider) ValidateToken(ctx context.Context, token string) (*auth.Claims, error) {
	userID, ok := strings.CutPrefix(token, "token:")
	if !ok {
		return nil, ierr.NewError("invalid token").Mark(ierr.ErrPermissionDenied)
	}
	return &auth.Claims{
		UserID:   userID,
		TenantID: f.tenants[userID],
	}, nil
}

func (f *fakeAuthProvider) AssignUserToTenant(ctx context.Context, userID string, tenantID string) error {
	f.tenants[userID] = tenantID
	return nil
}

type AuthServiceSuite struct {
	testutil.BaseServiceTestSuite
	service  AuthService
	provider *fakeAuthProvider
}

func TestAuthService(t *testing.T) {
	suite.Run(t, new(AuthServiceSuite))
}

func (s *AuthServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.provider = newFakeAuthProvider()
	s.service = &authService{
		ServiceParams: ServiceParams{
			Logger: s.GetLogger(),
			Config: s.GetConfig(),
		},
		authProvider: s.provider,
	}
}

func (s *AuthServiceSuite) TestSignUpBindsTenant() {
	resp, err := s.service.SignUp(s.GetContext(), &dto.SignUpRequest{
		Email:    "owner@pafta.app",
		Password: "correct-horse1",
	})
	s.NoError(err)
	s.NotEmpty(resp.Token)
	s.NotEmpty(resp.UserID)
	s.NotEmpty(resp.TenantID)
	s.Equal(resp.TenantID, s.provider.tenants[resp.UserID])
}

func (s *AuthServiceSuite) TestSignUpValidatesRequest() {
	_, err := s.service.SignUp(s.GetContext(), &dto.SignUpRequest{
		Email:    "not-an-email",
		Password: "short",
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *AuthServiceSuite) TestLoginReturnsTenantFromToken() {
	signup, err := s.service.SignUp(s.GetContext(), &dto.SignUpRequest{
		Email:    "owner@pafta.app",
		Password: "correct-horse1",
	})
	s.NoError(err)

	login, err := s.service.Login(s.GetContext(), &dto.LoginRequest{
		Email:    "owner@pafta.app",
		Password: "correct-horse1",
	})
	s.NoError(err)
	s.Equal(signup.UserID, login.UserID)
	s.Equal(signup.TenantID, login.TenantID)
}

func (s *AuthServiceSuite) TestLoginRejectsBadPassword() {
	_, err := s.service.SignUp(s.GetContext(), &dto.SignUpRequest{
		Email:    "owner@pafta.app",
		Password: "correct-horse1",
	})
	s.NoError(err)

	_, err = s.service.Login(s.GetContext(), &dto.LoginRequest{
		Email:    "owner@pafta.app",
		Password: "wrong",
	})
	s.Error(err)
	s.True(ierr.Is(err, ierr.ErrPermissionDenied))
}
