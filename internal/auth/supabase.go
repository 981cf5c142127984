package auth

import (
	"context"

	"github.com/emretit/paftamobile-sub005/internal/config"
	ierr "github.com/emretit/paftamobile-sub005/internal/errors"
	"github.com/emretit/paftamobile-sub005/internal/types"
	"github.com/golang-jwt/jwt/v4"
	supa "github.com/nedpals/supabase-go"
)

type supabaseAuth struct {
	authConfig config.AuthConfig
	client     *supa.Client
}

func NewSupabaseAuth(cfg *config.Configuration) Provider {
	client := supa.CreateClient(cfg.Auth.Supabase.BaseURL, cfg.Auth.Supabase.ServiceKey)
	return &supabaseAuth{
		authConfig: cfg.Auth,
		client:     client,
	}
}

func (s *supabaseAuth) SignUp(ctx context.Context, req AuthRequest) (*AuthResponse, error) {
	_, err := s.client.Auth.SignUp(ctx, supa.UserCredentials{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Kayıt işlemi başarısız oldu").
			Mark(ierr.ErrPermissionDenied)
	}

	return s.Login(ctx, req)
}

func (s *supabaseAuth) Login(ctx context.Context, req AuthRequest) (*AuthResponse, error) {
	user, err := s.client.Auth.SignIn(ctx, supa.UserCredentials{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("E-posta veya şifre hatalı").
			Mark(ierr.ErrPermissionDenied)
	}

	return &AuthResponse{
		UserID:    user.User.ID,
		AuthToken: user.AccessToken,
	}, nil
}

func (s *supabaseAuth) ValidateToken(ctx context.Context, token string) (*Claims, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ierr.NewError("unexpected signing method").
				WithHintf("unexpected signing method: %v", t.Header["alg"]).
				Mark(ierr.ErrPermissionDenied)
		}
		return []byte(s.authConfig.Secret), nil
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Oturum doğrulanamadı").
			Mark(ierr.ErrPermissionDenied)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return nil, ierr.NewError("invalid token claims").
			WithHint("Oturum doğrulanamadı").
			Mark(ierr.ErrPermissionDenied)
	}

	userID, ok := claims["sub"].(string)
	if !ok {
		return nil, ierr.NewError("token missing user id").
			WithHint("Oturum doğrulanamadı").
			Mark(ierr.ErrPermissionDenied)
	}

	// The tenant binding lives in app_metadata so users cannot set it
	// through self-service profile updates.
	var tenantID string
	if appMetadata, ok := claims["app_metadata"].(map[string]interface{}); ok {
		if tid, ok := appMetadata["tenant_id"].(string); ok {
			tenantID = tid
		}
	}
	if tenantID == "" {
		tenantID = types.DefaultTenantID
	}

	return &Claims{
		UserID:   userID,
		TenantID: tenantID,
	}, nil
}

func (s *supabaseAuth) AssignUserToTenant(ctx context.Context, userID string, tenantID string) error {
	params := supa.AdminUserParams{
		AppMetadata: map[string]interface{}{
			"tenant_id": tenantID,
		},
	}

	if _, err := s.client.Admin.UpdateUser(ctx, userID, params); err != nil {
		return ierr.WithError(err).
			WithHint("Kullanıcı hesaba bağlanamadı").
			Mark(ierr.ErrSystem)
	}
	return nil
}
