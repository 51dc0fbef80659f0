package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/blu-networking/blu-backend/internal/auth"
	pkgauth "github.com/blu-networking/blu-backend/pkg/auth"
	"github.com/blu-networking/blu-backend/pkg/config"
	"github.com/blu-networking/blu-backend/pkg/db/models"
	"github.com/blu-networking/blu-backend/pkg/enums"
	pkgerrors "github.com/blu-networking/blu-backend/pkg/errors"
	"github.com/google/uuid"
)

type testAuthService struct {
	registerFn func(ctx context.Context, req auth.RegisterRequest) (*auth.AuthResponse, error)
	loginFn    func(ctx context.Context, req auth.LoginRequest) (*auth.AuthResponse, error)
	refreshFn  func(ctx context.Context, req auth.RefreshRequest) (*auth.AuthResponse, error)
	logoutFn   func(ctx context.Context, accessID string) error
}

func (s *testAuthService) Register(ctx context.Context, req auth.RegisterRequest) (*auth.AuthResponse, error) {
	if s.registerFn != nil {
		return s.registerFn(ctx, req)
	}
	return &auth.AuthResponse{}, nil
}

func (s *testAuthService) Login(ctx context.Context, req auth.LoginRequest) (*auth.AuthResponse, error) {
	if s.loginFn != nil {
		return s.loginFn(ctx, req)
	}
	return &auth.AuthResponse{}, nil
}

func (s *testAuthService) Refresh(ctx context.Context, req auth.RefreshRequest) (*auth.AuthResponse, error) {
	if s.refreshFn != nil {
		return s.refreshFn(ctx, req)
	}
	return &auth.AuthResponse{}, nil
}

func (s *testAuthService) Logout(ctx context.Context, accessID string) error {
	if s.logoutFn != nil {
		return s.logoutFn(ctx, accessID)
	}
	return nil
}

func TestAuthRegisterCreated(t *testing.T) {
	svc := &testAuthService{
		registerFn: func(ctx context.Context, req auth.RegisterRequest) (*auth.AuthResponse, error) {
			if req.Email != "new@example.com" {
				t.Fatalf("unexpected email %q", req.Email)
			}
			return &auth.AuthResponse{AccessToken: "a", RefreshToken: "r", User: &models.User{Email: req.Email}}, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register",
		strings.NewReader(`{"email":"new@example.com","password":"long enough pw","full_name":"New Member"}`))
	resp := httptest.NewRecorder()

	AuthRegister(svc, testLogger())(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestAuthRegisterRejectsMalformedBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register",
		strings.NewReader(`{"email":"missing-everything"`))
	resp := httptest.NewRecorder()

	AuthRegister(&testAuthService{}, testLogger())(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestAuthLoginUnauthorized(t *testing.T) {
	svc := &testAuthService{
		loginFn: func(ctx context.Context, req auth.LoginRequest) (*auth.AuthResponse, error) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login",
		strings.NewReader(`{"email":"member@example.com","password":"wrong"}`))
	resp := httptest.NewRecorder()

	AuthLogin(svc, testLogger())(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
	if msg := errorMessage(t, resp.Body.Bytes()); msg != "invalid credentials" {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestAuthLogoutRevokesTokenSession(t *testing.T) {
	jwtCfg := config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "blu-networking",
		ExpirationMinutes: 30,
	}
	accessID := uuid.NewString()
	token, err := pkgauth.MintAccessToken(jwtCfg, time.Now(), pkgauth.AccessTokenPayload{
		UserID: uuid.New(),
		Level:  enums.UserLevelMember,
		JTI:    accessID,
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	var revoked string
	svc := &testAuthService{
		logoutFn: func(ctx context.Context, id string) error {
			revoked = id
			return nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()

	AuthLogout(svc, jwtCfg, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body.String())
	}
	if revoked != accessID {
		t.Fatalf("expected session %s revoked, got %q", accessID, revoked)
	}
}

func TestAuthLogoutMissingToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	resp := httptest.NewRecorder()

	AuthLogout(&testAuthService{}, config.JWTConfig{Secret: "test-secret"}, testLogger())(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}
