package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/blu-networking/blu-backend/internal/tips"
	"github.com/blu-networking/blu-backend/pkg/db/models"
	"github.com/blu-networking/blu-backend/pkg/enums"
	"github.com/google/uuid"
)

type testTipsService struct {
	generateFn func(ctx context.Context, params tips.GenerateParams) (*tips.TipsResult, error)
}

func (s *testTipsService) Generate(ctx context.Context, params tips.GenerateParams) (*tips.TipsResult, error) {
	if s.generateFn != nil {
		return s.generateFn(ctx, params)
	}
	return &tips.TipsResult{}, nil
}

func TestNetworkingTipsLoadsProfileAndOverrides(t *testing.T) {
	userID := uuid.New()
	industry := "insurance"
	memberSvc := &testMembersService{
		getProfileFn: func(ctx context.Context, id uuid.UUID) (*models.User, error) {
			return &models.User{ID: id, Industry: &industry}, nil
		},
	}
	var captured tips.GenerateParams
	svc := &testTipsService{
		generateFn: func(ctx context.Context, params tips.GenerateParams) (*tips.TipsResult, error) {
			captured = params
			return &tips.TipsResult{Summary: "go talk to people"}, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/networking-tips",
		strings.NewReader(`{"industry":"banking","event_type":"mixer"}`))
	req = asMember(req, userID, enums.UserLevelMember, nil)
	resp := httptest.NewRecorder()

	NetworkingTips(svc, memberSvc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body.String())
	}
	if captured.Profile == nil || captured.Profile.ID != userID {
		t.Fatal("expected the stored profile to reach generation")
	}
	if captured.Industry != "banking" {
		t.Fatalf("unexpected industry override %q", captured.Industry)
	}
	if captured.EventType != "mixer" {
		t.Fatalf("unexpected event type %q", captured.EventType)
	}
}

func TestNetworkingTipsUnconfiguredProvider(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/networking-tips", strings.NewReader(`{}`))
	req = asMember(req, uuid.New(), enums.UserLevelMember, nil)
	resp := httptest.NewRecorder()

	NetworkingTips(nil, &testMembersService{}, testLogger())(resp, req)

	if resp.Code == http.StatusOK {
		t.Fatal("expected an error when no provider is configured")
	}
}
