package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/blu-networking/blu-backend/internal/members"
	"github.com/blu-networking/blu-backend/pkg/enums"
	pkgerrors "github.com/blu-networking/blu-backend/pkg/errors"
	"github.com/google/uuid"
)

func TestAdminMemberSetLevel(t *testing.T) {
	memberID := uuid.New()
	var gotLevel enums.UserLevel
	svc := &testMembersService{
		setLevelFn: func(ctx context.Context, id uuid.UUID, level enums.UserLevel) error {
			if id != memberID {
				t.Fatalf("unexpected member %s", id)
			}
			gotLevel = level
			return nil
		},
	}

	req := httptest.NewRequest(http.MethodPatch, "/api/admin/v1/members/"+memberID.String()+"/level",
		strings.NewReader(`{"user_level":"board_member"}`))
	req = addRouteParam(req, "memberId", memberID.String())
	resp := httptest.NewRecorder()

	AdminMemberSetLevel(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body.String())
	}
	if gotLevel != enums.UserLevelBoardMember {
		t.Fatalf("unexpected level %s", gotLevel)
	}
}

func TestAdminMemberSetLevelInvalid(t *testing.T) {
	svc := &testMembersService{
		setLevelFn: func(ctx context.Context, id uuid.UUID, level enums.UserLevel) error {
			return pkgerrors.New(pkgerrors.CodeValidation, "invalid user level")
		},
	}

	req := httptest.NewRequest(http.MethodPatch, "/api/admin/v1/members/"+uuid.NewString()+"/level",
		strings.NewReader(`{"user_level":"supreme_leader"}`))
	req = addRouteParam(req, "memberId", uuid.NewString())
	resp := httptest.NewRecorder()

	AdminMemberSetLevel(svc, testLogger())(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestAdminMemberSetActive(t *testing.T) {
	memberID := uuid.New()
	var gotActive *bool
	svc := &testMembersService{
		setActiveFn: func(ctx context.Context, id uuid.UUID, active bool) error {
			gotActive = &active
			return nil
		},
	}

	req := httptest.NewRequest(http.MethodPatch, "/api/admin/v1/members/"+memberID.String()+"/active",
		strings.NewReader(`{"is_active":false}`))
	req = addRouteParam(req, "memberId", memberID.String())
	resp := httptest.NewRecorder()

	AdminMemberSetActive(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body.String())
	}
	if gotActive == nil || *gotActive {
		t.Fatal("expected deactivation to reach the service")
	}
}

func TestAdminMembersListRejectsBadChapterFilter(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/members?chapter_id=nope", nil)
	resp := httptest.NewRecorder()

	AdminMembersList(&testMembersService{}, testLogger())(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestAdminMembersListPassesFilters(t *testing.T) {
	chapterID := uuid.New()
	var captured members.AdminListParams
	svc := &testMembersService{
		adminListFn: func(ctx context.Context, params members.AdminListParams) (*members.AdminListResult, error) {
			captured = params
			return &members.AdminListResult{}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet,
		"/api/admin/v1/members?chapter_id="+chapterID.String()+"&search=smith", nil)
	resp := httptest.NewRecorder()

	AdminMembersList(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	if captured.ChapterID == nil || *captured.ChapterID != chapterID {
		t.Fatal("expected chapter filter")
	}
	if captured.Search != "smith" {
		t.Fatalf("unexpected search %q", captured.Search)
	}
}

type testReminderRunner struct {
	events    int
	followUps int
}

func (r *testReminderRunner) RemindUpcomingEvents(ctx context.Context) error {
	r.events++
	return nil
}

func (r *testReminderRunner) RemindLeadFollowUps(ctx context.Context) error {
	r.followUps++
	return nil
}

func TestAdminRunRemindersSweepsBothKinds(t *testing.T) {
	runner := &testReminderRunner{}
	req := httptest.NewRequest(http.MethodPost, "/api/admin/v1/reminders/run", nil)
	resp := httptest.NewRecorder()

	AdminRunReminders(runner, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body.String())
	}
	if runner.events != 1 || runner.followUps != 1 {
		t.Fatalf("expected one sweep of each, got events=%d followUps=%d", runner.events, runner.followUps)
	}
}

func TestAdminRunRemindersUnconfigured(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/admin/v1/reminders/run", nil)
	resp := httptest.NewRecorder()

	AdminRunReminders(nil, testLogger())(resp, req)

	if resp.Code == http.StatusOK {
		t.Fatal("expected an error without a configured runner")
	}
}
