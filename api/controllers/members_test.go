package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/blu-networking/blu-backend/internal/members"
	"github.com/blu-networking/blu-backend/pkg/db/models"
	"github.com/blu-networking/blu-backend/pkg/enums"
	"github.com/google/uuid"
)

type testMembersService struct {
	directoryFn     func(ctx context.Context, params members.DirectoryParams) (*members.DirectoryResult, error)
	getMemberFn     func(ctx context.Context, actorChapterID *uuid.UUID, memberID uuid.UUID) (*members.MemberView, error)
	getProfileFn    func(ctx context.Context, userID uuid.UUID) (*models.User, error)
	updateProfileFn func(ctx context.Context, userID uuid.UUID, params members.UpdateProfileParams) (*models.User, error)
	adminListFn     func(ctx context.Context, params members.AdminListParams) (*members.AdminListResult, error)
	setLevelFn      func(ctx context.Context, memberID uuid.UUID, level enums.UserLevel) error
	setActiveFn     func(ctx context.Context, memberID uuid.UUID, active bool) error
}

func (s *testMembersService) Directory(ctx context.Context, params members.DirectoryParams) (*members.DirectoryResult, error) {
	if s.directoryFn != nil {
		return s.directoryFn(ctx, params)
	}
	return &members.DirectoryResult{}, nil
}

func (s *testMembersService) GetMember(ctx context.Context, actorChapterID *uuid.UUID, memberID uuid.UUID) (*members.MemberView, error) {
	if s.getMemberFn != nil {
		return s.getMemberFn(ctx, actorChapterID, memberID)
	}
	return &members.MemberView{ID: memberID}, nil
}

func (s *testMembersService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	if s.getProfileFn != nil {
		return s.getProfileFn(ctx, userID)
	}
	return &models.User{ID: userID}, nil
}

func (s *testMembersService) UpdateProfile(ctx context.Context, userID uuid.UUID, params members.UpdateProfileParams) (*models.User, error) {
	if s.updateProfileFn != nil {
		return s.updateProfileFn(ctx, userID, params)
	}
	return &models.User{ID: userID}, nil
}

func (s *testMembersService) AdminList(ctx context.Context, params members.AdminListParams) (*members.AdminListResult, error) {
	if s.adminListFn != nil {
		return s.adminListFn(ctx, params)
	}
	return &members.AdminListResult{}, nil
}

func (s *testMembersService) SetLevel(ctx context.Context, memberID uuid.UUID, level enums.UserLevel) error {
	if s.setLevelFn != nil {
		return s.setLevelFn(ctx, memberID, level)
	}
	return nil
}

func (s *testMembersService) SetActive(ctx context.Context, memberID uuid.UUID, active bool) error {
	if s.setActiveFn != nil {
		return s.setActiveFn(ctx, memberID, active)
	}
	return nil
}

func TestMembersListScopesMembersToChapter(t *testing.T) {
	chapterID := uuid.New()
	var captured members.DirectoryParams
	svc := &testMembersService{
		directoryFn: func(ctx context.Context, params members.DirectoryParams) (*members.DirectoryResult, error) {
			captured = params
			return &members.DirectoryResult{}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/members", nil)
	req = asMember(req, uuid.New(), enums.UserLevelMember, &chapterID)
	resp := httptest.NewRecorder()

	MembersList(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	if captured.ChapterID == nil || *captured.ChapterID != chapterID {
		t.Fatal("expected member listing scoped to the caller's chapter")
	}
}

func TestMembersListBoardSeesAllChapters(t *testing.T) {
	chapterID := uuid.New()
	var captured members.DirectoryParams
	svc := &testMembersService{
		directoryFn: func(ctx context.Context, params members.DirectoryParams) (*members.DirectoryResult, error) {
			captured = params
			return &members.DirectoryResult{}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/members", nil)
	req = asMember(req, uuid.New(), enums.UserLevelBoardMember, &chapterID)
	resp := httptest.NewRecorder()

	MembersList(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	if captured.ChapterID != nil {
		t.Fatal("board listing should not be chapter scoped")
	}
}

func TestMemberGetInvalidID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/members/bogus", nil)
	req = asMember(req, uuid.New(), enums.UserLevelMember, nil)
	req = addRouteParam(req, "memberId", "bogus")
	resp := httptest.NewRecorder()

	MemberGet(&testMembersService{}, testLogger())(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestProfileUpdatePassesWhitelistedFields(t *testing.T) {
	userID := uuid.New()
	var captured members.UpdateProfileParams
	svc := &testMembersService{
		updateProfileFn: func(ctx context.Context, id uuid.UUID, params members.UpdateProfileParams) (*models.User, error) {
			if id != userID {
				t.Fatalf("unexpected user %s", id)
			}
			captured = params
			return &models.User{ID: id}, nil
		},
	}

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/profile",
		strings.NewReader(`{"full_name":"New Name","industry":"insurance"}`))
	req = asMember(req, userID, enums.UserLevelMember, nil)
	resp := httptest.NewRecorder()

	ProfileUpdate(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body.String())
	}
	if captured.FullName == nil || *captured.FullName != "New Name" {
		t.Fatal("expected full name update")
	}
	if captured.Industry == nil || *captured.Industry != "insurance" {
		t.Fatal("expected industry update")
	}
}

func TestProfileUpdateRejectsUnknownFields(t *testing.T) {
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/profile",
		strings.NewReader(`{"user_level":"executive_board"}`))
	req = asMember(req, uuid.New(), enums.UserLevelMember, nil)
	resp := httptest.NewRecorder()

	ProfileUpdate(&testMembersService{}, testLogger())(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestProfileGetReturnsEnvelope(t *testing.T) {
	userID := uuid.New()
	svc := &testMembersService{
		getProfileFn: func(ctx context.Context, id uuid.UUID) (*models.User, error) {
			return &models.User{ID: id, Email: "me@example.com"}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/profile", nil)
	req = asMember(req, userID, enums.UserLevelMember, nil)
	resp := httptest.NewRecorder()

	ProfileGet(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	var envelope struct {
		Data struct {
			Email string `json:"email"`
		} `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if envelope.Data.Email != "me@example.com" {
		t.Fatalf("unexpected email %q", envelope.Data.Email)
	}
}
