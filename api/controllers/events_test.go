package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/blu-networking/blu-backend/internal/events"
	"github.com/blu-networking/blu-backend/pkg/db/models"
	"github.com/blu-networking/blu-backend/pkg/enums"
	pkgerrors "github.com/blu-networking/blu-backend/pkg/errors"
	"github.com/google/uuid"
)

type testEventsService struct {
	createFn        func(ctx context.Context, params events.CreateParams) (*models.Event, error)
	getFn           func(ctx context.Context, id uuid.UUID) (*events.EventView, error)
	listFn          func(ctx context.Context, params events.ListParams) ([]events.EventView, error)
	updateFn        func(ctx context.Context, id uuid.UUID, params events.UpdateParams) (*models.Event, error)
	deleteFn        func(ctx context.Context, id uuid.UUID) error
	registerFn      func(ctx context.Context, eventID, userID uuid.UUID) (*models.EventRegistration, error)
	cancelFn        func(ctx context.Context, eventID, userID uuid.UUID) error
	listRegsFn      func(ctx context.Context, eventID uuid.UUID) ([]models.EventRegistration, error)
	listUserRegsFn  func(ctx context.Context, userID uuid.UUID) ([]models.EventRegistration, error)
	checkInFn       func(ctx context.Context, eventID, userID uuid.UUID) error
}

func (s *testEventsService) Create(ctx context.Context, params events.CreateParams) (*models.Event, error) {
	if s.createFn != nil {
		return s.createFn(ctx, params)
	}
	return &models.Event{}, nil
}

func (s *testEventsService) Get(ctx context.Context, id uuid.UUID) (*events.EventView, error) {
	if s.getFn != nil {
		return s.getFn(ctx, id)
	}
	return &events.EventView{}, nil
}

func (s *testEventsService) List(ctx context.Context, params events.ListParams) ([]events.EventView, error) {
	if s.listFn != nil {
		return s.listFn(ctx, params)
	}
	return nil, nil
}

func (s *testEventsService) Update(ctx context.Context, id uuid.UUID, params events.UpdateParams) (*models.Event, error) {
	if s.updateFn != nil {
		return s.updateFn(ctx, id, params)
	}
	return &models.Event{}, nil
}

func (s *testEventsService) Delete(ctx context.Context, id uuid.UUID) error {
	if s.deleteFn != nil {
		return s.deleteFn(ctx, id)
	}
	return nil
}

func (s *testEventsService) Register(ctx context.Context, eventID, userID uuid.UUID) (*models.EventRegistration, error) {
	if s.registerFn != nil {
		return s.registerFn(ctx, eventID, userID)
	}
	return &models.EventRegistration{EventID: eventID, UserID: userID}, nil
}

func (s *testEventsService) CancelRegistration(ctx context.Context, eventID, userID uuid.UUID) error {
	if s.cancelFn != nil {
		return s.cancelFn(ctx, eventID, userID)
	}
	return nil
}

func (s *testEventsService) ListRegistrations(ctx context.Context, eventID uuid.UUID) ([]models.EventRegistration, error) {
	if s.listRegsFn != nil {
		return s.listRegsFn(ctx, eventID)
	}
	return nil, nil
}

func (s *testEventsService) ListUserRegistrations(ctx context.Context, userID uuid.UUID) ([]models.EventRegistration, error) {
	if s.listUserRegsFn != nil {
		return s.listUserRegsFn(ctx, userID)
	}
	return nil, nil
}

func (s *testEventsService) CheckIn(ctx context.Context, eventID, userID uuid.UUID) error {
	if s.checkInFn != nil {
		return s.checkInFn(ctx, eventID, userID)
	}
	return nil
}

type testNotifier struct {
	confirmed []uuid.UUID
}

func (n *testNotifier) RegistrationConfirmed(user *models.User, event *models.Event) {
	n.confirmed = append(n.confirmed, user.ID)
}

func errorMessage(t *testing.T, body []byte) string {
	t.Helper()
	var envelope struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		t.Fatalf("unmarshal error envelope: %v", err)
	}
	return envelope.Error.Message
}

func TestEventRegisterBooksAndNotifies(t *testing.T) {
	userID := uuid.New()
	eventID := uuid.New()
	svc := &testEventsService{
		registerFn: func(ctx context.Context, eid, uid uuid.UUID) (*models.EventRegistration, error) {
			if eid != eventID || uid != userID {
				t.Fatalf("unexpected registration %s/%s", eid, uid)
			}
			return &models.EventRegistration{EventID: eid, UserID: uid}, nil
		},
	}
	memberSvc := &testMembersService{
		getProfileFn: func(ctx context.Context, id uuid.UUID) (*models.User, error) {
			return &models.User{ID: id, Email: "member@example.com"}, nil
		},
	}
	notifier := &testNotifier{}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/event-registrations",
		strings.NewReader(`{"event_id":"`+eventID.String()+`"}`))
	req = asMember(req, userID, enums.UserLevelMember, nil)
	resp := httptest.NewRecorder()

	EventRegister(svc, memberSvc, notifier, testLogger())(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body.String())
	}
	if len(notifier.confirmed) != 1 || notifier.confirmed[0] != userID {
		t.Fatalf("expected confirmation for %s, got %v", userID, notifier.confirmed)
	}
}

func TestEventRegisterDuplicate(t *testing.T) {
	svc := &testEventsService{
		registerFn: func(ctx context.Context, eventID, userID uuid.UUID) (*models.EventRegistration, error) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "Already registered for this event")
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/event-registrations",
		strings.NewReader(`{"event_id":"`+uuid.NewString()+`"}`))
	req = asMember(req, uuid.New(), enums.UserLevelMember, nil)
	resp := httptest.NewRecorder()

	EventRegister(svc, &testMembersService{}, nil, testLogger())(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
	if msg := errorMessage(t, resp.Body.Bytes()); msg != "Already registered for this event" {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestEventRegisterFullCapacity(t *testing.T) {
	svc := &testEventsService{
		registerFn: func(ctx context.Context, eventID, userID uuid.UUID) (*models.EventRegistration, error) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "Event is at full capacity")
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/event-registrations",
		strings.NewReader(`{"event_id":"`+uuid.NewString()+`"}`))
	req = asMember(req, uuid.New(), enums.UserLevelMember, nil)
	resp := httptest.NewRecorder()

	EventRegister(svc, &testMembersService{}, nil, testLogger())(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
	if msg := errorMessage(t, resp.Body.Bytes()); msg != "Event is at full capacity" {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestEventsListPassesViewerAndChapter(t *testing.T) {
	userID := uuid.New()
	chapterID := uuid.New()
	var captured events.ListParams
	svc := &testEventsService{
		listFn: func(ctx context.Context, params events.ListParams) ([]events.EventView, error) {
			captured = params
			return []events.EventView{}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/events?scope=upcoming", nil)
	req = asMember(req, userID, enums.UserLevelMember, &chapterID)
	resp := httptest.NewRecorder()

	EventsList(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	if captured.ViewerID == nil || *captured.ViewerID != userID {
		t.Fatal("expected viewer id on list params")
	}
	if captured.ChapterID == nil || *captured.ChapterID != chapterID {
		t.Fatal("expected chapter scope on list params")
	}
	if !captured.UpcomingOnly {
		t.Fatal("expected upcoming scope")
	}
}

func TestEventCheckInRejectsBadUserID(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/events/"+uuid.NewString()+"/check-in",
		strings.NewReader(`{"user_id":"not-a-uuid"}`))
	req = addRouteParam(req, "eventId", uuid.NewString())
	resp := httptest.NewRecorder()

	EventCheckIn(&testEventsService{}, testLogger())(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestEventCreateRequiresActor(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/events",
		strings.NewReader(`{"title":"Lunch","starts_at":"2026-09-01T12:00:00Z"}`))
	resp := httptest.NewRecorder()

	EventCreate(&testEventsService{}, testLogger())(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}
