package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/blu-networking/blu-backend/pkg/enums"
	"github.com/blu-networking/blu-backend/pkg/logger"
	"github.com/rs/zerolog"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{Level: zerolog.ErrorLevel, Output: io.Discard})
}

func TestRequireLevelAllowsEqualAndHigher(t *testing.T) {
	cases := []struct {
		name    string
		actor   enums.UserLevel
		minimum enums.UserLevel
		status  int
	}{
		{"member hits member route", enums.UserLevelMember, enums.UserLevelMember, http.StatusOK},
		{"member blocked from board route", enums.UserLevelMember, enums.UserLevelBoardMember, http.StatusForbidden},
		{"board member hits board route", enums.UserLevelBoardMember, enums.UserLevelBoardMember, http.StatusOK},
		{"board member blocked from executive route", enums.UserLevelBoardMember, enums.UserLevelExecutiveBoard, http.StatusForbidden},
		{"executive hits member route", enums.UserLevelExecutiveBoard, enums.UserLevelMember, http.StatusOK},
		{"executive hits executive route", enums.UserLevelExecutiveBoard, enums.UserLevelExecutiveBoard, http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			handler := RequireLevel(tc.minimum, testLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
			req = req.WithContext(WithUserLevel(req.Context(), tc.actor))
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			if w.Code != tc.status {
				t.Fatalf("expected status %d, got %d", tc.status, w.Code)
			}
		})
	}
}

func TestRequireLevelRejectsAnonymous(t *testing.T) {
	handler := RequireLevel(enums.UserLevelMember, testLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", w.Code)
	}
}

func TestRequireLevelRejectsUnknownLevel(t *testing.T) {
	handler := RequireLevel(enums.UserLevelMember, testLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req = req.WithContext(WithUserLevel(req.Context(), enums.UserLevel("superuser")))
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", w.Code)
	}
}
