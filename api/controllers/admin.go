package controllers

import (
	"context"
	"net/http"

	"github.com/blu-networking/blu-backend/api/responses"
	"github.com/blu-networking/blu-backend/api/validators"
	"github.com/blu-networking/blu-backend/internal/members"
	"github.com/blu-networking/blu-backend/pkg/enums"
	pkgerrors "github.com/blu-networking/blu-backend/pkg/errors"
	"github.com/blu-networking/blu-backend/pkg/logger"
	"github.com/google/uuid"
)

// AdminMembersList serves full member rows, inactive accounts included.
func AdminMembersList(svc members.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.ParseQueryInt(r, "limit", 25, 1, maxDirectoryPageSize)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		params := members.AdminListParams{
			Search: validators.SanitizeString(r.URL.Query().Get("search"), 120),
			Limit:  limit,
			Cursor: r.URL.Query().Get("cursor"),
		}
		if raw := r.URL.Query().Get("chapter_id"); raw != "" {
			chapterID, err := uuid.Parse(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.New(pkgerrors.CodeValidation, "invalid chapter_id"))
				return
			}
			params.ChapterID = &chapterID
		}

		result, err := svc.AdminList(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

type memberLevelRequest struct {
	UserLevel string `json:"user_level" validate:"required"`
}

// AdminMemberSetLevel promotes or demotes a member. Executive board only.
func AdminMemberSetLevel(svc members.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		memberID, err := pathUUID(r, "memberId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload memberLevelRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.SetLevel(r.Context(), memberID, enums.UserLevel(payload.UserLevel)); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "updated"})
	}
}

type memberActiveRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}

// AdminMemberSetActive activates or deactivates an account.
func AdminMemberSetActive(svc members.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		memberID, err := pathUUID(r, "memberId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload memberActiveRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.SetActive(r.Context(), memberID, *payload.IsActive); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "updated"})
	}
}

// reminderRunner sweeps pending reminder emails. Nil means no mail provider
// is wired.
type reminderRunner interface {
	RemindUpcomingEvents(ctx context.Context) error
	RemindLeadFollowUps(ctx context.Context) error
}

// AdminRunReminders triggers the reminder sweep. External schedulers hit this
// endpoint on a periodic tick.
func AdminRunReminders(runner reminderRunner, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if runner == nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeDependency, "reminders are not configured"))
			return
		}

		if err := runner.RemindUpcomingEvents(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := runner.RemindLeadFollowUps(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "reminders_sent"})
	}
}
