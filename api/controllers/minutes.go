package controllers

import (
	"net/http"
	"time"

	"github.com/blu-networking/blu-backend/api/middleware"
	"github.com/blu-networking/blu-backend/api/responses"
	"github.com/blu-networking/blu-backend/api/validators"
	"github.com/blu-networking/blu-backend/internal/minutes"
	"github.com/blu-networking/blu-backend/pkg/logger"
)

// MinutesList serves meeting minutes. Members only see published records;
// board members and above also see drafts.
func MinutesList(svc minutes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.ParseQueryInt(r, "limit", 25, 1, 100)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		offset, err := validators.ParseQueryInt(r, "offset", 0, 0, 10000)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rows, err := svc.List(r.Context(), minutes.ListParams{
			ActorLevel: middleware.UserLevelFromContext(r.Context()),
			ChapterID:  actorChapterID(r),
			Limit:      limit,
			Offset:     offset,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

func MinutesGet(svc minutes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		minutesID, err := pathUUID(r, "minutesId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.Get(r.Context(), middleware.UserLevelFromContext(r.Context()), minutesID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, record)
	}
}

type minutesCreateRequest struct {
	Title         string     `json:"title" validate:"required,min=1"`
	MeetingDate   time.Time  `json:"meeting_date" validate:"required"`
	Attendees     []string   `json:"attendees,omitempty"`
	Agenda        *string    `json:"agenda,omitempty"`
	Minutes       *string    `json:"minutes,omitempty"`
	ActionItems   []string   `json:"action_items,omitempty"`
	NextMeetingOn *time.Time `json:"next_meeting_on,omitempty"`
}

// MinutesCreate records a board meeting. New records start as drafts.
func MinutesCreate(svc minutes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authorID, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload minutesCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.Create(r.Context(), minutes.CreateParams{
			ChapterID:     actorChapterID(r),
			Title:         payload.Title,
			MeetingDate:   payload.MeetingDate,
			Attendees:     payload.Attendees,
			Agenda:        payload.Agenda,
			Minutes:       payload.Minutes,
			ActionItems:   payload.ActionItems,
			NextMeetingOn: payload.NextMeetingOn,
			CreatedBy:     authorID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, record)
	}
}

type minutesUpdateRequest struct {
	Title         *string    `json:"title,omitempty" validate:"omitempty,min=1"`
	MeetingDate   *time.Time `json:"meeting_date,omitempty"`
	Attendees     []string   `json:"attendees,omitempty"`
	Agenda        *string    `json:"agenda,omitempty"`
	Minutes       *string    `json:"minutes,omitempty"`
	ActionItems   []string   `json:"action_items,omitempty"`
	NextMeetingOn *time.Time `json:"next_meeting_on,omitempty"`
}

func MinutesUpdate(svc minutes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		minutesID, err := pathUUID(r, "minutesId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload minutesUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.Update(r.Context(), minutesID, minutes.UpdateParams{
			Title:         payload.Title,
			MeetingDate:   payload.MeetingDate,
			Attendees:     payload.Attendees,
			Agenda:        payload.Agenda,
			Minutes:       payload.Minutes,
			ActionItems:   payload.ActionItems,
			NextMeetingOn: payload.NextMeetingOn,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, record)
	}
}

// MinutesPublish makes a draft visible to the whole membership.
func MinutesPublish(svc minutes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		minutesID, err := pathUUID(r, "minutesId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.Publish(r.Context(), minutesID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, record)
	}
}

func MinutesDelete(svc minutes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		minutesID, err := pathUUID(r, "minutesId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), minutesID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
