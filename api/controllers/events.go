package controllers

import (
	"net/http"
	"time"

	"github.com/blu-networking/blu-backend/api/responses"
	"github.com/blu-networking/blu-backend/api/validators"
	"github.com/blu-networking/blu-backend/internal/events"
	"github.com/blu-networking/blu-backend/internal/members"
	"github.com/blu-networking/blu-backend/pkg/db/models"
	"github.com/blu-networking/blu-backend/pkg/logger"
	"github.com/google/uuid"
)

const maxEventPageSize = 100

// registrationNotifier confirms a booking out of band. A nil notifier
// disables the email without touching the booking path.
type registrationNotifier interface {
	RegistrationConfirmed(user *models.User, event *models.Event)
}

// EventsList serves events with the caller's registration state on each row.
func EventsList(svc events.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.ParseQueryInt(r, "limit", 25, 1, maxEventPageSize)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		offset, err := validators.ParseQueryInt(r, "offset", 0, 0, 10000)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		params := events.ListParams{
			ChapterID:    actorChapterID(r),
			UpcomingOnly: r.URL.Query().Get("scope") == "upcoming",
			PastOnly:     r.URL.Query().Get("scope") == "past",
			Limit:        limit,
			Offset:       offset,
		}
		if viewerID, err := actorID(r); err == nil {
			params.ViewerID = &viewerID
		}

		rows, err := svc.List(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

func EventGet(svc events.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		eventID, err := pathUUID(r, "eventId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.Get(r.Context(), eventID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

type eventCreateRequest struct {
	Title       string     `json:"title" validate:"required,min=1"`
	Description *string    `json:"description,omitempty"`
	StartsAt    time.Time  `json:"starts_at" validate:"required"`
	EndsAt      *time.Time `json:"ends_at,omitempty"`
	Location    *string    `json:"location,omitempty"`
	Capacity    *int       `json:"capacity,omitempty" validate:"omitempty,min=0"`
	ChapterID   *string    `json:"chapter_id,omitempty" validate:"omitempty,uuid"`
}

// EventCreate books a new event into the calendar. Board members and above.
func EventCreate(svc events.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		creatorID, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload eventCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		params := events.CreateParams{
			Title:       payload.Title,
			Description: payload.Description,
			StartsAt:    payload.StartsAt,
			EndsAt:      payload.EndsAt,
			Location:    payload.Location,
			Capacity:    payload.Capacity,
			CreatedBy:   creatorID,
		}
		if payload.ChapterID != nil {
			chapterID, err := uuid.Parse(*payload.ChapterID)
			if err == nil {
				params.ChapterID = &chapterID
			}
		} else {
			params.ChapterID = actorChapterID(r)
		}

		event, err := svc.Create(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, event)
	}
}

type eventUpdateRequest struct {
	Title       *string    `json:"title,omitempty" validate:"omitempty,min=1"`
	Description *string    `json:"description,omitempty"`
	StartsAt    *time.Time `json:"starts_at,omitempty"`
	EndsAt      *time.Time `json:"ends_at,omitempty"`
	Location    *string    `json:"location,omitempty"`
	Capacity    *int       `json:"capacity,omitempty" validate:"omitempty,min=0"`
}

func EventUpdate(svc events.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		eventID, err := pathUUID(r, "eventId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload eventUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		event, err := svc.Update(r.Context(), eventID, events.UpdateParams{
			Title:       payload.Title,
			Description: payload.Description,
			StartsAt:    payload.StartsAt,
			EndsAt:      payload.EndsAt,
			Location:    payload.Location,
			Capacity:    payload.Capacity,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, event)
	}
}

func EventDelete(svc events.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		eventID, err := pathUUID(r, "eventId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), eventID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

type eventRegisterRequest struct {
	EventID string `json:"event_id" validate:"required,uuid"`
}

// EventRegister books the caller into an event and fires the confirmation
// email once the booking is durable.
func EventRegister(svc events.Service, memberSvc members.Service, notifier registrationNotifier, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload eventRegisterRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		eventID, err := uuid.Parse(payload.EventID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		registration, err := svc.Register(r.Context(), eventID, userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if notifier != nil {
			if view, err := svc.Get(r.Context(), eventID); err == nil {
				if profile, err := memberSvc.GetProfile(r.Context(), userID); err == nil {
					notifier.RegistrationConfirmed(profile, &view.Event)
				}
			}
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, registration)
	}
}

// RegistrationCancel frees the caller's spot.
func RegistrationCancel(svc events.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		eventID, err := pathUUID(r, "eventId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.CancelRegistration(r.Context(), eventID, userID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "cancelled"})
	}
}

// MyRegistrations lists the caller's bookings.
func MyRegistrations(svc events.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rows, err := svc.ListUserRegistrations(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

// EventRegistrations lists every booking on an event for board views.
func EventRegistrations(svc events.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		eventID, err := pathUUID(r, "eventId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rows, err := svc.ListRegistrations(r.Context(), eventID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

type eventCheckInRequest struct {
	UserID string `json:"user_id" validate:"required,uuid"`
}

// EventCheckIn marks a registrant as attended at the door.
func EventCheckIn(svc events.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		eventID, err := pathUUID(r, "eventId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload eventCheckInRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		userID, err := uuid.Parse(payload.UserID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.CheckIn(r.Context(), eventID, userID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "checked_in"})
	}
}
