package controllers

import (
	"net/http"
	"time"

	"github.com/blu-networking/blu-backend/api/responses"
	"github.com/blu-networking/blu-backend/api/validators"
	"github.com/blu-networking/blu-backend/internal/members"
	"github.com/blu-networking/blu-backend/internal/spotlights"
	"github.com/blu-networking/blu-backend/pkg/db/models"
	pkgerrors "github.com/blu-networking/blu-backend/pkg/errors"
	"github.com/blu-networking/blu-backend/pkg/logger"
	"github.com/google/uuid"
)

// spotlightNotifier congratulates the featured member out of band. Nil
// disables the email.
type spotlightNotifier interface {
	SpotlightFeatured(user *models.User, spotlight *models.MemberSpotlight)
}

// SpotlightCurrent serves the featured member. No active spotlight is not an
// error for the home screen, so it comes back as empty data.
func SpotlightCurrent(svc spotlights.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, err := svc.Current(r.Context())
		if err != nil {
			if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeNotFound {
				responses.WriteSuccess(w, nil)
				return
			}
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

// SpotlightsList serves the rotation history for board management screens.
func SpotlightsList(svc spotlights.Service, logg *logger.Logger) http.HandlerFunc {
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

		rows, err := svc.List(r.Context(), limit, offset)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

type spotlightCreateRequest struct {
	UserID        string     `json:"user_id" validate:"required,uuid"`
	Description   string     `json:"description" validate:"required,min=1"`
	Achievements  *string    `json:"achievements,omitempty"`
	FeaturedUntil *time.Time `json:"featured_until,omitempty"`
}

// SpotlightCreate adds a member to the rotation and notifies them once the
// entry is durable.
func SpotlightCreate(svc spotlights.Service, memberSvc members.Service, notifier spotlightNotifier, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload spotlightCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		userID, err := uuid.Parse(payload.UserID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		spotlight, err := svc.Create(r.Context(), spotlights.CreateParams{
			UserID:        userID,
			Description:   payload.Description,
			Achievements:  payload.Achievements,
			FeaturedUntil: payload.FeaturedUntil,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if notifier != nil {
			if profile, err := memberSvc.GetProfile(r.Context(), userID); err == nil {
				notifier.SpotlightFeatured(profile, spotlight)
			}
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, spotlight)
	}
}

type spotlightUpdateRequest struct {
	Description   *string    `json:"description,omitempty" validate:"omitempty,min=1"`
	Achievements  *string    `json:"achievements,omitempty"`
	Active        *bool      `json:"active,omitempty"`
	FeaturedUntil *time.Time `json:"featured_until,omitempty"`
}

func SpotlightUpdate(svc spotlights.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		spotlightID, err := pathUUID(r, "spotlightId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload spotlightUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		spotlight, err := svc.Update(r.Context(), spotlightID, spotlights.UpdateParams{
			Description:   payload.Description,
			Achievements:  payload.Achievements,
			Active:        payload.Active,
			FeaturedUntil: payload.FeaturedUntil,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, spotlight)
	}
}

func SpotlightDelete(svc spotlights.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		spotlightID, err := pathUUID(r, "spotlightId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), spotlightID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
