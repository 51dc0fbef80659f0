package controllers

import (
	"net/http"
	"time"

	"github.com/blu-networking/blu-backend/api/responses"
	"github.com/blu-networking/blu-backend/api/validators"
	"github.com/blu-networking/blu-backend/internal/goals"
	"github.com/blu-networking/blu-backend/pkg/enums"
	"github.com/blu-networking/blu-backend/pkg/logger"
)

// GoalCurrent serves the caller's active goal with progress percentages.
func GoalCurrent(svc goals.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		progress, err := svc.Current(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, progress)
	}
}

// GoalsList serves the caller's goal history.
func GoalsList(svc goals.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rows, err := svc.List(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

type goalUpsertRequest struct {
	Period          string    `json:"period" validate:"required"`
	StartsOn        time.Time `json:"starts_on" validate:"required"`
	EndsOn          time.Time `json:"ends_on" validate:"required"`
	TargetReferrals int       `json:"target_referrals" validate:"min=0"`
	TargetOneToOnes int       `json:"target_one_to_ones" validate:"min=0"`
	TargetEvents    int       `json:"target_events" validate:"min=0"`
	TargetLeads     int       `json:"target_leads" validate:"min=0"`
}

// GoalUpsert sets the caller's goal for the covering period. Targets on an
// existing active goal are replaced; achieved counters are never reset.
func GoalUpsert(svc goals.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload goalUpsertRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		goal, err := svc.Upsert(r.Context(), goals.CreateParams{
			UserID:          userID,
			Period:          enums.GoalPeriod(payload.Period),
			StartsOn:        payload.StartsOn,
			EndsOn:          payload.EndsOn,
			TargetReferrals: payload.TargetReferrals,
			TargetOneToOnes: payload.TargetOneToOnes,
			TargetEvents:    payload.TargetEvents,
			TargetLeads:     payload.TargetLeads,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, goal)
	}
}

type goalProgressRequest struct {
	TargetReferrals   *int       `json:"target_referrals,omitempty"`
	AchievedReferrals *int       `json:"achieved_referrals,omitempty"`
	TargetOneToOnes   *int       `json:"target_one_to_ones,omitempty"`
	AchievedOneToOnes *int       `json:"achieved_one_to_ones,omitempty"`
	TargetEvents      *int       `json:"target_events,omitempty"`
	AchievedEvents    *int       `json:"achieved_events,omitempty"`
	TargetLeads       *int       `json:"target_leads,omitempty"`
	AchievedLeads     *int       `json:"achieved_leads,omitempty"`
	EndsOn            *time.Time `json:"ends_on,omitempty"`
}

// GoalUpdate edits a single goal's counters, typically logging progress.
func GoalUpdate(svc goals.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		goalID, err := pathUUID(r, "goalId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload goalProgressRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		goal, err := svc.Update(r.Context(), userID, goalID, goals.UpdateParams{
			TargetReferrals:   payload.TargetReferrals,
			AchievedReferrals: payload.AchievedReferrals,
			TargetOneToOnes:   payload.TargetOneToOnes,
			AchievedOneToOnes: payload.AchievedOneToOnes,
			TargetEvents:      payload.TargetEvents,
			AchievedEvents:    payload.AchievedEvents,
			TargetLeads:       payload.TargetLeads,
			AchievedLeads:     payload.AchievedLeads,
			EndsOn:            payload.EndsOn,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, goal)
	}
}

func GoalDelete(svc goals.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		goalID, err := pathUUID(r, "goalId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), userID, goalID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
