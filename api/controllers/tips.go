package controllers

import (
	"net/http"

	"github.com/blu-networking/blu-backend/api/responses"
	"github.com/blu-networking/blu-backend/api/validators"
	"github.com/blu-networking/blu-backend/internal/members"
	"github.com/blu-networking/blu-backend/internal/tips"
	pkgerrors "github.com/blu-networking/blu-backend/pkg/errors"
	"github.com/blu-networking/blu-backend/pkg/logger"
)

type tipsRequest struct {
	Industry  string `json:"industry,omitempty" validate:"omitempty,max=120"`
	Goal      string `json:"goal,omitempty" validate:"omitempty,max=300"`
	EventType string `json:"event_type,omitempty" validate:"omitempty,max=120"`
}

// NetworkingTips generates personalized conversation starters from the
// caller's profile. Request fields override what the profile says. A nil
// service means no provider is configured.
func NetworkingTips(svc tips.Service, memberSvc members.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeDependency, "tip generation is not configured"))
			return
		}

		userID, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload tipsRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		profile, err := memberSvc.GetProfile(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Generate(r.Context(), tips.GenerateParams{
			Profile:   profile,
			Industry:  payload.Industry,
			Goal:      payload.Goal,
			EventType: payload.EventType,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}
