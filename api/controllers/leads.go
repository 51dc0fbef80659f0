package controllers

import (
	"net/http"
	"time"

	"github.com/blu-networking/blu-backend/api/responses"
	"github.com/blu-networking/blu-backend/api/validators"
	"github.com/blu-networking/blu-backend/internal/leads"
	"github.com/blu-networking/blu-backend/pkg/enums"
	"github.com/blu-networking/blu-backend/pkg/logger"
)

const maxLeadPageSize = 100

type leadCreateRequest struct {
	Name       string     `json:"name" validate:"required,min=1"`
	Company    *string    `json:"company,omitempty"`
	Email      *string    `json:"email,omitempty" validate:"omitempty,email"`
	Phone      *string    `json:"phone,omitempty"`
	Notes      *string    `json:"notes,omitempty"`
	Type       string     `json:"type" validate:"required"`
	Status     string     `json:"status,omitempty"`
	ValueCents int64      `json:"value_cents,omitempty" validate:"omitempty,min=0"`
	FollowUpOn *time.Time `json:"follow_up_on,omitempty"`
}

// LeadCreate records a new lead in the caller's pipeline.
func LeadCreate(svc leads.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload leadCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		lead, err := svc.Create(r.Context(), leads.CreateParams{
			UserID:     userID,
			Name:       payload.Name,
			Company:    payload.Company,
			Email:      payload.Email,
			Phone:      payload.Phone,
			Notes:      payload.Notes,
			Type:       enums.LeadType(payload.Type),
			Status:     enums.LeadStatus(payload.Status),
			ValueCents: payload.ValueCents,
			FollowUpOn: payload.FollowUpOn,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, lead)
	}
}

func LeadGet(svc leads.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		leadID, err := pathUUID(r, "leadId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		lead, err := svc.Get(r.Context(), userID, leadID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, lead)
	}
}

// LeadsList serves the caller's pipeline, optionally filtered by status or type.
func LeadsList(svc leads.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		limit, err := validators.ParseQueryInt(r, "limit", 25, 1, maxLeadPageSize)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		offset, err := validators.ParseQueryInt(r, "offset", 0, 0, 10000)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rows, err := svc.List(r.Context(), leads.ListParams{
			UserID: userID,
			Status: r.URL.Query().Get("status"),
			Type:   r.URL.Query().Get("type"),
			Limit:  limit,
			Offset: offset,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

type leadUpdateRequest struct {
	Name       *string    `json:"name,omitempty" validate:"omitempty,min=1"`
	Company    *string    `json:"company,omitempty"`
	Email      *string    `json:"email,omitempty" validate:"omitempty,email"`
	Phone      *string    `json:"phone,omitempty"`
	Notes      *string    `json:"notes,omitempty"`
	Type       *string    `json:"type,omitempty"`
	Status     *string    `json:"status,omitempty"`
	ValueCents *int64     `json:"value_cents,omitempty" validate:"omitempty,min=0"`
	FollowUpOn *time.Time `json:"follow_up_on,omitempty"`
}

func LeadUpdate(svc leads.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		leadID, err := pathUUID(r, "leadId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload leadUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		params := leads.UpdateParams{
			Name:       payload.Name,
			Company:    payload.Company,
			Email:      payload.Email,
			Phone:      payload.Phone,
			Notes:      payload.Notes,
			ValueCents: payload.ValueCents,
			FollowUpOn: payload.FollowUpOn,
		}
		if payload.Type != nil {
			leadType := enums.LeadType(*payload.Type)
			params.Type = &leadType
		}
		if payload.Status != nil {
			status := enums.LeadStatus(*payload.Status)
			params.Status = &status
		}

		lead, err := svc.Update(r.Context(), userID, leadID, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, lead)
	}
}

func LeadDelete(svc leads.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		leadID, err := pathUUID(r, "leadId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), userID, leadID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// LeadStats aggregates the caller's pipeline totals and per-status counts.
func LeadStats(svc leads.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		stats, err := svc.Stats(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, stats)
	}
}
