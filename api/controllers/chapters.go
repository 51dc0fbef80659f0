package controllers

import (
	"net/http"

	"github.com/blu-networking/blu-backend/api/responses"
	"github.com/blu-networking/blu-backend/api/validators"
	"github.com/blu-networking/blu-backend/internal/chapters"
	"github.com/blu-networking/blu-backend/pkg/logger"
)

// ChaptersList serves every chapter for directory dropdowns and onboarding.
func ChaptersList(svc chapters.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

func ChapterGet(svc chapters.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		chapterID, err := pathUUID(r, "chapterId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		chapter, err := svc.Get(r.Context(), chapterID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, chapter)
	}
}

type chapterCreateRequest struct {
	Name           string          `json:"name" validate:"required,min=1"`
	Location       *string         `json:"location,omitempty"`
	Description    *string         `json:"description,omitempty"`
	ContactEmail   *string         `json:"contact_email,omitempty" validate:"omitempty,email"`
	PrimaryColor   *string         `json:"primary_color,omitempty"`
	SecondaryColor *string         `json:"secondary_color,omitempty"`
	Features       map[string]bool `json:"features,omitempty"`
	AdminEmail     string          `json:"admin_email" validate:"required,email"`
	AdminFullName  string          `json:"admin_full_name" validate:"required,min=1"`
}

// ChapterCreate provisions a chapter and its founding admin. Executive board
// only; the route guard enforces the level.
func ChapterCreate(svc chapters.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload chapterCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Create(r.Context(), chapters.CreateParams{
			Name:           payload.Name,
			Location:       payload.Location,
			Description:    payload.Description,
			ContactEmail:   payload.ContactEmail,
			PrimaryColor:   payload.PrimaryColor,
			SecondaryColor: payload.SecondaryColor,
			Features:       payload.Features,
			AdminEmail:     payload.AdminEmail,
			AdminFullName:  payload.AdminFullName,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

type chapterUpdateRequest struct {
	Location       *string         `json:"location,omitempty"`
	Description    *string         `json:"description,omitempty"`
	ContactEmail   *string         `json:"contact_email,omitempty" validate:"omitempty,email"`
	PrimaryColor   *string         `json:"primary_color,omitempty"`
	SecondaryColor *string         `json:"secondary_color,omitempty"`
	Features       map[string]bool `json:"features,omitempty"`
}

func ChapterUpdate(svc chapters.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		chapterID, err := pathUUID(r, "chapterId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload chapterUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		chapter, err := svc.Update(r.Context(), chapterID, chapters.UpdateParams{
			Location:       payload.Location,
			Description:    payload.Description,
			ContactEmail:   payload.ContactEmail,
			PrimaryColor:   payload.PrimaryColor,
			SecondaryColor: payload.SecondaryColor,
			Features:       payload.Features,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, chapter)
	}
}
