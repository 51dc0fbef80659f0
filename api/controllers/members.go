package controllers

import (
	"net/http"

	"github.com/blu-networking/blu-backend/api/middleware"
	"github.com/blu-networking/blu-backend/api/responses"
	"github.com/blu-networking/blu-backend/api/validators"
	"github.com/blu-networking/blu-backend/internal/members"
	"github.com/blu-networking/blu-backend/pkg/enums"
	"github.com/blu-networking/blu-backend/pkg/logger"
	"github.com/google/uuid"
)

const maxDirectoryPageSize = 100

// MembersList serves the member directory. Regular members see only their
// own chapter; board members and above see everyone.
func MembersList(svc members.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.ParseQueryInt(r, "limit", 25, 1, maxDirectoryPageSize)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		params := members.DirectoryParams{
			Search:   validators.SanitizeString(r.URL.Query().Get("search"), 120),
			Industry: validators.SanitizeString(r.URL.Query().Get("industry"), 120),
			Limit:    limit,
			Cursor:   r.URL.Query().Get("cursor"),
		}
		if !middleware.UserLevelFromContext(r.Context()).AtLeast(enums.UserLevelBoardMember) {
			params.ChapterID = actorChapterID(r)
		}

		result, err := svc.Directory(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// MemberGet serves a single directory entry, chapter-scoped for members.
func MemberGet(svc members.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		memberID, err := pathUUID(r, "memberId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var scope *uuid.UUID
		if !middleware.UserLevelFromContext(r.Context()).AtLeast(enums.UserLevelBoardMember) {
			scope = actorChapterID(r)
		}

		view, err := svc.GetMember(r.Context(), scope, memberID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

// ProfileGet returns the caller's own full profile.
func ProfileGet(svc members.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		profile, err := svc.GetProfile(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, profile)
	}
}

type profileUpdateRequest struct {
	FullName        *string `json:"full_name,omitempty" validate:"omitempty,min=1"`
	Company         *string `json:"company,omitempty"`
	Title           *string `json:"title,omitempty"`
	Bio             *string `json:"bio,omitempty"`
	Industry        *string `json:"industry,omitempty"`
	Expertise       *string `json:"expertise,omitempty"`
	ProfileImageURL *string `json:"profile_image_url,omitempty" validate:"omitempty,url"`
	Phone           *string `json:"phone,omitempty"`
}

// ProfileUpdate edits the caller's own profile. The request type is the whole
// whitelist; identity, credential, and role fields are unreachable here.
func ProfileUpdate(svc members.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload profileUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		profile, err := svc.UpdateProfile(r.Context(), userID, members.UpdateProfileParams{
			FullName:        payload.FullName,
			Company:         payload.Company,
			Title:           payload.Title,
			Bio:             payload.Bio,
			Industry:        payload.Industry,
			Expertise:       payload.Expertise,
			ProfileImageURL: payload.ProfileImageURL,
			Phone:           payload.Phone,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, profile)
	}
}
