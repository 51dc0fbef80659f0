package auth

import "github.com/blu-networking/blu-backend/pkg/db/models"

// RegisterRequest is the self-service signup payload.
type RegisterRequest struct {
	Email     string  `json:"email" validate:"required,email"`
	Password  string  `json:"password" validate:"required,min=8"`
	FullName  string  `json:"full_name" validate:"required"`
	Company   *string `json:"company,omitempty"`
	Title     *string `json:"title,omitempty"`
	Industry  *string `json:"industry,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	ChapterID *string `json:"chapter_id,omitempty" validate:"omitempty,uuid"`
}

// LoginRequest carries login credentials.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest rotates a session.
type RefreshRequest struct {
	AccessToken  string `json:"access_token" validate:"required"`
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// AuthResponse is returned by register, login, and refresh.
type AuthResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         *models.User `json:"user"`
}
