package auth

import (
	"github.com/blu-networking/blu-backend/pkg/enums"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AccessTokenPayload is the input for minting an access token. JTI links the
// token to its redis-backed refresh session.
type AccessTokenPayload struct {
	UserID    uuid.UUID
	Level     enums.UserLevel
	ChapterID *uuid.UUID
	JTI       string
}

// AccessTokenClaims is the typed claim set carried by issued access tokens.
// ChapterID is nil for members not yet assigned to a chapter.
type AccessTokenClaims struct {
	UserID    uuid.UUID       `json:"user_id"`
	Level     enums.UserLevel `json:"user_level"`
	ChapterID *uuid.UUID      `json:"chapter_id,omitempty"`
	jwt.RegisteredClaims
}
