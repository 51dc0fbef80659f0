package middleware

import (
	"context"

	"github.com/blu-networking/blu-backend/pkg/enums"
)

type contextKey string

const (
	ctxUserID    contextKey = "user_id"
	ctxUserLevel contextKey = "user_level"
	ctxChapterID contextKey = "chapter_id"
)

func UserIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxUserID).(string); ok {
		return v
	}
	return ""
}

func UserLevelFromContext(ctx context.Context) enums.UserLevel {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxUserLevel).(string); ok {
		return enums.UserLevel(v)
	}
	return ""
}

func ChapterIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxChapterID).(string); ok {
		return v
	}
	return ""
}

// WithUserID injects the user identifier into the context.
func WithUserID(ctx context.Context, userID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxUserID, userID)
}

// WithUserLevel injects the actor's level into the context.
func WithUserLevel(ctx context.Context, level enums.UserLevel) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxUserLevel, string(level))
}

// WithChapterID injects the chapter identifier into the context for downstream handlers.
func WithChapterID(ctx context.Context, chapterID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxChapterID, chapterID)
}
