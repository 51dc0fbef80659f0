package controllers

import (
	"context"
	"io"
	"net/http"

	"github.com/blu-networking/blu-backend/api/middleware"
	"github.com/blu-networking/blu-backend/pkg/enums"
	"github.com/blu-networking/blu-backend/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{Level: zerolog.ErrorLevel, Output: io.Discard})
}

func addRouteParam(req *http.Request, key, value string) *http.Request {
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

func asMember(req *http.Request, userID uuid.UUID, level enums.UserLevel, chapterID *uuid.UUID) *http.Request {
	ctx := middleware.WithUserID(req.Context(), userID.String())
	ctx = middleware.WithUserLevel(ctx, level)
	if chapterID != nil {
		ctx = middleware.WithChapterID(ctx, chapterID.String())
	}
	return req.WithContext(ctx)
}
