package spotlights

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/blu-networking/blu-backend/internal/members"
	"github.com/blu-networking/blu-backend/pkg/config"
	"github.com/blu-networking/blu-backend/pkg/db"
	"github.com/blu-networking/blu-backend/pkg/db/models"
	"github.com/blu-networking/blu-backend/pkg/enums"
	pkgerrors "github.com/blu-networking/blu-backend/pkg/errors"
	"github.com/blu-networking/blu-backend/pkg/logger"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

func testDB(t *testing.T) *db.Client {
	t.Helper()
	logg := logger.New(logger.Options{Level: zerolog.ErrorLevel, Output: io.Discard})
	client, err := db.New(context.Background(), config.DBConfig{
		Driver: "sqlite",
		DSN:    "file:" + t.Name() + "?mode=memory&cache=shared",
	}, logg)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	if err := client.DB().AutoMigrate(&models.User{}, &models.MemberSpotlight{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return client
}

func newTestService(t *testing.T) (Service, *db.Client) {
	t.Helper()
	client := testDB(t)
	svc, err := NewService(client)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, client
}

func seedMember(t *testing.T, client *db.Client, name string) uuid.UUID {
	t.Helper()
	user := &models.User{
		ID:           uuid.New(),
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: "hash",
		FullName:     name,
		UserLevel:    enums.UserLevelMember,
		IsActive:     true,
	}
	if err := members.NewRepository(client.DB()).Create(context.Background(), user); err != nil {
		t.Fatalf("seed member: %v", err)
	}
	return user.ID
}

func TestCurrentReturnsMostRecentActive(t *testing.T) {
	svc, client := newTestService(t)
	ctx := context.Background()
	repo := NewRepository(client.DB())

	older := seedMember(t, client, "Older Feature")
	newer := seedMember(t, client, "Newer Feature")

	if err := repo.Create(ctx, &models.MemberSpotlight{
		UserID:      older,
		Description: "First spotlight",
		Active:      true,
		CreatedAt:   time.Now().UTC().Add(-48 * time.Hour),
	}); err != nil {
		t.Fatalf("seed older spotlight: %v", err)
	}
	if err := repo.Create(ctx, &models.MemberSpotlight{
		UserID:      newer,
		Description: "Second spotlight",
		Active:      true,
		CreatedAt:   time.Now().UTC(),
	}); err != nil {
		t.Fatalf("seed newer spotlight: %v", err)
	}

	view, err := svc.Current(ctx)
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if view.UserID != newer {
		t.Fatalf("expected most recent spotlight, got member %s", view.UserID)
	}
	if view.Member.FullName != "Newer Feature" {
		t.Fatalf("expected joined member details, got %q", view.Member.FullName)
	}
}

func TestCurrentSkipsExpiredAndInactive(t *testing.T) {
	svc, client := newTestService(t)
	ctx := context.Background()
	repo := NewRepository(client.DB())

	expired := time.Now().UTC().Add(-time.Hour)
	if err := repo.Create(ctx, &models.MemberSpotlight{
		UserID:        seedMember(t, client, "Expired"),
		Description:   "Expired spotlight",
		Active:        true,
		FeaturedUntil: &expired,
	}); err != nil {
		t.Fatalf("seed expired: %v", err)
	}
	if err := repo.Create(ctx, &models.MemberSpotlight{
		UserID:      seedMember(t, client, "Retired"),
		Description: "Deactivated spotlight",
		Active:      false,
	}); err != nil {
		t.Fatalf("seed inactive: %v", err)
	}

	_, err := svc.Current(ctx)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCreateRequiresExistingMember(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Create(context.Background(), CreateParams{
		UserID:      uuid.New(),
		Description: "Ghost member",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCreateValidatesDescription(t *testing.T) {
	svc, client := newTestService(t)
	member := seedMember(t, client, "Featured Member")

	_, err := svc.Create(context.Background(), CreateParams{
		UserID:      member,
		Description: "   ",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDeactivateRemovesFromRotation(t *testing.T) {
	svc, client := newTestService(t)
	ctx := context.Background()
	member := seedMember(t, client, "Featured Member")

	spotlight, err := svc.Create(ctx, CreateParams{
		UserID:      member,
		Description: "Member of the month",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.Current(ctx); err != nil {
		t.Fatalf("current before deactivation: %v", err)
	}

	inactive := false
	if _, err := svc.Update(ctx, spotlight.ID, UpdateParams{Active: &inactive}); err != nil {
		t.Fatalf("update: %v", err)
	}

	_, err = svc.Current(ctx)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found after deactivation, got %v", err)
	}
}

func TestDeleteUnknownSpotlight(t *testing.T) {
	svc, _ := newTestService(t)

	err := svc.Delete(context.Background(), uuid.New())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
