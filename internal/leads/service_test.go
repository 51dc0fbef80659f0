package leads

import (
	"context"
	"io"
	"testing"

	"github.com/blu-networking/blu-backend/internal/members"
	"github.com/blu-networking/blu-backend/pkg/config"
	"github.com/blu-networking/blu-backend/pkg/db"
	"github.com/blu-networking/blu-backend/pkg/db/models"
	"github.com/blu-networking/blu-backend/pkg/enums"
	pkgerrors "github.com/blu-networking/blu-backend/pkg/errors"
	"github.com/blu-networking/blu-backend/pkg/logger"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
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

	if err := client.DB().AutoMigrate(&models.User{}, &models.Lead{}); err != nil {
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

func seedMember(t *testing.T, client *db.Client) uuid.UUID {
	t.Helper()
	user := &models.User{
		ID:           uuid.New(),
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: "hash",
		FullName:     "Test Member",
		UserLevel:    enums.UserLevelMember,
		IsActive:     true,
	}
	if err := members.NewRepository(client.DB()).Create(context.Background(), user); err != nil {
		t.Fatalf("seed member: %v", err)
	}
	return user.ID
}

func seedLead(t *testing.T, svc Service, owner uuid.UUID, status enums.LeadStatus, valueCents int64) *models.Lead {
	t.Helper()
	lead, err := svc.Create(context.Background(), CreateParams{
		UserID:     owner,
		Name:       "Jordan Prospect",
		Type:       enums.LeadTypeReferral,
		Status:     status,
		ValueCents: valueCents,
	})
	if err != nil {
		t.Fatalf("seed lead: %v", err)
	}
	return lead
}

func TestGetHidesOtherMembersLeads(t *testing.T) {
	svc, client := newTestService(t)
	owner := seedMember(t, client)
	other := seedMember(t, client)
	lead := seedLead(t, svc, owner, enums.LeadStatusNew, 1000)

	if _, err := svc.Get(context.Background(), owner, lead.ID); err != nil {
		t.Fatalf("owner get: %v", err)
	}

	_, err := svc.Get(context.Background(), other, lead.ID)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for non-owner, got %v", err)
	}
}

func TestUpdateRequiresOwnership(t *testing.T) {
	svc, client := newTestService(t)
	owner := seedMember(t, client)
	other := seedMember(t, client)
	lead := seedLead(t, svc, owner, enums.LeadStatusNew, 0)

	status := enums.LeadStatusQualified
	_, err := svc.Update(context.Background(), other, lead.ID, UpdateParams{Status: &status})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for non-owner, got %v", err)
	}

	updated, err := svc.Update(context.Background(), owner, lead.ID, UpdateParams{Status: &status})
	if err != nil {
		t.Fatalf("owner update: %v", err)
	}
	if updated.Status != enums.LeadStatusQualified {
		t.Fatalf("expected qualified status, got %s", updated.Status)
	}
}

func TestDeleteRequiresOwnership(t *testing.T) {
	svc, client := newTestService(t)
	owner := seedMember(t, client)
	other := seedMember(t, client)
	lead := seedLead(t, svc, owner, enums.LeadStatusNew, 0)

	err := svc.Delete(context.Background(), other, lead.ID)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for non-owner, got %v", err)
	}

	if err := svc.Delete(context.Background(), owner, lead.ID); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	if _, err := svc.Get(context.Background(), owner, lead.ID); err == nil {
		t.Fatal("deleted lead should be gone")
	}
}

func TestListFiltersByStatus(t *testing.T) {
	svc, client := newTestService(t)
	owner := seedMember(t, client)
	seedLead(t, svc, owner, enums.LeadStatusNew, 0)
	seedLead(t, svc, owner, enums.LeadStatusClosedWon, 5000)
	seedLead(t, svc, owner, enums.LeadStatusClosedWon, 2500)

	won, err := svc.List(context.Background(), ListParams{
		UserID: owner,
		Status: enums.LeadStatusClosedWon.String(),
	})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(won) != 2 {
		t.Fatalf("expected 2 closed_won leads, got %d", len(won))
	}

	_, err = svc.List(context.Background(), ListParams{UserID: owner, Status: "bogus"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for bad filter, got %v", err)
	}
}

func TestListScopesToOwner(t *testing.T) {
	svc, client := newTestService(t)
	owner := seedMember(t, client)
	other := seedMember(t, client)
	seedLead(t, svc, owner, enums.LeadStatusNew, 0)
	seedLead(t, svc, other, enums.LeadStatusNew, 0)

	rows, err := svc.List(context.Background(), ListParams{UserID: owner})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected only the owner's lead, got %d", len(rows))
	}
	if rows[0].UserID != owner {
		t.Fatalf("lead owned by %s leaked into listing", rows[0].UserID)
	}
}

func TestStatsAggregatesPipeline(t *testing.T) {
	svc, client := newTestService(t)
	owner := seedMember(t, client)
	seedLead(t, svc, owner, enums.LeadStatusNew, 1000)
	seedLead(t, svc, owner, enums.LeadStatusClosedWon, 3000)
	seedLead(t, svc, owner, enums.LeadStatusClosedWon, 2000)

	stats, err := svc.Stats(context.Background(), owner)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalLeads != 3 {
		t.Fatalf("expected 3 leads, got %d", stats.TotalLeads)
	}
	if stats.TotalValueCents != 6000 {
		t.Fatalf("expected 6000 total cents, got %d", stats.TotalValueCents)
	}
	if !stats.AvgValueCents.Equal(decimal.NewFromInt(2000)) {
		t.Fatalf("expected average 2000, got %s", stats.AvgValueCents)
	}

	counts := map[string]int64{}
	for _, row := range stats.ByStatus {
		counts[row.Status] = row.Count
	}
	if counts["closed_won"] != 2 || counts["new"] != 1 {
		t.Fatalf("unexpected status breakdown %v", counts)
	}
}

func TestStatsEmptyPipelineIsZero(t *testing.T) {
	svc, client := newTestService(t)
	owner := seedMember(t, client)

	stats, err := svc.Stats(context.Background(), owner)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalLeads != 0 || stats.TotalValueCents != 0 {
		t.Fatalf("expected zero totals, got %+v", stats.Totals)
	}
	if !stats.AvgValueCents.IsZero() {
		t.Fatalf("expected zero average, got %s", stats.AvgValueCents)
	}
	if len(stats.ByStatus) != 0 {
		t.Fatalf("expected empty breakdown, got %v", stats.ByStatus)
	}
}

func TestCreateValidatesInput(t *testing.T) {
	svc, client := newTestService(t)
	owner := seedMember(t, client)

	cases := []struct {
		name   string
		params CreateParams
	}{
		{"missing name", CreateParams{UserID: owner, Type: enums.LeadTypeReferral}},
		{"bad type", CreateParams{UserID: owner, Name: "Lead", Type: "walk_in"}},
		{"negative value", CreateParams{UserID: owner, Name: "Lead", Type: enums.LeadTypeReferral, ValueCents: -1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tc.params)
			typed := pkgerrors.As(err)
			if typed == nil || typed.Code() != pkgerrors.CodeValidation {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestCreateDefaultsStatusToNew(t *testing.T) {
	svc, client := newTestService(t)
	owner := seedMember(t, client)

	lead, err := svc.Create(context.Background(), CreateParams{
		UserID: owner,
		Name:   "Fresh Lead",
		Type:   enums.LeadTypeProspect,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if lead.Status != enums.LeadStatusNew {
		t.Fatalf("expected default status new, got %s", lead.Status)
	}
}
