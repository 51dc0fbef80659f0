package stats

import (
	"context"
	"time"

	"github.com/blu-networking/blu-backend/internal/events"
	"github.com/blu-networking/blu-backend/internal/leads"
	"github.com/blu-networking/blu-backend/internal/members"
	"github.com/blu-networking/blu-backend/internal/messages"
	"github.com/blu-networking/blu-backend/pkg/db"
	pkgerrors "github.com/blu-networking/blu-backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Service composes per-domain aggregates into dashboard payloads.
type Service interface {
	MemberDashboard(ctx context.Context, userID uuid.UUID) (*MemberDashboard, error)
	ChapterDashboard(ctx context.Context, chapterID *uuid.UUID) (*ChapterDashboard, error)
}

type service struct {
	db *db.Client
}

// NewService wires stats dependencies.
func NewService(client *db.Client) (Service, error) {
	if client == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "database client required")
	}
	return &service{db: client}, nil
}

// MemberDashboard is the caller's personal activity summary. Every number
// falls back to zero for members with no activity.
type MemberDashboard struct {
	LeadCount      int64 `json:"lead_count"`
	LeadValueCents int64 `json:"lead_value_cents"`
	EventsAttended int64 `json:"events_attended"`
	UnreadMessages int64 `json:"unread_messages"`
	UpcomingEvents int64 `json:"upcoming_events"`
}

func (s *service) MemberDashboard(ctx context.Context, userID uuid.UUID) (*MemberDashboard, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}

	totals, err := leads.NewRepository(s.db.DB()).AggregateForUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "aggregate leads")
	}
	attended, err := events.NewRepository(s.db.DB()).CountAttendedByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count attended events")
	}
	unread, err := messages.NewRepository(s.db.DB()).CountUnread(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count unread messages")
	}
	upcoming, err := events.NewRepository(s.db.DB()).CountUpcoming(ctx, nil, time.Now().UTC())
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count upcoming events")
	}

	return &MemberDashboard{
		LeadCount:      totals.TotalLeads,
		LeadValueCents: totals.TotalValueCents,
		EventsAttended: attended,
		UnreadMessages: unread,
		UpcomingEvents: upcoming,
	}, nil
}

// ChapterDashboard aggregates chapter-wide activity for board views.
type ChapterDashboard struct {
	MemberCount       int64           `json:"member_count"`
	UpcomingEvents    int64           `json:"upcoming_events"`
	TotalLeads        int64           `json:"total_leads"`
	TotalValueCents   int64           `json:"total_value_cents"`
	AvgLeadValueCents decimal.Decimal `json:"avg_lead_value_cents"`
}

// ChapterDashboard counts members within the chapter; lead aggregates span
// all members since leads are personal, not chapter rows.
func (s *service) ChapterDashboard(ctx context.Context, chapterID *uuid.UUID) (*ChapterDashboard, error) {
	memberCount, err := members.NewRepository(s.db.DB()).CountByChapter(ctx, chapterID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count members")
	}
	upcoming, err := events.NewRepository(s.db.DB()).CountUpcoming(ctx, chapterID, time.Now().UTC())
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count upcoming events")
	}
	totals, err := leads.NewRepository(s.db.DB()).AggregateAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "aggregate leads")
	}

	return &ChapterDashboard{
		MemberCount:       memberCount,
		UpcomingEvents:    upcoming,
		TotalLeads:        totals.TotalLeads,
		TotalValueCents:   totals.TotalValueCents,
		AvgLeadValueCents: totals.AvgValueCents,
	}, nil
}
