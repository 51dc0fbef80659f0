package minutes

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/blu-networking/blu-backend/pkg/db"
	"github.com/blu-networking/blu-backend/pkg/db/models"
	"github.com/blu-networking/blu-backend/pkg/enums"
	pkgerrors "github.com/blu-networking/blu-backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Service defines board meeting minutes operations. Board members manage the
// full set; regular members only ever see published rows.
type Service interface {
	Create(ctx context.Context, params CreateParams) (*models.BoardMeetingMinutes, error)
	Get(ctx context.Context, actorLevel enums.UserLevel, id uuid.UUID) (*models.BoardMeetingMinutes, error)
	List(ctx context.Context, params ListParams) ([]models.BoardMeetingMinutes, error)
	Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*models.BoardMeetingMinutes, error)
	Publish(ctx context.Context, id uuid.UUID) (*models.BoardMeetingMinutes, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	db *db.Client
}

// NewService wires minutes dependencies.
func NewService(client *db.Client) (Service, error) {
	if client == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "database client required")
	}
	return &service{db: client}, nil
}

// CreateParams describes a new minutes record. Records start unpublished.
type CreateParams struct {
	ChapterID     *uuid.UUID
	Title         string
	MeetingDate   time.Time
	Attendees     []string
	Agenda        *string
	Minutes       *string
	ActionItems   []string
	NextMeetingOn *time.Time
	CreatedBy     uuid.UUID
}

func (s *service) Create(ctx context.Context, params CreateParams) (*models.BoardMeetingMinutes, error) {
	title := strings.TrimSpace(params.Title)
	if title == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "minutes title required")
	}
	if params.MeetingDate.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "meeting date required")
	}
	if params.CreatedBy == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "minutes author required")
	}

	record := &models.BoardMeetingMinutes{
		ChapterID:     params.ChapterID,
		Title:         title,
		MeetingDate:   params.MeetingDate.UTC(),
		Attendees:     pq.StringArray(params.Attendees),
		Agenda:        params.Agenda,
		Minutes:       params.Minutes,
		ActionItems:   pq.StringArray(params.ActionItems),
		NextMeetingOn: params.NextMeetingOn,
		CreatedBy:     params.CreatedBy,
	}
	if err := NewRepository(s.db.DB()).Create(ctx, record); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create minutes")
	}
	return record, nil
}

// Get hides unpublished drafts from anyone below board level.
func (s *service) Get(ctx context.Context, actorLevel enums.UserLevel, id uuid.UUID) (*models.BoardMeetingMinutes, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "minutes id required")
	}

	record, err := NewRepository(s.db.DB()).FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "minutes not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load minutes")
	}
	if !record.IsPublished && !actorLevel.AtLeast(enums.UserLevelBoardMember) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "minutes not found")
	}
	return record, nil
}

// ListParams bounds a minutes listing. ActorLevel decides whether drafts are
// visible.
type ListParams struct {
	ActorLevel enums.UserLevel
	ChapterID  *uuid.UUID
	Limit      int
	Offset     int
}

func (s *service) List(ctx context.Context, params ListParams) ([]models.BoardMeetingMinutes, error) {
	rows, err := NewRepository(s.db.DB()).List(ctx, listMinutesParams{
		ChapterID:     params.ChapterID,
		PublishedOnly: !params.ActorLevel.AtLeast(enums.UserLevelBoardMember),
		Limit:         params.Limit,
		Offset:        params.Offset,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list minutes")
	}
	return rows, nil
}

// UpdateParams lists the editable minutes fields.
type UpdateParams struct {
	Title         *string
	MeetingDate   *time.Time
	Attendees     []string
	Agenda        *string
	Minutes       *string
	ActionItems   []string
	NextMeetingOn *time.Time
}

func (s *service) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*models.BoardMeetingMinutes, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "minutes id required")
	}
	if params.Title != nil && strings.TrimSpace(*params.Title) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "minutes title cannot be empty")
	}

	updates := map[string]any{}
	if params.Title != nil {
		updates["title"] = strings.TrimSpace(*params.Title)
	}
	if params.MeetingDate != nil {
		updates["meeting_date"] = params.MeetingDate.UTC()
	}
	if params.Attendees != nil {
		updates["attendees"] = pq.StringArray(params.Attendees)
	}
	if params.Agenda != nil {
		updates["agenda"] = params.Agenda
	}
	if params.Minutes != nil {
		updates["minutes"] = params.Minutes
	}
	if params.ActionItems != nil {
		updates["action_items"] = pq.StringArray(params.ActionItems)
	}
	if params.NextMeetingOn != nil {
		updates["next_meeting_on"] = params.NextMeetingOn
	}

	record, err := NewRepository(s.db.DB()).Update(ctx, id, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "minutes not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update minutes")
	}
	return record, nil
}

// Publish flips the record to member-visible.
func (s *service) Publish(ctx context.Context, id uuid.UUID) (*models.BoardMeetingMinutes, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "minutes id required")
	}
	record, err := NewRepository(s.db.DB()).Update(ctx, id, map[string]any{"is_published": true})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "minutes not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "publish minutes")
	}
	return record, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "minutes id required")
	}
	if err := NewRepository(s.db.DB()).Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "minutes not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete minutes")
	}
	return nil
}
