package events

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/blu-networking/blu-backend/pkg/db"
	"github.com/blu-networking/blu-backend/pkg/db/models"
	pkgerrors "github.com/blu-networking/blu-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service defines event and registration operations.
type Service interface {
	Create(ctx context.Context, params CreateParams) (*models.Event, error)
	Get(ctx context.Context, id uuid.UUID) (*EventView, error)
	List(ctx context.Context, params ListParams) ([]EventView, error)
	Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*models.Event, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Register(ctx context.Context, eventID, userID uuid.UUID) (*models.EventRegistration, error)
	CancelRegistration(ctx context.Context, eventID, userID uuid.UUID) error
	ListRegistrations(ctx context.Context, eventID uuid.UUID) ([]models.EventRegistration, error)
	ListUserRegistrations(ctx context.Context, userID uuid.UUID) ([]models.EventRegistration, error)
	CheckIn(ctx context.Context, eventID, userID uuid.UUID) error
}

type service struct {
	db *db.Client
}

// NewService wires event dependencies.
func NewService(client *db.Client) (Service, error) {
	if client == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "database client required")
	}
	return &service{db: client}, nil
}

// CreateParams describes a new event.
type CreateParams struct {
	ChapterID   *uuid.UUID
	Title       string
	Description *string
	StartsAt    time.Time
	EndsAt      *time.Time
	Location    *string
	Capacity    *int
	CreatedBy   uuid.UUID
}

func (s *service) Create(ctx context.Context, params CreateParams) (*models.Event, error) {
	title := strings.TrimSpace(params.Title)
	if title == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "event title required")
	}
	if params.StartsAt.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "event start time required")
	}
	if params.EndsAt != nil && !params.EndsAt.After(params.StartsAt) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "event end must be after start")
	}
	if params.Capacity != nil && *params.Capacity < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "event capacity cannot be negative")
	}
	if params.CreatedBy == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "event creator required")
	}

	event := &models.Event{
		ChapterID:   params.ChapterID,
		Title:       title,
		Description: params.Description,
		StartsAt:    params.StartsAt.UTC(),
		EndsAt:      params.EndsAt,
		Location:    params.Location,
		Capacity:    params.Capacity,
		CreatedBy:   params.CreatedBy,
	}
	if err := NewRepository(s.db.DB()).Create(ctx, event); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create event")
	}
	return event, nil
}

// EventView augments an event with its registration count and remaining
// spots, plus the viewer's own registration state when a viewer is known.
type EventView struct {
	models.Event
	RegisteredCount int64  `json:"registered_count"`
	SpotsRemaining  *int64 `json:"spots_remaining,omitempty"`
	IsRegistered    bool   `json:"is_registered"`
	Attended        bool   `json:"attended"`
}

func buildEventView(event models.Event, registered int64) EventView {
	view := EventView{Event: event, RegisteredCount: registered}
	if event.Capacity != nil {
		remaining := int64(*event.Capacity) - registered
		if remaining < 0 {
			remaining = 0
		}
		view.SpotsRemaining = &remaining
	}
	return view
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*EventView, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "event id required")
	}

	repo := NewRepository(s.db.DB())
	event, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "event not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load event")
	}

	count, err := repo.CountRegistrations(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count registrations")
	}

	view := buildEventView(*event, count)
	return &view, nil
}

// ListParams bounds an event listing. ViewerID, when set, annotates each
// event with that member's registration state.
type ListParams struct {
	ChapterID    *uuid.UUID
	ViewerID     *uuid.UUID
	UpcomingOnly bool
	PastOnly     bool
	Limit        int
	Offset       int
}

func (s *service) List(ctx context.Context, params ListParams) ([]EventView, error) {
	query := listEventsParams{
		ChapterID: params.ChapterID,
		Limit:     params.Limit,
		Offset:    params.Offset,
	}
	now := time.Now().UTC()
	if params.UpcomingOnly {
		query.From = &now
	}
	if params.PastOnly {
		query.Until = &now
	}

	repo := NewRepository(s.db.DB())
	rows, err := repo.List(ctx, query)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list events")
	}

	views := make([]EventView, 0, len(rows))
	for _, event := range rows {
		count, err := repo.CountRegistrations(ctx, event.ID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count registrations")
		}
		view := buildEventView(event, count)
		if params.ViewerID != nil {
			reg, err := repo.FindRegistration(ctx, event.ID, *params.ViewerID)
			switch {
			case err == nil:
				view.IsRegistered = true
				view.Attended = reg.Attended
			case !errors.Is(err, gorm.ErrRecordNotFound):
				return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check registration")
			}
		}
		views = append(views, view)
	}
	return views, nil
}

// UpdateParams lists the editable event fields.
type UpdateParams struct {
	Title       *string
	Description *string
	StartsAt    *time.Time
	EndsAt      *time.Time
	Location    *string
	Capacity    *int
}

func (s *service) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*models.Event, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "event id required")
	}
	if params.Title != nil && strings.TrimSpace(*params.Title) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "event title cannot be empty")
	}
	if params.Capacity != nil && *params.Capacity < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "event capacity cannot be negative")
	}

	updates := map[string]any{}
	if params.Title != nil {
		updates["title"] = strings.TrimSpace(*params.Title)
	}
	if params.Description != nil {
		updates["description"] = params.Description
	}
	if params.StartsAt != nil {
		updates["starts_at"] = params.StartsAt.UTC()
	}
	if params.EndsAt != nil {
		updates["ends_at"] = params.EndsAt
	}
	if params.Location != nil {
		updates["location"] = params.Location
	}
	if params.Capacity != nil {
		updates["capacity"] = params.Capacity
	}

	event, err := NewRepository(s.db.DB()).Update(ctx, id, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "event not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update event")
	}
	return event, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "event id required")
	}
	if err := NewRepository(s.db.DB()).Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "event not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete event")
	}
	return nil
}

// Register books a spot. The duplicate and capacity checks run inside one
// transaction against a locked event row; the unique (event_id, user_id)
// index backstops races the lock cannot cover.
func (s *service) Register(ctx context.Context, eventID, userID uuid.UUID) (*models.EventRegistration, error) {
	if eventID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "event id required")
	}
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}

	var registration *models.EventRegistration
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := NewRepository(tx)

		event, err := repo.FindByIDForUpdate(ctx, eventID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "event not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load event")
		}

		if _, err := repo.FindRegistration(ctx, eventID, userID); err == nil {
			return pkgerrors.New(pkgerrors.CodeValidation, "Already registered for this event")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check registration")
		}

		if event.Capacity != nil {
			count, err := repo.CountRegistrations(ctx, eventID)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count registrations")
			}
			if count >= int64(*event.Capacity) {
				return pkgerrors.New(pkgerrors.CodeValidation, "Event is at full capacity")
			}
		}

		reg := &models.EventRegistration{EventID: eventID, UserID: userID}
		if err := repo.CreateRegistration(ctx, reg); err != nil {
			if db.IsUniqueViolation(err, "idx_event_registrations_event_user") {
				return pkgerrors.New(pkgerrors.CodeValidation, "Already registered for this event")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create registration")
		}
		registration = reg
		return nil
	})
	if err != nil {
		return nil, err
	}
	return registration, nil
}

func (s *service) CancelRegistration(ctx context.Context, eventID, userID uuid.UUID) error {
	if eventID == uuid.Nil || userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "event id and user id required")
	}
	if err := NewRepository(s.db.DB()).DeleteRegistration(ctx, eventID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "registration not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "cancel registration")
	}
	return nil
}

func (s *service) ListRegistrations(ctx context.Context, eventID uuid.UUID) ([]models.EventRegistration, error) {
	if eventID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "event id required")
	}
	rows, err := NewRepository(s.db.DB()).ListRegistrationsForEvent(ctx, eventID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list registrations")
	}
	return rows, nil
}

func (s *service) ListUserRegistrations(ctx context.Context, userID uuid.UUID) ([]models.EventRegistration, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	rows, err := NewRepository(s.db.DB()).ListRegistrationsForUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list registrations")
	}
	return rows, nil
}

func (s *service) CheckIn(ctx context.Context, eventID, userID uuid.UUID) error {
	if eventID == uuid.Nil || userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "event id and user id required")
	}
	if err := NewRepository(s.db.DB()).MarkAttended(ctx, eventID, userID, time.Now().UTC()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "registration not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check in registration")
	}
	return nil
}
