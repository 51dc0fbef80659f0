package events

import (
	"context"
	"time"

	"github.com/blu-networking/blu-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository exposes event and registration persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an events repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new event row.
func (r *Repository) Create(ctx context.Context, event *models.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

// FindByID loads an event by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	var event models.Event
	if err := r.db.WithContext(ctx).First(&event, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

// FindByIDForUpdate loads an event under a row lock so capacity checks and the
// registration insert observe a stable count. sqlite has no row locks; its
// single-writer transaction covers the same window.
func (r *Repository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	query := r.db.WithContext(ctx)
	if r.db.Dialector.Name() != "sqlite" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var event models.Event
	if err := query.First(&event, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

type listEventsParams struct {
	ChapterID *uuid.UUID
	From      *time.Time
	Until     *time.Time
	Limit     int
	Offset    int
}

// List returns events soonest-first, optionally bounded by chapter and time window.
func (r *Repository) List(ctx context.Context, params listEventsParams) ([]models.Event, error) {
	query := r.db.WithContext(ctx).Model(&models.Event{})
	if params.ChapterID != nil {
		query = query.Where("chapter_id = ?", *params.ChapterID)
	}
	if params.From != nil {
		query = query.Where("starts_at >= ?", *params.From)
	}
	if params.Until != nil {
		query = query.Where("starts_at < ?", *params.Until)
	}
	if params.Limit > 0 {
		query = query.Limit(params.Limit)
	}
	if params.Offset > 0 {
		query = query.Offset(params.Offset)
	}

	var rows []models.Event
	if err := query.Order("starts_at ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Update applies the provided column updates and returns the fresh row.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) (*models.Event, error) {
	if len(updates) > 0 {
		result := r.db.WithContext(ctx).
			Model(&models.Event{}).
			Where("id = ?", id).
			Updates(updates)
		if result.Error != nil {
			return nil, result.Error
		}
		if result.RowsAffected == 0 {
			return nil, gorm.ErrRecordNotFound
		}
	}
	return r.FindByID(ctx, id)
}

// Delete removes an event; registrations cascade at the database level.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Event{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CreateRegistration inserts an attendance row.
func (r *Repository) CreateRegistration(ctx context.Context, reg *models.EventRegistration) error {
	return r.db.WithContext(ctx).Create(reg).Error
}

// FindRegistration loads the registration tying a member to an event.
func (r *Repository) FindRegistration(ctx context.Context, eventID, userID uuid.UUID) (*models.EventRegistration, error) {
	var reg models.EventRegistration
	if err := r.db.WithContext(ctx).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		First(&reg).Error; err != nil {
		return nil, err
	}
	return &reg, nil
}

// CountRegistrations reports how many members hold a spot for the event.
func (r *Repository) CountRegistrations(ctx context.Context, eventID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.EventRegistration{}).
		Where("event_id = ?", eventID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ListRegistrationsForEvent returns registrations in arrival order.
func (r *Repository) ListRegistrationsForEvent(ctx context.Context, eventID uuid.UUID) ([]models.EventRegistration, error) {
	var rows []models.EventRegistration
	if err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("registered_at ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListRegistrationsForUser returns a member's registrations newest-first.
func (r *Repository) ListRegistrationsForUser(ctx context.Context, userID uuid.UUID) ([]models.EventRegistration, error) {
	var rows []models.EventRegistration
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("registered_at DESC, id DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// DeleteRegistration cancels a member's spot.
func (r *Repository) DeleteRegistration(ctx context.Context, eventID, userID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		Delete(&models.EventRegistration{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// MarkAttended flags the registration as attended with a check-in time.
func (r *Repository) MarkAttended(ctx context.Context, eventID, userID uuid.UUID, at time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&models.EventRegistration{}).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		Updates(map[string]any{"attended": true, "checked_in_at": at})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListStartingBetween returns events whose start falls inside [from, until).
func (r *Repository) ListStartingBetween(ctx context.Context, from, until time.Time) ([]models.Event, error) {
	var rows []models.Event
	if err := r.db.WithContext(ctx).
		Where("starts_at >= ? AND starts_at < ?", from, until).
		Order("starts_at ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// CountUpcoming reports events starting at or after the provided time.
func (r *Repository) CountUpcoming(ctx context.Context, chapterID *uuid.UUID, from time.Time) (int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Event{}).Where("starts_at >= ?", from)
	if chapterID != nil {
		query = query.Where("chapter_id = ?", *chapterID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountAttendedByUser reports how many events the member has checked in to.
func (r *Repository) CountAttendedByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.EventRegistration{}).
		Where("user_id = ? AND attended = ?", userID, true).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
