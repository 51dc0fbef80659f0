package minutes

import (
	"context"

	"github.com/blu-networking/blu-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository exposes board meeting minutes persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a minutes repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new minutes row.
func (r *Repository) Create(ctx context.Context, minutes *models.BoardMeetingMinutes) error {
	return r.db.WithContext(ctx).Create(minutes).Error
}

// FindByID loads a minutes row by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.BoardMeetingMinutes, error) {
	var minutes models.BoardMeetingMinutes
	if err := r.db.WithContext(ctx).First(&minutes, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &minutes, nil
}

type listMinutesParams struct {
	ChapterID     *uuid.UUID
	PublishedOnly bool
	Limit         int
	Offset        int
}

// List returns minutes newest meeting first.
func (r *Repository) List(ctx context.Context, params listMinutesParams) ([]models.BoardMeetingMinutes, error) {
	query := r.db.WithContext(ctx).Model(&models.BoardMeetingMinutes{})
	if params.ChapterID != nil {
		query = query.Where("chapter_id = ?", *params.ChapterID)
	}
	if params.PublishedOnly {
		query = query.Where("is_published = ?", true)
	}
	if params.Limit > 0 {
		query = query.Limit(params.Limit)
	}
	if params.Offset > 0 {
		query = query.Offset(params.Offset)
	}

	var rows []models.BoardMeetingMinutes
	if err := query.Order("meeting_date DESC, id DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Update applies the provided column updates and returns the fresh row.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) (*models.BoardMeetingMinutes, error) {
	if len(updates) > 0 {
		result := r.db.WithContext(ctx).
			Model(&models.BoardMeetingMinutes{}).
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

// Delete removes a minutes row.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.BoardMeetingMinutes{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
