package goals

import (
	"context"
	"time"

	"github.com/blu-networking/blu-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository exposes goal persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a goals repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new goal row.
func (r *Repository) Create(ctx context.Context, goal *models.UserGoal) error {
	return r.db.WithContext(ctx).Create(goal).Error
}

// FindByID loads a goal by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.UserGoal, error) {
	var goal models.UserGoal
	if err := r.db.WithContext(ctx).First(&goal, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &goal, nil
}

// ListByUser returns the member's goals newest period first.
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.UserGoal, error) {
	var rows []models.UserGoal
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("starts_on DESC, id DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FindCurrent returns the goal whose period contains the provided instant.
// The most recently started match wins when periods overlap.
func (r *Repository) FindCurrent(ctx context.Context, userID uuid.UUID, at time.Time) (*models.UserGoal, error) {
	var goal models.UserGoal
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND starts_on <= ? AND ends_on > ?", userID, at, at).
		Order("starts_on DESC, id DESC").
		First(&goal).Error; err != nil {
		return nil, err
	}
	return &goal, nil
}

// Update applies the provided column updates and returns the fresh row.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) (*models.UserGoal, error) {
	if len(updates) > 0 {
		result := r.db.WithContext(ctx).
			Model(&models.UserGoal{}).
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

// Delete removes a goal row.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.UserGoal{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
