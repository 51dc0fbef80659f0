package spotlights

import (
	"context"
	"time"

	"github.com/blu-networking/blu-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository exposes spotlight persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a spotlights repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new spotlight row.
func (r *Repository) Create(ctx context.Context, spotlight *models.MemberSpotlight) error {
	return r.db.WithContext(ctx).Create(spotlight).Error
}

// FindByID loads a spotlight by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.MemberSpotlight, error) {
	var spotlight models.MemberSpotlight
	if err := r.db.WithContext(ctx).First(&spotlight, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &spotlight, nil
}

// FindCurrent returns the active spotlight that has not expired. The most
// recently created one wins when several are active.
func (r *Repository) FindCurrent(ctx context.Context, at time.Time) (*models.MemberSpotlight, error) {
	var spotlight models.MemberSpotlight
	if err := r.db.WithContext(ctx).
		Where("active = ? AND (featured_until IS NULL OR featured_until >= ?)", true, at).
		Order("created_at DESC, id DESC").
		First(&spotlight).Error; err != nil {
		return nil, err
	}
	return &spotlight, nil
}

// List returns all spotlights newest-first.
func (r *Repository) List(ctx context.Context, limit, offset int) ([]models.MemberSpotlight, error) {
	query := r.db.WithContext(ctx).Model(&models.MemberSpotlight{})
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var rows []models.MemberSpotlight
	if err := query.Order("created_at DESC, id DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Update applies the provided column updates and returns the fresh row.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) (*models.MemberSpotlight, error) {
	if len(updates) > 0 {
		result := r.db.WithContext(ctx).
			Model(&models.MemberSpotlight{}).
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

// Delete removes a spotlight row.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.MemberSpotlight{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
