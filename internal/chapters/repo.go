package chapters

import (
	"context"
	"strings"

	"github.com/blu-networking/blu-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository exposes chapter persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a chapters repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new chapter row.
func (r *Repository) Create(ctx context.Context, chapter *models.Chapter) error {
	return r.db.WithContext(ctx).Create(chapter).Error
}

// FindByID loads a chapter by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Chapter, error) {
	var chapter models.Chapter
	if err := r.db.WithContext(ctx).First(&chapter, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &chapter, nil
}

// FindByName loads a chapter by its unique name.
func (r *Repository) FindByName(ctx context.Context, name string) (*models.Chapter, error) {
	var chapter models.Chapter
	if err := r.db.WithContext(ctx).Where("name = ?", strings.TrimSpace(name)).First(&chapter).Error; err != nil {
		return nil, err
	}
	return &chapter, nil
}

// List returns all chapters ordered by name.
func (r *Repository) List(ctx context.Context) ([]models.Chapter, error) {
	var rows []models.Chapter
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Update applies the provided column updates and returns the fresh row.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) (*models.Chapter, error) {
	if len(updates) > 0 {
		result := r.db.WithContext(ctx).
			Model(&models.Chapter{}).
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
