package leads

import (
	"context"
	"time"

	"github.com/blu-networking/blu-backend/pkg/db/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Repository exposes lead persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a leads repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new lead row.
func (r *Repository) Create(ctx context.Context, lead *models.Lead) error {
	return r.db.WithContext(ctx).Create(lead).Error
}

// FindByID loads a lead by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Lead, error) {
	var lead models.Lead
	if err := r.db.WithContext(ctx).First(&lead, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &lead, nil
}

type listLeadsParams struct {
	UserID uuid.UUID
	Status string
	Type   string
	Limit  int
	Offset int
}

// ListByUser returns the member's leads newest-first.
func (r *Repository) ListByUser(ctx context.Context, params listLeadsParams) ([]models.Lead, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", params.UserID)
	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}
	if params.Type != "" {
		query = query.Where("type = ?", params.Type)
	}
	if params.Limit > 0 {
		query = query.Limit(params.Limit)
	}
	if params.Offset > 0 {
		query = query.Offset(params.Offset)
	}

	var rows []models.Lead
	if err := query.Order("created_at DESC, id DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Update applies the provided column updates and returns the fresh row.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) (*models.Lead, error) {
	if len(updates) > 0 {
		result := r.db.WithContext(ctx).
			Model(&models.Lead{}).
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

// Delete removes a lead row.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Lead{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Totals carries the aggregate numbers for a set of leads. Empty sets
// aggregate to zero rather than NULL.
type Totals struct {
	TotalLeads      int64           `json:"total_leads"`
	TotalValueCents int64           `json:"total_value_cents"`
	AvgValueCents   decimal.Decimal `json:"avg_value_cents"`
}

// AggregateForUser computes totals for one member's pipeline.
func (r *Repository) AggregateForUser(ctx context.Context, userID uuid.UUID) (*Totals, error) {
	var totals Totals
	if err := r.db.WithContext(ctx).
		Model(&models.Lead{}).
		Select("COUNT(*) AS total_leads, COALESCE(SUM(value_cents), 0) AS total_value_cents, COALESCE(AVG(value_cents), 0) AS avg_value_cents").
		Where("user_id = ?", userID).
		Scan(&totals).Error; err != nil {
		return nil, err
	}
	return &totals, nil
}

// AggregateAll computes totals across every member, for board dashboards.
func (r *Repository) AggregateAll(ctx context.Context) (*Totals, error) {
	var totals Totals
	if err := r.db.WithContext(ctx).
		Model(&models.Lead{}).
		Select("COUNT(*) AS total_leads, COALESCE(SUM(value_cents), 0) AS total_value_cents, COALESCE(AVG(value_cents), 0) AS avg_value_cents").
		Scan(&totals).Error; err != nil {
		return nil, err
	}
	return &totals, nil
}

// StatusCount pairs a pipeline status with how many leads sit in it.
type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// CountByStatus groups the member's leads per status.
func (r *Repository) CountByStatus(ctx context.Context, userID uuid.UUID) ([]StatusCount, error) {
	var rows []StatusCount
	if err := r.db.WithContext(ctx).
		Model(&models.Lead{}).
		Select("status, COUNT(*) AS count").
		Where("user_id = ?", userID).
		Group("status").
		Order("status ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListFollowUpsDue returns leads whose follow-up date falls inside the window,
// oldest first, across all members.
func (r *Repository) ListFollowUpsDue(ctx context.Context, from, to time.Time) ([]models.Lead, error) {
	var rows []models.Lead
	if err := r.db.WithContext(ctx).
		Where("follow_up_on IS NOT NULL AND follow_up_on >= ? AND follow_up_on < ?", from, to).
		Order("follow_up_on ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// CountForUser reports the member's total lead count.
func (r *Repository) CountForUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Lead{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
