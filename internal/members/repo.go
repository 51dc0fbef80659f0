package members

import (
	"context"
	"strings"
	"time"

	"github.com/blu-networking/blu-backend/pkg/db/models"
	"github.com/blu-networking/blu-backend/pkg/enums"
	"github.com/blu-networking/blu-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository exposes member persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a members repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the supplied transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Create inserts a new member row.
func (r *Repository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// FindByEmail retrieves the member matching the provided email.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByID loads a member by their UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

type listMembersParams struct {
	ChapterID  *uuid.UUID
	Search     string
	Industry   string
	IncludeAll bool
	Limit      int
	Cursor     *pagination.Cursor
}

// List returns active members ordered newest-first with cursor pagination.
// IncludeAll lifts the active-only filter for admin listings.
func (r *Repository) List(ctx context.Context, params listMembersParams) ([]models.User, *pagination.Cursor, error) {
	query := r.db.WithContext(ctx).Model(&models.User{})

	if !params.IncludeAll {
		query = query.Where("is_active = ?", true)
	}
	if params.ChapterID != nil {
		query = query.Where("chapter_id = ?", *params.ChapterID)
	}
	if search := strings.TrimSpace(params.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where(
			"LOWER(full_name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(COALESCE(company, '')) LIKE ?",
			pattern, pattern, pattern,
		)
	}
	if industry := strings.TrimSpace(params.Industry); industry != "" {
		query = query.Where("LOWER(COALESCE(industry, '')) = ?", strings.ToLower(industry))
	}
	if params.Cursor != nil {
		query = query.Where(
			"joined_at < ? OR (joined_at = ? AND id < ?)",
			params.Cursor.CreatedAt, params.Cursor.CreatedAt, params.Cursor.ID,
		)
	}

	limit := params.Limit
	if limit <= 0 {
		limit = pagination.LimitWithBuffer(0)
	}

	var rows []models.User
	if err := query.Order("joined_at DESC, id DESC").Limit(limit).Find(&rows).Error; err != nil {
		return nil, nil, err
	}

	var next *pagination.Cursor
	if len(rows) == limit {
		rows = rows[:len(rows)-1]
		last := rows[len(rows)-1]
		next = &pagination.Cursor{CreatedAt: last.JoinedAt, ID: last.ID}
	}

	return rows, next, nil
}

// UpdateProfile applies the whitelisted profile columns only. Identity,
// credential, and privilege columns stay untouched.
func (r *Repository) UpdateProfile(ctx context.Context, id uuid.UUID, updates map[string]any) (*models.User, error) {
	if len(updates) > 0 {
		if err := r.db.WithContext(ctx).
			Model(&models.User{}).
			Where("id = ?", id).
			Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return r.FindByID(ctx, id)
}

// UpdateLastLogin refreshes the member's last_login_at timestamp.
func (r *Repository) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		UpdateColumn("last_login_at", at).Error
}

// UpdatePasswordHash replaces the stored credential.
func (r *Repository) UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		UpdateColumn("password_hash", hash).Error
}

// SetLevel changes the member's privilege tier.
func (r *Repository) SetLevel(ctx context.Context, id uuid.UUID, level enums.UserLevel) error {
	result := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		UpdateColumn("user_level", level)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SetActive flips the member's active flag.
func (r *Repository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	result := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		UpdateColumn("is_active", active)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SetChapter assigns the member to a chapter.
func (r *Repository) SetChapter(ctx context.Context, id uuid.UUID, chapterID *uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		UpdateColumn("chapter_id", chapterID).Error
}

// CountByChapter reports active member totals, optionally chapter-scoped.
func (r *Repository) CountByChapter(ctx context.Context, chapterID *uuid.UUID) (int64, error) {
	query := r.db.WithContext(ctx).Model(&models.User{}).Where("is_active = ?", true)
	if chapterID != nil {
		query = query.Where("chapter_id = ?", *chapterID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
