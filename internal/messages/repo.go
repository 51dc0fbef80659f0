package messages

import (
	"context"
	"time"

	"github.com/blu-networking/blu-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository exposes member message persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a messages repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new message row.
func (r *Repository) Create(ctx context.Context, message *models.MemberMessage) error {
	return r.db.WithContext(ctx).Create(message).Error
}

// FindByID loads a message by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.MemberMessage, error) {
	var message models.MemberMessage
	if err := r.db.WithContext(ctx).First(&message, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &message, nil
}

// ListInbox returns messages received by the member, newest-first.
func (r *Repository) ListInbox(ctx context.Context, userID uuid.UUID, unreadOnly bool, limit, offset int) ([]models.MemberMessage, error) {
	query := r.db.WithContext(ctx).Where("to_user_id = ?", userID)
	if unreadOnly {
		query = query.Where("read_at IS NULL")
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var rows []models.MemberMessage
	if err := query.Order("created_at DESC, id DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListSent returns messages the member sent, newest-first.
func (r *Repository) ListSent(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.MemberMessage, error) {
	query := r.db.WithContext(ctx).Where("from_user_id = ?", userID)
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var rows []models.MemberMessage
	if err := query.Order("created_at DESC, id DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// MarkRead stamps the read time on an unread message. Already-read messages
// keep their original timestamp.
func (r *Repository) MarkRead(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.MemberMessage{}).
		Where("id = ? AND read_at IS NULL", id).
		Update("read_at", at).Error
}

// CountUnread reports the member's unread inbox size.
func (r *Repository) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.MemberMessage{}).
		Where("to_user_id = ? AND read_at IS NULL", userID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
