package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MemberSpotlight highlights one member on the chapter home view. Multiple
// active rows may exist; selection prefers the most recently created.
type MemberSpotlight struct {
	ID            uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID        uuid.UUID  `gorm:"column:user_id;type:uuid;not null;index" json:"user_id"`
	Description   string     `gorm:"column:description;not null" json:"description"`
	Achievements  *string    `gorm:"column:achievements" json:"achievements,omitempty"`
	Active        bool       `gorm:"column:active;not null;default:true" json:"active"`
	FeaturedUntil *time.Time `gorm:"column:featured_until" json:"featured_until,omitempty"`
	CreatedAt     time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"-"`
}

func (s *MemberSpotlight) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
