package models

import (
	"time"

	"github.com/blu-networking/blu-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents the canonical member identity.
type User struct {
	ID              uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email           string          `gorm:"type:text;not null;uniqueIndex" json:"email"`
	PasswordHash    string          `gorm:"column:password_hash;not null" json:"-"`
	FullName        string          `gorm:"column:full_name;not null" json:"full_name"`
	Company         *string         `gorm:"column:company" json:"company,omitempty"`
	Title           *string         `gorm:"column:title" json:"title,omitempty"`
	Bio             *string         `gorm:"column:bio" json:"bio,omitempty"`
	Industry        *string         `gorm:"column:industry" json:"industry,omitempty"`
	Expertise       *string         `gorm:"column:expertise" json:"expertise,omitempty"`
	ProfileImageURL *string         `gorm:"column:profile_image_url" json:"profile_image_url,omitempty"`
	Phone           *string         `gorm:"column:phone" json:"phone,omitempty"`
	UserLevel       enums.UserLevel `gorm:"column:user_level;type:text;not null;default:'member'" json:"user_level"`
	ChapterID       *uuid.UUID      `gorm:"column:chapter_id;type:uuid" json:"chapter_id,omitempty"`
	IsActive        bool            `gorm:"column:is_active;not null;default:true" json:"is_active"`
	LastLoginAt     *time.Time      `gorm:"column:last_login_at" json:"last_login_at,omitempty"`
	JoinedAt        time.Time       `gorm:"column:joined_at;autoCreateTime" json:"joined_at"`
	UpdatedAt       time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
