package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MemberMessage is a direct message between two members. ReadAt stays nil
// until the recipient opens it.
type MemberMessage struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	FromUserID uuid.UUID  `gorm:"column:from_user_id;type:uuid;not null;index" json:"from_user_id"`
	ToUserID   uuid.UUID  `gorm:"column:to_user_id;type:uuid;not null;index" json:"to_user_id"`
	Subject    string     `gorm:"column:subject;not null" json:"subject"`
	Body       string     `gorm:"column:body;not null" json:"body"`
	ReadAt     *time.Time `gorm:"column:read_at" json:"read_at,omitempty"`
	CreatedAt  time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (m *MemberMessage) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
