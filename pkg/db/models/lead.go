package models

import (
	"time"

	"github.com/blu-networking/blu-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Lead is a tracked business contact owned by the creating member. Monetary
// value is stored in cents.
type Lead struct {
	ID         uuid.UUID        `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID     uuid.UUID        `gorm:"column:user_id;type:uuid;not null;index" json:"user_id"`
	Name       string           `gorm:"column:name;not null" json:"name"`
	Company    *string          `gorm:"column:company" json:"company,omitempty"`
	Email      *string          `gorm:"column:email" json:"email,omitempty"`
	Phone      *string          `gorm:"column:phone" json:"phone,omitempty"`
	Notes      *string          `gorm:"column:notes" json:"notes,omitempty"`
	Type       enums.LeadType   `gorm:"column:type;type:text;not null" json:"type"`
	Status     enums.LeadStatus `gorm:"column:status;type:text;not null;default:'new'" json:"status"`
	ValueCents int64            `gorm:"column:value_cents;not null;default:0" json:"value_cents"`
	FollowUpOn *time.Time       `gorm:"column:follow_up_on" json:"follow_up_on,omitempty"`
	CreatedAt  time.Time        `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time        `gorm:"column:updated_at;autoUpdateTime" json:"-"`
}

func (l *Lead) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
