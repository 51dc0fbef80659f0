package models

import (
	"time"

	dbtypes "github.com/blu-networking/blu-backend/pkg/db/types"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Chapter is a tenant grouping of members with its own branding and settings.
type Chapter struct {
	ID             uuid.UUID          `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name           string             `gorm:"type:text;not null;uniqueIndex" json:"name"`
	Location       *string            `gorm:"column:location" json:"location,omitempty"`
	Description    *string            `gorm:"column:description" json:"description,omitempty"`
	ContactEmail   *string            `gorm:"column:contact_email" json:"contact_email,omitempty"`
	PrimaryColor   *string            `gorm:"column:primary_color" json:"primary_color,omitempty"`
	SecondaryColor *string            `gorm:"column:secondary_color" json:"secondary_color,omitempty"`
	Features       dbtypes.FeatureMap `gorm:"column:features;type:jsonb" json:"features"`
	CreatedAt      time.Time          `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time          `gorm:"column:updated_at;autoUpdateTime" json:"-"`
}

func (c *Chapter) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
