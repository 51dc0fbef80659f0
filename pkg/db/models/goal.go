package models

import (
	"time"

	"github.com/blu-networking/blu-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserGoal captures a member's targets for a period alongside running
// achievement counts.
type UserGoal struct {
	ID                uuid.UUID        `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID            uuid.UUID        `gorm:"column:user_id;type:uuid;not null;index" json:"user_id"`
	Period            enums.GoalPeriod `gorm:"column:period;type:text;not null" json:"period"`
	StartsOn          time.Time        `gorm:"column:starts_on;not null" json:"starts_on"`
	EndsOn            time.Time        `gorm:"column:ends_on;not null" json:"ends_on"`
	TargetReferrals   int              `gorm:"column:target_referrals;not null;default:0" json:"target_referrals"`
	AchievedReferrals int              `gorm:"column:achieved_referrals;not null;default:0" json:"achieved_referrals"`
	TargetOneToOnes   int              `gorm:"column:target_one_to_ones;not null;default:0" json:"target_one_to_ones"`
	AchievedOneToOnes int              `gorm:"column:achieved_one_to_ones;not null;default:0" json:"achieved_one_to_ones"`
	TargetEvents      int              `gorm:"column:target_events;not null;default:0" json:"target_events"`
	AchievedEvents    int              `gorm:"column:achieved_events;not null;default:0" json:"achieved_events"`
	TargetLeads       int              `gorm:"column:target_leads;not null;default:0" json:"target_leads"`
	AchievedLeads     int              `gorm:"column:achieved_leads;not null;default:0" json:"achieved_leads"`
	CreatedAt         time.Time        `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time        `gorm:"column:updated_at;autoUpdateTime" json:"-"`
}

func (g *UserGoal) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}
