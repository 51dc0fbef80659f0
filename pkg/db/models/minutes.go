package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// BoardMeetingMinutes records a board meeting. Regular members only ever see
// published rows.
type BoardMeetingMinutes struct {
	ID            uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ChapterID     *uuid.UUID     `gorm:"column:chapter_id;type:uuid" json:"chapter_id,omitempty"`
	Title         string         `gorm:"column:title;not null" json:"title"`
	MeetingDate   time.Time      `gorm:"column:meeting_date;not null" json:"meeting_date"`
	Attendees     pq.StringArray `gorm:"column:attendees;type:text[]" json:"attendees"`
	Agenda        *string        `gorm:"column:agenda" json:"agenda,omitempty"`
	Minutes       *string        `gorm:"column:minutes" json:"minutes,omitempty"`
	ActionItems   pq.StringArray `gorm:"column:action_items;type:text[]" json:"action_items"`
	NextMeetingOn *time.Time     `gorm:"column:next_meeting_on" json:"next_meeting_on,omitempty"`
	IsPublished   bool           `gorm:"column:is_published;not null;default:false" json:"is_published"`
	CreatedBy     uuid.UUID      `gorm:"column:created_by;type:uuid;not null" json:"created_by"`
	CreatedAt     time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"-"`
}

func (m *BoardMeetingMinutes) TableName() string { return "board_meeting_minutes" }

func (m *BoardMeetingMinutes) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
