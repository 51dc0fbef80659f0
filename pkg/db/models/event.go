package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Event is a chapter gathering members can register for. A nil capacity means
// registrations are unbounded.
type Event struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ChapterID   *uuid.UUID `gorm:"column:chapter_id;type:uuid" json:"chapter_id,omitempty"`
	Title       string     `gorm:"column:title;not null" json:"title"`
	Description *string    `gorm:"column:description" json:"description,omitempty"`
	StartsAt    time.Time  `gorm:"column:starts_at;not null" json:"starts_at"`
	EndsAt      *time.Time `gorm:"column:ends_at" json:"ends_at,omitempty"`
	Location    *string    `gorm:"column:location" json:"location,omitempty"`
	Capacity    *int       `gorm:"column:capacity" json:"capacity,omitempty"`
	CreatedBy   uuid.UUID  `gorm:"column:created_by;type:uuid;not null" json:"created_by"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"-"`
}

func (e *Event) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// EventRegistration ties a member to an event. The (event_id, user_id) unique
// index backstops the in-transaction duplicate check.
type EventRegistration struct {
	ID           uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	EventID      uuid.UUID  `gorm:"column:event_id;type:uuid;not null;uniqueIndex:idx_event_registrations_event_user" json:"event_id"`
	UserID       uuid.UUID  `gorm:"column:user_id;type:uuid;not null;uniqueIndex:idx_event_registrations_event_user" json:"user_id"`
	RegisteredAt time.Time  `gorm:"column:registered_at;autoCreateTime" json:"registered_at"`
	Attended     bool       `gorm:"column:attended;not null;default:false" json:"attended"`
	CheckedInAt  *time.Time `gorm:"column:checked_in_at" json:"checked_in_at,omitempty"`
}

func (r *EventRegistration) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
