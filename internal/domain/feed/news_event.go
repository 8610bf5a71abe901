package feed

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	TypeNews  = "news"
	TypeEvent = "event"
)

func ValidType(t string) bool {
	return t == TypeNews || t == TypeEvent
}

// NewsEvent is a feed entry. StartDate/EndDate are only meaningful for the
// event type and must satisfy StartDate < EndDate.
type NewsEvent struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string     `gorm:"not null;column:title" json:"title"`
	Description string     `gorm:"not null;column:description" json:"description"`
	Date        time.Time  `gorm:"not null;index;column:date" json:"date"`
	Type        string     `gorm:"not null;column:type" json:"type"`
	StartDate   *time.Time `gorm:"column:start_date" json:"start_date,omitempty"`
	EndDate     *time.Time `gorm:"column:end_date" json:"end_date,omitempty"`

	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (NewsEvent) TableName() string { return "news_event" }
