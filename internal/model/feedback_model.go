package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Feedback struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FeedName  string    `gorm:"type:varchar(255);not null" json:"feed_name"`
	FeedEmail string    `gorm:"type:varchar(255);not null" json:"feed_email"`
	FeedScore int       `gorm:"not null" json:"feed_score"`
	Comments  string    `gorm:"type:text" json:"comments"`
	Timestamp string    `gorm:"type:varchar(50);not null" json:"timestamp"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (Feedback) TableName() string {
	return "user_feedback"
}

func (m *Feedback) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
