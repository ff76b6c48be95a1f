package dbmodels

import (
	"recruitment-backend/models"
	"time"
)

// TimelineEvent запись истории кандидата, только добавление
type TimelineEvent struct {
	BaseModel
	CandidateID string                   `gorm:"type:varchar(36);index"`
	Type        models.TimelineEventType `gorm:"type:varchar(50)"`
	Title       string                   `gorm:"type:varchar(255)"`
	Description string
	Author      string    `gorm:"type:varchar(255)"`
	Date        time.Time `gorm:"index"`
}

func (TimelineEvent) TableName() string {
	return "timeline"
}
