package dbmodels

import (
	"fmt"
	"recruitment-backend/models"
	"time"
)

// Notification уведомление ответственному этапа, создается только при переводе кандидата
type Notification struct {
	BaseModel
	RecipientName  string                    `gorm:"type:varchar(255);index"`
	RecipientEmail string                    `gorm:"type:varchar(255)"`
	CandidateID    string                    `gorm:"type:varchar(36);index"`
	CandidateName  string                    `gorm:"type:varchar(255)"`
	StageID        string                    `gorm:"type:varchar(36)"`
	StageName      string                    `gorm:"type:varchar(255)"`
	ProcessTitle   string                    `gorm:"type:varchar(255)"`
	MovedBy        string                    `gorm:"type:varchar(255)"`
	Status         models.NotificationStatus `gorm:"type:varchar(20);index"`
	ReadAt         *time.Time
	DeliveryStatus models.DeliveryStatus `gorm:"type:varchar(20);index"`
	Attempts       int
	LastError      string
	EmailID        string `gorm:"type:varchar(255)"`
}

// Message текст уведомления для ответственного
func (n Notification) Message() string {
	return fmt.Sprintf("El candidato %s está ahora en tu etapa \"%s\" para el puesto de %s. Movido por: %s",
		n.CandidateName, n.StageName, n.ProcessTitle, n.MovedBy)
}
