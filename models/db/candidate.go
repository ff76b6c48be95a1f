package dbmodels

import (
	"github.com/pkg/errors"
	"recruitment-backend/models"
	"time"
)

type Candidate struct {
	BaseModel
	ProcessID      string                 `gorm:"type:varchar(36);index"`
	Process        *Process               `gorm:"foreignKey:ProcessID"`
	CurrentStageID string                 `gorm:"type:varchar(36);index"`
	CurrentStage   *Stage                 `gorm:"foreignKey:CurrentStageID"`
	Name           string                 `gorm:"type:varchar(255)"`
	Email          string                 `gorm:"type:varchar(255)"`
	Phone          string                 `gorm:"type:varchar(50)"`
	Location       string                 `gorm:"type:varchar(255)"`
	Origin         string                 `gorm:"type:varchar(255)"`
	DocumentID     *string                `gorm:"type:varchar(36)"`
	Status         models.CandidateStatus `gorm:"type:varchar(50);index"`
	Comments       int
	AppliedDate    time.Time `gorm:"type:date"`
	LastUpdated    time.Time
}

func (c Candidate) IsRejected() bool {
	return c.Status == models.CandidateStatusRejected
}

// CheckMoveTo проверяет возможность перевода кандидата на этап
func (c Candidate) CheckMoveTo(stage Stage) error {
	if stage.ProcessID != c.ProcessID {
		return errors.New("этап не относится к процессу кандидата")
	}
	if c.Status == models.CandidateStatusHired {
		return errors.New("кандидат уже принят на работу")
	}
	if stage.ID == c.CurrentStageID && !c.IsRejected() {
		return errors.New("кандидат уже находится на этом этапе")
	}
	return nil
}

type CandidateFilter struct {
	ProcessID string
	StageID   string
	Status    models.CandidateStatus
	Search    string
	Limit     int
	Offset    int
}
