package timelinestore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	dbmodels "recruitment-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.TimelineEvent) (id string, err error)
	GetByID(id string) (*dbmodels.TimelineEvent, error)
	List(candidateID string) (list []dbmodels.TimelineEvent, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.TimelineEvent) (id string, err error) {
	err = i.db.
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) List(candidateID string) (list []dbmodels.TimelineEvent, err error) {
	list = []dbmodels.TimelineEvent{}
	err = i.db.
		Model(&dbmodels.TimelineEvent{}).
		Where("candidate_id = ?", candidateID).
		Order("date").
		Order("created_at").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) GetByID(id string) (*dbmodels.TimelineEvent, error) {
	var rec dbmodels.TimelineEvent
	err := i.db.
		Model(&dbmodels.TimelineEvent{}).
		Where("id = ?", id).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}
