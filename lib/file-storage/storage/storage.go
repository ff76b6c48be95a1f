package filesdbstorage

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	dbmodels "recruitment-backend/models/db"
)

type Provider interface {
	SaveFile(rec dbmodels.FileStorage) (id string, err error)
	GetByID(id string) (*dbmodels.FileStorage, error)
	SetCandidate(id, candidateID string) error
	Delete(id string) error
}

type impl struct {
	db *gorm.DB
}

func (i impl) GetByID(id string) (*dbmodels.FileStorage, error) {
	rec := dbmodels.FileStorage{}
	err := i.db.
		Model(&dbmodels.FileStorage{}).
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

func (i impl) SaveFile(rec dbmodels.FileStorage) (id string, err error) {
	err = i.db.Save(&rec).Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) SetCandidate(id, candidateID string) error {
	return i.db.
		Model(&dbmodels.FileStorage{}).
		Where("id = ?", id).
		Update("candidate_id", candidateID).
		Error
}

func (i impl) Delete(id string) error {
	return i.db.
		Where("id = ?", id).
		Delete(&dbmodels.FileStorage{}).
		Error
}

func NewInstance(db *gorm.DB) Provider {
	return &impl{db: db}
}
