package processstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	dbmodels "recruitment-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.Process) (id string, err error)
	Update(id string, updMap map[string]interface{}) error
	GetByID(id string) (*dbmodels.Process, error)
	List(filter dbmodels.ProcessFilter) ([]dbmodels.Process, error)
	Delete(id string) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Process) (id string, err error) {
	err = i.db.
		Omit("Stages").
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) Update(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	tx := i.db.
		Model(&dbmodels.Process{}).
		Where("id = ?", id).
		Updates(updMap)
	if err := tx.Error; err != nil {
		return err
	}
	if tx.RowsAffected == 0 {
		return errors.New("процесс не найден")
	}
	return nil
}

func (i impl) GetByID(id string) (*dbmodels.Process, error) {
	rec := dbmodels.Process{}
	err := i.db.
		Model(&dbmodels.Process{}).
		Where("id = ?", id).
		Preload("Stages", func(db *gorm.DB) *gorm.DB {
			return db.Order("stage_order")
		}).
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

func (i impl) List(filter dbmodels.ProcessFilter) (list []dbmodels.Process, err error) {
	list = []dbmodels.Process{}
	tx := i.db.
		Model(&dbmodels.Process{})
	if filter.Status != "" {
		tx = tx.Where("status = ?", filter.Status)
	}
	err = tx.
		Preload("Stages", func(db *gorm.DB) *gorm.DB {
			return db.Order("stage_order")
		}).
		Order("created_at").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) Delete(id string) error {
	return i.db.
		Where("id = ?", id).
		Delete(&dbmodels.Process{}).
		Error
}
