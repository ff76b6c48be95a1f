package stagestore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	dbmodels "recruitment-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.Stage) (id string, err error)
	Update(processID, id string, updMap map[string]interface{}) error
	GetByID(id string) (*dbmodels.Stage, error)
	List(processID string) (list []dbmodels.Stage, err error)
	ListAll() (list []dbmodels.Stage, err error)
	Delete(processID, id string) (err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Stage) (id string, err error) {
	if rec.StageOrder == 0 {
		maxOrder, err := i.maxOrder(rec.ProcessID)
		if err != nil {
			return "", err
		}
		rec.StageOrder = maxOrder + 1
	}
	err = i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.Stage, error) {
	rec := dbmodels.Stage{}
	err := i.db.
		Model(&dbmodels.Stage{}).
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

func (i impl) Update(processID, id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	err := i.db.
		Model(&dbmodels.Stage{}).
		Where("id = ?", id).
		Where("process_id = ?", processID).
		Updates(updMap).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) List(processID string) (list []dbmodels.Stage, err error) {
	list = []dbmodels.Stage{}
	err = i.db.
		Where("process_id = ?", processID).
		Order("stage_order").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListAll() (list []dbmodels.Stage, err error) {
	list = []dbmodels.Stage{}
	err = i.db.
		Order("process_id, stage_order").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) Delete(processID, id string) (err error) {
	return i.db.
		Where("id = ?", id).
		Where("process_id = ?", processID).
		Delete(&dbmodels.Stage{}).
		Error
}

func (i impl) maxOrder(processID string) (order int, err error) {
	type result struct {
		MaxOrder int
	}
	res := result{}
	err = i.db.Table("stages").
		Where("process_id = ?", processID).
		Select("coalesce(max(stage_order), 0) as max_order").Find(&res).Error
	if err != nil {
		return 0, err
	}
	return res.MaxOrder, nil
}
