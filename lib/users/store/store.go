package usersstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	dbmodels "recruitment-backend/models/db"
	"time"
)

type Provider interface {
	Create(rec dbmodels.User) (id string, err error)
	GetByID(id string) (*dbmodels.User, error)
	GetByEmail(email string) (*dbmodels.User, error)
	GetByFullName(fullName string) (*dbmodels.User, error)
	List() ([]dbmodels.User, error)
	ExistByEmail(email string) (bool, error)
	UpdateLastLogin(id string) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.User) (id string, err error) {
	err = i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.User, error) {
	return i.getBy("id = ?", id)
}

func (i impl) GetByEmail(email string) (*dbmodels.User, error) {
	return i.getBy("LOWER(email) = LOWER(?)", email)
}

func (i impl) GetByFullName(fullName string) (*dbmodels.User, error) {
	return i.getBy("full_name = ? and is_active = true", fullName)
}

func (i impl) List() (list []dbmodels.User, err error) {
	list = []dbmodels.User{}
	err = i.db.
		Model(&dbmodels.User{}).
		Order("full_name").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ExistByEmail(email string) (bool, error) {
	var exists bool
	err := i.db.Model(&dbmodels.User{}).
		Select("count(*) > 0").
		Where("LOWER(email) = LOWER(?)", email).
		Find(&exists).
		Error
	return exists, err
}

func (i impl) UpdateLastLogin(id string) error {
	return i.db.
		Model(&dbmodels.User{}).
		Where("id = ?", id).
		Update("last_login", time.Now()).
		Error
}

func (i impl) getBy(query string, args ...interface{}) (*dbmodels.User, error) {
	rec := dbmodels.User{}
	err := i.db.
		Model(&dbmodels.User{}).
		Where(query, args...).
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
