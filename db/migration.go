package db

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	dbmodels "recruitment-backend/models/db"
)

func AutoMigrateDB() error {
	DB.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")
	log.Info("запуск миграций")
	if err := DB.AutoMigrate(&dbmodels.User{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры User")
	}
	if err := DB.AutoMigrate(&dbmodels.Process{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Process")
	}
	if err := DB.AutoMigrate(&dbmodels.Stage{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Stage")
	}
	if err := DB.AutoMigrate(&dbmodels.FileStorage{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры FileStorage")
	}
	if err := DB.AutoMigrate(&dbmodels.Candidate{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Candidate")
	}
	if err := DB.AutoMigrate(&dbmodels.TimelineEvent{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры TimelineEvent")
	}
	if err := DB.AutoMigrate(&dbmodels.Notification{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Notification")
	}
	if err := CreateChangeTriggers(ChangeChannel); err != nil {
		return errors.Wrap(err, "ошибка создания триггеров оповещения об изменениях")
	}
	log.Info("миграция прошла успешно")
	return nil
}
