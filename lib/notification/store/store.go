package notificationstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"recruitment-backend/models"
	dbmodels "recruitment-backend/models/db"
	"time"
)

type Provider interface {
	Create(rec dbmodels.Notification) (id string, err error)
	GetByID(id string) (*dbmodels.Notification, error)
	ListByRecipient(recipientName string, limit int) ([]dbmodels.Notification, error)
	ListUnread(recipientName string, limit int) ([]dbmodels.Notification, error)
	CountUnread(recipientName string) (int64, error)
	MarkRead(id, recipientName string) (changed bool, err error)
	ListForDelivery(maxAttempts, limit int) ([]dbmodels.Notification, error)
	ListFailed(maxAttempts, limit int) ([]dbmodels.Notification, error)
	MarkSent(id, recipientEmail, emailID string) error
	MarkFailed(id, recipientEmail, lastError string) error
	Requeue(id string) (changed bool, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Notification) (id string, err error) {
	err = i.db.
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.Notification, error) {
	rec := dbmodels.Notification{}
	err := i.db.
		Model(&dbmodels.Notification{}).
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

func (i impl) ListByRecipient(recipientName string, limit int) (list []dbmodels.Notification, err error) {
	list = []dbmodels.Notification{}
	err = i.db.
		Model(&dbmodels.Notification{}).
		Where("recipient_name = ?", recipientName).
		Order("created_at desc").
		Limit(limit).
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// ListUnread непрочитанные уведомления получателя, старые первыми
func (i impl) ListUnread(recipientName string, limit int) (list []dbmodels.Notification, err error) {
	list = []dbmodels.Notification{}
	err = i.db.
		Model(&dbmodels.Notification{}).
		Where("recipient_name = ?", recipientName).
		Where("status = ?", models.NotificationUnread).
		Order("created_at asc").
		Limit(limit).
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) CountUnread(recipientName string) (int64, error) {
	var count int64
	err := i.db.
		Model(&dbmodels.Notification{}).
		Where("recipient_name = ?", recipientName).
		Where("status = ?", models.NotificationUnread).
		Count(&count).
		Error
	return count, err
}

// MarkRead переводит уведомление в прочитанные, повторный вызов ничего не меняет
func (i impl) MarkRead(id, recipientName string) (changed bool, err error) {
	tx := i.db.
		Model(&dbmodels.Notification{}).
		Where("id = ?", id).
		Where("recipient_name = ?", recipientName).
		Where("status = ?", models.NotificationUnread).
		Updates(map[string]interface{}{
			"status":  models.NotificationRead,
			"read_at": time.Now(),
		})
	if err = tx.Error; err != nil {
		return false, err
	}
	return tx.RowsAffected != 0, nil
}

func (i impl) ListForDelivery(maxAttempts, limit int) (list []dbmodels.Notification, err error) {
	list = []dbmodels.Notification{}
	err = i.db.
		Model(&dbmodels.Notification{}).
		Where("delivery_status in (?)", []models.DeliveryStatus{models.DeliveryPending, models.DeliveryFailed}).
		Where("attempts < ?", maxAttempts).
		Order("created_at").
		Limit(limit).
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListFailed(maxAttempts, limit int) (list []dbmodels.Notification, err error) {
	list = []dbmodels.Notification{}
	err = i.db.
		Model(&dbmodels.Notification{}).
		Where("delivery_status = ?", models.DeliveryFailed).
		Order("created_at desc").
		Limit(limit).
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) MarkSent(id, recipientEmail, emailID string) error {
	return i.db.
		Model(&dbmodels.Notification{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"delivery_status": models.DeliverySent,
			"recipient_email": recipientEmail,
			"email_id":        emailID,
			"attempts":        gorm.Expr("attempts + 1"),
			"last_error":      "",
		}).
		Error
}

func (i impl) MarkFailed(id, recipientEmail, lastError string) error {
	return i.db.
		Model(&dbmodels.Notification{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"delivery_status": models.DeliveryFailed,
			"recipient_email": recipientEmail,
			"attempts":        gorm.Expr("attempts + 1"),
			"last_error":      lastError,
		}).
		Error
}

// Requeue возвращает уведомление с ошибкой доставки в очередь, счетчик попыток сбрасывается
func (i impl) Requeue(id string) (changed bool, err error) {
	tx := i.db.
		Model(&dbmodels.Notification{}).
		Where("id = ?", id).
		Where("delivery_status = ?", models.DeliveryFailed).
		Updates(map[string]interface{}{
			"delivery_status": models.DeliveryPending,
			"attempts":        0,
		})
	if err = tx.Error; err != nil {
		return false, err
	}
	return tx.RowsAffected != 0, nil
}
