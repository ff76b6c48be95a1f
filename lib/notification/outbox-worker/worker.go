package outboxworker

import (
	"context"
	"recruitment-backend/config"
	"recruitment-backend/db"
	"recruitment-backend/lib/notification/dispatch"
	notificationstore "recruitment-backend/lib/notification/store"
	usersstore "recruitment-backend/lib/users/store"
	baseworker "recruitment-backend/lib/utils/base-worker"
	"recruitment-backend/lib/utils/helpers"
	notificationapimodels "recruitment-backend/models/api/notification"
	dbmodels "recruitment-backend/models/db"
	"time"
)

type Provider interface {
	// Wake запускает доставку без ожидания интервала
	Wake()
}

var Instance Provider

type deliveryStore interface {
	ListForDelivery(maxAttempts, limit int) ([]dbmodels.Notification, error)
	MarkSent(id, recipientEmail, emailID string) error
	MarkFailed(id, recipientEmail, lastError string) error
}

type userResolver interface {
	GetByFullName(fullName string) (*dbmodels.User, error)
}

const lastErrorMaxLen = 1000

// Задача доставки уведомлений ответственным этапов
func StartWorker(ctx context.Context) {
	i := newWorker(
		notificationstore.NewInstance(db.DB),
		usersstore.NewInstance(db.DB),
		dispatch.Instance,
		time.Duration(config.Conf.Notify.OutboxIntervalSec)*time.Second,
		config.Conf.Notify.MaxAttempts,
		config.Conf.Notify.BatchSize,
	)
	Instance = i
	go i.Run(ctx, i.handle)
}

func newWorker(store deliveryStore, users userResolver, sender dispatch.Provider, interval time.Duration, maxAttempts, batchSize int) *impl {
	return &impl{
		BaseImpl:    *baseworker.NewInstance("NotificationOutboxWorker", 5*time.Second, interval),
		store:       store,
		users:       users,
		sender:      sender,
		maxAttempts: maxAttempts,
		batchSize:   batchSize,
	}
}

type impl struct {
	baseworker.BaseImpl
	store       deliveryStore
	users       userResolver
	sender      dispatch.Provider
	maxAttempts int
	batchSize   int
}

func (i *impl) handle(ctx context.Context) {
	logger := i.GetLogger()
	list, err := i.store.ListForDelivery(i.maxAttempts, i.batchSize)
	if err != nil {
		logger.WithError(err).Error("ошибка получения списка уведомлений для отправки")
		return
	}
	for _, rec := range list {
		if helpers.IsContextDone(ctx) {
			break
		}
		i.deliver(ctx, rec)
	}
}

func (i *impl) deliver(ctx context.Context, rec dbmodels.Notification) {
	logger := i.GetLogger().
		WithField("notification_id", rec.ID).
		WithField("recipient_name", rec.RecipientName).
		WithField("attempt", rec.Attempts+1)

	recipientEmail := rec.RecipientEmail
	if recipientEmail == "" {
		user, err := i.users.GetByFullName(rec.RecipientName)
		if err != nil {
			logger.WithError(err).Error("ошибка получения ответственного")
			return
		}
		if user == nil {
			i.markFailed(rec, "", "ответственный не найден среди пользователей")
			return
		}
		recipientEmail = user.Email
	}
	if i.sender == nil {
		i.markFailed(rec, recipientEmail, "отправка писем не настроена")
		return
	}
	emailID, err := i.sender.Send(ctx, notificationapimodels.EmailRequest{
		RecipientEmail: recipientEmail,
		RecipientName:  rec.RecipientName,
		CandidateName:  rec.CandidateName,
		StageName:      rec.StageName,
		ProcessTitle:   rec.ProcessTitle,
		MovedBy:        rec.MovedBy,
	})
	if err != nil {
		i.markFailed(rec, recipientEmail, err.Error())
		return
	}
	err = i.store.MarkSent(rec.ID, recipientEmail, emailID)
	if err != nil {
		logger.WithError(err).Error("ошибка сохранения статуса доставки уведомления")
		return
	}
	logger.WithField("email_id", emailID).Info("уведомление доставлено")
}

func (i *impl) markFailed(rec dbmodels.Notification, recipientEmail, reason string) {
	logger := i.GetLogger().
		WithField("notification_id", rec.ID).
		WithField("recipient_name", rec.RecipientName)
	logger.WithField("reason", reason).Warn("уведомление не доставлено")
	err := i.store.MarkFailed(rec.ID, recipientEmail, helpers.Truncate(reason, lastErrorMaxLen))
	if err != nil {
		logger.WithError(err).Error("ошибка сохранения статуса доставки уведомления")
	}
}
