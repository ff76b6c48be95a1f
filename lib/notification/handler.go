package notificationhandler

import (
	"context"
	"recruitment-backend/config"
	"recruitment-backend/db"
	"recruitment-backend/lib/notification/dispatch"
	outboxworker "recruitment-backend/lib/notification/outbox-worker"
	notificationstore "recruitment-backend/lib/notification/store"
	initchecker "recruitment-backend/lib/utils/init-checker"
	notificationapimodels "recruitment-backend/models/api/notification"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	List(userName string) ([]notificationapimodels.NotificationView, error)
	UnreadCount(userName string) (int64, error)
	MarkRead(id, userName string) (hMsg string, err error)
	ListFailed() ([]notificationapimodels.OutboxView, error)
	Requeue(id string) (hMsg string, err error)
	SendEmail(ctx context.Context, req notificationapimodels.EmailRequest) (emailID string, err error)
}

var Instance Provider

const listLimit = 100

func NewHandler() {
	instance := impl{
		store:       notificationstore.NewInstance(db.DB),
		sender:      dispatch.Instance,
		maxAttempts: config.Conf.Notify.MaxAttempts,
		wake: func() {
			if outboxworker.Instance != nil {
				outboxworker.Instance.Wake()
			}
		},
	}
	initchecker.CheckInit(
		"store", instance.store,
		"sender", instance.sender,
	)
	Instance = instance
}

type impl struct {
	store       notificationstore.Provider
	sender      dispatch.Provider
	maxAttempts int
	wake        func()
}

func (i impl) getLogger(userName string) *log.Entry {
	logger := log.WithField("user_name", userName)
	return logger
}

func (i impl) List(userName string) ([]notificationapimodels.NotificationView, error) {
	list, err := i.store.ListByRecipient(userName, listLimit)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения списка уведомлений")
	}
	result := make([]notificationapimodels.NotificationView, 0, len(list))
	for _, rec := range list {
		result = append(result, notificationapimodels.Convert(rec))
	}
	return result, nil
}

func (i impl) UnreadCount(userName string) (int64, error) {
	count, err := i.store.CountUnread(userName)
	if err != nil {
		return 0, errors.Wrap(err, "ошибка получения количества непрочитанных уведомлений")
	}
	return count, nil
}

func (i impl) MarkRead(id, userName string) (hMsg string, err error) {
	logger := i.getLogger(userName).
		WithField("notification_id", id)
	rec, err := i.store.GetByID(id)
	if err != nil {
		return "", errors.Wrap(err, "ошибка получения уведомления")
	}
	if rec == nil || rec.RecipientName != userName {
		return "уведомление не найдено", nil
	}
	changed, err := i.store.MarkRead(id, userName)
	if err != nil {
		return "", errors.Wrap(err, "ошибка изменения статуса уведомления")
	}
	if changed {
		logger.Info("уведомление прочитано")
	}
	return "", nil
}

func (i impl) ListFailed() ([]notificationapimodels.OutboxView, error) {
	list, err := i.store.ListFailed(i.maxAttempts, listLimit)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения списка недоставленных уведомлений")
	}
	result := make([]notificationapimodels.OutboxView, 0, len(list))
	for _, rec := range list {
		result = append(result, notificationapimodels.OutboxConvert(rec))
	}
	return result, nil
}

func (i impl) Requeue(id string) (hMsg string, err error) {
	changed, err := i.store.Requeue(id)
	if err != nil {
		return "", errors.Wrap(err, "ошибка повторной постановки уведомления в очередь")
	}
	if !changed {
		return "уведомление не найдено или уже доставлено", nil
	}
	log.WithField("notification_id", id).Info("уведомление поставлено в очередь повторно")
	if i.wake != nil {
		i.wake()
	}
	return "", nil
}

func (i impl) SendEmail(ctx context.Context, req notificationapimodels.EmailRequest) (emailID string, err error) {
	if i.sender == nil {
		return "", errors.New("отправка писем не настроена")
	}
	return i.sender.Send(ctx, req)
}
