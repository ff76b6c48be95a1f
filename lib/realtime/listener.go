package realtime

import (
	"context"
	"encoding/json"
	"recruitment-backend/db"
	candidatestore "recruitment-backend/lib/candidate/store"
	pipelinecache "recruitment-backend/lib/pipeline-cache"
	stagestore "recruitment-backend/lib/process/stage-store"
	processstore "recruitment-backend/lib/process/store"
	timelinestore "recruitment-backend/lib/timeline/store"
	connectionhub "recruitment-backend/lib/ws/hub/connection-hub"
	"recruitment-backend/models"
	candidateapimodels "recruitment-backend/models/api/candidate"
	processapimodels "recruitment-backend/models/api/process"
	timelineapimodels "recruitment-backend/models/api/timeline"
	wsmodels "recruitment-backend/models/ws"
	"time"

	"github.com/lib/pq"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	minReconnectInterval = 10 * time.Second
	maxReconnectInterval = time.Minute
	pingInterval         = 90 * time.Second
)

// changePayload тело NOTIFY из триггера notify_pipeline_change
type changePayload struct {
	Table string            `json:"table"`
	Type  models.ChangeType `json:"type"`
	ID    string            `json:"id"`
}

type broadcaster interface {
	SendMessage(msg wsmodels.ServerMessage)
}

type listener struct {
	processes  processstore.Provider
	stages     stagestore.Provider
	candidates candidatestore.Provider
	timeline   timelinestore.Provider
	cache      pipelinecache.Provider
	hub        broadcaster
}

func newListener() listener {
	return listener{
		processes:  processstore.NewInstance(db.DB),
		stages:     stagestore.NewInstance(db.DB),
		candidates: candidatestore.NewInstance(db.DB),
		timeline:   timelinestore.NewInstance(db.DB),
		cache:      pipelinecache.Instance,
		hub:        connectionhub.Instance,
	}
}

func getLogger() *log.Entry {
	return log.WithField("channel", db.ChangeChannel)
}

// StartListener подписывается на канал изменений и поддерживает кэш в актуальном состоянии
func StartListener(ctx context.Context, connString string) error {
	logger := getLogger()
	pqListener := pq.NewListener(connString, minReconnectInterval, maxReconnectInterval, func(ev pq.ListenerEventType, err error) {
		if err != nil {
			logger.WithError(err).Warn("ошибка соединения слушателя изменений")
		}
	})
	if err := pqListener.Listen(db.ChangeChannel); err != nil {
		pqListener.Close()
		return errors.Wrap(err, "ошибка подписки на канал изменений")
	}
	l := newListener()
	go func() {
		defer pqListener.Close()
		for {
			select {
			case <-ctx.Done():
				logger.Info("слушатель изменений остановлен")
				return
			case n := <-pqListener.Notify:
				if n == nil {
					// после переподключения часть событий могла потеряться
					logger.Info("соединение восстановлено, перезагрузка кэша")
					if err := l.reload(); err != nil {
						logger.WithError(err).Error("ошибка перезагрузки кэша")
					}
					continue
				}
				if err := l.handleNotification(n.Extra); err != nil {
					logger.
						WithField("payload", n.Extra).
						WithError(err).
						Error("ошибка обработки изменения")
				}
			case <-time.After(pingInterval):
				go func() {
					if err := pqListener.Ping(); err != nil {
						logger.WithError(err).Warn("слушатель изменений не отвечает")
					}
				}()
			}
		}
	}()
	logger.Info("слушатель изменений запущен")
	return nil
}

func (l listener) reload() error {
	return LoadCache(l.cache, l.processes, l.stages, l.candidates)
}

func (l listener) handleNotification(extra string) error {
	payload := changePayload{}
	if err := json.Unmarshal([]byte(extra), &payload); err != nil {
		return errors.Wrap(err, "некорректное тело уведомления")
	}
	if payload.ID == "" {
		return errors.New("в уведомлении нет идентификатора записи")
	}
	data, err := l.apply(payload)
	if err != nil {
		return err
	}
	if l.hub != nil {
		l.hub.SendMessage(wsmodels.ServerMessage{
			Time:   time.Now().Format("2006-01-02 15:04:05"),
			Type:   wsmodels.MessageChange,
			Table:  payload.Table,
			Change: payload.Type,
			Data:   data,
		})
	}
	return nil
}

// apply обновляет кэш по изменению и возвращает запись для рассылки клиентам
func (l listener) apply(payload changePayload) (interface{}, error) {
	deleted := map[string]string{"id": payload.ID}
	switch payload.Table {
	case "processes":
		if payload.Type == models.ChangeDelete {
			l.cacheDelete(func(c pipelinecache.Provider) { c.Processes().Delete(payload.ID) })
			return deleted, nil
		}
		rec, err := l.processes.GetByID(payload.ID)
		if err != nil {
			return nil, errors.Wrap(err, "ошибка получения процесса")
		}
		if rec == nil {
			return deleted, nil
		}
		if l.cache != nil {
			if payload.Type == models.ChangeInsert {
				l.cache.Processes().Insert(*rec)
			} else {
				l.cache.Processes().Upsert(*rec)
			}
		}
		return processapimodels.Convert(*rec), nil
	case "stages":
		if payload.Type == models.ChangeDelete {
			l.cacheDelete(func(c pipelinecache.Provider) { c.Stages().Delete(payload.ID) })
			return deleted, nil
		}
		rec, err := l.stages.GetByID(payload.ID)
		if err != nil {
			return nil, errors.Wrap(err, "ошибка получения этапа")
		}
		if rec == nil {
			return deleted, nil
		}
		if l.cache != nil {
			if payload.Type == models.ChangeInsert {
				l.cache.Stages().Insert(*rec)
			} else {
				l.cache.Stages().Upsert(*rec)
			}
		}
		return processapimodels.StageConvert(*rec), nil
	case "candidates":
		if payload.Type == models.ChangeDelete {
			l.cacheDelete(func(c pipelinecache.Provider) { c.Candidates().Delete(payload.ID) })
			return deleted, nil
		}
		rec, err := l.candidates.GetByID(payload.ID)
		if err != nil {
			return nil, errors.Wrap(err, "ошибка получения кандидата")
		}
		if rec == nil {
			return deleted, nil
		}
		if l.cache != nil {
			if payload.Type == models.ChangeInsert {
				l.cache.Candidates().Insert(*rec)
			} else {
				l.cache.Candidates().Upsert(*rec)
			}
		}
		return candidateapimodels.Convert(*rec), nil
	case "timeline":
		if payload.Type == models.ChangeDelete {
			return deleted, nil
		}
		rec, err := l.timeline.GetByID(payload.ID)
		if err != nil {
			return nil, errors.Wrap(err, "ошибка получения события истории")
		}
		if rec == nil {
			return deleted, nil
		}
		return timelineapimodels.Convert(*rec), nil
	}
	return nil, errors.Errorf("неизвестная таблица: %v", payload.Table)
}

func (l listener) cacheDelete(fn func(c pipelinecache.Provider)) {
	if l.cache != nil {
		fn(l.cache)
	}
}
