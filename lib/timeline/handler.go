package timelinehandler

import (
	"recruitment-backend/db"
	candidatestore "recruitment-backend/lib/candidate/store"
	pipelinecache "recruitment-backend/lib/pipeline-cache"
	timelinestore "recruitment-backend/lib/timeline/store"
	"recruitment-backend/models"
	timelineapimodels "recruitment-backend/models/api/timeline"
	dbmodels "recruitment-backend/models/db"
	"strings"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Provider interface {
	List(candidateID string) (list []timelineapimodels.TimelineView, hMsg string, err error)
	AddComment(candidateID, author, text string) (view timelineapimodels.TimelineView, hMsg string, err error)
}

var Instance Provider

type txStores struct {
	candidates candidatestore.Provider
	timeline   timelinestore.Provider
}

func NewHandler() {
	Instance = impl{
		candidateStore: candidatestore.NewInstance(db.DB),
		timelineStore:  timelinestore.NewInstance(db.DB),
		cache:          pipelinecache.Instance,
		inTx: func(fn func(s txStores) error) error {
			return db.DB.Transaction(func(tx *gorm.DB) error {
				return fn(txStores{
					candidates: candidatestore.NewInstance(tx),
					timeline:   timelinestore.NewInstance(tx),
				})
			})
		},
	}
}

type impl struct {
	candidateStore candidatestore.Provider
	timelineStore  timelinestore.Provider
	cache          pipelinecache.Provider
	inTx           func(fn func(s txStores) error) error
}

func (i impl) getLogger(candidateID string) *log.Entry {
	logger := log.WithField("candidate_id", candidateID)
	return logger
}

func (i impl) List(candidateID string) (list []timelineapimodels.TimelineView, hMsg string, err error) {
	rec, err := i.candidateStore.GetByID(candidateID)
	if err != nil {
		return nil, "", errors.Wrap(err, "ошибка получения кандидата")
	}
	if rec == nil {
		return nil, "кандидат не найден", nil
	}
	events, err := i.timelineStore.List(candidateID)
	if err != nil {
		return nil, "", errors.Wrap(err, "ошибка получения истории кандидата")
	}
	list = make([]timelineapimodels.TimelineView, 0, len(events))
	for _, event := range events {
		list = append(list, timelineapimodels.Convert(event))
	}
	return list, "", nil
}

// AddComment добавляет комментарий в историю и увеличивает счетчик комментариев кандидата
func (i impl) AddComment(candidateID, author, text string) (view timelineapimodels.TimelineView, hMsg string, err error) {
	logger := i.getLogger(candidateID).
		WithField("author", author)
	if err = (timelineapimodels.CommentRequest{Text: text}).Validate(); err != nil {
		return view, err.Error(), nil
	}
	rec, err := i.candidateStore.GetByID(candidateID)
	if err != nil {
		return view, "", errors.Wrap(err, "ошибка получения кандидата")
	}
	if rec == nil {
		return view, "кандидат не найден", nil
	}
	event := dbmodels.TimelineEvent{
		CandidateID: candidateID,
		Type:        models.TimelineComment,
		Title:       "",
		Description: strings.TrimSpace(text),
		Author:      author,
		Date:        time.Now().Truncate(time.Microsecond),
	}
	err = i.inTx(func(s txStores) error {
		id, err := s.timeline.Create(event)
		if err != nil {
			return errors.Wrap(err, "ошибка добавления комментария")
		}
		event.ID = id
		err = s.candidates.IncrementComments(candidateID)
		if err != nil {
			return errors.Wrap(err, "ошибка обновления счетчика комментариев")
		}
		return nil
	})
	if err != nil {
		return view, "", err
	}
	i.refreshCache(candidateID)
	logger.Info("добавлен комментарий к кандидату")
	return timelineapimodels.Convert(event), "", nil
}

func (i impl) refreshCache(candidateID string) {
	if i.cache == nil {
		return
	}
	rec, err := i.candidateStore.GetByID(candidateID)
	if err != nil || rec == nil {
		i.getLogger(candidateID).WithError(err).Warn("не удалось обновить кандидата в кэше")
		return
	}
	i.cache.Candidates().Upsert(*rec)
}
