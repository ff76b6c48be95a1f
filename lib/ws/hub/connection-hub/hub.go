package connectionhub

import (
	"recruitment-backend/db"
	notificationstore "recruitment-backend/lib/notification/store"
	notificationapimodels "recruitment-backend/models/api/notification"
	wsmodels "recruitment-backend/models/ws"
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	AddClient(userID, userName string, conn *websocket.Conn)
	DeleteClient(userID string, conn *websocket.Conn)
	SendMessage(msg wsmodels.ServerMessage)
	SendClose(userID string)
	IsConnected(userID string) bool
}

var Instance Provider

// delayedLimit сколько непрочитанных уведомлений отправляется при подключении
const delayedLimit = 50

func Init() {
	Instance = &impl{
		clients: map[string]*clientSession{},
		store:   notificationstore.NewInstance(db.DB),
	}
}

type impl struct {
	mu      sync.RWMutex
	clients map[string]*clientSession //map[userID]
	store   notificationstore.Provider
}

func (i *impl) DeleteClient(userID string, conn *websocket.Conn) {
	i.mu.Lock()
	defer i.mu.Unlock()
	sess, ok := i.clients[userID]
	if !ok || (conn != nil && sess.conn != conn) {
		return
	}
	delete(i.clients, userID)
	sess.stop()
}

func (i *impl) AddClient(userID, userName string, conn *websocket.Conn) {
	i.addSession(userID, newSession(userName, conn))
	go i.sendDelayedMessages(userID, userName)
}

func (i *impl) addSession(userID string, sess *clientSession) {
	i.mu.Lock()
	defer i.mu.Unlock()
	oldSess, ok := i.clients[userID]
	if ok {
		oldSess.stop()
	}
	i.clients[userID] = sess
}

// SendMessage отправляет сообщение пользователю по id, по имени или всем подключенным
func (i *impl) SendMessage(msg wsmodels.ServerMessage) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	if msg.ToUserID != "" {
		sess, ok := i.clients[msg.ToUserID]
		if ok {
			sess.enqueue(msg)
		}
		return
	}
	for _, sess := range i.clients {
		if msg.ToUserName != "" && sess.userName != msg.ToUserName {
			continue
		}
		sess.enqueue(msg)
	}
}

func (i *impl) SendClose(userID string) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	sess, ok := i.clients[userID]
	if ok {
		sess.stop()
	}
}

func (i *impl) IsConnected(userID string) bool {
	i.mu.RLock()
	defer i.mu.RUnlock()
	sess, ok := i.clients[userID]
	if !ok || sess.isClosed() {
		return false
	}
	return true
}

func (i *impl) sendDelayedMessages(userID, userName string) {
	logger := log.WithField("user_id", userID)
	if i.store == nil || userName == "" {
		return
	}
	i.mu.RLock()
	sess, ok := i.clients[userID]
	i.mu.RUnlock()
	if !ok {
		return
	}
	list, err := i.store.ListUnread(userName, delayedLimit)
	if err != nil {
		logger.WithError(err).Error("ошибка получения списка непрочитанных уведомлений")
		return
	}
	for _, item := range list {
		view := notificationapimodels.Convert(item)
		sent := sess.enqueueWait(wsmodels.ServerMessage{
			ToUserID: userID,
			Time:     item.CreatedAt.Format(time.RFC3339),
			Type:     wsmodels.MessageNotification,
			Table:    "notifications",
			Data:     view,
			Msg:      view.Message,
		})
		if !sent {
			return
		}
	}
}
