package wsclient

import (
	"encoding/json"
	wsmodels "recruitment-backend/models/ws"
	"time"

	"github.com/gofiber/contrib/websocket"
	log "github.com/sirupsen/logrus"
)

// Reader источник входящих сообщений, *websocket.Conn
type Reader interface {
	ReadMessage() (messageType int, p []byte, err error)
}

// Replier отправляет ответ через хаб, запись в соединение делает только сессия
type Replier func(msg wsmodels.ServerMessage)

func NewClient(userID string, conn Reader, reply Replier) *WsClient {
	return &WsClient{
		conn:   conn,
		userID: userID,
		reply:  reply,
	}
}

type WsClient struct {
	conn   Reader
	userID string
	reply  Replier
}

var closeCodes []int

func init() {
	for i := websocket.CloseNormalClosure; i <= websocket.CloseTLSHandshake; i++ {
		closeCodes = append(closeCodes, i)
	}
}

// Dispatch читает сообщения до закрытия соединения
func (c *WsClient) Dispatch() {
	logger := log.WithField("user_id", c.userID)
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, closeCodes...) {
				logger.WithError(err).Error("ошибка получения сообщения")
			}
			return
		}
		c.handle(logger, data)
	}
}

func (c *WsClient) handle(logger *log.Entry, data []byte) {
	var msg wsmodels.ClientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		logger.WithField("ws_message", string(data)).Debug("неизвестное сообщение клиента")
		return
	}
	switch msg.Type {
	case "ping":
		if c.reply == nil {
			return
		}
		c.reply(wsmodels.ServerMessage{
			ToUserID: c.userID,
			Time:     time.Now().Format(time.RFC3339),
			Type:     wsmodels.MessagePong,
		})
	default:
		logger.WithField("ws_message", string(data)).Debug("ws-msg")
	}
}
