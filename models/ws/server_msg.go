package wsmodels

import "recruitment-backend/models"

type MessageType string

const (
	MessageChange       MessageType = "change"       // изменение записи пайплайна
	MessageNotification MessageType = "notification" // уведомление пользователю
	MessagePong         MessageType = "pong"         // ответ на ping клиента
)

// ClientMessage входящее сообщение клиента, поддерживается только ping
type ClientMessage struct {
	Type string `json:"type"`
}

type ServerMessage struct {
	ToUserID   string            `json:"-"`      // пусто - всем подключенным
	ToUserName string            `json:"-"`      // получатель по имени, для уведомлений ответственным
	Time       string            `json:"time"`   // время события
	Type       MessageType       `json:"type"`   // тип сообщения
	Table      string            `json:"table"`  // таблица, для изменений
	Change     models.ChangeType `json:"change"` // INSERT/UPDATE/DELETE
	Data       interface{}       `json:"data"`   // запись
	Msg        string            `json:"msg"`    // текст события
}
