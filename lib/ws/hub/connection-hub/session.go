package connectionhub

import (
	"context"
	"github.com/gofiber/contrib/websocket"
	log "github.com/sirupsen/logrus"
	"time"
)

const sendBufferSize = 16

type clientSession struct {
	conn     *websocket.Conn
	userName string

	// Outbound mesages, buffered.
	sendCh chan any
	write  func(msg any) error
	ctx    context.Context
	stop   func()
}

func newSession(userName string, conn *websocket.Conn) *clientSession {
	sess := newSessionWithWriter(userName, nil)
	sess.conn = conn
	sess.write = sess.writeConn
	go sess.startSend()
	return sess
}

func newSessionWithWriter(userName string, write func(msg any) error) *clientSession {
	ctx, cancelFn := context.WithCancel(context.TODO())
	return &clientSession{
		userName: userName,
		sendCh:   make(chan any, sendBufferSize),
		write:    write,
		ctx:      ctx,
		stop:     cancelFn,
	}
}

// enqueue не блокирует хаб, при переполнении сообщение отбрасывается
func (s *clientSession) enqueue(msg any) {
	if s.isClosed() {
		return
	}
	select {
	case s.sendCh <- msg:
	default:
		log.WithField("user_name", s.userName).Warn("очередь сообщений переполнена, сообщение отброшено")
	}
}

// enqueueWait ждет место в очереди, пока сессия открыта
func (s *clientSession) enqueueWait(msg any) bool {
	select {
	case s.sendCh <- msg:
		return true
	case <-s.ctx.Done():
		return false
	}
}

func (s *clientSession) isClosed() bool {
	return s.ctx.Err() != nil
}

func (s *clientSession) startSend() {
	for {
		select {
		case <-s.ctx.Done():
			s.close()
			return
		case msg := <-s.sendCh:
			err := s.write(msg)
			if err != nil {
				log.WithError(err).Error("ошибка отправки сообщения")
			}
		}
	}
}

func (s *clientSession) writeConn(msg any) error {
	if s.conn == nil || s.conn.Conn == nil {
		return nil
	}
	return s.conn.WriteJSON(msg)
}

func (s *clientSession) close() {
	if s.conn == nil || s.conn.Conn == nil {
		return
	}
	err := s.conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Millisecond))
	if err != nil {
		log.WithError(err).Error("cant close")
	}
}
