package wsclient

import (
	"testing"

	wsmodels "recruitment-backend/models/ws"

	"github.com/gofiber/contrib/websocket"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

type fakeReader struct {
	messages []string
}

func (f *fakeReader) ReadMessage() (int, []byte, error) {
	if len(f.messages) == 0 {
		return 0, nil, errors.New("connection closed")
	}
	msg := f.messages[0]
	f.messages = f.messages[1:]
	return websocket.TextMessage, []byte(msg), nil
}

func TestDispatch(t *testing.T) {
	t.Run(`ping получает pong`, func(t *testing.T) {
		var replies []wsmodels.ServerMessage
		reader := &fakeReader{messages: []string{`{"type":"ping"}`, `не json`, `{"type":"other"}`}}
		NewClient("u1", reader, func(msg wsmodels.ServerMessage) {
			replies = append(replies, msg)
		}).Dispatch()
		require.Len(t, replies, 1)
		require.Equal(t, wsmodels.MessagePong, replies[0].Type)
		require.Equal(t, "u1", replies[0].ToUserID)
		require.Empty(t, reader.messages)
	})
	t.Run(`без replier ping игнорируется`, func(t *testing.T) {
		reader := &fakeReader{messages: []string{`{"type":"ping"}`}}
		require.NotPanics(t, func() {
			NewClient("u1", reader, nil).Dispatch()
		})
	})
}
