package smtp

import (
	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"io"
)

var Instance Provider

var ErrNotConfigured = errors.New("smtp клиент не настроен")

type Provider interface {
	// SendMessage отправляет готовое MIME сообщение
	SendMessage(from string, to []string, message io.Reader) error
}

func Connect(user, password, host, port string, tlsEnabled bool) error {
	Instance = &impl{
		user:       user,
		password:   password,
		host:       host,
		port:       port,
		tlsEnabled: tlsEnabled,
	}
	return nil
}

type impl struct {
	user       string
	password   string
	host       string
	port       string
	tlsEnabled bool
}

func (i impl) SendMessage(from string, to []string, message io.Reader) (err error) {
	logger := log.WithField("sender", from).
		WithField("recipients", to)
	if i.host == "" || i.port == "" {
		logger.Warn("Письмо не отправлено, тк не настроен smtp клиент")
		return ErrNotConfigured
	}
	var auth sasl.Client
	if i.user != "" {
		auth = sasl.NewPlainClient("", i.user, i.password)
	}
	if i.tlsEnabled {
		err = smtp.SendMailTLS(i.host+":"+i.port, auth, from, to, message)
	} else {
		err = smtp.SendMail(i.host+":"+i.port, auth, from, to, message)
	}
	if err != nil {
		logger.WithError(err).Error("Ошибка отправки сообщения")
		return err
	}
	logger.Info("письмо отправлено")
	return nil
}
