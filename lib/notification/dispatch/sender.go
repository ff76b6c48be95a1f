package dispatch

import (
	"bytes"
	"context"
	"fmt"
	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"
	"recruitment-backend/lib/smtp"
	"recruitment-backend/lib/utils/helpers"
	notificationapimodels "recruitment-backend/models/api/notification"
	dbmodels "recruitment-backend/models/db"
	"strings"
)

const subjectPrefix = "Nuevo candidato en tu etapa: "

// MissingFieldsError не заполнены обязательные поля письма
type MissingFieldsError struct {
	Fields []string
}

func (e MissingFieldsError) Error() string {
	return "Faltan datos requeridos: " + strings.Join(e.Fields, ", ")
}

type Provider interface {
	// Send отправляет письмо ответственному этапа, возвращает id письма
	Send(ctx context.Context, req notificationapimodels.EmailRequest) (emailID string, err error)
}

var Instance Provider

func NewHandler(fromEmail, appUrl string) {
	Instance = NewSender(smtp.Instance, fromEmail, appUrl)
}

func NewSender(client smtp.Provider, fromEmail, appUrl string) Provider {
	return &impl{
		client:    client,
		fromEmail: fromEmail,
		appUrl:    appUrl,
	}
}

type impl struct {
	client    smtp.Provider
	fromEmail string
	appUrl    string
}

func (i impl) Send(ctx context.Context, req notificationapimodels.EmailRequest) (emailID string, err error) {
	logger := log.WithField("recipient_email", req.RecipientEmail).
		WithField("stage_name", req.StageName)
	if missing := req.MissingFields(); len(missing) != 0 {
		return "", MissingFieldsError{Fields: missing}
	}
	if helpers.IsContextDone(ctx) {
		return "", errors.New("отправка письма прервана")
	}
	if i.client == nil {
		return "", smtp.ErrNotConfigured
	}
	emailID = uuid.New().String()
	msg, err := i.compose(emailID, req)
	if err != nil {
		return "", err
	}
	err = i.client.SendMessage(i.fromEmail, []string{req.RecipientEmail}, msg)
	if err != nil {
		return "", errors.Wrap(err, "ошибка отправки письма")
	}
	logger.WithField("email_id", emailID).Info("письмо ответственному отправлено")
	return emailID, nil
}

func (i impl) compose(emailID string, req notificationapimodels.EmailRequest) (*bytes.Buffer, error) {
	data := emailData{
		RecipientName: req.RecipientName,
		CandidateName: req.CandidateName,
		StageName:     req.StageName,
		ProcessTitle:  req.ProcessTitle,
		MovedBy:       req.MovedBy,
		Message: dbmodels.Notification{
			CandidateName: req.CandidateName,
			StageName:     req.StageName,
			ProcessTitle:  req.ProcessTitle,
			MovedBy:       req.MovedBy,
		}.Message(),
		AppUrl: i.appUrl,
	}
	htmlBody := bytes.Buffer{}
	if err := emailTpl.Execute(&htmlBody, data); err != nil {
		return nil, errors.Wrap(err, "ошибка формирования письма")
	}
	textBody, err := plainText(htmlBody.String())
	if err != nil {
		return nil, errors.Wrap(err, "ошибка формирования текста письма")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", i.fromEmail)
	m.SetHeader("To", req.RecipientEmail)
	m.SetHeader("Subject", subjectPrefix+req.StageName)
	m.SetHeader("Message-ID", fmt.Sprintf("<%s@recruitment>", emailID))
	m.SetBody("text/plain", textBody)
	m.AddAlternative("text/html", htmlBody.String())

	result := &bytes.Buffer{}
	if _, err = m.WriteTo(result); err != nil {
		return nil, errors.Wrap(err, "ошибка формирования письма")
	}
	return result, nil
}

// plainText текстовая версия письма из html
func plainText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", err
	}
	lines := []string{
		collapseSpaces(doc.Find(".greeting").Text()),
		collapseSpaces(doc.Find(".message").Text()),
	}
	link, ok := doc.Find("a.button").Attr("href")
	if ok && link != "" {
		lines = append(lines, link)
	}
	return strings.Join(lines, "\n\n"), nil
}

func collapseSpaces(value string) string {
	return strings.Join(strings.Fields(value), " ")
}
