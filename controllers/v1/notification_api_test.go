package apiv1

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	notificationhandler "recruitment-backend/lib/notification"
	"recruitment-backend/lib/notification/dispatch"
	apimodels "recruitment-backend/models/api"
	notificationapimodels "recruitment-backend/models/api/notification"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

type fakeNotificationHandler struct {
	sendErr error
	sent    []notificationapimodels.EmailRequest
}

func (f *fakeNotificationHandler) List(userName string) ([]notificationapimodels.NotificationView, error) {
	return []notificationapimodels.NotificationView{}, nil
}

func (f *fakeNotificationHandler) UnreadCount(userName string) (int64, error) {
	return 0, nil
}

func (f *fakeNotificationHandler) MarkRead(id, userName string) (hMsg string, err error) {
	return "", nil
}

func (f *fakeNotificationHandler) ListFailed() ([]notificationapimodels.OutboxView, error) {
	return []notificationapimodels.OutboxView{}, nil
}

func (f *fakeNotificationHandler) Requeue(id string) (hMsg string, err error) {
	return "", nil
}

func (f *fakeNotificationHandler) SendEmail(ctx context.Context, req notificationapimodels.EmailRequest) (emailID string, err error) {
	if missing := req.MissingFields(); len(missing) > 0 {
		return "", dispatch.MissingFieldsError{Fields: missing}
	}
	if f.sendErr != nil {
		return "", f.sendErr
	}
	f.sent = append(f.sent, req)
	return "email-1", nil
}

func newNotificationApp(fake *fakeNotificationHandler) *fiber.App {
	notificationhandler.Instance = fake
	app := fiber.New()
	InitNotificationApiRouters(app)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) (int, []byte) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req, -1)
	require.Nil(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.Nil(t, err)
	return resp.StatusCode, data
}

func TestSendEmail(t *testing.T) {
	t.Run(`письмо отправлено`, func(t *testing.T) {
		fake := &fakeNotificationHandler{}
		app := newNotificationApp(fake)
		status, body := doJSON(t, app, fiber.MethodPost, "/notification/send-email", `{
			"recipientEmail": "maria@example.com",
			"recipientName": "María López",
			"candidateName": "Ana Pérez",
			"stageName": "Entrevista Técnica",
			"processTitle": "Backend Developer",
			"movedBy": "Juan"
		}`)
		require.Equal(t, fiber.StatusOK, status)

		var resp notificationapimodels.EmailSuccessResponse
		require.Nil(t, json.Unmarshal(body, &resp))
		require.True(t, resp.Success)
		require.Equal(t, "email-1", resp.EmailID)
		require.NotEmpty(t, resp.Message)
		require.Len(t, fake.sent, 1)
		require.Equal(t, "Entrevista Técnica", fake.sent[0].StageName)
	})

	t.Run(`не заполнены обязательные поля`, func(t *testing.T) {
		fake := &fakeNotificationHandler{}
		app := newNotificationApp(fake)
		status, body := doJSON(t, app, fiber.MethodPost, "/notification/send-email", `{
			"recipientEmail": "maria@example.com",
			"candidateName": "Ana Pérez"
		}`)
		require.Equal(t, fiber.StatusBadRequest, status)

		var resp notificationapimodels.EmailErrorResponse
		require.Nil(t, json.Unmarshal(body, &resp))
		require.Equal(t, "Faltan datos requeridos", resp.Error)
		require.Equal(t, []string{"stageName", "processTitle"}, resp.MissingData)
		require.Empty(t, fake.sent)
	})

	t.Run(`ошибка доставки`, func(t *testing.T) {
		fake := &fakeNotificationHandler{sendErr: errors.New("smtp unavailable")}
		app := newNotificationApp(fake)
		status, body := doJSON(t, app, fiber.MethodPost, "/notification/send-email", `{
			"recipientEmail": "maria@example.com",
			"candidateName": "Ana Pérez",
			"stageName": "Entrevista Final",
			"processTitle": "Backend Developer"
		}`)
		require.Equal(t, fiber.StatusInternalServerError, status)

		var resp notificationapimodels.EmailErrorResponse
		require.Nil(t, json.Unmarshal(body, &resp))
		require.NotEmpty(t, resp.Error)
		require.Equal(t, "smtp unavailable", resp.Details)
	})

	t.Run(`некорректное тело запроса`, func(t *testing.T) {
		app := newNotificationApp(&fakeNotificationHandler{})
		status, _ := doJSON(t, app, fiber.MethodPost, "/notification/send-email", `{"recipientEmail":`)
		require.Equal(t, fiber.StatusBadRequest, status)
	})
}

func TestOutboxAccess(t *testing.T) {
	t.Run(`без роли администратора`, func(t *testing.T) {
		app := newNotificationApp(&fakeNotificationHandler{})
		status, body := doJSON(t, app, fiber.MethodGet, "/notification/outbox/failed", "")
		require.Equal(t, fiber.StatusForbidden, status)

		var resp apimodels.Response
		require.Nil(t, json.Unmarshal(body, &resp))
		require.Equal(t, "fail", resp.Status)
	})

	t.Run(`непрочитанные`, func(t *testing.T) {
		app := newNotificationApp(&fakeNotificationHandler{})
		status, body := doJSON(t, app, fiber.MethodGet, "/notification/unread_count", "")
		require.Equal(t, fiber.StatusOK, status)
		require.Contains(t, string(body), `"count":0`)
	})
}
