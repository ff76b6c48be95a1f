package apiv1

import (
	"recruitment-backend/controllers"
	notificationhandler "recruitment-backend/lib/notification"
	"recruitment-backend/lib/notification/dispatch"
	"recruitment-backend/middleware"
	apimodels "recruitment-backend/models/api"
	notificationapimodels "recruitment-backend/models/api/notification"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
)

type notificationApiController struct {
	controllers.BaseAPIController
}

func InitNotificationApiRouters(app *fiber.App) {
	controller := notificationApiController{}
	app.Route("notification", func(router fiber.Router) {
		router.Get("list", controller.list)
		router.Get("unread_count", controller.unreadCount)
		router.Put(":id/read", controller.markRead)
		router.Post("send-email", controller.sendEmail)
		router.Route("outbox", func(outboxRoute fiber.Router) {
			outboxRoute.Use(middleware.AdminRequired())
			outboxRoute.Get("failed", controller.failed)
			outboxRoute.Put(":id/requeue", controller.requeue)
		})
	})
}

// @Summary Список
// @Tags Уведомления
// @Description Уведомления текущего пользователя
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]notificationapimodels.NotificationView}
// @Failure 500 {object} apimodels.Response
// @router /api/v1/notification/list [get]
func (c *notificationApiController) list(ctx *fiber.Ctx) error {
	list, err := notificationhandler.Instance.List(middleware.GetUserName(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка уведомлений")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Кол-во непрочитанных
// @Tags Уведомления
// @Description Кол-во непрочитанных уведомлений текущего пользователя
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=notificationapimodels.UnreadCount}
// @Failure 500 {object} apimodels.Response
// @router /api/v1/notification/unread_count [get]
func (c *notificationApiController) unreadCount(ctx *fiber.Ctx) error {
	count, err := notificationhandler.Instance.UnreadCount(middleware.GetUserName(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения количества уведомлений")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(notificationapimodels.UnreadCount{Count: count}))
}

// @Summary Прочитано
// @Tags Уведомления
// @Description Отметить уведомление прочитанным
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/notification/{id}/read [put]
func (c *notificationApiController) markRead(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	hMsg, err := notificationhandler.Instance.MarkRead(id, middleware.GetUserName(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка изменения статуса уведомления")
	}
	if hMsg != "" {
		return ctx.Status(fiber.StatusNotFound).JSON(apimodels.NewError(hMsg))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Недоставленные
// @Tags Уведомления
// @Description Уведомления, которые не удалось доставить по почте
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]notificationapimodels.OutboxView}
// @Failure 403 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/notification/outbox/failed [get]
func (c *notificationApiController) failed(ctx *fiber.Ctx) error {
	list, err := notificationhandler.Instance.ListFailed()
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка недоставленных уведомлений")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Повторная отправка
// @Tags Уведомления
// @Description Вернуть недоставленное уведомление в очередь отправки
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/notification/outbox/{id}/requeue [put]
func (c *notificationApiController) requeue(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	hMsg, err := notificationhandler.Instance.Requeue(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка повторной отправки уведомления")
	}
	if hMsg != "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(hMsg))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Отправка письма
// @Tags Уведомления
// @Description Письмо ответственному этапа о новом кандидате
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 notificationapimodels.EmailRequest	true	"request body"
// @Success 200 {object} notificationapimodels.EmailSuccessResponse
// @Failure 400 {object} notificationapimodels.EmailErrorResponse
// @Failure 500 {object} notificationapimodels.EmailErrorResponse
// @router /api/v1/notification/send-email [post]
func (c *notificationApiController) sendEmail(ctx *fiber.Ctx) error {
	var payload notificationapimodels.EmailRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(notificationapimodels.EmailErrorResponse{
			Error:   "Solicitud inválida",
			Details: err.Error(),
		})
	}
	emailID, err := notificationhandler.Instance.SendEmail(ctx.UserContext(), payload)
	if err != nil {
		var missing dispatch.MissingFieldsError
		if errors.As(err, &missing) {
			return ctx.Status(fiber.StatusBadRequest).JSON(notificationapimodels.EmailErrorResponse{
				Error:       "Faltan datos requeridos",
				MissingData: missing.Fields,
			})
		}
		c.GetLogger(ctx).
			WithError(err).
			WithField("recipient_email", payload.RecipientEmail).
			Error("ошибка отправки письма")
		return ctx.Status(fiber.StatusInternalServerError).JSON(notificationapimodels.EmailErrorResponse{
			Error:   "Error al enviar el correo",
			Details: err.Error(),
		})
	}
	return ctx.Status(fiber.StatusOK).JSON(notificationapimodels.EmailSuccessResponse{
		Success: true,
		EmailID: emailID,
		Message: "Correo enviado correctamente",
	})
}
