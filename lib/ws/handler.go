package ws

import (
	wsclient "recruitment-backend/lib/ws/client"
	connectionhub "recruitment-backend/lib/ws/hub/connection-hub"
	"recruitment-backend/middleware"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

func InitWs(app *fiber.App) {
	app.Use("", func(ctx *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(ctx) {
			return fiber.ErrUpgradeRequired
		}
		ctx.Locals("userID", middleware.GetUserID(ctx))
		ctx.Locals("userName", middleware.GetUserName(ctx))
		return ctx.Next()
	})
	app.Get("/", websocket.New(pipelineHandler))
}

// @Summary Изменения пайплайна и уведомления
// @Tags Websocket
// @Description Поток изменений процессов, этапов, кандидатов, истории и уведомления текущему пользователю
// @Param   Authorization		header		string		true		"Authorization token"
// @Success 200 {object} wsmodels.ServerMessage
// @Failure 400
// @Failure 403
// @Failure 500
// @router /ws [get]
func pipelineHandler(c *websocket.Conn) {
	userID, _ := c.Locals("userID").(string)
	userName, _ := c.Locals("userName").(string)
	client := wsclient.NewClient(userID, c, connectionhub.Instance.SendMessage)
	connectionhub.Instance.AddClient(userID, userName, c)
	defer func() {
		connectionhub.Instance.DeleteClient(userID, c)
	}()
	client.Dispatch()
}
