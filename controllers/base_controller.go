package controllers

import (
	"io"
	"recruitment-backend/middleware"
	apimodels "recruitment-backend/models/api"
	dbmodels "recruitment-backend/models/db"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type BaseAPIController struct{}

func (c *BaseAPIController) BodyParser(ctx *fiber.Ctx, out interface{}) error {
	if err := ctx.BodyParser(out); err != nil {
		log.WithError(err).Error("ошибка распознавания запроса")
		return errors.New("не удалось получить данные из запроса")
	}
	return nil
}

func (c *BaseAPIController) GetID(ctx *fiber.Ctx) (string, error) {
	return c.GetParam(ctx, "id")
}

func (c *BaseAPIController) GetParam(ctx *fiber.Ctx, name string) (string, error) {
	value := ctx.Params(name)
	if value == "" {
		return "", errors.Errorf("не указан параметр %v", name)
	}
	return value, nil
}

func (c *BaseAPIController) GetLogger(ctx *fiber.Ctx) *log.Entry {
	logger := log.
		WithField("method", ctx.Method()).
		WithField("path", ctx.Path())
	if userID := middleware.GetUserID(ctx); userID != "" {
		logger = logger.WithField("user_id", userID)
	}
	return logger
}

// SendError логирует внутреннюю ошибку и отдает клиенту только человекочитаемое сообщение
func (c *BaseAPIController) SendError(ctx *fiber.Ctx, logger *log.Entry, err error, msg string) error {
	logger.WithError(err).Error(msg)
	return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(msg))
}

// ReadFormFile читает файл из multipart формы
func (c *BaseAPIController) ReadFormFile(ctx *fiber.Ctx, field string) (*dbmodels.UploadFileInfo, error) {
	file, err := ctx.FormFile(field)
	if err != nil {
		return nil, errors.New("файл не передан")
	}
	buffer, err := file.Open()
	if err != nil {
		c.GetLogger(ctx).WithError(err).Error("ошибка при получении файла")
		return nil, errors.New("не удалось прочитать файл")
	}
	defer buffer.Close()
	body, err := io.ReadAll(buffer)
	if err != nil {
		c.GetLogger(ctx).WithError(err).Error("ошибка при загрузке файла")
		return nil, errors.New("не удалось прочитать файл")
	}
	return &dbmodels.UploadFileInfo{
		FileName:    file.Filename,
		ContentType: file.Header.Get(fiber.HeaderContentType),
		Body:        body,
	}, nil
}
