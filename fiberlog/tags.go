package fiberlog

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// data общие для запроса значения
type data struct {
	pid   int
	start time.Time
	end   time.Time
}

// FuncTag вычисляет значение поля лога по запросу
type FuncTag func(c *fiber.Ctx, d *data) interface{}

const (
	TagPid       = "pid"
	TagLatency   = "latency"
	TagStatus    = "status"
	TagMethod    = "method"
	TagPath      = "path"
	TagURL       = "url"
	TagIP        = "ip"
	TagUserAgent = "ua"
	TagBody      = "body"
	TagResBody   = "resBody"
	TagBytesSent = "bytesSent"
	TagRoute     = "route"
	RequestID    = "requestId"
)

// maxBodyLen тело запроса и ответа длиннее этого обрезается
const maxBodyLen = 2048

func getFuncTagMap(cfg Config) map[string]FuncTag {
	all := map[string]FuncTag{
		TagPid: func(c *fiber.Ctx, d *data) interface{} {
			return d.pid
		},
		TagLatency: func(c *fiber.Ctx, d *data) interface{} {
			return d.end.Sub(d.start).String()
		},
		TagStatus: func(c *fiber.Ctx, d *data) interface{} {
			return c.Response().StatusCode()
		},
		TagMethod: func(c *fiber.Ctx, d *data) interface{} {
			return c.Method()
		},
		TagPath: func(c *fiber.Ctx, d *data) interface{} {
			return c.Path()
		},
		TagURL: func(c *fiber.Ctx, d *data) interface{} {
			return c.OriginalURL()
		},
		TagIP: func(c *fiber.Ctx, d *data) interface{} {
			return c.IP()
		},
		TagUserAgent: func(c *fiber.Ctx, d *data) interface{} {
			return c.Get(fiber.HeaderUserAgent)
		},
		TagBody: func(c *fiber.Ctx, d *data) interface{} {
			if hasPathSuffix(c.Path(), cfg.HideBodyPaths) {
				return "***"
			}
			if !isTextContent(string(c.Request().Header.ContentType())) {
				return ""
			}
			return cut(string(c.Body()))
		},
		TagResBody: func(c *fiber.Ctx, d *data) interface{} {
			if !isTextContent(string(c.Response().Header.ContentType())) {
				return ""
			}
			return cut(string(c.Response().Body()))
		},
		TagBytesSent: func(c *fiber.Ctx, d *data) interface{} {
			return len(c.Response().Body())
		},
		TagRoute: func(c *fiber.Ctx, d *data) interface{} {
			if r := c.Route(); r != nil {
				return r.Path
			}
			return ""
		},
		RequestID: func(c *fiber.Ctx, d *data) interface{} {
			id := c.Get(fiber.HeaderXRequestID)
			if id == "" {
				id = c.GetRespHeader(fiber.HeaderXRequestID)
			}
			return id
		},
	}
	result := make(map[string]FuncTag, len(cfg.Tags))
	for _, tag := range cfg.Tags {
		if ft, ok := all[tag]; ok {
			result[tag] = ft
		}
	}
	return result
}

func isTextContent(contentType string) bool {
	if contentType == "" {
		return true
	}
	for _, prefix := range []string{fiber.MIMEApplicationJSON, fiber.MIMETextPlain, fiber.MIMEApplicationForm} {
		if len(contentType) >= len(prefix) && contentType[:len(prefix)] == prefix {
			return true
		}
	}
	return false
}

func cut(value string) string {
	if len(value) > maxBodyLen {
		return value[:maxBodyLen] + "..."
	}
	return value
}
