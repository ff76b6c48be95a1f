package fiberlog

import (
	"strings"

	"github.com/sirupsen/logrus"
)

type Config struct {
	Logger *logrus.Logger
	Tags   []string
	// пути, по которым тело запроса не пишется в лог (пароли и т.п.)
	HideBodyPaths []string
	// префиксы путей, которые не логируются вовсе (частый опрос)
	SkipPaths []string
}

var ConfigDefault = Config{
	Tags:          []string{TagStatus, TagLatency, TagMethod, TagPath},
	HideBodyPaths: []string{"/auth/login", "/user"},
}

func hasPathSuffix(path string, list []string) bool {
	for _, p := range list {
		if strings.HasSuffix(path, p) {
			return true
		}
	}
	return false
}

func hasPathPrefix(path string, list []string) bool {
	for _, p := range list {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}
