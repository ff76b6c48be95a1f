package main

import (
	"os"
	"recruitment-backend/cli"

	log "github.com/sirupsen/logrus"
)

// @title Recruitment pipeline API
// @version 1.0
// @BasePath /
func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		log.WithError(err).Error("ошибка выполнения команды")
		os.Exit(1)
	}
}
