package initializers

import (
	"context"
	"recruitment-backend/config"
	"recruitment-backend/db"
	"recruitment-backend/fiberlog"
	candidatehandler "recruitment-backend/lib/candidate"
	candidatestore "recruitment-backend/lib/candidate/store"
	xlsexport "recruitment-backend/lib/export/xls"
	filestorage "recruitment-backend/lib/file-storage"
	notificationhandler "recruitment-backend/lib/notification"
	"recruitment-backend/lib/notification/dispatch"
	outboxworker "recruitment-backend/lib/notification/outbox-worker"
	pipelinecache "recruitment-backend/lib/pipeline-cache"
	processhandler "recruitment-backend/lib/process"
	stagestore "recruitment-backend/lib/process/stage-store"
	processstore "recruitment-backend/lib/process/store"
	"recruitment-backend/lib/realtime"
	timelinehandler "recruitment-backend/lib/timeline"
	usershandler "recruitment-backend/lib/users"
	connectionhub "recruitment-backend/lib/ws/hub/connection-hub"

	log "github.com/sirupsen/logrus"
)

var LoggerConfig *fiberlog.Config

// InitBase логгер и конфигурация, общие для всех команд
func InitBase() {
	LoggerConfig = InitLogger()
	config.InitConfig()
}

func InitAllServices(ctx context.Context) {
	InitBase()
	InitDBConnection(*config.Conf.Database.MigrateOnStart)
	InitS3(ctx)
	InitSmtp()
	InitCache()
	connectionhub.Init()
	filestorage.NewHandler()
	xlsexport.NewHandler()
	dispatch.NewHandler(config.Conf.Smtp.FromEmail, config.Conf.App.PublicUrl)
	usershandler.NewHandler()
	err := usershandler.Instance.EnsureAdmin(config.Conf.Auth.AdminEmail, config.Conf.Auth.AdminPassword)
	if err != nil {
		panic(err.Error())
	}
	processhandler.NewHandler()
	candidatehandler.NewHandler()
	timelinehandler.NewHandler()
	notificationhandler.NewHandler()
	initWorkers(ctx)
}

func InitCache() {
	pipelinecache.Init()
	err := realtime.LoadCache(pipelinecache.Instance,
		processstore.NewInstance(db.DB),
		stagestore.NewInstance(db.DB),
		candidatestore.NewInstance(db.DB))
	if err != nil {
		// без зеркала обработчики читают из БД
		log.WithError(err).Error("ошибка загрузки зеркала пайплайна")
	}
}

func initWorkers(ctx context.Context) {
	// Доставка уведомлений ответственным этапов
	outboxworker.StartWorker(ctx)

	// Рассылка изменений из БД подписчикам websocket
	if *config.Conf.Realtime.Enabled {
		if err := realtime.StartListener(ctx, dbConnString()); err != nil {
			log.WithError(err).Error("ошибка запуска слушателя изменений")
		}
	}
}
