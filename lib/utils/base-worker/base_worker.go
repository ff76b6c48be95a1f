package baseworker

import (
	"context"
	log "github.com/sirupsen/logrus"
	"runtime/debug"
	"time"
)

type BaseImpl struct {
	WorkerName    string
	firstRunDelay time.Duration
	runInterval   time.Duration
	wakeCh        chan struct{}
}

func NewInstance(WorkerName string, firstRunDelay, runInterval time.Duration) *BaseImpl {
	return &BaseImpl{
		WorkerName:    WorkerName,
		firstRunDelay: firstRunDelay,
		runInterval:   runInterval,
		wakeCh:        make(chan struct{}, 1),
	}
}

func (i *BaseImpl) GetLogger() *log.Entry {
	logger := log.
		WithField("worker_name", i.WorkerName)
	return logger
}

// Wake запускает задачу вне расписания, не блокируется если запуск уже запрошен
func (i *BaseImpl) Wake() {
	select {
	case i.wakeCh <- struct{}{}:
	default:
	}
}

func (i *BaseImpl) Run(ctx context.Context, jobFunc func(ctx context.Context)) {
	period := i.firstRunDelay
	logger := i.GetLogger()
	for {
		select {
		// проверяем не завершён ли ещё контекст и выходим, если завершён
		case <-ctx.Done():
			logger.Info("задача остановлена")
			return
		case <-i.wakeCh:
			logger.Debug("задача запущена вне расписания")
			i.runJob(ctx, jobFunc)
		case <-time.After(period):
			logger.Debug("задача запущена")
			i.runJob(ctx, jobFunc)
			logger.Debug("задача выполнена")
			period = i.runInterval
		}
	}
}

func (i *BaseImpl) runJob(ctx context.Context, jobFunc func(ctx context.Context)) {
	defer func() {
		if r := recover(); r != nil {
			i.GetLogger().
				WithField("panic_stack", string(debug.Stack())).
				Errorf("panic: (%v)", r)
		}
	}()
	jobFunc(ctx)
}
