package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"recruitment-backend/config"
	apiv1 "recruitment-backend/controllers/v1"
	_ "recruitment-backend/docs"
	"recruitment-backend/fiberlog"
	"recruitment-backend/initializers"
	"recruitment-backend/lib/ws"
	"recruitment-backend/middleware"
	"sync"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberRecover "github.com/gofiber/fiber/v2/middleware/recover"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const (
	bodyLimit     = 20 * 1024 * 1024
	documentLimit = 10 * 1024 * 1024
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Запуск API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context())
		},
	}
}

func serve(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	initializers.InitAllServices(ctx)

	app := newApp()

	// gracefully shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	wg := sync.WaitGroup{}
	wg.Add(1)
	go func() {
		defer wg.Done()
		select {
		case <-c:
		case <-ctx.Done():
		}
		log.Info("Gracefully shutting down...")
		cancel()
		if err := app.Shutdown(); err != nil {
			log.WithError(err).Error("Error when try gracefully shutting down")
		}
		time.Sleep(time.Second)
		log.Info("Gracefully shutting down finished")
	}()

	// run HTTP server
	err := app.Listen(fmt.Sprintf("%s:%d", config.Conf.App.ListenAddr, config.Conf.App.Port))
	cancel()
	wg.Wait()
	if err != nil {
		return err
	}
	log.Info("HTTP server successfully stopped")
	return nil
}

func newApp() *fiber.App {
	app := fiber.New(fiber.Config{
		BodyLimit: bodyLimit,
	})
	app.Use(fiberRecover.New())

	swaggerCfg := swagger.Config{
		Path:     "/swagger",
		FilePath: "./docs/swagger.json",
	}
	app.Use(swagger.New(swaggerCfg))

	//api
	apiV1 := fiber.New(fiber.Config{
		BodyLimit: bodyLimit,
	})
	apiV1.Use(fiberlog.New(*initializers.LoggerConfig))
	apiV1.Use(cors.New(cors.Config{
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PATCH, DELETE, PUT",
	}))
	apiV1.Use(middleware.ErrNotify(config.Conf.App.ErrNotifyAddr))
	apiV1.Use(middleware.WithBodyLimit(documentLimit))
	apiV1.Use([]string{"/user", "/process", "/candidate", "/notification"}, middleware.AuthorizationRequired())
	app.Mount("/api/v1", apiV1)
	apiv1.InitAuthApiRouters(apiV1)
	apiv1.InitUserApiRouters(apiV1)
	apiv1.InitProcessApiRouters(apiV1)
	apiv1.InitCandidateApiRouters(apiV1)
	apiv1.InitNotificationApiRouters(apiV1)

	//ws
	wsApp := fiber.New()
	wsApp.Use(middleware.AuthorizationRequired())
	app.Mount("/ws", wsApp)
	ws.InitWs(wsApp)

	return app
}
