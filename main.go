package main

import (
	"context"
	"log"

	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/ticketly/ticket-service/config"
	"github.com/ticketly/ticket-service/internal/handler"
	"github.com/ticketly/ticket-service/internal/middleware"
	"github.com/ticketly/ticket-service/internal/notification"
	"github.com/ticketly/ticket-service/internal/repository"
	"github.com/ticketly/ticket-service/internal/scheduler"
	"github.com/ticketly/ticket-service/internal/service"
	"github.com/ticketly/ticket-service/pkg/cache"
	"github.com/ticketly/ticket-service/pkg/database"
	"github.com/ticketly/ticket-service/pkg/rabbitmq"
	"github.com/ticketly/ticket-service/pkg/storage"
)

func main() {
	cfg := config.Load()

	db := database.NewPostgresDB(cfg.DSN())

	// RabbitMQ: the dispatcher queues emails, the consumer delivers them.
	publisher, err := rabbitmq.NewPublisher(cfg.RabbitURL)
	if err != nil {
		log.Fatalf("failed to connect to RabbitMQ: %v", err)
	}
	defer publisher.Close()

	mqConsumer, err := rabbitmq.NewConsumer(cfg.RabbitURL)
	if err != nil {
		log.Fatalf("failed to connect to RabbitMQ: %v", err)
	}
	defer mqConsumer.Close()

	msgs, err := mqConsumer.Consume()
	if err != nil {
		log.Fatalf("failed to start consuming: %v", err)
	}

	sender := notification.NewSMTPSender(notification.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUser,
		Password: cfg.SMTPPassword,
		From:     cfg.MailFrom,
	})
	notification.NewEmailConsumer(sender).Start(msgs)

	dispatcher := notification.NewDispatcher(publisher, cfg.FrontendBaseURL)

	media := storage.New(storage.Config{
		BaseURL:      cfg.MediaBaseURL,
		CloudName:    cfg.MediaCloudName,
		UploadPreset: cfg.MediaUploadPreset,
	})

	redisClient := cache.NewClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)

	// Repositories
	txm := repository.NewTxManager(db)
	eventRepo := repository.NewEventRepository(db)
	txnRepo := repository.NewTransactionRepository(db)
	userRepo := repository.NewUserRepository(db)
	discountRepo := repository.NewDiscountRepository(db)

	// Services
	txnSvc := service.NewTransactionService(txm, txnRepo, eventRepo, userRepo, discountRepo, media, dispatcher)
	profileSvc := service.NewProfileService(txm, userRepo, media, dispatcher)
	organizerSvc := service.NewOrganizerService(userRepo, eventRepo, redisClient)

	// Periodic sweeps
	sweeps := scheduler.New(txnSvc, cfg.ExpireSweepEvery, cfg.CancelSweepEvery)
	sweeps.Start(context.Background())
	defer sweeps.Stop()

	// Echo
	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			log.Printf("%s %s %d", v.Method, v.URI, v.Status)
			return nil
		},
	}))
	e.Use(echoMw.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok", "service": "ticket-service"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	handler.NewTransactionHandler(txnSvc).RegisterRoutes(e)
	handler.NewProfileHandler(profileSvc).RegisterRoutes(e)
	handler.NewOrganizerHandler(organizerSvc).RegisterRoutes(e)

	log.Printf("Ticket Service starting on :%s", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
