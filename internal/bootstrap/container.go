package bootstrap

import (
	"log"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"

	"subhub-be/internal/config"
	"subhub-be/internal/controller"
	"subhub-be/internal/pkg/logger"
	"subhub-be/internal/pkg/mailer"
	"subhub-be/internal/pkg/webhook"
	"subhub-be/internal/repository/implementation"
	"subhub-be/internal/repository/memory"
	"subhub-be/internal/repository/unitofwork"
	"subhub-be/internal/service"

	pktNats "subhub-be/pkg/nats"
)

type Container struct {
	// Controllers
	SubscriptionController controller.ISubscriptionController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// NATS publisher is optional infrastructure; a missing broker only costs
	// the external event stream, never the API.
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// 3. Infrastructure adapters
	deliveryRepo := implementation.NewWebhookDeliveryRepository(db)
	notifier := webhook.NewNotifier(cfg.Webhook, sysLogger, deliveryRepo)
	subscriptionCache := memory.NewSubscriptionCache()

	// 4. Services
	publisherService := service.NewPublisherService(cfg.App.EventTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.App.EventTopic,
		emailService,
		sysLogger,
	)

	subscriptionService := service.NewSubscriptionService(
		uowFactory,
		notifier,
		publisherService,
		natsPub,
		subscriptionCache,
		sysLogger,
	)

	// 5. Controllers
	subscriptionController := controller.NewSubscriptionController(subscriptionService)

	return &Container{
		SubscriptionController: subscriptionController,
		ConsumerService:        consumerService,
		Logger:                 sysLogger,
	}
}
