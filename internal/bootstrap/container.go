package bootstrap

import (
	"context"
	"log"
	"time"

	"cutclub-be/internal/config"
	"cutclub-be/internal/controller"
	"cutclub-be/internal/eventbus"
	"cutclub-be/internal/pkg/clock"
	"cutclub-be/internal/pkg/logger"
	"cutclub-be/internal/pkg/mailer"
	"cutclub-be/internal/pkg/ratelimit"
	"cutclub-be/internal/repository/memory"
	"cutclub-be/internal/repository/unitofwork"
	"cutclub-be/internal/service"
	"cutclub-be/pkg/events"

	pktNats "cutclub-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	SubscriberController controller.ISubscriberController
	SalonController      controller.ISalonController
	AdminController      controller.IAdminController
	PaymentController    controller.IPaymentController
	PlanController       controller.PlanController

	// Background Services (Exposed for main.go to run)
	ConsumerServices []service.IConsumerService

	Logger logger.ILogger

	natsSub *pktNats.Subscriber
	natsPub *pktNats.Publisher
	rdb     *redis.Client
	pubSub  *gochannel.GoChannel
	bridge  *service.PaymentBridge
}

// NewContainer wires the application. A nil db selects the in-memory store.
func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	var uowFactory unitofwork.RepositoryFactory
	if db == nil {
		log.Printf("[WARN] Using in-memory storage, data is lost on restart")
		uowFactory = memory.NewRepositoryFactory(memory.NewStore())
	} else {
		uowFactory = unitofwork.NewRepositoryFactory(db)
	}
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	clk := clock.System()

	var emailService mailer.IEmailService = mailer.NoopEmailService{}
	if cfg.SMTP.Host != "" {
		emailService = mailer.NewEmailService(
			cfg.SMTP.Host,
			cfg.SMTP.Port,
			cfg.SMTP.Email,
			cfg.SMTP.Password,
			cfg.SMTP.SenderName,
		)
	}

	// 2. Event Bus
	pubSub := eventbus.NewGoChannel()
	localBus := eventbus.NewLocalBus(pubSub)

	// NATS is optional; without it domain events stay local
	var natsPub *pktNats.Publisher
	var natsSub *pktNats.Subscriber
	if cfg.App.NatsURL != "" {
		pub, err := pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		} else {
			natsPub = pub
		}
		sub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
		} else {
			natsSub = sub
		}
	}

	publisher := eventbus.Fanout{
		eventbus.NewNatsPublisher(natsPub, sysLogger),
		eventbus.NewLocalPublisher(localBus, sysLogger),
	}

	// 3. Validation throttle: Redis when reachable, process memory otherwise
	var limiter ratelimit.FailureLimiter
	var rdb *redis.Client
	if cfg.App.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{
				Addr: cfg.App.RedisURL,
			}
		}
		rdb = redis.NewClient(opt)
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if _, err := rdb.Ping(ctx).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v", err)
			_ = rdb.Close()
			rdb = nil
		}
	}
	if rdb != nil {
		limiter = ratelimit.NewRedisLimiter(rdb, "validate_failures", cfg.Redemption.MaxFailures, cfg.Redemption.FailureWindow)
	} else {
		limiter = ratelimit.NewMemoryLimiter(cfg.Redemption.MaxFailures, cfg.Redemption.FailureWindow)
	}

	// 4. Services
	subscriptionService := service.NewSubscriptionService(uowFactory, clk, publisher, sysLogger)
	codeService := service.NewCodeService(uowFactory, clk, cfg.Redemption.CodeTTL, sysLogger)
	redemptionService := service.NewRedemptionService(uowFactory, clk, limiter, publisher, sysLogger)
	historyService := service.NewHistoryService(uowFactory)
	activationService := service.NewActivationService(uowFactory, clk, publisher, sysLogger)
	payoutService := service.NewPayoutService(uowFactory, clk, cfg.Payout.WithdrawOpenDay, publisher, sysLogger)
	salonService := service.NewSalonService(uowFactory, clk, publisher, sysLogger)
	planService := service.NewPlanService(uowFactory, clk, sysLogger)

	consumers := []service.IConsumerService{
		service.NewActivationConsumer(pubSub, activationService, sysLogger),
		service.NewReceiptConsumer(pubSub, uowFactory, emailService, sysLogger),
	}

	// 5. Controllers
	return &Container{
		SubscriberController: controller.NewSubscriberController(subscriptionService, codeService, historyService, clk),
		SalonController:      controller.NewSalonController(salonService, redemptionService, historyService, payoutService),
		AdminController:      controller.NewAdminController(salonService, planService, payoutService, historyService),
		PaymentController:    controller.NewPaymentController(localBus, cfg.Keys.PaymentWebhookSecret, sysLogger),
		PlanController:       controller.NewPlanController(planService),

		ConsumerServices: consumers,
		Logger:           sysLogger,

		natsSub: natsSub,
		natsPub: natsPub,
		rdb:     rdb,
		pubSub:  pubSub,
		bridge:  service.NewPaymentBridge(localBus, sysLogger),
	}
}

// Start launches the in-process consumers and, when NATS is up, the payment bridge
func (c *Container) Start(ctx context.Context) error {
	for _, consumer := range c.ConsumerServices {
		if err := consumer.Consume(ctx); err != nil {
			return err
		}
	}

	if c.natsSub != nil {
		subject := pktNats.SubjectPrefix + events.TypePaymentConfirmed
		if err := c.natsSub.Subscribe(ctx, subject, "activation", c.bridge.Handle); err != nil {
			c.Logger.Warn("BOOTSTRAP", "Payment bridge not started", map[string]interface{}{"error": err.Error()})
		}
	}
	return nil
}

func (c *Container) Close() {
	if c.natsSub != nil {
		c.natsSub.Close()
	}
	if c.natsPub != nil {
		c.natsPub.Close()
	}
	if c.rdb != nil {
		_ = c.rdb.Close()
	}
	if c.pubSub != nil {
		_ = c.pubSub.Close()
	}
}
