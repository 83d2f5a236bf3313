package bootstrap

import (
	"context"
	"log"
	"time"

	"featured-listing-be/internal/config"
	"featured-listing-be/internal/controller"
	"featured-listing-be/internal/pkg/logger"
	"featured-listing-be/internal/pkg/mailer"
	"featured-listing-be/internal/registry"
	"featured-listing-be/internal/repository/unitofwork"
	"featured-listing-be/internal/service"
	"featured-listing-be/internal/websocket"
	"featured-listing-be/pkg/admin/overview"
	"featured-listing-be/pkg/payment"
	"featured-listing-be/pkg/payment/midtranspay"
	"featured-listing-be/pkg/payment/paystack"

	pktNats "featured-listing-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	PricingController  controller.IPricingController
	FeatureController  controller.IFeatureController
	AdminController    controller.IAdminController
	FeaturedController controller.IFeaturedController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
	PricingService  service.IPricingService

	// WebSockets
	FeedHub *websocket.Hub

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

	// 2.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// WebSocket Hub (admin purchase feed)
	feedLogger := logger.NewIsolatedLogger("logs/feed.log")
	feedHub := websocket.NewHub(rdb, feedLogger)
	go feedHub.Run()

	// 3. Directories over the platform's listing and vendor collections
	resourceDir := registry.NewResourceRegistry(db)
	vendorDir := registry.NewVendorDirectory(db)

	// 4. Payment Providers
	providers := payment.NewRegistry(
		midtranspay.New(cfg.Payment.MidtransServerKey, cfg.Payment.MidtransIsProduction, cfg.Payment.VerifyTimeout),
		paystack.New(cfg.Payment.PaystackSecretKey, cfg.Payment.VerifyTimeout),
	)

	// 5. Services
	priceCache := gocache.New(5*time.Minute, 10*time.Minute)
	pricingService := service.NewPricingService(uowFactory, priceCache)

	publisherService := service.NewPublisherService(cfg.App.FeatureTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.App.FeatureTopic,
		resourceDir,
		vendorDir,
		emailService,
		feedHub,
	)

	featureService := service.NewFeatureService(uowFactory, vendorDir)
	paymentService := service.NewPaymentService(
		uowFactory,
		providers,
		pricingService,
		publisherService,
		natsPub,
		sysLogger,
		cfg.Payment.VerifyTimeout,
	)
	featuredService := service.NewFeaturedService(uowFactory, resourceDir, rdb, sysLogger)

	// Admin Domain Components
	overviewAggregator := overview.NewAggregator(resourceDir, vendorDir, sysLogger)
	adminService := service.NewAdminService(
		uowFactory,
		featureService,
		resourceDir,
		vendorDir,
		overviewAggregator,
		emailService,
		natsPub,
		sysLogger,
	)

	// Live feed worker: relays admin lifecycle events from any instance
	// onto this instance's feed hub.
	if natsSub != nil {
		feedService := service.NewFeedService(natsSub, feedHub, feedLogger)
		go feedService.Start()
	}

	// 6. Controllers
	return &Container{
		PricingController:  controller.NewPricingController(pricingService),
		FeatureController:  controller.NewFeatureController(paymentService),
		AdminController:    controller.NewAdminController(adminService, feedHub),
		FeaturedController: controller.NewFeaturedController(featuredService),

		ConsumerService: consumerService,
		PricingService:  pricingService,
		FeedHub:         feedHub,
		Logger:          sysLogger,
	}
}
