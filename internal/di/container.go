package di

import (
	"github.com/dealat-next/internal/authz"
	"github.com/dealat-next/internal/cache"
	"github.com/dealat-next/internal/config"
	"github.com/dealat-next/internal/logger"
	"github.com/dealat-next/internal/models"
	"github.com/dealat-next/internal/queue"
	"github.com/dealat-next/internal/repository"
	"github.com/dealat-next/internal/service"
)

// Container dependency injection container
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	UserRepo         repository.UserRepository
	ProviderRepo     repository.ProviderRepository
	CategoryRepo     repository.CategoryRepository
	GovernorateRepo  repository.GovernorateRepository
	OfferTypeRepo    repository.OfferTypeRepository
	OfferRepo        repository.OfferRepository
	RedemptionRepo   repository.RedemptionRepository
	AssignmentRepo   repository.AssignmentRepository
	NotificationRepo repository.NotificationRepository

	// Services
	AuthzService        *authz.Service
	AuthService         *service.AuthService
	CaptchaService      *service.CaptchaService
	OfferService        *service.OfferService
	QuotaService        *service.QuotaService
	RedemptionService   *service.RedemptionService
	AssignmentService   *service.AssignmentService
	ProviderService     *service.ProviderService
	ReferenceService    *service.ReferenceService
	NotificationService *service.NotificationService
}

// NewContainer wires repositories and services
func NewContainer(cfg *config.Config) *Container {
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("di_init_redis_failed", "error", err)
	}

	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("di_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	c.initRepositories()
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.UserRepo = repository.NewUserRepository(db)
	c.ProviderRepo = repository.NewProviderRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.GovernorateRepo = repository.NewGovernorateRepository(db)
	c.OfferTypeRepo = repository.NewOfferTypeRepository(db)
	c.OfferRepo = repository.NewOfferRepository(db)
	c.RedemptionRepo = repository.NewRedemptionRepository(db)
	c.AssignmentRepo = repository.NewAssignmentRepository(db)
	c.NotificationRepo = repository.NewNotificationRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("di_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("di_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	c.AuthService = service.NewAuthService(c.Config, c.UserRepo)
	c.CaptchaService = service.NewCaptchaService(c.Config.Captcha)
	c.OfferService = service.NewOfferService(c.OfferRepo, c.RedemptionRepo, c.CategoryRepo, c.OfferTypeRepo, c.QueueClient)
	c.QuotaService = service.NewQuotaService(c.OfferRepo, c.RedemptionRepo)
	c.RedemptionService = service.NewRedemptionService(c.RedemptionRepo, c.OfferRepo, c.UserRepo, c.QuotaService, c.Config.Offer.QRCodeSize)
	c.AssignmentService = service.NewAssignmentService(c.AssignmentRepo, c.UserRepo, c.ProviderRepo)
	c.ProviderService = service.NewProviderService(c.ProviderRepo, c.UserRepo, c.AuthService)
	c.ReferenceService = service.NewReferenceService(c.CategoryRepo, c.GovernorateRepo, c.OfferTypeRepo, c.OfferRepo)
	c.NotificationService = service.NewNotificationService(c.NotificationRepo)
}
