package router

import (
	"fmt"
	"strings"

	"github.com/dealat-next/internal/cache"
	"github.com/dealat-next/internal/config"
	"github.com/dealat-next/internal/di"
	adminhandlers "github.com/dealat-next/internal/http/handlers/admin"
	providerhandlers "github.com/dealat-next/internal/http/handlers/provider"
	publichandlers "github.com/dealat-next/internal/http/handlers/public"
	"github.com/dealat-next/internal/logger"

	"github.com/gin-gonic/gin"
)

// SetupRouter builds the HTTP route tree
func SetupRouter(cfg *config.Config, c *di.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	publicHandler := publichandlers.New(c)
	providerHandler := providerhandlers.New(c)
	adminHandler := adminhandlers.New(c)

	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "dlt"
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.LoginRateLimit.BlockSeconds,
		MessageKey:    "error.login_too_many",
	}

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// Uploaded offer images
	r.Static("/uploads", "./uploads")

	apiV1 := r.Group("/api/v1")
	{
		// Open endpoints, no token required
		public := apiV1.Group("/public")
		{
			public.GET("/offers", publicHandler.ListOffers)
			public.GET("/offers/:id", publicHandler.GetOffer)
			public.GET("/categories", publicHandler.ListCategories)
			public.GET("/governorates", publicHandler.ListGovernorates)
			public.GET("/offer-types", publicHandler.ListOfferTypes)
			public.GET("/captcha/image", publicHandler.GetCaptcha)
		}

		auth := apiV1.Group("/auth")
		{
			auth.POST("/register", publicHandler.Register)
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("email")), publicHandler.Login)
		}

		authenticated := apiV1.Group("")
		authenticated.Use(
			JWTAuthMiddleware(cfg.JWT.SecretKey, c.UserRepo),
			RBACMiddleware(c.AuthzService),
		)
		{
			// Redeemer endpoints
			user := authenticated.Group("/user")
			{
				user.GET("/me", publicHandler.GetCurrentUser)
				user.PUT("/me/password", publicHandler.ChangePassword)
				user.POST("/redemptions", publicHandler.CreateRedemption)
				user.GET("/redemptions", publicHandler.ListMyRedemptions)
				user.GET("/redemptions/:id", publicHandler.GetMyRedemption)
			}

			// Provider-side staff endpoints, shared by provider and
			// subprovider roles per the policy matrix
			providerGroup := authenticated.Group("/provider")
			{
				providerGroup.GET("/offers", providerHandler.ListOffers)
				providerGroup.POST("/offers", providerHandler.SubmitOffer)
				providerGroup.GET("/offers/:id", providerHandler.GetOffer)
				providerGroup.PUT("/offers/:id", providerHandler.EditOffer)
				providerGroup.DELETE("/offers/:id", providerHandler.DeleteOffer)
				providerGroup.GET("/redemptions", providerHandler.ListRedemptions)
				providerGroup.GET("/redemptions/:id", providerHandler.GetRedemption)
				providerGroup.POST("/redemptions/:id/settle", providerHandler.SettleRedemption)
				providerGroup.GET("/notifications", publicHandler.ListNotifications)
				providerGroup.POST("/notifications/:id/read", publicHandler.MarkNotificationRead)
				providerGroup.GET("/sub-providers", providerHandler.ListSubProviders)
				providerGroup.POST("/sub-providers", providerHandler.LinkSubProvider)
				providerGroup.DELETE("/sub-providers/:id", providerHandler.UnlinkSubProvider)
				providerGroup.GET("/assignments", providerHandler.ListAssignments)
				providerGroup.PUT("/assignments", providerHandler.SyncAssignments)
			}

			// Back office
			admin := authenticated.Group("/admin")
			{
				admin.GET("/offers", adminHandler.ListOffers)
				admin.POST("/offers", adminHandler.CreateOffer)
				admin.GET("/offers/:id", adminHandler.GetOffer)
				admin.PUT("/offers/:id", adminHandler.EditOffer)
				admin.DELETE("/offers/:id", adminHandler.DeleteOffer)
				admin.POST("/offers/:id/approve", adminHandler.ApproveOffer)
				admin.POST("/offers/:id/reject", adminHandler.RejectOffer)

				admin.GET("/redemptions", adminHandler.ListRedemptions)
				admin.GET("/redemptions/:id", adminHandler.GetRedemption)

				admin.GET("/providers", adminHandler.ListProviders)
				admin.POST("/providers", adminHandler.CreateProvider)
				admin.GET("/providers/:id", adminHandler.GetProvider)
				admin.PUT("/providers/:id", adminHandler.UpdateProvider)

				admin.GET("/categories", adminHandler.ListCategories)
				admin.POST("/categories", adminHandler.CreateCategory)
				admin.PUT("/categories/:id", adminHandler.UpdateCategory)
				admin.DELETE("/categories/:id", adminHandler.DeleteCategory)
				admin.GET("/governorates", adminHandler.ListGovernorates)
				admin.POST("/governorates", adminHandler.CreateGovernorate)
				admin.PUT("/governorates/:id", adminHandler.UpdateGovernorate)
				admin.GET("/offer-types", adminHandler.ListOfferTypes)
				admin.POST("/offer-types", adminHandler.CreateOfferType)
				admin.PUT("/offer-types/:id", adminHandler.UpdateOfferType)

				admin.GET("/users", adminHandler.ListUsers)
				admin.GET("/users/:id", adminHandler.GetUser)
				admin.PUT("/users/:id/status", adminHandler.UpdateUserStatus)
				admin.POST("/users/:id/revoke-tokens", adminHandler.RevokeUserTokens)

				admin.GET("/authz/roles/:role/policies", adminHandler.GetRolePolicies)
				admin.POST("/authz/roles/:role/policies", adminHandler.GrantRolePolicy)
				admin.DELETE("/authz/roles/:role/policies", adminHandler.RevokeRolePolicy)
			}
		}
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
