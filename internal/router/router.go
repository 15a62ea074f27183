package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/tabletap/tabletap-backend/config"
	"github.com/tabletap/tabletap-backend/internal/app/controller"
	"github.com/tabletap/tabletap-backend/internal/app/model"
	"github.com/tabletap/tabletap-backend/internal/middleware"
)

type Router struct {
	authController         *controller.AuthController
	storeController        *controller.StoreController
	categoryController     *controller.CategoryController
	menuController         *controller.MenuController
	optionController       *controller.OptionController
	servicePointController *controller.ServicePointController
	cartController         *controller.CartController
	authMiddleware         *middleware.AuthMiddleware
	config                 *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	storeController *controller.StoreController,
	categoryController *controller.CategoryController,
	menuController *controller.MenuController,
	optionController *controller.OptionController,
	servicePointController *controller.ServicePointController,
	cartController *controller.CartController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:         authController,
		storeController:        storeController,
		categoryController:     categoryController,
		menuController:         menuController,
		optionController:       optionController,
		servicePointController: servicePointController,
		cartController:         cartController,
		authMiddleware:         authMiddleware,
		config:                 cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     r.config.CORS.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "TABLETAP API is running",
		})
	})

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.authController.Register)
			auth.POST("/login", r.authController.Login)
			auth.GET("/me", r.authMiddleware.Authenticate(), r.authController.Me)
		}

		// Customer storefront, no account needed.
		stores := v1.Group("/stores")
		{
			stores.GET("", r.storeController.ListActiveStores)
			stores.GET("/:slug", r.storeController.GetStoreBySlug)
			stores.GET("/:slug/menu", r.storeController.GetStoreMenu)
		}

		v1.GET("/menu-items/:id", r.menuController.GetMenuItem)

		cart := v1.Group("/cart", middleware.CartSession())
		{
			cart.GET("", r.cartController.GetCart)
			cart.DELETE("", r.cartController.ClearCart)
			cart.POST("/items", r.cartController.AddItem)
			cart.PATCH("/items/:id", r.cartController.UpdateQuantity)
			cart.DELETE("/items/:id", r.cartController.RemoveItem)
			cart.PUT("/store", r.cartController.SetStore)
			cart.POST("/quote", r.cartController.QuoteItem)
		}

		// Merchant console, owners and admins only.
		console := v1.Group("/console",
			r.authMiddleware.Authenticate(),
			r.authMiddleware.RequireRole(string(model.RoleOwner), string(model.RoleAdmin)),
		)
		{
			stores := console.Group("/stores")
			{
				stores.POST("", r.storeController.CreateStore)
				stores.GET("", r.storeController.ListStores)
				stores.GET("/:id", r.storeController.GetStore)
				stores.PATCH("/:id", r.storeController.UpdateStore)
				stores.DELETE("/:id", r.storeController.DeleteStore)

				stores.PUT("/:id/hours", r.storeController.SetHours)
				stores.POST("/:id/closures", r.storeController.AddClosure)
				stores.DELETE("/:id/closures/:closureId", r.storeController.RemoveClosure)

				stores.POST("/:id/categories", r.categoryController.CreateCategory)
				stores.GET("/:id/categories", r.categoryController.ListCategories)

				stores.POST("/:id/menu-items", r.menuController.CreateMenuItem)
				stores.GET("/:id/menu-items", r.menuController.ListMenuItems)

				stores.POST("/:id/service-points", r.servicePointController.CreateServicePoint)
				stores.GET("/:id/service-points", r.servicePointController.ListServicePoints)
			}

			categories := console.Group("/categories")
			{
				categories.PATCH("/:id", r.categoryController.UpdateCategory)
				categories.DELETE("/:id", r.categoryController.DeleteCategory)
			}

			menuItems := console.Group("/menu-items")
			{
				menuItems.PATCH("/:id", r.menuController.UpdateMenuItem)
				menuItems.DELETE("/:id", r.menuController.DeleteMenuItem)

				menuItems.POST("/:id/option-groups", r.optionController.CreateGroup)
				menuItems.GET("/:id/option-groups", r.optionController.ListGroups)
			}

			groups := console.Group("/option-groups")
			{
				groups.PATCH("/:id", r.optionController.UpdateGroup)
				groups.DELETE("/:id", r.optionController.DeleteGroup)

				groups.POST("/:id/choices", r.optionController.CreateChoice)
			}

			choices := console.Group("/choices")
			{
				choices.PATCH("/:id", r.optionController.UpdateChoice)
				choices.DELETE("/:id", r.optionController.DeleteChoice)
			}
		}
	}

	return router
}
