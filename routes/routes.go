package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/my-lord1/food-delivery-backend/configs"
	"github.com/my-lord1/food-delivery-backend/controllers"
	"github.com/my-lord1/food-delivery-backend/middlewares"
	"github.com/my-lord1/food-delivery-backend/pkg/gateway"
	"github.com/my-lord1/food-delivery-backend/pkg/imagestore"
	"github.com/my-lord1/food-delivery-backend/repository"
	"github.com/my-lord1/food-delivery-backend/services"
	"github.com/my-lord1/food-delivery-backend/ws"
)

// Deps wires the long-lived collaborators the routes need.
type Deps struct {
	DB      *gorm.DB
	Cfg     *configs.Config
	Hub     *ws.Hub
	Gateway gateway.Client
	Images  imagestore.Store
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	r.Use(middlewares.CORSMiddleware())
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })
	r.Static("/uploads", d.Cfg.UploadDir)

	// Repositories
	userRepo := repository.NewUserRepository(d.DB)
	restRepo := repository.NewRestaurantRepository(d.DB)
	menuRepo := repository.NewMenuRepository(d.DB)
	orderRepo := repository.NewOrderRepository(d.DB)
	reviewRepo := repository.NewReviewRepository(d.DB)
	notifRepo := repository.NewNotificationRepository(d.DB)

	// Services
	notifSvc := services.NewNotificationService(notifRepo, d.Hub)
	pricing := services.NewPricingCalculator(menuRepo)
	authSvc := services.NewAuthService(userRepo, d.Cfg.JWTSecret, d.Cfg.JWTTTL)
	restSvc := services.NewRestaurantService(restRepo, orderRepo)
	menuSvc := services.NewMenuService(menuRepo, restRepo)
	orderSvc := services.NewOrderService(d.DB, orderRepo, restRepo, pricing, d.Gateway, notifSvc, d.Hub)
	paymentSvc := services.NewPaymentService(d.DB, orderRepo, userRepo, d.Gateway, notifSvc, d.Hub)
	reviewSvc := services.NewReviewService(d.DB, reviewRepo, orderRepo, restRepo, notifSvc, d.Images)
	favSvc := services.NewFavoritesService(userRepo, restRepo, menuRepo)

	// Controllers
	authCtrl := controllers.NewAuthController(authSvc)
	restCtrl := controllers.NewRestaurantController(restSvc)
	menuCtrl := controllers.NewMenuController(menuSvc)
	orderCtrl := controllers.NewOrderController(orderSvc)
	paymentCtrl := controllers.NewPaymentController(paymentSvc)
	reviewCtrl := controllers.NewReviewController(reviewSvc)
	notifCtrl := controllers.NewNotificationController(notifSvc)
	favCtrl := controllers.NewFavoritesController(favSvc)
	uploadCtrl := controllers.NewUploadController(d.Images)

	auth := middlewares.AuthMiddleware(d.Cfg.JWTSecret)

	// Auth (public)
	a := r.Group("/auth")
	{
		a.POST("/register", authCtrl.Register)
		a.POST("/login", authCtrl.Login)
	}

	// Auth (protected)
	aAuth := a.Group("", auth)
	{
		aAuth.GET("/me", authCtrl.Me)
		aAuth.PATCH("/me", authCtrl.UpdateMe)
		aAuth.PATCH("/me/password", authCtrl.UpdatePassword)
		aAuth.GET("/me/addresses", authCtrl.Addresses)
		aAuth.POST("/me/addresses", authCtrl.AddAddress)
		aAuth.PATCH("/me/addresses/:id", authCtrl.UpdateAddress)
		aAuth.DELETE("/me/addresses/:id", authCtrl.DeleteAddress)
	}

	// Restaurants (public reads)
	r.GET("/restaurants", restCtrl.List)
	r.GET("/restaurants/:id", restCtrl.Detail)
	r.GET("/restaurants/:id/menu", menuCtrl.ListByRestaurant)
	r.GET("/restaurants/:id/menu/categories", menuCtrl.Categories)
	r.GET("/restaurants/:id/reviews", reviewCtrl.ListForRestaurant)
	r.GET("/menu-items/:id", menuCtrl.Detail)
	r.GET("/reviews/:id", reviewCtrl.Detail)

	// Restaurants (owner)
	rest := r.Group("/restaurants", auth)
	{
		rest.POST("", restCtrl.Create)
		rest.PATCH("/:id", restCtrl.Update)
		rest.DELETE("/:id", restCtrl.Delete)
		rest.PATCH("/:id/accepting-orders", restCtrl.ToggleAcceptingOrders)
		rest.GET("/:id/stats", restCtrl.Stats)
		rest.POST("/:id/menu", menuCtrl.Create)
		rest.GET("/:id/orders", orderCtrl.ListForRestaurant)
		rest.GET("/:id/reviews/dashboard", reviewCtrl.OwnerDashboard)
	}

	// Menu items (owner)
	menu := r.Group("/menu-items", auth)
	{
		menu.PATCH("/:id", menuCtrl.Update)
		menu.DELETE("/:id", menuCtrl.Delete)
		menu.PATCH("/:id/availability", menuCtrl.ToggleAvailability)
	}

	// Orders
	orders := r.Group("/orders", auth)
	{
		orders.POST("", orderCtrl.Create)
		orders.GET("", orderCtrl.ListForMe)
		orders.GET("/:id", orderCtrl.Detail)
		orders.GET("/:id/track", orderCtrl.Track)
		orders.GET("/:id/review", reviewCtrl.ByOrder)
		orders.PATCH("/:id/status", orderCtrl.UpdateStatus)
		orders.PATCH("/:id/cancel", orderCtrl.Cancel)
	}

	// Payments
	payments := r.Group("/payments", auth)
	{
		payments.POST("/verify", paymentCtrl.Verify)
		payments.GET("", paymentCtrl.History)
		payments.GET("/orders/:id/receipt", paymentCtrl.Receipt)
		payments.POST("/methods", paymentCtrl.SaveMethod)
		payments.GET("/methods", paymentCtrl.SavedMethods)
		payments.DELETE("/methods/:id", paymentCtrl.DeleteMethod)
		payments.PATCH("/methods/:id/default", paymentCtrl.SetDefaultMethod)
	}

	// Reviews
	reviews := r.Group("/reviews", auth)
	{
		reviews.POST("", reviewCtrl.Create)
		reviews.PATCH("/:id", reviewCtrl.Update)
		reviews.DELETE("/:id", reviewCtrl.Delete)
		reviews.POST("/:id/helpful", reviewCtrl.ToggleHelpful)
		reviews.POST("/:id/respond", reviewCtrl.Respond)
	}

	// Favorites
	fav := r.Group("/favorites", auth)
	{
		fav.GET("/restaurants", favCtrl.Restaurants)
		fav.POST("/restaurants/:id", favCtrl.ToggleRestaurant)
		fav.GET("/menu-items", favCtrl.MenuItems)
		fav.POST("/menu-items/:id", favCtrl.ToggleMenuItem)
	}

	// Notifications
	notif := r.Group("/notifications", auth)
	{
		notif.GET("", notifCtrl.List)
		notif.PATCH("/:id/read", notifCtrl.MarkRead)
		notif.PATCH("/read-all", notifCtrl.MarkAllRead)
		notif.DELETE("/:id", notifCtrl.Delete)
		notif.DELETE("", notifCtrl.ClearAll)
	}

	// Uploads
	r.POST("/uploads", auth, uploadCtrl.Upload)

	// WebSocket push channel
	r.GET("/ws/notifications", middlewares.WSAuthMiddleware(d.Cfg.JWTSecret), d.Hub.HandleWebSocket)
}
