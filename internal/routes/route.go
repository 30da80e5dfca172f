package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/wanderly/wanderly-server/internal/container"
	"github.com/wanderly/wanderly-server/internal/handlers"
	"github.com/wanderly/wanderly-server/internal/helpers"
	"github.com/wanderly/wanderly-server/internal/middleware"
)

// SetupRoutes configures all routes with the dependency container
func SetupRoutes(container *container.Container) *gin.Engine {
	if container.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{container.Config.FrontendURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(container.Logger))
	r.Use(middleware.ErrorHandler(container.Logger))
	r.Use(gin.Recovery())

	// API version 1
	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status":  "OK",
				"service": "wanderly-api",
			})
		})

		// public routes
		v1.POST("/signup", handlers.CreateUser(container.UserService))
		v1.POST("/login", handlers.AuthenticateUser(container.UserService))
		v1.POST("/logout", handlers.Logout())

		// catalog browsing and check-in are open; the check-in form
		// itself asks for the attendee's email
		v1.GET("/packages", handlers.SearchPackages(container.CatalogService))
		// Detail pages are public, but a signed-in viewer's visit is recorded
		v1.GET("/packages/:id", middleware.OptionalAuth(container.Logger), handlers.GetPackage(container.CatalogService))
		v1.GET("/packages/creator/:creator_id", handlers.ListPackagesByCreator(container.CatalogService))
		v1.POST("/event-checkin", handlers.EventCheckin(container.CheckinService))
		v1.GET("/guides/:guide_id/reviews", handlers.GetGuideReviews(container.ReviewService))
	}

	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware(container.UserService, container.Logger))

	protected.GET("/profile", func(c *gin.Context) {
		user, exist := c.Get("user")
		if !exist {
			c.JSON(401, gin.H{"error": "Unauthorized"})
			return
		}

		enhancedClaims, ok := user.(*helpers.EnhancedClaims)
		if !ok {
			c.JSON(500, gin.H{"error": "Invalid user claims format"})
			return
		}

		c.JSON(200, gin.H{
			"status":       "OK",
			"user_id":      enhancedClaims.UserID,
			"email":        enhancedClaims.Email,
			"role":         enhancedClaims.GetSafeRole(),
			"display_name": enhancedClaims.DisplayName,
			"credits":      enhancedClaims.Credits,
			"ranking":      enhancedClaims.Ranking,
			"is_admin":     enhancedClaims.IsAdmin(),
		})
	})

	userRoutes := protected.Group("/users")
	{
		userRoutes.GET("/:id", handlers.GetProfile(container.UserService))
		userRoutes.PATCH("/:id", handlers.UpdateProfile(container.UserService))
		userRoutes.DELETE("/:id", handlers.DeleteProfile(container.UserService))
		userRoutes.POST("/avatar", handlers.UploadAvatar(container.UserService))
	}

	packageRoutes := protected.Group("/packages")
	{
		packageRoutes.POST("/", handlers.CreatePackage(container.CatalogService))
		packageRoutes.DELETE("/:id", handlers.DeletePackage(container.CatalogService))
		packageRoutes.GET("/:id/availability", handlers.CheckAvailability(container.BookingService))
		packageRoutes.GET("/:id/visitors", handlers.GetPackageVisitorStats(container.CatalogService))
		packageRoutes.GET("/:id/checkin-link", handlers.GetCheckinLink(container.CatalogService, container.Config.FrontendURL))
		packageRoutes.POST("/:id/save", handlers.SavePackage(container.SavedService))
		packageRoutes.DELETE("/:id/save", handlers.UnsavePackage(container.SavedService))
	}

	bookingRoutes := protected.Group("/bookings")
	{
		bookingRoutes.POST("/", handlers.CreateBooking(container.BookingService))
		bookingRoutes.GET("/", handlers.ListMyBookings(container.BookingService))
		bookingRoutes.DELETE("/:id", handlers.CancelBooking(container.BookingService))
	}

	paymentRoutes := protected.Group("/payments")
	{
		paymentRoutes.POST("/topup", handlers.StartTopup(container.CreditService))
		paymentRoutes.POST("/confirm", handlers.ConfirmTopup(container.CreditService))
		paymentRoutes.GET("/ledger", handlers.GetLedger(container.CreditService))
	}

	protected.GET("/saved", handlers.GetSavedPackages(container.SavedService))
	protected.POST("/reviews", handlers.CreateReview(container.ReviewService))
	protected.POST("/chat", handlers.ChatWithAssistant(container.AssistantClient))

	return r
}
