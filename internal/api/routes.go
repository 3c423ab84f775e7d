package api

import (
	"eventhub-backend/internal/auth"
	"eventhub-backend/internal/config"
	"eventhub-backend/internal/database"
	"eventhub-backend/internal/middleware"
	"eventhub-backend/internal/notify"
	"eventhub-backend/internal/store"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine, db *database.Database, cfg *config.Config) {
	server := NewServer(db, cfg)
	jwtManager := auth.NewJWTManager(cfg)

	// Read state lives for the process lifetime; a restart resets every
	// user to unread.
	tracker := notify.NewReadState()
	notifications := NewNotificationHandler(store.NewEventStore(db), tracker)

	// CORS middleware
	router.Use(middleware.CORSSpecific(cfg.GetCORSOrigins()))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "eventhub-backend",
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Auth routes (no authentication required)
		authRoutes := v1.Group("/auth")
		{
			authRoutes.POST("/register", server.Register)
			authRoutes.POST("/login", server.Login)
		}

		// OAuth sign-in (no authentication required)
		oauthRoutes := v1.Group("/oauth")
		{
			oauthRoutes.POST("/google", server.OAuthGoogle)
			oauthRoutes.POST("/facebook", server.OAuthFacebook)
		}

		// Protected routes (authentication required)
		protected := v1.Group("/")
		protected.Use(middleware.AuthMiddleware(jwtManager))
		{
			protected.GET("/profile", server.GetProfile)

			// Event routes
			events := protected.Group("/events")
			{
				events.GET("", server.GetEvents)
				events.GET("/past", server.GetPastEvents)
				events.GET("/:id", server.GetEvent)
				events.POST("", middleware.OrganizerOnly(), server.CreateEvent)
				events.PUT("/:id", middleware.OrganizerOnly(), server.UpdateEvent)
				events.DELETE("/:id", middleware.OrganizerOnly(), server.DeleteEvent)
				events.POST("/:id/register", server.RegisterAttendance)
				events.GET("/:id/attendees", server.GetEventAttendees)
			}

			// Social routes (comments and shares)
			social := protected.Group("/social")
			{
				social.POST("/comments", server.CreateComment)
				social.GET("/comments/:id", server.GetComment)
				social.PUT("/comments/:id", server.UpdateComment)
				social.DELETE("/comments/:id", server.DeleteComment)
				social.GET("/events/:id/comments", server.GetEventComments)
				social.GET("/users/:id/comments", server.GetUserComments)

				social.POST("/share", server.ShareEvent)
				social.GET("/shares", server.GetAllShares)
				social.GET("/shares/:id", server.GetEventShare)
				social.DELETE("/shares/:id", server.DeleteEventShare)
				social.GET("/events/:id/shares", server.GetEventShares)
			}

			// Stats routes
			stats := protected.Group("/stats")
			{
				stats.GET("/users/:id", server.GetUserStats)
				stats.GET("/events/:id", server.GetEventStats)
			}

			// Notification routes
			notificationRoutes := protected.Group("/notifications")
			{
				notificationRoutes.GET("/user/:id", notifications.GetUserNotifications)
				notificationRoutes.POST("/mark-as-read", notifications.MarkAsRead)
				notificationRoutes.POST("/mark-multiple-as-read", notifications.MarkMultipleAsRead)
				notificationRoutes.POST("/mark-all-as-read/:id", notifications.MarkAllAsRead)
				notificationRoutes.GET("/stats/:id", notifications.GetNotificationStats)
				notificationRoutes.DELETE("/clear/:id", notifications.ClearNotifications)
			}
		}
	}
}
