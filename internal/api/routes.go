package api

import (
	"paperhub-backend/internal/auth"
	"paperhub-backend/internal/config"
	"paperhub-backend/internal/database"
	"paperhub-backend/internal/middleware"
	"paperhub-backend/internal/storage"
	"paperhub-backend/internal/ws"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine, db *database.Database, cfg *config.Config, hub *ws.Hub) {
	server := NewServer(db, cfg, hub)
	chatHandler := NewChatHandler(db)
	jwtManager := auth.NewJWTManager(cfg)

	supabaseStorage := storage.NewSupabaseStorage(
		cfg.Supabase.URL,
		cfg.Supabase.ServiceRoleKey,
		cfg.Supabase.Bucket,
	)
	uploadHandler := NewUploadHandler(supabaseStorage)

	router.Use(middleware.CORSSpecific(cfg.GetCORSOrigins()))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "paperhub-backend",
		})
	})

	// Notification push channel; token travels as a query parameter.
	router.GET("/ws/notifications", ws.HandleNotificationSocket(hub, jwtManager, cfg.GetCORSOrigins()))

	v1 := router.Group("/api/v1")
	{
		// Auth routes (no authentication required)
		authRoutes := v1.Group("/auth")
		{
			authRoutes.POST("/register", server.Register)
			authRoutes.POST("/login", server.Login)
			authRoutes.POST("/verify", server.VerifyEmail)
		}

		// Protected routes (authentication required)
		protected := v1.Group("/")
		protected.Use(middleware.AuthMiddleware(jwtManager))
		{
			// User routes
			protected.GET("/profile", server.GetProfile)
			protected.PUT("/profile", server.UpdateProfile)
			protected.PUT("/auth/password", server.ChangePassword)
			protected.DELETE("/auth/account", server.DeleteAccount)
			protected.GET("/users/admin", server.GetAdmins)

			// Paper routes
			papers := protected.Group("/papers")
			{
				papers.GET("", server.GetPapers)
				papers.GET("/queues", server.GetPaperQueues)
				papers.GET("/:id/summary", server.GetPaperSummary)
				papers.POST("", middleware.AuthorOrAdmin(), server.CreatePaper)
				papers.PUT("/:id", server.UpdatePaper)
				papers.DELETE("/:id", middleware.AuthorOrAdmin(), server.DeletePaper)
				papers.POST("/:id/recommend", middleware.EditorOrAdmin(), server.RecommendPaper)
				papers.PUT("/:id/details", middleware.EditorOrCoordinator(), server.UpdatePaperDetails)
			}

			// Review routes
			reviews := protected.Group("/reviews")
			{
				reviews.GET("", server.GetReviews)
				reviews.POST("", middleware.EditorOrAdmin(), server.CreateReview)
			}

			// Event routes
			events := protected.Group("/events")
			{
				events.GET("", server.GetEvents)
				events.POST("", middleware.CoordinatorOrAdmin(), server.CreateEvent)
				events.PUT("/:id", middleware.CoordinatorOrAdmin(), server.UpdateEvent)
				events.DELETE("/:id", middleware.CoordinatorOrAdmin(), server.DeleteEvent)
				events.PUT("/:id/publish", middleware.CoordinatorOrAdmin(), server.PublishEvent)
			}

			// News routes
			news := protected.Group("/news")
			{
				news.GET("", server.GetNews)
				news.POST("", middleware.CoordinatorOrAdmin(), server.CreateNews)
				news.PUT("/:id", middleware.CoordinatorOrAdmin(), server.UpdateNews)
				news.DELETE("/:id", middleware.CoordinatorOrAdmin(), server.DeleteNews)
				news.PUT("/:id/publish", middleware.CoordinatorOrAdmin(), server.PublishNews)
			}

			// Notification routes
			notifications := protected.Group("/notifications")
			{
				notifications.GET("", server.GetNotifications)
				notifications.POST("", middleware.RequireRoles("editor", "admin"), server.CreateNotification)
				notifications.PUT("/:id/read", server.MarkNotificationRead)
			}

			// Chat routes
			chat := protected.Group("/chat")
			{
				chat.POST("/upload", uploadHandler.UploadFile)
				chat.POST("/send", chatHandler.SendMessage)
				chat.GET("/messages", chatHandler.GetMessages)
				chat.GET("/contacts", chatHandler.GetContacts)
				chat.GET("/unread-count", chatHandler.GetUnreadCount)
			}

			// Interaction routes
			interactions := protected.Group("/interactions")
			{
				interactions.POST("/like", server.LikePost)
				interactions.POST("/comment", server.AddComment)
				interactions.POST("/share", server.ShareToMessage)
				interactions.GET("/likes/:postType/:postId", server.GetPostLikes)
				interactions.GET("/comments/:postType/:postId", server.GetComments)
				interactions.GET("/stats/:postType/:postId", server.GetEngagementStats)
			}
		}
	}
}
