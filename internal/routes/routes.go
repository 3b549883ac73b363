package routes

import (
	"github.com/evigdia/evigdia-backend/internal/handler"
	"github.com/evigdia/evigdia-backend/internal/middleware"
	"github.com/evigdia/evigdia-backend/pkg/jwt"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Handlers bundles everything Setup mounts
type Handlers struct {
	Auth          *handler.AuthHandler
	Posts         *handler.PostHandler
	Engagement    *handler.EngagementHandler
	Notifications *handler.NotificationHandler
	Subscriptions *handler.SubscriptionHandler
	Syndication   *handler.SyndicationHandler
	Contact       *handler.ContactHandler
	Offerings     *handler.OfferingHandler
	Apps          *handler.AppHandler
	Pricing       *handler.PricingHandler
	Search        *handler.SearchHandler
	Activity      *handler.ActivityHandler
	WS            *handler.WSHandler
}

// Setup mounts all API routes
func Setup(router *gin.Engine, h *Handlers, jwtManager *jwt.Manager, redisClient *redis.Client, desktopAPIKey string) {
	api := router.Group("/api/v1")
	api.Use(middleware.RateLimit(redisClient, middleware.DefaultRateLimitConfig()))

	auth := middleware.JWTAuth(jwtManager)
	optionalAuth := middleware.OptionalJWTAuth(jwtManager)

	// Auth
	authGroup := api.Group("/auth")
	authGroup.POST("/register", h.Auth.Register)
	authGroup.POST("/login", h.Auth.Login)
	authGroup.POST("/refresh", h.Auth.Refresh)
	authGroup.GET("/me", auth, h.Auth.Me)

	// Posts
	posts := api.Group("/posts")
	posts.Use(optionalAuth)
	posts.GET("", h.Posts.List)
	posts.POST("", auth, h.Posts.Create)
	posts.GET("/:slug", h.Posts.Get)

	// Mutations address posts by numeric id; gin cannot mix :slug and
	// :id params on one segment, so these live under /posts/id.
	postsByID := api.Group("/posts/id/:id")
	postsByID.Use(optionalAuth)
	postsByID.PUT("", auth, h.Posts.Update)
	postsByID.DELETE("", auth, h.Posts.Delete)
	postsByID.POST("/publish", auth, h.Posts.Publish)
	postsByID.POST("/archive", auth, h.Posts.Archive)
	postsByID.GET("/revisions", auth, h.Posts.Revisions)
	postsByID.GET("/revisions/:number", auth, h.Posts.GetRevision)
	postsByID.POST("/revisions/:number/restore", auth, h.Posts.Restore)

	// Engagement
	postsByID.GET("/comments", h.Engagement.Comments)
	postsByID.POST("/comments", h.Engagement.AddComment)
	postsByID.POST("/like", auth, h.Engagement.Like)
	postsByID.DELETE("/like", auth, h.Engagement.Unlike)
	postsByID.PUT("/reaction", auth, h.Engagement.React)
	postsByID.DELETE("/reaction", auth, h.Engagement.RemoveReaction)
	postsByID.GET("/reactions", h.Engagement.ReactionCounts)
	postsByID.POST("/favorite", auth, h.Engagement.Favorite)
	postsByID.DELETE("/favorite", auth, h.Engagement.Unfavorite)
	postsByID.POST("/view", h.Engagement.RecordView)
	postsByID.POST("/share", h.Engagement.Share)
	postsByID.POST("/share-links", auth, h.Engagement.CreateShareableLink)
	postsByID.GET("/syndications", h.Syndication.ListByPost)
	postsByID.POST("/syndications", auth, middleware.RequireAdmin(), h.Syndication.Create)

	comments := api.Group("/comments")
	comments.Use(optionalAuth)
	comments.DELETE("/:id", auth, h.Engagement.DeleteComment)
	comments.PUT("/:id/reaction", auth, h.Engagement.ReactToComment)

	api.GET("/favorites", auth, h.Engagement.ListFavorites)

	share := api.Group("/share")
	share.GET("/platforms", h.Engagement.Platforms)
	share.GET("/:token", h.Engagement.ResolveShareableLink)

	// Taxonomy
	api.GET("/categories", h.Posts.Categories)
	api.GET("/tags", h.Posts.Tags)

	// Search
	api.GET("/search", optionalAuth, h.Search.Search)

	// Notifications
	notifications := api.Group("/notifications")
	notifications.Use(auth)
	notifications.GET("", h.Notifications.List)
	notifications.GET("/summary", h.Notifications.Summary)
	notifications.PUT("/read-all", h.Notifications.MarkAllRead)
	notifications.PUT("/:id/read", h.Notifications.MarkRead)
	notifications.DELETE("/:id", h.Notifications.Delete)

	// Subscriptions
	subscriptions := api.Group("/subscriptions")
	subscriptions.POST("", optionalAuth, h.Subscriptions.Subscribe)
	subscriptions.GET("/confirm/:token", h.Subscriptions.Confirm)
	subscriptions.GET("/unsubscribe/:token", h.Subscriptions.Unsubscribe)

	// Contact
	api.POST("/contact", middleware.RateLimit(redisClient, middleware.RateLimitConfig{
		RequestsPerMinute: 5,
		KeyPrefix:         "contact:ratelimit:",
		Message:           "Too many submissions. Please try again later.",
	}), h.Contact.Submit)

	// Services catalog
	api.GET("/services", h.Offerings.ListPublished)
	api.GET("/services/:slug", h.Offerings.Get)

	// Pricing
	api.GET("/pricing", h.Pricing.List)
	api.GET("/pricing/:plan", h.Pricing.Get)

	// Desktop app control, behind the API key gate
	app := api.Group("/app")
	app.Use(middleware.DesktopAPIKey(desktopAPIKey))
	app.GET("/status/:type", h.Apps.Status)

	setupAdmin(api, h, jwtManager)

	// Syndication management addressed by syndication id
	syndications := api.Group("/syndications")
	syndications.Use(auth, middleware.RequireAdmin())
	syndications.PUT("/:id/canonical", h.Syndication.SetCanonical)
	syndications.DELETE("/:id", h.Syndication.Delete)
}

func setupAdmin(api *gin.RouterGroup, h *Handlers, jwtManager *jwt.Manager) {
	admin := api.Group("/admin")
	admin.Use(middleware.JWTAuth(jwtManager), middleware.RequireAdmin())

	// Admin notifications
	adminNotif := admin.Group("/notifications")
	adminNotif.GET("", h.Notifications.ListAdmin)
	adminNotif.GET("/summary", h.Notifications.AdminSummary)
	adminNotif.GET("/ws", h.WS.Connect)
	adminNotif.PUT("/read-all", h.Notifications.MarkAllAdminRead)
	adminNotif.PUT("/:id/read", h.Notifications.MarkAdminRead)

	// Comment moderation
	adminComments := admin.Group("/comments")
	adminComments.PUT("/:id/approve", h.Engagement.ApproveComment)
	adminComments.PUT("/:id/spam", h.Engagement.MarkCommentSpam)

	// Activity log review
	adminActivity := admin.Group("/activity")
	adminActivity.GET("", h.Activity.List)
	adminActivity.POST("/processed", h.Activity.MarkProcessed)
	adminActivity.GET("/top-searches", h.Activity.TopSearches)

	// Admin subscriptions
	admin.GET("/subscriptions", h.Subscriptions.List)

	// Admin contact inbox
	adminContact := admin.Group("/contact")
	adminContact.GET("", h.Contact.List)
	adminContact.GET("/:id", h.Contact.Get)
	adminContact.PUT("/:id/processed", h.Contact.MarkProcessed)
	adminContact.DELETE("/:id", h.Contact.Delete)

	// Admin services
	adminServices := admin.Group("/services")
	adminServices.GET("", h.Offerings.List)
	adminServices.POST("", h.Offerings.Create)
	adminServices.PUT("/:id", h.Offerings.Update)
	adminServices.DELETE("/:id", h.Offerings.Delete)

	// Admin app control
	adminApp := admin.Group("/app")
	adminApp.GET("/managers", h.Apps.ListManagers)
	adminApp.PUT("/managers/:type", h.Apps.UpdateManager)
	adminApp.GET("/global", h.Apps.GlobalControl)
	adminApp.PUT("/global", h.Apps.UpdateGlobalControl)

	// Admin pricing
	admin.PUT("/pricing/:plan", h.Pricing.Set)
}
