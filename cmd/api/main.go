package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/evigdia/evigdia-backend/internal/config"
	"github.com/evigdia/evigdia-backend/internal/handler"
	"github.com/evigdia/evigdia-backend/internal/middleware"
	"github.com/evigdia/evigdia-backend/internal/migration"
	"github.com/evigdia/evigdia-backend/internal/repository"
	"github.com/evigdia/evigdia-backend/internal/routes"
	"github.com/evigdia/evigdia-backend/internal/service"
	"github.com/evigdia/evigdia-backend/internal/ws"
	pkgcache "github.com/evigdia/evigdia-backend/pkg/cache"
	pkges "github.com/evigdia/evigdia-backend/pkg/elasticsearch"
	"github.com/evigdia/evigdia-backend/pkg/jwt"
	pkglogger "github.com/evigdia/evigdia-backend/pkg/logger"
	pkgredis "github.com/evigdia/evigdia-backend/pkg/redis"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// @title           Evigdia Backend API
// @version         1.0
// @description     Evigdia content platform backend API
//
// @host            localhost:8080
// @BasePath        /api/v1
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Authorization header using the Bearer scheme. Example: "Bearer {token}"

// getConfigPath returns config file path based on APP_ENV environment variable
func getConfigPath() string {
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		return path
	}
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}
	return fmt.Sprintf("configs/config.%s.yaml", env)
}

func main() {
	dotenvFiles := config.LoadDotEnv()

	pkglogger.Init()
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}
	pkglogger.InitStructured(env)
	pkglogger.Info("APP_ENV=%s, loaded env files: %v", env, dotenvFiles)

	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	config.LogResolved(cfg)

	db, err := initDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := migration.Run(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	redisClient, err := pkgredis.NewClient(
		cfg.Redis.Host,
		cfg.Redis.Port,
		cfg.Redis.Password,
		cfg.Redis.DB,
		cfg.Redis.PoolSize,
	)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	cacheService := pkgcache.NewService(redisClient)

	var esClient *pkges.Client
	if cfg.Elasticsearch.Enabled && len(cfg.Elasticsearch.Addresses) > 0 {
		esClient, err = pkges.NewClient(cfg.Elasticsearch.Addresses, cfg.Elasticsearch.Username, cfg.Elasticsearch.Password)
		if err != nil {
			pkglogger.Info("Warning: Elasticsearch connection failed: %v (continuing without ES)", err)
			esClient = nil
		} else {
			pkglogger.Info("Connected to Elasticsearch")
		}
	}

	wsHub := ws.NewHub(redisClient)
	go wsHub.Run()

	jwtManager := jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiresIn,
		cfg.JWT.RefreshIn,
	)

	// Repositories
	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	revisionRepo := repository.NewRevisionRepository(db)
	taxonomyRepo := repository.NewTaxonomyRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	reactionRepo := repository.NewReactionRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	sharingRepo := repository.NewSharingRepository(db)
	syndicationRepo := repository.NewSyndicationRepository(db)
	subscriptionRepo := repository.NewSubscriptionRepository(db)
	contactRepo := repository.NewContactRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	appRepo := repository.NewAppRepository(db)
	pricingRepo := repository.NewPricingRepository(db)

	// Services
	ledger := service.NewRevisionLedger(revisionRepo)
	tracker := service.NewEngagementTracker(cfg.Site.BaseURL, postRepo, activityRepo, notificationRepo)

	authService := service.NewAuthService(userRepo, jwtManager)
	postService := service.NewPostService(db, postRepo, taxonomyRepo, ledger, cacheService, esClient)
	engagementService := service.NewEngagementService(db, postRepo, commentRepo, reactionRepo, sharingRepo, tracker, wsHub)
	notificationService := service.NewNotificationService(notificationRepo)
	subscriptionService := service.NewSubscriptionService(db, subscriptionRepo, notificationRepo, wsHub)
	syndicationService := service.NewSyndicationService(db, postRepo, syndicationRepo)
	contactService := service.NewContactService(db, contactRepo, notificationRepo, wsHub)
	offeringService := service.NewOfferingService(serviceRepo, cacheService)
	appService := service.NewAppService(appRepo, cacheService)
	pricingService := service.NewPricingService(pricingRepo, cacheService)
	searchService := service.NewSearchService(postRepo, activityRepo, esClient)
	activityService := service.NewActivityService(activityRepo)

	var scheduler *service.Scheduler
	if cfg.Scheduler.Enabled {
		scheduler = service.NewScheduler(postRepo, cacheService, cfg.Scheduler.PublishSpec)
		if err := scheduler.Start(); err != nil {
			log.Fatalf("Failed to start scheduler: %v", err)
		}
	}

	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	allowOrigins := cfg.CORS.AllowOrigins
	if allowOrigins == "" {
		allowOrigins = "http://localhost:3000"
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     splitAndTrim(allowOrigins, ","),
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-API-Key", "X-Request-ID"},
		AllowCredentials: true,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Remaining"},
		MaxAge:           86400,
	}))

	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.Metrics())
	router.Use(middleware.RequestLogger())

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "evigdia-backend",
			"time":    time.Now().Unix(),
		})
	})
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	handlers := &routes.Handlers{
		Auth:          handler.NewAuthHandler(authService),
		Posts:         handler.NewPostHandler(postService),
		Engagement:    handler.NewEngagementHandler(engagementService, userRepo),
		Notifications: handler.NewNotificationHandler(notificationService),
		Subscriptions: handler.NewSubscriptionHandler(subscriptionService),
		Syndication:   handler.NewSyndicationHandler(syndicationService),
		Contact:       handler.NewContactHandler(contactService),
		Offerings:     handler.NewOfferingHandler(offeringService),
		Apps:          handler.NewAppHandler(appService),
		Pricing:       handler.NewPricingHandler(pricingService),
		Search:        handler.NewSearchHandler(searchService),
		Activity:      handler.NewActivityHandler(activityService),
		WS:            handler.NewWSHandler(wsHub),
	}
	routes.Setup(router, handlers, jwtManager, redisClient, cfg.Desktop.APIKey)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		pkglogger.Info("Server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	pkglogger.Info("Shutting down")

	if scheduler != nil {
		scheduler.Stop()
	}
	wsHub.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	pkglogger.Info("Server exited")
}

// splitAndTrim splits a string by delimiter and trims spaces
func splitAndTrim(s, delimiter string) []string {
	parts := []string{}
	for _, part := range strings.Split(s, delimiter) {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}

// initDB opens the MySQL connection with pool settings
func initDB(cfg *config.Config) (*gorm.DB, error) {
	logMode := gormlogger.Warn
	if cfg.IsDevelopment() {
		logMode = gormlogger.Info
	}

	db, err := gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logMode),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}
