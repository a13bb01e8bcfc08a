package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"agrilink/app/echo-server/metrics"
	"agrilink/app/echo-server/router"
	"agrilink/business/admin"
	"agrilink/business/auth"
	"agrilink/business/comment"
	"agrilink/business/forum"
	"agrilink/business/lesson"
	"agrilink/business/notification"
	"agrilink/business/otp"
	"agrilink/business/product"
	userService "agrilink/business/user"
	"agrilink/internal/middleware"
	"agrilink/internal/repository/cloudinary"
	"agrilink/internal/repository/otpstore"
	psqlRepo "agrilink/internal/repository/postgres"
	redisRepo "agrilink/internal/repository/redis"
	"agrilink/internal/repository/sms"
	"agrilink/internal/rest"
	"agrilink/internal/ws"
	"agrilink/pkg/config"
	"agrilink/pkg/database"
	redisClient "agrilink/pkg/database/redis"
	"agrilink/pkg/logger"
	pkgMetrics "agrilink/pkg/metrics"
	"agrilink/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting Agrilink", "version", cfg.App.Version)

	pkgMetrics.Init()
	utils.InitJWT(cfg.JWT.SecretKey)

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	logger.Info("Database connected successfully")

	// OTP codes live in Redis when configured, otherwise in process memory.
	var otpStore otp.Store = otpstore.NewMemoryStore()
	var rdb *goredis.Client
	if cfg.Redis.Enabled {
		rdb, err = redisClient.NewRedisClient(cfg)
		if err != nil {
			logger.Fatal("Failed to connect to Redis", "error", err)
		}

		otpStore = redisRepo.NewOtpStore(rdb)
		logger.Info("Redis connected, OTP store is durable")
	}

	smsGateway := sms.NewGatewayRepository(sms.GatewayConfig{
		BaseURL:  cfg.SMS.BaseURL,
		APIKey:   cfg.SMS.APIKey,
		SenderID: cfg.SMS.SenderID,
	})

	imageStore := cloudinary.NewCloudinaryRepository(cloudinary.CloudinaryConfig{
		BaseURL:   cfg.Cloudinary.BaseURL,
		CloudName: cfg.Cloudinary.CloudName,
		APIKey:    cfg.Cloudinary.APIKey,
		APISecret: cfg.Cloudinary.APISecret,
		Folder:    cfg.Cloudinary.Folder,
	})

	// Init validate
	validate := validator.New()

	// Init repo
	userRepo := psqlRepo.NewUserRepository(db)
	productRepo := psqlRepo.NewProductRepository(db)
	forumRepo := psqlRepo.NewForumRepository(db)
	commentRepo := psqlRepo.NewCommentRepository(db)
	lessonRepo := psqlRepo.NewLessonRepository(db)
	notifRepo := psqlRepo.NewNotificationRepository(db)

	// Live notification hub
	hub := ws.NewHub()
	go hub.Run()

	// Init service
	otpSvc := otp.NewOtpService(otpStore, smsGateway)
	notifSvc := notification.NewNotificationService(notifRepo, hub)
	authSvc := auth.NewAuthService(userRepo, otpSvc, validate)
	userSvc := userService.NewUserService(userRepo)
	productSvc := product.NewProductService(productRepo)
	forumSvc := forum.NewForumService(forumRepo, notifSvc)
	commentSvc := comment.NewCommentService(commentRepo, forumRepo, notifSvc)
	lessonSvc := lesson.NewLessonService(lessonRepo, notifSvc)
	adminSvc := admin.NewAdminService(forumRepo, userRepo, productRepo, lessonRepo)

	// Init handler
	authHandler := rest.NewAuthHandler(authSvc)
	userHandler := rest.NewUserHandler(userSvc)
	productHandler := rest.NewProductHandler(productSvc)
	forumHandler := rest.NewForumHandler(forumSvc)
	commentHandler := rest.NewCommentHandler(commentSvc)
	lessonHandler := rest.NewLessonHandler(lessonSvc)
	notifHandler := rest.NewNotificationHandler(notifSvc)
	adminHandler := rest.NewAdminHandler(adminSvc)
	uploadHandler := rest.NewUploadHandler(imageStore)
	wsHandler := rest.NewWSHandler(hub, userRepo)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(metrics.HTTPMiddleware())

	// Auth middleware
	authRequired := middleware.AuthMiddleware(userRepo)
	adminOnly := middleware.AdminOnly()

	// Setup routes
	api := e.Group("/api/v1")
	router.SetupAuthRoutes(api, authHandler, authRequired)
	router.SetupUserRoutes(api, userHandler, authRequired, adminOnly)
	router.SetupProductRoutes(api, productHandler, authRequired, adminOnly)
	router.SetupForumRoutes(api, forumHandler, authRequired)
	router.SetupCommentRoutes(api, commentHandler, authRequired)
	router.SetupLessonRoutes(api, lessonHandler, authRequired, adminOnly)
	router.SetupNotificationRoutes(api, notifHandler, authRequired)
	router.SetupAdminRoutes(api, adminHandler, authRequired, adminOnly)
	router.SetupUploadRoutes(api, uploadHandler, authRequired)

	e.GET("/ws", wsHandler.Serve)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": cfg.App.Version,
		})
	})

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown server
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	if err := redisClient.CloseRedisClient(rdb); err != nil {
		logger.Error("Redis shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}
