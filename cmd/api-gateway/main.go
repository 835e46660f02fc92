package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/sportoase/sportoase-api/api/swagger"
	"github.com/sportoase/sportoase-api/internal/handler"
	"github.com/sportoase/sportoase-api/internal/middleware"
	"github.com/sportoase/sportoase-api/internal/models"
	"github.com/sportoase/sportoase-api/internal/repository"
	"github.com/sportoase/sportoase-api/internal/service"
	"github.com/sportoase/sportoase-api/pkg/cache"
	"github.com/sportoase/sportoase-api/pkg/config"
	"github.com/sportoase/sportoase-api/pkg/database"
	"github.com/sportoase/sportoase-api/pkg/logger"
	corsmiddleware "github.com/sportoase/sportoase-api/pkg/middleware/cors"
	reqidmiddleware "github.com/sportoase/sportoase-api/pkg/middleware/requestid"
)

// @title SportOase API
// @version 1.0.0
// @description Slot booking backend for the school gymnasium
// @BasePath /api/sportoase
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		logr.Sugar().Fatalw("failed to run migrations", "error", err)
	}

	// Redis is optional: without it the availability cache degrades to
	// a no-op and every request recomputes.
	var redisClient *redis.Client
	if cfg.Booking.CacheEnabled {
		redisClient, err = cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, availability cache disabled", "error", err)
			redisClient = nil
		}
	}

	userRepo := repository.NewUserRepository(db)
	timeslotRepo := repository.NewTimeSlotRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	blockedRepo := repository.NewBlockedSlotRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	metrics := service.NewMetricsService()
	authSvc := service.NewAuthService(userRepo, cfg.JWT, cfg.IServ, logr)
	availabilitySvc := service.NewAvailabilityService(
		timeslotRepo, bookingRepo, blockedRepo, cacheRepo, metrics, logr,
		cfg.Booking.CacheEnabled, cfg.Booking.CacheTTL)
	bookingSvc := service.NewBookingService(
		bookingRepo, timeslotRepo, blockedRepo, cacheRepo, metrics, logr,
		cfg.Booking.AdminListLimit)
	blockedSvc := service.NewBlockedSlotService(blockedRepo, cacheRepo, logr, cfg.Booking.AdminListLimit)
	notificationSvc := service.NewNotificationService(notificationRepo, logr, cfg.Booking.NotificationLimit)
	timeslotSvc := service.NewTimeSlotService(timeslotRepo, cacheRepo, logr)
	exportSvc := service.NewExportService(bookingSvc, logr)

	authHandler := handler.NewAuthHandler(authSvc)
	slotHandler := handler.NewSlotHandler(availabilitySvc, timeslotSvc)
	bookingHandler := handler.NewBookingHandler(bookingSvc, exportSvc)
	blockHandler := handler.NewBlockHandler(blockedSvc)
	notificationHandler := handler.NewNotificationHandler(notificationSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	auth := api.Group("/auth")
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	authed := api.Group("")
	if cfg.IServ.Enabled {
		authed.Use(middleware.IServBridge(authSvc, logr))
	}
	authed.Use(middleware.JWTAuth(authSvc))

	authed.POST("/auth/logout", authHandler.Logout)
	authed.GET("/auth/check", authHandler.CheckAuth)

	user := authed.Group("", middleware.RequireCapability(models.CapabilityUser))
	user.GET("/slots", slotHandler.Slots)
	user.GET("/slots/week", slotHandler.WeekOverview)
	user.GET("/timeslots", slotHandler.TimeSlots)
	user.POST("/book", bookingHandler.Create)
	user.GET("/my-bookings", bookingHandler.MyBookings)
	user.DELETE("/bookings/:id", bookingHandler.Delete)

	admin := authed.Group("", middleware.RequireCapability(models.CapabilityAdmin))
	admin.PATCH("/timeslots/:id", slotHandler.UpdateTimeSlot)
	admin.GET("/bookings", bookingHandler.List)
	admin.GET("/bookings/export", bookingHandler.Export)
	admin.POST("/block-slot", blockHandler.Block)
	admin.POST("/unblock-slot", blockHandler.Unblock)
	admin.GET("/blocked-slots", blockHandler.List)
	admin.GET("/notifications", notificationHandler.List)
	admin.POST("/notifications/:id/mark-read", notificationHandler.MarkRead)

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{Addr: addr, Handler: r}

	go func() {
		logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "prefix", cfg.APIPrefix)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logr.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logr.Warn("forced shutdown", zap.Error(err))
	}
	if err := cacheRepo.Close(); err != nil {
		logr.Warn("failed to close redis", zap.Error(err))
	}
}
