package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"github.com/mikiyeme205-creator/MEKELLE-BREAD-MAKING/internal/events"
	"github.com/mikiyeme205-creator/MEKELLE-BREAD-MAKING/internal/handler"
	"github.com/mikiyeme205-creator/MEKELLE-BREAD-MAKING/internal/repository"
	"github.com/mikiyeme205-creator/MEKELLE-BREAD-MAKING/internal/service"
	"github.com/mikiyeme205-creator/MEKELLE-BREAD-MAKING/pkg/config"
	"github.com/mikiyeme205-creator/MEKELLE-BREAD-MAKING/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		log.Fatal("Failed to create logger:", err)
	}
	defer logger.Sync()

	logger.Info("Service configuration",
		zap.String("port", cfg.Port),
		zap.String("mongo_database", cfg.MongoDatabase),
		zap.String("kafka_brokers", cfg.KafkaBrokers),
		zap.String("order_events_topic", cfg.OrderEventsTopic))

	mongoClient, err := repository.NewMongoClient(context.Background(), cfg)
	if err != nil {
		logger.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}

	producer := events.NewKafkaProducer(cfg.KafkaBrokers, cfg.OrderEventsTopic, logger)
	defer producer.Close()

	orderRepo := repository.NewOrderRepository(mongoClient, cfg.MongoDatabase)
	productRepo := repository.NewProductRepository(mongoClient, cfg.MongoDatabase)

	pricing := service.Pricing{
		DeliveryFee:           cfg.DeliveryFee,
		FreeDeliveryThreshold: cfg.FreeDeliveryThreshold,
	}
	orderService := service.NewOrderService(orderRepo, productRepo, producer, pricing, logger)
	paymentService := service.NewPaymentService(orderRepo, producer, logger)

	orderHandler := handler.NewOrderHandler(orderService, logger)
	paymentHandler := handler.NewPaymentHandler(paymentService, logger)
	adminHandler := handler.NewAdminHandler(paymentService, logger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(logger))
	router.Use(middleware.RequestID())

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheck(cfg, mongoClient))

		authed := v1.Group("", middleware.Auth(cfg.JWTSecret))
		{
			authed.POST("/orders", orderHandler.CreateOrder)
			authed.GET("/orders/my-orders", orderHandler.ListMyOrders)
			authed.GET("/orders/:orderId", orderHandler.GetOrder)
			authed.PUT("/orders/:orderId/cancel", orderHandler.CancelOrder)
			authed.GET("/orders/:orderId/track", orderHandler.TrackOrder)

			authed.GET("/payments/methods", paymentHandler.GetMethods)
			authed.POST("/payments/process", paymentHandler.ProcessPayment)
			authed.POST("/payments/verify/:orderId", paymentHandler.VerifyPayment)

			admin := authed.Group("/admin", middleware.AdminOnly())
			{
				admin.GET("/payments", adminHandler.ListPayments)
				admin.GET("/payments/stats", adminHandler.PaymentStats)
				admin.POST("/payments/:id/verify", adminHandler.VerifyPayment)
			}
		}
	}

	httpServer := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("Starting HTTP server", zap.String("port", cfg.Port))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown failed", zap.Error(err))
	}
	if err := mongoClient.Disconnect(ctx); err != nil {
		logger.Error("MongoDB disconnect failed", zap.Error(err))
	}

	logger.Info("Server stopped")
}

func newLogger(level string) (*zap.Logger, error) {
	zapCfg := zap.NewProductionConfig()
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}
	zapCfg.Level = lvl
	return zapCfg.Build()
}

func healthCheck(cfg *config.Config, client *mongo.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := gin.H{
			"status":  "healthy",
			"service": "bakery-api",
			"port":    cfg.Port,
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := client.Ping(ctx, readpref.Primary()); err != nil {
			status["status"] = "unhealthy"
			status["mongodb"] = "unhealthy"
			c.JSON(http.StatusServiceUnavailable, status)
			return
		}
		status["mongodb"] = "healthy"
		c.JSON(http.StatusOK, status)
	}
}
