// File: asumo/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"asumo/config"
	"asumo/cron"
	"asumo/database"
	invoiceRepoPkg "asumo/database/repository/invoice"
	recordsRepoPkg "asumo/database/repository/records"
	userRepoPkg "asumo/database/repository/user"
	"asumo/handlers"
	"asumo/middleware"
	"asumo/routes"
	invoiceSvc "asumo/services/invoice"
	"asumo/services/notification"
	"asumo/services/payment"
	"asumo/services/user"
	"asumo/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/stripe/stripe-go/v76"
	"golang.org/x/time/rate"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitAuthCache()
	utils.StartHealthMonitor(database.MongoClient, utils.GetAuthCacheClient())

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	stripe.Key = config.AppConfig.StripeKey

	// repositories.
	userRepo := userRepoPkg.NewMongoUserRepo()
	invoiceRepo := invoiceRepoPkg.NewMongoInvoiceRepo()
	recordsRepo := recordsRepoPkg.NewMongoRecordRepo()

	// services.
	userService := &user.DefaultUserService{
		Repo: userRepo,
	}

	mailer, err := notification.NewSMTPMailer()
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize SMTP mailer: %v", err)
	}
	mailQueue := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisMailQueueDB,
	})
	notificationService, err := notification.NewDefaultNotificationService(
		mailer, mailQueue, rate.NewLimiter(rate.Limit(2), 5),
	)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize notification service: %v", err)
	}
	cron.InitMailWorker(mailer)

	invoiceService := &invoiceSvc.DefaultInvoiceService{
		Repo:     invoiceRepo,
		Users:    userRepo,
		Notifier: notificationService,
	}

	paymentService := payment.NewDefaultPaymentService(
		userService,
		invoiceRepo,
		payment.NewStripeGateway(),
		logger,
	)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		UserRepo: userRepo,
		User:     handlers.NewUserHandler(userService),
		Invoice:  handlers.NewInvoiceHandler(invoiceService),
		Payment:  handlers.NewPaymentHandler(paymentService),
		Records:  handlers.NewRecordsHandler(recordsRepo, userService, notificationService),
	}

	routes.RegisterRoutes(router, handlerBundle)

	srv := &http.Server{
		Addr:    ":" + config.AppConfig.AppPort,
		Handler: router,
	}

	go func() {
		logger.Sugar().Infof("main: listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server error: %v", err)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("main: shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("main: forced shutdown: %v", err)
	}
	if err := database.MongoClient.Disconnect(ctx); err != nil {
		logger.Sugar().Errorf("main: mongo disconnect: %v", err)
	}
	_ = mailQueue.Close()
}
