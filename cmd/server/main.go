package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"preorder/internal/cache"
	"preorder/internal/config"
	"preorder/internal/repository"
	"preorder/internal/service"
	"preorder/internal/transport/rest"
	"preorder/internal/transport/ws"
)

func main() {
	log.Println("started")
	ctx := context.Background()

	cfg := config.Load()

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer mongoClient.Disconnect(ctx)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}
	log.Println("Connected to MongoDB")

	db := mongoClient.Database("preorder")

	// Redis connection
	redisAddr := cfg.RedisAddr
	if len(redisAddr) > 8 && redisAddr[:8] == "redis://" {
		redisAddr = redisAddr[8:]
	}
	rdb := redis.NewClient(&redis.Options{
		Addr: redisAddr,
	})
	defer rdb.Close()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatal("Failed to ping Redis:", err)
	}
	log.Println("Connected to Redis")

	// WebSocket hub
	wsHub := ws.NewHub()
	log.Println("WebSocket hub started")

	// Repositories
	formRepo := repository.NewFormRepo(db)
	submissionRepo := repository.NewSubmissionRepo(db)

	// Caches
	formCache := cache.NewFormCache(rdb)
	sessionCache := cache.NewSessionCache(rdb)

	// External clients
	formsClient := service.NewFormsClient(cfg.FormsAPIBase, cfg.FormsAPIToken)
	sheetClient := service.NewSheetClient(cfg.SheetAPIBase, cfg.SheetAPIToken, cfg.SheetID)
	mailClient := service.NewMailClient(cfg.MailAPIBase, cfg.MailAPIToken, cfg.MailFrom)

	// Services
	authSvc := service.NewAuthService()
	formSvc := service.NewFormService(formsClient, formRepo, formCache)
	orderSvc := service.NewOrderService(formSvc, sessionCache)
	submissionSvc := service.NewSubmissionService(formSvc, orderSvc, sessionCache, submissionRepo, sheetClient, mailClient)

	// Inject broadcaster (wsHub implements service.Broadcaster)
	orderSvc.SetBroadcaster(wsHub)
	submissionSvc.SetBroadcaster(wsHub)

	// Create router with container
	container := &rest.Container{
		AuthService:       authSvc,
		FormService:       formSvc,
		OrderService:      orderSvc,
		SubmissionService: submissionSvc,
		WSHub:             wsHub,
	}

	router := rest.NewRouter(container)

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.HTTPPort)
		log.Println("Endpoints:")
		log.Println("  POST /v1/auth/login")
		log.Println("  POST /v1/forms/{formId}/sessions")
		log.Println("  GET  /v1/forms/{formId}")
		log.Println("  PUT/DELETE /v1/forms/{formId}/answers/{fieldId}")
		log.Println("  GET  /v1/forms/{formId}/state")
		log.Println("  POST /v1/forms/{formId}/submit")
		log.Println("  GET  /v1/forms/{formId}/submissions")
		log.Println("  WS   /v1/ws/forms/{formId}")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe:", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
