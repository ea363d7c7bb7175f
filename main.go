package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"quizbank-service/internal/config"
	"quizbank-service/internal/db"
	"quizbank-service/internal/event"
	"quizbank-service/internal/handlers"
	"quizbank-service/internal/provider"
	"quizbank-service/internal/repository"
	"quizbank-service/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system env")
	}
	cfg := config.Load()

	if cfg.MongoDB.URI == "" {
		log.Fatal("MONGO_URI is required")
	}
	if cfg.Auth.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}
	if cfg.Provider.APIKey == "" || cfg.Provider.WebhookSecret == "" {
		log.Fatal("PROVIDER_API_KEY and WEBHOOK_SECRET are required")
	}

	db.InitMongo(cfg.MongoDB.URI)
	defer db.DisconnectMongo()
	database := db.Client.Database(cfg.MongoDB.Database)

	redisClient := db.InitRedis(cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.DB)

	publisher, err := event.NewEventPublisher(cfg.RabbitMQ.URI, cfg.RabbitMQ.Exchange)
	if err != nil {
		log.Fatalf("Failed to connect to RabbitMQ: %v", err)
	}
	defer publisher.Close()

	// Repositories
	userRepo := repository.NewUserRepository(database)
	codeRepo := repository.NewCodeRepository(database)
	questionRepo := repository.NewQuestionRepository(database)

	indexCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := userRepo.EnsureIndexes(indexCtx); err != nil {
		log.Printf("Warning: Failed to create user indexes: %v", err)
	}
	if err := codeRepo.EnsureIndexes(indexCtx); err != nil {
		log.Printf("Warning: Failed to create code indexes: %v", err)
	}
	cancel()

	// Provider client and services
	providerClient := provider.NewClient(cfg.Provider.BaseURL, cfg.Provider.APIKey, cfg.Provider.Timeout)

	entitlementService := service.NewEntitlementService(providerClient, userRepo, redisClient, cfg.Provider)
	reconciler := service.NewReconciler(providerClient, userRepo, publisher)
	userService := service.NewUserService(userRepo, entitlementService, publisher, cfg.Auth)
	codeService := service.NewCodeService(codeRepo, userRepo, publisher)
	quizService := service.NewQuizService(questionRepo, codeRepo, publisher, cfg.Quiz.SampleSize)

	// Handlers
	userHandler := handlers.NewUserHandler(userService)
	codeHandler := handlers.NewCodeHandler(codeService)
	quizHandler := handlers.NewQuizHandler(quizService)
	webhookHandler := handlers.NewWebhookHandler(reconciler, cfg.Provider.WebhookSecret, cfg.Provider.WebhookTolerance)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Content-Length", "Accept-Encoding", "Authorization", "accept", "origin", "Cache-Control", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "Quizbank Service is healthy")
	})
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Server is running"})
	})

	r.POST("/webhook", webhookHandler.HandleEvent)

	users := r.Group("/api/users")
	{
		users.POST("/register", userHandler.Register)
		users.POST("/login", userHandler.Login)
	}

	codes := r.Group("/api/codes")
	{
		codes.POST("/", codeHandler.ListCodes)
		codes.POST("/create", codeHandler.CreateCode)
		codes.POST("/hide", codeHandler.HideCode)
		codes.POST("/unhide", codeHandler.UnhideCode)
	}

	quizzes := r.Group("/api/quizzes")
	{
		quizzes.GET("/:code", quizHandler.FetchQuiz)
		quizzes.POST("/", quizHandler.BulkUpload)
	}

	srv := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Printf("Starting server on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Error starting server: %v", err)
		}
	}()

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)
	<-shutdownChan
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error shutting down HTTP server: %v", err)
	}
	log.Println("Server shutdown complete")
}
