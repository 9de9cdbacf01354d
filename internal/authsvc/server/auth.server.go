package server

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"identity-platform/internal/authsvc/config"
	"identity-platform/internal/authsvc/handler"
	"identity-platform/internal/authsvc/repository"
	"identity-platform/internal/authsvc/router"
	"identity-platform/internal/authsvc/usecase"
	"identity-platform/shared/eventbus"
	"identity-platform/shared/id"
	"identity-platform/shared/jwtutil"

	"github.com/go-chi/chi/v5"
)

func NewServer(cfg config.AppConfig) *http.Server {
	db, err := config.ConnectDB()
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	codec, err := jwtutil.NewCodec([]byte(cfg.TokenSecret), cfg.TokenIssuer, cfg.ClockSkew)
	if err != nil {
		log.Fatalf("failed to init token codec: %v", err)
	}

	sf, err := id.NewSnowflake(cfg.SnowflakeNode)
	if err != nil {
		log.Fatalf("failed to init snowflake: %v", err)
	}

	producer, err := eventbus.NewKafkaProducer(cfg.KafkaBrokers)
	if err != nil {
		log.Fatal("Failed to create Kafka producer:", err)
	}

	userRepo := repository.NewUserRepository(db)
	userUC := usecase.NewUserUsecase(userRepo, sf, codec, producer, cfg.TokenTTL)
	authHandler := handler.NewAuthHandler(userUC)

	// Graceful shutdown: stop the producer before the pool so in-flight
	// publishes drain.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Println("🛑 Shutdown signal received, initiating graceful shutdown...")

		log.Println("Stopping Kafka producer...")
		if err := producer.Close(); err != nil {
			log.Printf("Error closing producer: %v", err)
		}

		log.Println("Closing database connection...")
		db.Close()

		log.Println("✅ Graceful shutdown complete")
		time.Sleep(100 * time.Millisecond)
		os.Exit(0)
	}()

	r := chi.NewRouter()
	router.SetupRoutes(r, authHandler)

	log.Printf("🚀 Auth HTTP server listening at %s", cfg.HTTPAddr)
	return &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}
}
