package server

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"identity-platform/internal/usersvc/config"
	"identity-platform/internal/usersvc/handler"
	"identity-platform/internal/usersvc/repository"
	"identity-platform/internal/usersvc/router"
	"identity-platform/internal/usersvc/usecase"
	"identity-platform/shared/eventbus"

	"github.com/go-chi/chi/v5"
)

func NewServer(cfg config.AppConfig) *http.Server {
	db, err := config.ConnectDB()
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	profileRepo := repository.NewProfileRepository(db)
	profileUC := usecase.NewProfileUsecase(profileRepo)
	userHandler := handler.NewUserHandler(profileUC)

	consumer, err := eventbus.NewKafkaConsumer(
		cfg.KafkaBrokers, cfg.ConsumerGroup,
		eventbus.TopicUserEvents, profileUC.SyncFromEvent,
	)
	if err != nil {
		log.Fatal("Failed to create Kafka consumer:", err)
	}

	consumerCtx, stopConsumer := context.WithCancel(context.Background())
	go func() {
		if err := consumer.Start(consumerCtx); err != nil {
			log.Printf("Consumer stopped with error: %v", err)
		}
	}()

	// Graceful shutdown: stop consuming before the pool closes so in-flight
	// events finish against a live store.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Println("🛑 Shutdown signal received, initiating graceful shutdown...")

		log.Println("Stopping Kafka consumer...")
		stopConsumer()
		if err := consumer.Close(); err != nil {
			log.Printf("Error closing consumer: %v", err)
		}

		log.Println("Closing database connection...")
		db.Close()

		log.Println("✅ Graceful shutdown complete")
		time.Sleep(100 * time.Millisecond)
		os.Exit(0)
	}()

	r := chi.NewRouter()
	router.SetupRoutes(r, userHandler)

	log.Printf("🚀 User HTTP server listening at %s", cfg.HTTPAddr)
	return &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}
}
