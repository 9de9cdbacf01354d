package main

import (
	"log"

	"identity-platform/internal/gateway/config"
	"identity-platform/internal/gateway/server"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Gateway: No .env file found, relying on system env vars")
	}

	cfg := config.Load()
	srv := server.NewServer(cfg)
	if err := srv.ListenAndServe(); err != nil {
		log.Fatalf("gateway stopped: %v", err)
	}
}
