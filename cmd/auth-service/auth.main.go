package main

import (
	"log"

	"identity-platform/internal/authsvc/config"
	"identity-platform/internal/authsvc/server"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Auth: No .env file found, relying on system env vars")
	}

	cfg := config.Load()
	srv := server.NewServer(cfg)
	if err := srv.ListenAndServe(); err != nil {
		log.Fatalf("auth server stopped: %v", err)
	}
}
