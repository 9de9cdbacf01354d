package main

import (
	"log"

	"identity-platform/internal/usersvc/config"
	"identity-platform/internal/usersvc/server"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("User: No .env file found, relying on system env vars")
	}

	cfg := config.Load()
	srv := server.NewServer(cfg)
	if err := srv.ListenAndServe(); err != nil {
		log.Fatalf("user server stopped: %v", err)
	}
}
