package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	fmt.Println("adding user into database...")

	err := godotenv.Load()
	if err != nil {
		log.Println("warning: .env file not found, use system environment variables.")
	}

	DSN := os.Getenv("DB_DSN")
	USER_EMAIL := os.Getenv("SEED_USER_EMAIL")
	PROVIDER := os.Getenv("SEED_USER_PROVIDER")
	PROVIDER_ID := os.Getenv("SEED_USER_PROVIDER_ID")

	if PROVIDER == "" {
		PROVIDER = "google"
	}

	pool, err := pgxpool.New(context.Background(), DSN)
	if err != nil {
		log.Fatalf("cannot connect DB: %v", err)
	}
	defer pool.Close()

	query := `
		INSERT INTO users (id, provider, provider_id, email)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (provider, provider_id) DO UPDATE SET email = $4
	`
	_, err = pool.Exec(context.Background(), query, uuid.New(), PROVIDER, PROVIDER_ID, USER_EMAIL)
	if err != nil {
		log.Fatalf("cannot add user: %v", err)
	}

	fmt.Printf("added or updated user '%s' successfully!\n", USER_EMAIL)
}
