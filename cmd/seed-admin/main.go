package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/bureaunet/directory-backend/internal/config"
	"github.com/bureaunet/directory-backend/internal/database"
	"github.com/bureaunet/directory-backend/internal/services"
)

func main() {
	var (
		dbURLFlag string
		email     string
		password  string
	)
	flag.StringVar(&dbURLFlag, "database-url", "", "PostgreSQL connection string (overrides DATABASE_URL)")
	flag.StringVar(&email, "email", "", "admin email")
	flag.StringVar(&password, "password", "", "admin password (falls back to ADMIN_PASSWORD)")
	flag.Parse()

	// Try loading .env from current working directory (optional)
	_ = godotenv.Load()

	dbURL := dbURLFlag
	if dbURL == "" {
		dbURL = os.Getenv("DATABASE_URL")
	}
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set and -database-url was not provided")
	}
	if password == "" {
		password = os.Getenv("ADMIN_PASSWORD")
	}
	if email == "" || password == "" {
		log.Fatal("both -email and -password (or ADMIN_PASSWORD) are required")
	}

	db, err := database.NewConnection(config.DatabaseConfig{
		URL:                dbURL,
		MaxConnections:     2,
		MaxIdleConnections: 1,
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	admins := database.NewAdminRepository(db)

	existing, err := admins.GetByEmail(ctx, email)
	if err != nil {
		log.Fatalf("failed to look up admin: %v", err)
	}
	if existing != nil {
		fmt.Printf("Admin %s already exists (id %d), nothing to do.\n", email, existing.ID)
		return
	}

	hash, err := services.NewPasswordHasher(services.DefaultBcryptCost).Hash(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	id, err := admins.Create(ctx, email, hash)
	if err != nil {
		log.Fatalf("failed to create admin: %v", err)
	}

	fmt.Printf("Admin %s created with id %d.\n", email, id)
}
