package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/taskboard-dev/taskboard/db"
	"github.com/taskboard-dev/taskboard/internal/router"
)

func main() {
	var err error

	err = godotenv.Load()

	if err != nil {
		log.Println("No .env file found, using environment variables")
	}

	dsn := os.Getenv("DATABASE_URL")

	if dsn == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	if err = db.ConnectDatabase(dsn); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err = db.MigrateDatabase(); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	r := router.NewRouter()

	var port string

	if port = os.Getenv("PORT"); port == "" {
		port = "3000"
		log.Println("PORT not set, defaulting to 3000")
	}

	if err = r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
