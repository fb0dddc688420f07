package main

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/lokiverse2468/Ailoitte/internal/database"
	"github.com/lokiverse2468/Ailoitte/internal/handlers"
	"github.com/lokiverse2468/Ailoitte/internal/routes"
	"github.com/lokiverse2468/Ailoitte/internal/store"
	"github.com/lokiverse2468/Ailoitte/internal/uploader"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("WARNING: Could not find or load .env file. Relying on system environment variables.")
	}

	db, err := database.OpenDB()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	imageServiceURL := os.Getenv("IMAGE_SERVICE_URL")
	if imageServiceURL == "" {
		imageServiceURL = "http://localhost:9000"
	}

	app := &handlers.Handlers{
		Store:    store.New(db),
		Uploader: uploader.NewClient(imageServiceURL, 30*time.Second),
	}

	router := routes.SetupRouter(app, app.Store)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting API server on port %s...", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
