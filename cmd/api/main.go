package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"txdash/internal"
	"txdash/internal/config"
	"txdash/internal/container"
	"txdash/ui"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	internal.DefaultLogger = internal.NewLogger(internal.ParseLogLevel(appConfig.LogLevel))
	defer internal.DefaultLogger.Sync()

	c, err := container.New(appConfig)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}
	defer c.Shutdown(context.Background())

	if err := c.Load(context.Background()); err != nil {
		log.Fatalf("Failed to load datasets: %v", err)
	}

	api := ui.NewApp(c.Service)
	if err := api.Start(":" + appConfig.Server.APIPort); err != nil {
		log.Fatalf("API server failed: %v", err)
	}
}
