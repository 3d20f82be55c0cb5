package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"txdash/internal"
	"txdash/internal/config"
	"txdash/internal/container"
	"txdash/ui"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	internal.DefaultLogger = internal.NewLogger(internal.ParseLogLevel(appConfig.LogLevel))
	defer internal.DefaultLogger.Sync()

	gin.SetMode(appConfig.Server.GinMode)

	c, err := container.New(appConfig)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}
	defer c.Shutdown(context.Background())

	// Every dataset must load before the dashboard is served.
	if err := c.Load(context.Background()); err != nil {
		log.Fatalf("Failed to load datasets: %v", err)
	}

	server, err := ui.NewServer(c.Service, ui.Config{Title: appConfig.Server.Title})
	if err != nil {
		log.Fatalf("Failed to initialize server: %v", err)
	}

	if err := server.Start(":" + appConfig.Server.Port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
