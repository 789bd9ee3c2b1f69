package main

import (
	"log"

	"coffee-grader/config"
	"coffee-grader/internal/api"
	"coffee-grader/internal/container"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	c, err := container.New(cfg)
	if err != nil {
		log.Fatalf("Failed to build services: %v", err)
	}
	defer c.Close()

	go c.Hub.Run()

	// The bot transport is optional; the HTTP API always runs.
	if cfg.TelegramToken != "" {
		bot, err := api.NewBot(cfg.TelegramToken, c.UserService, c.InspectionService, c.Blobs)
		if err != nil {
			log.Fatalf("Failed to create bot: %v", err)
		}
		go func() {
			log.Println("Bot is running...")
			if err := bot.Run(); err != nil {
				log.Fatalf("Bot error: %v", err)
			}
		}()
	}

	srv := api.NewServer(c.InspectionService, c.Hub, cfg.BlobDir)
	log.Printf("HTTP server listening on :%s", cfg.Port)
	if err := srv.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
