package main

import (
	"log"

	"sealog-webhooks/config"
	"sealog-webhooks/internal/app"
)

func main() {
	cfg, err := config.New()
	if err != nil {
		log.Fatalf("Config error: %s", err)
	}
	app.Run(cfg)
}
