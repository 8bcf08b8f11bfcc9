package main

import (
	"context"
	"log"

	"gen3d-desktop/internal/app"
	"gen3d-desktop/internal/config"
	"gen3d-desktop/internal/logger"

	fyneapp "fyne.io/fyne/v2/app"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatalf("Configuration failed: %v", err)
	}

	appLogger, err := logger.New(cfg.Log.Level, cfg.Log.JSON)
	if err != nil {
		log.Fatalf("Logger initialization failed: %v", err)
	}

	fyneApp := fyneapp.NewWithID(cfg.App.ID)

	application, err := app.NewApplication(fyneApp, cfg, appLogger)
	if err != nil {
		appLogger.Error("Main", err, nil)
		log.Fatalf("Application initialization failed: %v", err)
	}

	if err := application.Run(ctx); err != nil {
		log.Fatalf("Application execution failed: %v", err)
	}
}
