package main

import (
	"github.com/joho/godotenv"
	"github.com/neer47/task-manager/db"
	"github.com/neer47/task-manager/internal/auth"
	"github.com/neer47/task-manager/internal/config"
	"github.com/neer47/task-manager/internal/handlers"
	"github.com/neer47/task-manager/internal/router"
	"github.com/neer47/task-manager/internal/services"
	"github.com/sirupsen/logrus"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using environment variables")
	}

	logrus.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.Load()

	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)

	if err != nil {
		level = logrus.InfoLevel
	}

	logrus.SetLevel(level)

	if err := auth.Init(cfg.JWTSecret); err != nil {
		logrus.Fatalf("Failed to initialize auth: %v", err)
	}

	if err := db.ConnectDatabase(cfg.DatabaseURL); err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.MigrateDatabase(); err != nil {
		logrus.Fatalf("Failed to migrate database: %v", err)
	}

	summarizer := services.NewOpenAISummarizer(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	taskHandler := handlers.NewTaskHandler(summarizer)

	r := router.NewRouter(taskHandler)

	logrus.Infof("Server running on port %s", cfg.Port)

	if err := r.Run(":" + cfg.Port); err != nil {
		logrus.Fatalf("Failed to start server: %v", err)
	}
}
