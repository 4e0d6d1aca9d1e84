package main

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hisaab/hisaab-backend/config"
	"github.com/hisaab/hisaab-backend/migrations"
	"github.com/hisaab/hisaab-backend/repository"
	"github.com/hisaab/hisaab-backend/rest"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found, relying on environment")
	}

	cfg := config.FromEnv()

	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(level)
	}

	db, err := repository.Connect(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatal().Err(err).Msg("connecting to database")
	}
	defer db.Close()

	if err := migrations.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("running migrations")
	}

	app := &rest.App{}
	app.Init(db, cfg)
	defer app.Close()

	app.Run(":" + cfg.Port)
}
