package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"labrecord/internal/config"
	"labrecord/internal/domain"
	"labrecord/internal/repository/sqlite"
)

func main() {
	dbPath := flag.String("db", "", "SQLite database path (overrides config)")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()
	if *debug {
		log = log.Level(zerolog.DebugLevel)
	} else {
		log = log.Level(zerolog.InfoLevel)
	}

	cfg, cfgPath, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	if cfgPath != "" {
		log.Info().Str("path", cfgPath).Msg("config loaded")
	}
	if *dbPath != "" {
		cfg.Database.Path = *dbPath
	}

	repo, err := sqlite.New(cfg.Database.Path, sqlite.Options{
		Logger:             &log,
		MaxAttachmentBytes: cfg.Storage.MaxAttachmentBytes,
	})
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.Database.Path).Msg("open database")
	}
	defer repo.Close()
	log.Info().Str("path", cfg.Database.Path).Msg("database opened")

	ctx := context.Background()
	if username := cfg.Seed.AdminUsername; username != "" {
		existing, err := repo.GetUserByUsername(ctx, username)
		if err != nil {
			log.Fatal().Err(err).Msg("look up seed user")
		}
		if existing == nil {
			u, err := repo.CreateUser(ctx, domain.UserInsert{
				Username:    username,
				DisplayName: "Administrator",
				Role:        "Admin",
			})
			if err != nil {
				log.Fatal().Err(err).Msg("seed admin user")
			}
			log.Info().Int64("user_id", u.ID).Str("username", username).Msg("seeded admin user")
		}
	}

	log.Info().Msg("lab record store ready")

	// The HTTP layer consuming this store lives in a separate service; this
	// process only owns the database lifecycle.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop
	log.Info().Str("signal", sig.String()).Msg("shutting down")
}
