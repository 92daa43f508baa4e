package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/geoquiz/internal/config"
	"github.com/robalobadob/geoquiz/internal/httpserver"
	"github.com/robalobadob/geoquiz/internal/questions"
	"github.com/robalobadob/geoquiz/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	setupLogger(cfg)

	bank, err := questions.Load(cfg.QuestionsFile)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load question bank")
	}

	snaps, closeStore, err := openStore(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open snapshot store")
	}
	defer closeStore()

	srv, err := httpserver.New(httpserver.Options{
		Bank:          bank,
		CheatTokens:   cfg.CheatTokens,
		Store:         snaps,
		Secret:        []byte(cfg.JWTSecret),
		SnapshotTTL:   cfg.Snapshot.TTL,
		ClientOrigin:  cfg.ClientOrigin,
		Strict:        cfg.Strict,
		SecureCookies: cfg.IsProduction(),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build server")
	}

	log.Info().
		Str("port", cfg.Port).
		Str("env", cfg.Env).
		Str("snapshots", cfg.Snapshot.Backend).
		Msg("starting geoquiz server")
	if err := srv.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func setupLogger(cfg *config.Config) {
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if cfg.Env == "local" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

// openStore picks the snapshot backend; the returned func releases it.
func openStore(cfg *config.Config) (store.Store, func(), error) {
	if cfg.Snapshot.Backend != config.BackendSQLite {
		return store.NewMemoryStore(), func() {}, nil
	}
	db, err := store.OpenSQLite(cfg.Snapshot.DSN)
	if err != nil {
		return nil, nil, err
	}
	return db, func() { _ = db.Close() }, nil
}
