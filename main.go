package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/ethos-games/internal/config"
	"github.com/robalobadob/ethos-games/internal/httpserver"
	"github.com/robalobadob/ethos-games/internal/kv"
	"github.com/robalobadob/ethos-games/internal/words"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	lists, err := words.Load(cfg.DictionaryFile, cfg.TokensFile)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load word lists")
	}
	entries, tokens := lists.Stats()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scoreKV, closer, err := openScores(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.ScoreBackend).Msg("failed to open score store")
	}
	defer closer.Close()

	srv := httpserver.New(lists, scoreKV, httpserver.Options{
		ClientOrigin:  cfg.ClientOrigin,
		BrowserSecret: cfg.BrowserSecret,
		DailySalt:     cfg.DailySalt,
		Timing:        cfg.Timing,
		SessionTTL:    cfg.SessionTTL,
	})
	log.Info().
		Str("port", cfg.Port).
		Str("scores", cfg.ScoreBackend).
		Int("dictionary", entries).
		Int("faces", tokens).
		Msg("starting ethos-games")
	if err := srv.Start(ctx, ":"+cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
	log.Info().Msg("server stopped")
}

// openScores picks the best-score backend named by SCORE_BACKEND.
func openScores(ctx context.Context, cfg *config.Config) (kv.KV, io.Closer, error) {
	switch cfg.ScoreBackend {
	case config.BackendSQLite:
		db, err := kv.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return db, db, nil
	case config.BackendRedis:
		rdb, err := kv.DialRedis(ctx, cfg.RedisURL, "ethos:")
		if err != nil {
			return nil, nil, err
		}
		return rdb, rdb, nil
	default:
		return kv.NewMemory(), io.NopCloser(nil), nil
	}
}
