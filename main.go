package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"

	"github.com/smart-spoon-core/advisor/internal/advisor/catalog"
	"github.com/smart-spoon-core/advisor/internal/advisor/graph"
	"github.com/smart-spoon-core/advisor/internal/advisor/imaging"
	"github.com/smart-spoon-core/advisor/internal/advisor/matcher"
	"github.com/smart-spoon-core/advisor/internal/advisor/model"
	"github.com/smart-spoon-core/advisor/internal/advisor/repo"
	"github.com/smart-spoon-core/advisor/internal/advisor/session"
	"github.com/smart-spoon-core/advisor/internal/advisor/transcript"
	logx "github.com/smart-spoon-core/advisor/pkg/logger"
)

func main() {
	ctx := context.Background()
	logx.Init()

	// Load .env file
	if err := godotenv.Load(".env"); err != nil {
		logx.Warn().Err(err).Msg("No .env file loaded")
	}

	cfg, err := loadConfig()
	if err != nil {
		logx.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logx.Init(logx.LoggerOpts{Environment: cfg.Env(), Level: cfg.LogLevel})

	store, closeStore := newSessionStore(ctx, cfg)
	defer closeStore()

	m := matcher.New(catalog.Default(),
		matcher.WithSeed(cfg.Matcher.Seed),
		matcher.WithTieBreak(matcher.ParseTieBreak(cfg.Matcher.TieBreak)),
	)

	runner, err := graph.BuildAdvisor(ctx, graph.Config{Matcher: m})
	if err != nil {
		logx.Fatal().Err(err).Msg("Failed to build advisor graphs")
	}

	driver := session.New(session.Deps{
		Runner:     runner,
		Transcript: transcript.NewManager(store, cfg.Session),
		In:         os.Stdin,
		Out:        os.Stdout,
		Signature: func(path string) (model.ColorSignature, error) {
			return imaging.SignatureFromFile(path,
				imaging.WithSampleSize(cfg.Image.SampleSize),
				imaging.WithMaxBytes(cfg.Image.MaxBytes),
				imaging.WithMaxPixels(cfg.Image.MaxPixels),
			)
		},
	})

	if err := driver.Run(ctx); err != nil {
		logx.Error().Err(err).Msg("Advisor stopped with an error")
		closeStore()
		os.Exit(1)
	}
}

// newSessionStore picks Redis when REDIS_URL is set and memory otherwise.
func newSessionStore(ctx context.Context, cfg *AppConfig) (model.SessionStore, func()) {
	if !cfg.Redis.Enabled() {
		logx.Debug().Msg("Using in-memory session store")
		return repo.NewMemorySessionStore(), func() {}
	}

	ttl, err := cfg.SessionTTL()
	if err != nil {
		logx.Fatal().Err(err).Msg("Invalid session TTL")
	}

	rdb, err := cfg.Redis.New(ctx)
	if err != nil {
		logx.Fatal().Err(err).Msg("Failed to initialise Redis client")
	}
	logx.Info().Msg("Connected to Redis successfully")

	return repo.NewRedisSessionStore(rdb, ttl), func() { _ = rdb.Close() }
}
