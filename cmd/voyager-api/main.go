// README: Entry point; loads config, wires services and optional backends, runs the HTTP server.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"voyager/internal/ai"
	"voyager/internal/config"
	httptransport "voyager/internal/http"
	"voyager/internal/infra"
	"voyager/internal/logger"
	"voyager/internal/maps"
	"voyager/internal/metrics"
	"voyager/internal/modules/fixtures"
	"voyager/internal/modules/session"
	"voyager/internal/modules/travel"
	"voyager/internal/modules/usage"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found; using process environment")
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	lg, err := logger.New(cfg.Log.Level, zap.String("service", "voyager-api"))
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, lg); err != nil {
		lg.Fatal("voyager-api stopped", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config.Config, lg *zap.Logger) error {
	gen, closeGen, err := ai.New(ctx, ai.Settings{
		Provider:    cfg.AI.Provider,
		OpenAIKey:   cfg.AI.OpenAIKey,
		OpenAIModel: cfg.AI.OpenAIModel,
		GeminiKey:   cfg.AI.GeminiKey,
		GeminiModel: cfg.AI.GeminiModel,
		FixtureDir:  cfg.AI.FixtureDir,
	})
	if err != nil {
		return err
	}
	defer closeGen()

	m := metrics.New()
	deps := httptransport.ServerDeps{
		Fixtures:      fixtures.NewService(cfg.AI.FixtureDir),
		Metrics:       m,
		Logger:        lg,
		CORSOrigins:   cfg.HTTP.CORSOrigins,
		RatePerMinute: cfg.HTTP.RatePerMinute,
		MaxBodyBytes:  cfg.HTTP.MaxBodyBytes,
	}
	observers := []travel.Observer{m}

	var store session.Store = session.NewMemoryStore(cfg.Session.TTL)
	if cfg.Redis.Addr != "" {
		rdb, err := infra.NewRedis(ctx, cfg.Redis.Addr)
		if err != nil {
			return err
		}
		defer rdb.Close()
		store = session.NewRedisStore(rdb, cfg.Session.TTL)
		lg.Info("sessions stored in redis", zap.String("addr", cfg.Redis.Addr))
	}
	deps.Sessions = session.NewService(store, lg.Named("session"))

	if cfg.DB.DSN != "" {
		pool, err := infra.NewDB(ctx, cfg.DB.DSN)
		if err != nil {
			return err
		}
		defer pool.Close()
		ledger := usage.NewService(usage.NewStore(pool), cfg.AI.Provider, lg.Named("usage"))
		observers = append(observers, ledger)
		deps.Usage = ledger
	} else {
		lg.Info("usage ledger disabled; VOYAGER_DB_DSN not set")
	}

	if cfg.Maps.APIKey != "" {
		geocoder, err := maps.NewGeocoder(cfg.Maps.APIKey, lg.Named("geocode"))
		if err != nil {
			return err
		}
		deps.Geocoder = geocoder
	} else {
		lg.Warn("geocoding disabled; GOOGLE_MAPS_API_KEY not set")
	}

	if cfg.Firebase.ProjectID != "" {
		verifier, err := infra.NewFirebaseVerifier(ctx, cfg.Firebase.ProjectID, cfg.Firebase.CredentialsFile)
		if err != nil {
			return err
		}
		deps.Verifier = verifier
	} else {
		lg.Warn("authentication disabled; VOYAGER_FIREBASE_PROJECT_ID not set")
	}

	deps.Planner = travel.NewService(gen, lg.Named("travel"), observers...)

	gin.SetMode(gin.ReleaseMode)
	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           httptransport.NewServer(deps).Routes(),
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	lg.Info("voyager-api starting", zap.String("provider", cfg.AI.Provider), zap.String("addr", cfg.HTTP.Addr))
	return httptransport.Serve(ctx, srv, cfg.HTTP.ShutdownTimeout, lg)
}
