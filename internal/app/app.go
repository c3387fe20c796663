package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/maxbaydi/guide-for-china/internal/adapter/cache"
	"github.com/maxbaydi/guide-for-china/internal/adapter/postgres"
	"github.com/maxbaydi/guide-for-china/internal/adapter/postgres/character"
	"github.com/maxbaydi/guide-for-china/internal/adapter/postgres/phrase"
	searchrepo "github.com/maxbaydi/guide-for-china/internal/adapter/postgres/search"
	"github.com/maxbaydi/guide-for-china/internal/adapter/postgres/usage"
	"github.com/maxbaydi/guide-for-china/internal/auth"
	"github.com/maxbaydi/guide-for-china/internal/config"
	"github.com/maxbaydi/guide-for-china/internal/service/dictionary"
	"github.com/maxbaydi/guide-for-china/internal/service/search"
	"github.com/maxbaydi/guide-for-china/internal/transport/middleware"
	"github.com/maxbaydi/guide-for-china/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, connects to
// the database, wires the dictionary services and serves HTTP until ctx is
// canceled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	searchStore := searchrepo.New(pool)
	searchSvc := search.NewService(logger, searchStore, search.Config{
		Timeout:      cfg.Search.Timeout,
		DefaultLimit: cfg.Search.DefaultLimit,
		MaxLimit:     cfg.Search.MaxLimit,
	})

	dictSvc := dictionary.NewService(logger, searchSvc, character.New(pool), phrase.New(pool), dictionary.Config{
		DefaultLimit:            cfg.Search.DefaultLimit,
		MaxLimit:                cfg.Search.MaxLimit,
		AnalyzeMaxChars:         cfg.Search.AnalyzeMaxChars,
		DefinitionsPerCharacter: cfg.Search.DefinitionsPerCharacter,
	})
	if cfg.Cache.Enabled() {
		dictSvc.SetCache(NewCache(cfg.Cache))
	}

	var api []middleware.Middleware
	if cfg.Auth.Enabled() {
		jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer)
		api = append(api, middleware.Auth(jwtManager))
		dictSvc.SetUsage(usage.New(pool))
	}
	if cfg.RateLimit.Enabled() {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.CleanupInterval)
		defer limiter.Stop()
		api = append(api, limiter.LimitByTier(cfg.RateLimit.FreePerMinute, cfg.RateLimit.PremiumPerMinute))
	}

	router := rest.NewRouter(
		rest.NewHealthHandler(BuildVersion(),
			rest.Component{Name: "database", Check: pool.Ping},
			rest.Component{Name: "search", Check: searchStore.Ready},
		),
		rest.NewDictionaryHandler(dictSvc, logger),
		middleware.Chain(api...),
	)

	handler := middleware.Chain(
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.CORS(cfg.CORS),
	)(router)

	return serve(ctx, logger, cfg.Server, handler)
}

// serve runs the HTTP server until ctx is canceled, then shuts it down
// within the configured timeout.
func serve(ctx context.Context, logger *slog.Logger, cfg config.ServerConfig, handler http.Handler) error {
	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down http server")

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}

// NewCache builds the read-through cache with one TTL bucket per
// dictionary operation.
func NewCache(cfg config.CacheConfig) *cache.Cache {
	return cache.New(cache.Config{
		Size: cfg.Size,
		TTLs: map[string]time.Duration{
			dictionary.OpSearch:    cfg.SearchTTL,
			dictionary.OpCharacter: cfg.CharacterTTL,
			dictionary.OpExamples:  cfg.ExamplesTTL,
			dictionary.OpAnalysis:  cfg.AnalysisTTL,
			dictionary.OpWordOfDay: cfg.WordOfDayTTL,
			dictionary.OpSimilar:   cfg.SimilarTTL,
			dictionary.OpReverse:   cfg.ReverseTTL,
			dictionary.OpPhrases:   cfg.PhrasesTTL,
		},
	})
}
