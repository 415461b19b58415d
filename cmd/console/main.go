package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/harshitagarwal04/admin-panel-frontend-sub000/internal/backend"
	"github.com/harshitagarwal04/admin-panel-frontend-sub000/internal/cache"
	"github.com/harshitagarwal04/admin-panel-frontend-sub000/internal/config"
	"github.com/harshitagarwal04/admin-panel-frontend-sub000/internal/handler"
	"github.com/harshitagarwal04/admin-panel-frontend-sub000/internal/jobs"
	"github.com/harshitagarwal04/admin-panel-frontend-sub000/internal/middleware"
	"github.com/harshitagarwal04/admin-panel-frontend-sub000/internal/redis"
	"github.com/harshitagarwal04/admin-panel-frontend-sub000/internal/service"
	"github.com/harshitagarwal04/admin-panel-frontend-sub000/internal/session"
	"github.com/harshitagarwal04/admin-panel-frontend-sub000/internal/tokenstore"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	setLogLevel(cfg.LogLevel)

	isProduction := os.Getenv("FLY_APP_NAME") != ""
	if err := cfg.Validate(isProduction); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}

	store, err := tokenstore.New(cfg.StateDir)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open token store")
	}

	client := backend.NewClient(cfg.APIBaseURL, nil)
	sessions := session.NewController(client.Auth(), store, cfg.SessionSecret, cfg.RefreshThreshold())
	client.SetTokenSource(sessions)
	sessions.Restore()

	cacheStore := cache.NewStore(cache.Options{
		StaleTime: cfg.CacheStaleTime(),
		CacheTime: cfg.CacheGCTime(),
	})
	cacheOpts := cache.Options{StaleTime: cfg.CacheStaleTime(), CacheTime: cfg.CacheGCTime()}

	companyService := service.NewCompanyService(client.Auth(), cacheStore, cacheOpts)
	agentService := service.NewAgentService(client.Agents(), cacheStore, cacheOpts)
	leadService := service.NewLeadService(client.Leads(), companyService, cacheStore, cacheOpts)
	callService := service.NewCallService(client.Calls(), cacheStore, cacheOpts)
	uploadPoller := service.NewUploadPoller(client.CallIQ(), cfg.UploadPollInterval(), cfg.UploadPollMaxAttempts)
	calliqService := service.NewCallIQService(client.CallIQ(), cacheStore, cacheOpts, uploadPoller)

	var loginLimiter middleware.LoginLimiter = middleware.NewMemoryLoginLimiter()
	if cfg.RedisURL != "" {
		redisClient, err := redis.NewClient(cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer redisClient.Close()
		loginLimiter = middleware.NewRedisLoginLimiter(redisClient.Client)
		log.Info().Msg("redis connected, login rate limiting is shared")
	}

	sessionMiddleware := middleware.NewSessionMiddleware(sessions)
	csrfMiddleware := middleware.NewCSRFMiddleware(isProduction)
	securityHeadersMiddleware := middleware.NewSecurityHeadersMiddleware(isProduction)
	bodyLimit := middleware.NewBodyLimitMiddleware(0)
	uploadBodyLimit := middleware.NewBodyLimitMiddleware(config.UploadMaxBodySize)

	authHandler := handler.NewAuthHandler(
		sessions, companyService,
		sessionMiddleware.Handler, middleware.LoginRateLimit(loginLimiter),
		isProduction, cfg.DevLogin,
	)
	agentHandler := handler.NewAgentHandler(agentService)
	leadHandler := handler.NewLeadHandler(leadService)
	callHandler := handler.NewCallHandler(callService)
	calliqHandler := handler.NewCallIQHandler(calliqService)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(securityHeadersMiddleware.Handler)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]any{
			"status":    "ok",
			"timestamp": time.Now().UnixMilli(),
		})
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(csrfMiddleware.Handler)

		r.Route("/auth", func(r chi.Router) {
			r.Use(chimiddleware.Timeout(config.ServerRequestTimeout))
			r.Use(bodyLimit.Handler)
			r.Mount("/", authHandler.Routes())
		})

		r.Group(func(r chi.Router) {
			r.Use(sessionMiddleware.Handler)

			r.Route("/agents", func(r chi.Router) {
				r.Use(chimiddleware.Timeout(config.ServerRequestTimeout))
				r.Use(bodyLimit.Handler)
				r.Mount("/", agentHandler.Routes())
			})

			// Lead and CallIQ routes carry file uploads; they get the larger
			// body cap and, for CallIQ, the longer timeout the blocking
			// analyze poll needs.
			r.Route("/leads", func(r chi.Router) {
				r.Use(chimiddleware.Timeout(config.ServerRequestTimeout))
				r.Use(uploadBodyLimit.Handler)
				r.Mount("/", leadHandler.Routes())
			})

			r.Route("/calls", func(r chi.Router) {
				r.Use(chimiddleware.Timeout(config.ServerRequestTimeout))
				r.Use(bodyLimit.Handler)
				r.Mount("/", callHandler.Routes())
			})

			r.Route("/calliq", func(r chi.Router) {
				r.Use(chimiddleware.Timeout(config.BackendUploadTimeout))
				r.Use(uploadBodyLimit.Handler)
				r.Mount("/", calliqHandler.Routes())
			})
		})
	})

	r.Get("/*", handler.StaticFileServer(cfg.StaticDir).ServeHTTP)

	refreshJob := jobs.NewRefreshJob(sessions, cfg.RefreshCheckInterval())
	refreshJob.Start()
	defer refreshJob.Stop()

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: 0,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	go func() {
		log.Info().Str("addr", cfg.Addr()).Str("backend", cfg.APIBaseURL).Msg("starting console")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down console")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), config.ServerShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("console stopped")
}

func setLogLevel(level string) {
	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
