package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"

	"github.com/AuriPersonalAssist/auri-flow/internal/auth"
	"github.com/AuriPersonalAssist/auri-flow/internal/calibration"
	"github.com/AuriPersonalAssist/auri-flow/internal/config"
	"github.com/AuriPersonalAssist/auri-flow/internal/database"
	"github.com/AuriPersonalAssist/auri-flow/internal/handlers"
	"github.com/AuriPersonalAssist/auri-flow/internal/logger"
	"github.com/AuriPersonalAssist/auri-flow/internal/middleware"
	"github.com/AuriPersonalAssist/auri-flow/internal/queue"
	"github.com/AuriPersonalAssist/auri-flow/internal/scoring"
	"github.com/AuriPersonalAssist/auri-flow/internal/telemetry"
)

const serviceName = "auriflow-api"

func main() {
	debugFlag := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	debugMode := cfg.ServerDebugMode || *debugFlag

	zapLogger, err := logger.New(debugMode)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() {
		_ = logger.Sync(zapLogger)
	}()

	zapLogger.Info("starting_server",
		zap.Bool("debug_mode", debugMode),
		zap.String("server_port", cfg.ServerPort),
		zap.String("calibration_path", cfg.CalibrationPath),
		zap.Bool("otel_enabled", cfg.OTELEnabled),
	)

	// OpenTelemetry is best effort: the API runs fine without a collector
	var tracerProvider *sdktrace.TracerProvider
	if cfg.OTELEnabled {
		if cfg.OTELEndpoint == "" {
			zapLogger.Warn("otel_enabled_but_endpoint_not_configured")
		} else {
			tp, err := telemetry.InitTracer(context.Background(), serviceName, cfg.OTELEndpoint)
			if err != nil {
				zapLogger.Warn("failed_to_initialize_otel_tracer", zap.Error(err))
			} else {
				tracerProvider = tp
				zapLogger.Info("otel_tracer_initialized", zap.String("endpoint", cfg.OTELEndpoint))
				defer func() {
					shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer shutdownCancel()
					if err := telemetry.Shutdown(shutdownCtx, tracerProvider); err != nil {
						zapLogger.Error("failed_to_shutdown_otel_tracer", zap.Error(err))
					}
				}()
			}
		}
	}

	cal, err := calibration.Load(cfg.CalibrationPath)
	if err != nil {
		zapLogger.Fatal("failed_to_load_calibration", zap.Error(err))
	}
	scorer := scoring.NewScorer(cal, scoring.WithLogger(zapLogger))

	db, err := database.New(cfg.DatabaseURL)
	if err != nil {
		zapLogger.Fatal("failed_to_connect_to_database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			zapLogger.Warn("failed_to_close_database_connection", zap.Error(err))
		}
	}()
	zapLogger.Info("connected_to_database")

	redisClient, err := middleware.NewRedisClient(cfg.RedisURL)
	if err != nil {
		zapLogger.Fatal("failed_to_connect_to_redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			zapLogger.Warn("failed_to_close_redis_connection", zap.Error(err))
		}
	}()
	zapLogger.Info("connected_to_redis")

	jobQueue := connectQueue(cfg.RabbitMQURL, zapLogger)
	defer func() {
		if err := jobQueue.Close(); err != nil {
			zapLogger.Warn("failed_to_close_rabbitmq_connection", zap.Error(err))
		}
	}()

	taskRepo := database.NewTaskRepository(db)
	prefsRepo := database.NewPreferencesRepository(db)
	userRepo := database.NewUserRepository(db)

	verifier, err := auth.NewVerifier(context.Background(), cfg.OIDCIssuer, cfg.OIDCJWKSURL)
	if err != nil {
		zapLogger.Fatal("failed_to_initialize_token_verifier", zap.Error(err))
	}
	loginFlow := auth.NewFlow(cfg.OIDCIssuer, cfg.OIDCClientID, cfg.FrontendURL+"/callback")

	rateLimitMW, err := middleware.RateLimit(redisClient, cfg.RateLimit)
	if err != nil {
		zapLogger.Fatal("failed_to_create_rate_limiter", zap.Error(err))
	}
	authMW := middleware.Auth(verifier, userRepo, zapLogger)

	taskHandler := handlers.NewTaskHandler(taskRepo, prefsRepo, cal, scorer, zapLogger,
		handlers.WithTaskJobQueue(jobQueue))
	prefsHandler := handlers.NewPreferencesHandler(prefsRepo, zapLogger,
		handlers.WithPreferencesJobQueue(jobQueue))
	calHandler := handlers.NewCalibrationHandler(cal)
	authHandler := handlers.NewAuthHandler(loginFlow)
	healthChecker := handlers.NewHealthChecker(db,
		handlers.WithRedisCheck(redisClient),
		handlers.WithQueueCheck(jobQueue))

	r := mux.NewRouter()

	// Middleware executes in registration order, outermost first
	if tracerProvider != nil {
		r.Use(otelmux.Middleware(serviceName))
	}
	r.Use(middleware.SecurityHeaders(cfg.EnableHSTS))
	r.Use(middleware.CORS([]string{cfg.FrontendURL}))
	r.Use(middleware.MaxRequestSize(middleware.DefaultMaxRequestSize))
	r.Use(middleware.ContentType)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.Recovery(zapLogger))
	r.Use(middleware.Logging(zapLogger))

	r.HandleFunc("/healthz", healthChecker.HealthCheck).Methods("GET")
	r.HandleFunc("/version", versionInfo).Methods("GET")

	apiRouter := r.PathPrefix("/api/v1").Subrouter()

	authRouter := apiRouter.PathPrefix("/auth").Subrouter()
	loginRouter := authRouter.PathPrefix("/oidc").Subrouter()
	loginRouter.Use(rateLimitMW)
	loginRouter.HandleFunc("/login", authHandler.GetOIDCLogin).Methods("GET")

	meRouter := authRouter.PathPrefix("").Subrouter()
	meRouter.Use(authMW)
	meRouter.Use(rateLimitMW)
	meRouter.HandleFunc("/me", authHandler.GetMe).Methods("GET")

	tasksRouter := apiRouter.PathPrefix("/tasks").Subrouter()
	tasksRouter.Use(authMW)
	tasksRouter.Use(rateLimitMW)
	taskHandler.RegisterRoutes(tasksRouter)

	prefsRouter := apiRouter.PathPrefix("/preferences").Subrouter()
	prefsRouter.Use(authMW)
	prefsRouter.Use(rateLimitMW)
	prefsHandler.RegisterRoutes(prefsRouter)

	calRouter := apiRouter.PathPrefix("/calibration").Subrouter()
	calRouter.Use(authMW)
	calRouter.Use(rateLimitMW)
	calHandler.RegisterRoutes(calRouter)

	// Preflight requests only need the CORS headers set by the middleware
	r.Methods("OPTIONS").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	srv := &http.Server{
		Addr:           ":" + cfg.ServerPort,
		Handler:        r,
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   15 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		zapLogger.Info("server_starting", zap.String("port", cfg.ServerPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("server_failed_to_start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("server_shutting_down")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Fatal("server_forced_to_shutdown", zap.Error(err))
	}

	zapLogger.Info("server_exited")
}

func versionInfo(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `{"version":"1.0.0","timestamp":"%s"}`, time.Now().UTC().Format(time.RFC3339))
}

// connectQueue dials RabbitMQ with exponential backoff. The broker often
// comes up after the API in compose environments.
func connectQueue(amqpURL string, zapLogger *zap.Logger) queue.JobQueue {
	const maxRetries = 10
	const initialDelay = 2 * time.Second

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		jobQueue, err := queue.NewRabbitMQQueue(amqpURL)
		if err == nil {
			zapLogger.Info("connected_to_rabbitmq")
			return jobQueue
		}

		lastErr = err
		delay := initialDelay * time.Duration(1<<uint(attempt))
		if delay > 30*time.Second {
			delay = 30 * time.Second
		}
		zapLogger.Warn("failed_to_connect_to_rabbitmq_retrying",
			zap.Int("attempt", attempt+1),
			zap.Int("max_retries", maxRetries),
			zap.Duration("retry_delay", delay),
			zap.Error(err),
		)
		time.Sleep(delay)
	}

	zapLogger.Fatal("failed_to_connect_to_rabbitmq_after_retries",
		zap.Int("max_retries", maxRetries),
		zap.Error(lastErr),
	)
	return nil
}
