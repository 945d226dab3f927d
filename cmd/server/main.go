package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/SidhantUppal/roombook/internal/config"
	"github.com/SidhantUppal/roombook/internal/http-server/handlers/cancelbooking"
	"github.com/SidhantUppal/roombook/internal/http-server/handlers/createbooking"
	"github.com/SidhantUppal/roombook/internal/http-server/handlers/createtodo"
	"github.com/SidhantUppal/roombook/internal/http-server/handlers/deletetodo"
	"github.com/SidhantUppal/roombook/internal/http-server/handlers/health"
	"github.com/SidhantUppal/roombook/internal/http-server/handlers/listbookings"
	"github.com/SidhantUppal/roombook/internal/http-server/handlers/listtodos"
	"github.com/SidhantUppal/roombook/internal/http-server/handlers/signin"
	"github.com/SidhantUppal/roombook/internal/http-server/handlers/signup"
	"github.com/SidhantUppal/roombook/internal/http-server/handlers/updatebooking"
	"github.com/SidhantUppal/roombook/internal/http-server/handlers/updatetodo"
	"github.com/SidhantUppal/roombook/internal/http-server/spa"
	"github.com/SidhantUppal/roombook/internal/lib/jwt"
	"github.com/SidhantUppal/roombook/internal/lib/logger/sl"
	"github.com/SidhantUppal/roombook/internal/rabbitmq"
	authsrv "github.com/SidhantUppal/roombook/internal/services/auth"
	bookingsrv "github.com/SidhantUppal/roombook/internal/services/booking"
	todosrv "github.com/SidhantUppal/roombook/internal/services/todo"
	"github.com/SidhantUppal/roombook/internal/storage/postgres"
	"github.com/SidhantUppal/roombook/internal/storage/redis"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	cfg := config.MustLoad(config.Path("./config/local.yaml"))
	log := setupLogger(cfg.Env)

	log.Info("starting roombook server", slog.String("env", cfg.Env))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// * RabbitMQ
	mqClient, err := rabbitmq.New(cfg.RabbitMQ.URL, cfg.RabbitMQ.QueueName)
	if err != nil {
		log.Error("failed to init RabbitMQ", sl.Err(err))
		os.Exit(1)
	}
	defer mqClient.Close()

	// * Postgres
	postgresRepo, err := postgres.Connect(ctx, cfg)
	if err != nil {
		log.Error("failed to connect to postgres", sl.Err(err))
		os.Exit(1)
	}
	defer postgresRepo.Close()

	if err := postgresRepo.Bootstrap(ctx); err != nil {
		log.Error("failed to bootstrap schema", sl.Err(err))
		os.Exit(1)
	}

	// * Redis
	redisRepo, err := redis.New(ctx, cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		log.Error("failed to connect to redis", sl.Err(err))
		os.Exit(1)
	}
	defer redisRepo.Close()

	// * Services
	authService := authsrv.New(log, postgresRepo, postgresRepo, cfg.AppSecret, cfg.TokenTTL)
	bookingService := bookingsrv.NewBookingService(log, postgresRepo, redisRepo, mqClient)
	todoService := todosrv.NewTodoService(postgresRepo)

	// * Routing
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Post("/signup", signup.New(log, authService))
	r.Post("/signin", signin.New(log, authService))
	r.Get("/health", health.New(log, postgresRepo))

	r.Group(func(r chi.Router) {
		r.Use(jwt.AuthMiddleware(cfg.AppSecret))

		r.Get("/bookings", listbookings.New(log, postgresRepo, bookingService))
		r.Post("/bookings", createbooking.New(log, bookingService))
		r.Put("/booking/{id}", updatebooking.New(log, postgresRepo, bookingService))
		r.Delete("/booking/{id}", cancelbooking.New(log, postgresRepo, bookingService))

		r.Get("/todos", listtodos.New(log, todoService))
		r.Post("/todos", createtodo.New(log, todoService))
		r.Put("/todo/{id}", updatetodo.New(log, todoService))
		r.Delete("/todo/{id}", deletetodo.New(log, todoService))
	})

	// Static export of the frontend, when present.
	if cfg.HTTPServer.StaticDir != "" {
		r.NotFound(spa.Handler(cfg.HTTPServer.StaticDir))
	}

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      r,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	go func() {
		stopCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		<-stopCtx.Done()

		log.Info("shutting down HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("server forced to shutdown", sl.Err(err))
		}
	}()

	log.Info("HTTP server starting", slog.String("addr", cfg.HTTPServer.Address))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server failed", sl.Err(err))
		os.Exit(1)
	}

	log.Info("server gracefully stopped")
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	}

	return log
}
