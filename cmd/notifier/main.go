package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/SidhantUppal/roombook/internal/config"
	"github.com/SidhantUppal/roombook/internal/lib/logger/sl"
	"github.com/SidhantUppal/roombook/internal/models"
	"github.com/SidhantUppal/roombook/internal/notifier"
	"github.com/SidhantUppal/roombook/internal/rabbitmq"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.MustLoadNotifier(config.Path("./config/notifier.yaml"))
	log := setupLogger(cfg.Env)

	startConsumer(ctx, cfg, log)
}

func startConsumer(ctx context.Context, cfg *config.NotifierConfig, log *slog.Logger) {
	log.Info("starting notifier", slog.String("env", cfg.Env))

	mq, err := rabbitmq.New(cfg.RabbitMQURL, cfg.QueueName)
	if err != nil {
		log.Error("failed to init rabbitmq", sl.Err(err))
		return
	}
	defer mq.Close()

	m := &notifier.Mailer{
		Host:     cfg.Email.Host,
		Port:     cfg.Email.Port,
		Username: cfg.Email.Username,
		Password: cfg.Email.Password,
	}

	done := make(chan struct{})

	go func() {
		defer close(done)

		err := mq.StartReading(ctx, func(msg []byte) {
			var event models.BookingEvent
			if err := json.Unmarshal(msg, &event); err != nil {
				log.Error("failed to unmarshal message", sl.Err(err))
				return
			}

			subject, body := m.BuildMessage(event)

			if err := m.Send(cfg.AdministratorEmail, subject, body); err != nil {
				log.Error("failed to send message", sl.Err(err))
				return
			}

			log.Info("message sent successfully", slog.Int64("bookingID", event.BookingID))
		})
		if err != nil {
			log.Error("failed to start reading", sl.Err(err))
			return
		}
	}()

	log.Info("notifier successfully started")

	select {
	case <-ctx.Done():
		log.Info("shutting down consumer...")
	case <-done:
		log.Info("notifier finished the work")
	}

	log.Info("notifier gracefully stopped")
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
