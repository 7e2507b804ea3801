package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"procurement/cmd"
	"procurement/internal/adapters/out/kafka"
	"procurement/internal/adapters/out/mail"
	"procurement/internal/adapters/out/postgres"
	"procurement/internal/adapters/out/pubsub"
	"procurement/internal/adapters/out/windowstore"
	"procurement/internal/core/ports"
	"procurement/internal/pkg/metrics"

	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

func main() {
	configs := getConfigs()
	logger := newLogger(configs)

	loc, err := configs.Location()
	if err != nil {
		log.Fatalf("invalid TIMEZONE %q: %v", configs.TimeZone, err)
	}

	gormDB, err := postgres.Open(postgres.DSN(
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode,
	))
	if err != nil {
		log.Fatalf("connect to database: %v", err)
	}
	if err := postgres.Migrate(gormDB); err != nil {
		log.Fatalf("migrate database: %v", err)
	}

	hub := pubsub.NewHub(pubsub.DefaultBuffer, logger)
	publishers := []ports.Publisher{hub}
	if brokers := kafka.ParseBrokers(configs.KafkaBrokers); len(brokers) > 0 {
		producer := kafka.NewPublisher(brokers, configs.KafkaTopicPrefix, logger)
		defer producer.Close()
		publishers = append(publishers, producer)
		logger.Info("Kafka publishing enabled", "brokers", brokers)
	}

	directory, err := mail.NewStaticDirectory(configs.AdminEmails, configs.DepartmentEmails)
	if err != nil {
		log.Fatalf("invalid recipient configuration: %v", err)
	}

	app := cmd.NewCompositionRoot(configs, loc, cmd.Dependencies{
		GormDB:    gormDB,
		Window:    newWindowStore(configs, logger),
		Hub:       hub,
		Publisher: pubsub.NewFanout(publishers...),
		Mailer:    newMailer(configs, logger),
		Directory: directory,
		Metrics:   metrics.New(),
		Logger:    logger,
	})

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(app, configs, logger)
}

func getConfigs() cmd.Config {
	// .env is optional, real environment variables win.
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	config := cmd.Config{
		AppEnv:             goDotEnvVariable("APP_ENV"),
		HTTPPort:           goDotEnvVariable("HTTP_PORT"),
		DBHost:             goDotEnvVariable("DB_HOST"),
		DBPort:             goDotEnvVariable("DB_PORT"),
		DBUser:             goDotEnvVariable("DB_USER"),
		DBPassword:         goDotEnvVariable("DB_PASSWORD"),
		DBName:             goDotEnvVariable("DB_NAME"),
		DBSslMode:          goDotEnvVariable("DB_SSLMODE"),
		TimeZone:           goDotEnvVariable("TIMEZONE"),
		OrderingWindowOpen: goDotEnvVariable("ORDERING_WINDOW_OPEN"),
		SummaryCron:        goDotEnvVariable("SUMMARY_CRON"),
		HTTPRateLimit:      goDotEnvVariable("HTTP_RATE_LIMIT"),
		KafkaBrokers:       goDotEnvVariable("KAFKA_BROKERS"),
		KafkaTopicPrefix:   goDotEnvVariable("KAFKA_TOPIC_PREFIX"),
		RedisAddr:          goDotEnvVariable("REDIS_ADDR"),
		RedisPassword:      goDotEnvVariable("REDIS_PASSWORD"),
		RedisDB:            goDotEnvVariable("REDIS_DB"),
		SMTPHost:           goDotEnvVariable("SMTP_HOST"),
		SMTPPort:           goDotEnvVariable("SMTP_PORT"),
		SMTPUser:           goDotEnvVariable("SMTP_USER"),
		SMTPPassword:       goDotEnvVariable("SMTP_PASSWORD"),
		SMTPFrom:           goDotEnvVariable("SMTP_FROM"),
		SMTPRatePerSecond:  goDotEnvVariable("SMTP_RATE_PER_SECOND"),
		AdminEmails:        goDotEnvVariable("ADMIN_EMAILS"),
		DepartmentEmails:   goDotEnvVariable("DEPARTMENT_EMAILS"),
	}
	if config.HTTPPort == "" {
		config.HTTPPort = "8080"
	}
	return config
}

func goDotEnvVariable(key string) string {
	return os.Getenv(key)
}

func newLogger(configs cmd.Config) *slog.Logger {
	if configs.IsProduction() {
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func newWindowStore(configs cmd.Config, logger *slog.Logger) ports.WindowStore {
	if configs.RedisAddr == "" {
		return windowstore.NewMemoryStore(configs.WindowInitiallyOpen())
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     configs.RedisAddr,
		Password: configs.RedisPassword,
		DB:       configs.RedisDatabase(),
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("connect to redis: %v", err)
	}
	logger.Info("Ordering window stored in Redis", "addr", configs.RedisAddr)
	return windowstore.NewRedisStore(rdb, windowstore.DefaultKey, configs.WindowInitiallyOpen())
}

func newMailer(configs cmd.Config, logger *slog.Logger) ports.Mailer {
	if configs.SMTPHost == "" {
		return mail.NewLogMailer(logger)
	}
	return mail.NewSMTPMailer(mail.SMTPConfig{
		Host:          configs.SMTPHost,
		Port:          configs.SMTPPort,
		User:          configs.SMTPUser,
		Password:      configs.SMTPPassword,
		From:          configs.SMTPFrom,
		RatePerSecond: configs.SMTPRate(),
	})
}

func startWebServer(app cmd.CompositionRoot, configs cmd.Config, logger *slog.Logger) {
	e := echo.New()
	e.HideBanner = true
	app.CreateServer().Register(e, configs.RequestsPerSecond())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.Logger.Fatal(err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP shutdown failed", "error", err)
	}
	app.DrainNotifications()
}
