package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"marketplace/cmd"
	"marketplace/internal/adapters/out/postgres"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
	"github.com/sirupsen/logrus"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	configs := getConfigs()
	logger := newLogger(configs.LogLevel)

	gormDB, err := gorm.Open(gormpostgres.Open(configs.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	if err = postgres.AutoMigrate(gormDB); err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}

	app, err := cmd.NewCompositionRoot(configs, gormDB, logger)
	if err != nil {
		log.Fatalf("Error building application: %v", err)
	}
	defer app.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go app.RunFeed(ctx)

	jobManager := app.JobManager()
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}
	defer jobManager.StopAll()

	if err = startWebServer(ctx, app, configs.HTTPPort, logger); err != nil {
		logger.WithError(err).Error("Web server stopped with error")
	}
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	return cmd.Config{
		HTTPPort:             envOr("HTTP_PORT", "8080"),
		DBHost:               os.Getenv("DB_HOST"),
		DBPort:               envOr("DB_PORT", "5432"),
		DBUser:               os.Getenv("DB_USER"),
		DBPassword:           os.Getenv("DB_PASSWORD"),
		DBName:               os.Getenv("DB_NAME"),
		DBSslMode:            envOr("DB_SSLMODE", "disable"),
		JWTSecret:            os.Getenv("JWT_SECRET"),
		PaystackSecretKey:    os.Getenv("PAYSTACK_SECRET_KEY"),
		PaystackBaseURL:      os.Getenv("PAYSTACK_BASE_URL"),
		PaystackCallbackURL:  os.Getenv("PAYSTACK_CALLBACK_URL"),
		EventsBroker:         envOr("EVENTS_BROKER", cmd.BrokerNone),
		KafkaBrokers:         os.Getenv("KAFKA_BROKERS"),
		KafkaTopic:           os.Getenv("KAFKA_TOPIC"),
		RabbitMQURL:          os.Getenv("RABBITMQ_URL"),
		RabbitMQExchange:     os.Getenv("RABBITMQ_EXCHANGE"),
		DefaultTimeZone:      os.Getenv("DEFAULT_TIME_ZONE"),
		OrderCancellableFrom: os.Getenv("ORDER_CANCELLABLE_FROM"),
		OrderRejectableFrom:  os.Getenv("ORDER_REJECTABLE_FROM"),
		OutboxRelaySchedule:  os.Getenv("OUTBOX_RELAY_SCHEDULE"),
		OutboxRelayBatchSize: envInt("OUTBOX_RELAY_BATCH_SIZE", 100),
		LogLevel:             envOr("LOG_LEVEL", "info"),
	}
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Fatalf("Error parsing %s: %v", key, err)
	}
	return n
}

func newLogger(level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	logger.SetLevel(parsed)
	return logger
}

func startWebServer(ctx context.Context, app *cmd.CompositionRoot, port string, logger *logrus.Logger) error {
	e, err := app.Router(ctx)
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		logger.WithField("port", port).Info("Starting HTTP server")
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err = <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return e.Shutdown(shutdownCtx)
}
