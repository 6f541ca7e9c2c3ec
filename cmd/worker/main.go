package main

import (
	"catalog/infra/postgres"
	"catalog/infra/rabbitmq"
	"catalog/internal/consumers"
	"catalog/pkg/config"
	"catalog/pkg/events"
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	zapConfig := zap.NewDevelopmentConfig()
	zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	logger, _ := zapConfig.Build()
	zap.ReplaceGlobals(logger)
	defer logger.Sync()

	zap.L().Info("Catalog audit worker starting...")

	appConfig := config.Read()
	zap.L().Info("Worker config loaded",
		zap.String("serviceName", appConfig.ServiceName),
		zap.String("rabbitMQURL", appConfig.RabbitMQURL),
	)

	if appConfig.RabbitMQURL == "" {
		zap.L().Fatal("RABBITMQ_URL is required for the audit worker")
	}

	pgRepository := postgres.NewPgRepository(
		appConfig.PostgresHost,
		appConfig.PostgresDatabase,
		appConfig.PostgresUsername,
		appConfig.PostgresPassword,
		appConfig.PostgresPort,
	)
	defer pgRepository.Close()

	if err := pgRepository.Migrate(context.Background()); err != nil {
		zap.L().Fatal("Failed to ensure schema", zap.Error(err))
	}

	auditHandler := consumers.NewItemAuditHandler(pgRepository, zap.L())

	consumerConfig := rabbitmq.ConsumerConfig{
		Exchange:      events.ItemExchange,
		QueueName:     "catalog.item.audit.v1",
		RoutingKeys:   []string{"item.*.v1"},
		ServiceName:   appConfig.ServiceName,
		PrefetchCount: 10,
	}

	consumer, err := rabbitmq.NewConsumer(appConfig.RabbitMQURL, consumerConfig)
	if err != nil {
		zap.L().Fatal("Failed to create consumer", zap.Error(err))
	}
	defer consumer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		if err := consumer.Consume(ctx, auditHandler.HandleEvent); err != nil && ctx.Err() == nil {
			zap.L().Error("Consumer stopped with error", zap.Error(err))
		}
	}()

	zap.L().Info("Audit worker consuming item events",
		zap.String("queue", consumerConfig.QueueName),
	)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	zap.L().Info("Shutting down audit worker...")
	cancel()
	time.Sleep(time.Second)
	zap.L().Info("Audit worker stopped")
}
