package cmd

import (
	"context"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/glbter/portfolio-dashboard/entities"
	"github.com/glbter/portfolio-dashboard/snapshot/client/rabbit"
)

const publishTimeout = 5 * time.Second

// ExecuteAsync serves the dashboard like ExecuteSync and publishes every new
// snapshot to RabbitMQ.
func ExecuteAsync(ctx context.Context, cfg Config, logger *zap.Logger) error {
	if cfg.RabbitURL == "" {
		log.Fatalln("rabbit url is empty")
	}

	conn, err := amqp.Dial(cfg.RabbitURL)
	if err != nil {
		log.Fatalln("Failed to connect to RabbitMQ", err)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		log.Fatalln("Failed to open a channel", err)
	}
	defer ch.Close()

	client := rabbit.NewSnapshotClient(ch, cfg.SnapshotQueue)
	if err := client.DeclareQueue(); err != nil {
		log.Fatalln("Failed to declare a queue", err)
	}

	ref, err := newRefresher(cfg, logger)
	if err != nil {
		return err
	}

	ref.Subscribe(publisher(ctx, client, logger))

	return serve(ctx, cfg, ref, logger)
}

type snapshotPublisher interface {
	Publish(ctx context.Context, snap entities.Snapshot) error
}

// publisher returns a refresher subscriber. A failed publish is logged and
// does not affect the dashboard.
func publisher(ctx context.Context, client snapshotPublisher, logger *zap.Logger) func(entities.Snapshot) {
	logger = logger.With(zap.String("caller", "SnapshotPublisher"))

	return func(snap entities.Snapshot) {
		logger := logger.With(zap.String("cid", snap.ID.String()))

		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
		defer cancel()

		if err := client.Publish(ctx, snap); err != nil {
			logger.Error("publish snapshot", zap.Error(err))
			return
		}
		logger.Debug("snapshot published")
	}
}
