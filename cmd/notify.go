package cmd

import (
	"context"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/glbter/portfolio-dashboard/entities"
	"github.com/glbter/portfolio-dashboard/portfolio/format"
	"github.com/glbter/portfolio-dashboard/snapshot/client/rabbit"
)

// ExecuteNotify consumes the snapshots published by ExecuteAsync and logs how
// the portfolio moves between them.
func ExecuteNotify(ctx context.Context, cfg Config, logger *zap.Logger) error {
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

	msgs, err := client.Receive()
	if err != nil {
		log.Fatalln("Failed to initialize a consumer", err)
	}

	logger.Info("notifier is starting", zap.String("queue", cfg.SnapshotQueue))
	consume(ctx, msgs, newMovementTracker(logger))
	logger.Info("notifier is stopping")
	return nil
}

func consume(ctx context.Context, msgs <-chan amqp.Delivery, tracker *movementTracker) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-msgs:
			if !ok {
				return
			}
			tracker.handle(msg)
		}
	}
}

type quoteMove struct {
	Symbol   string
	From, To float64
}

// movementTracker remembers the last snapshot seen. Deliveries are handled
// one at a time, in queue order.
type movementTracker struct {
	logger   *zap.Logger
	previous *entities.Snapshot
}

func newMovementTracker(logger *zap.Logger) *movementTracker {
	return &movementTracker{logger: logger.With(zap.String("caller", "MovementTracker"))}
}

func (t *movementTracker) handle(msg amqp.Delivery) {
	var (
		start  = time.Now()
		logger = t.logger.With(zap.String("cid", msg.CorrelationId))
	)

	snap, err := rabbit.Decode(msg.Body)
	if err != nil {
		logger.Error(err.Error())
		msg.Reject(false)
		return
	}

	if t.previous != nil && snap.FetchedAt.Before(t.previous.FetchedAt) {
		logger.Warn("skip out of order snapshot",
			zap.Time("fetched_at", snap.FetchedAt),
			zap.Time("previous_fetched_at", t.previous.FetchedAt),
		)
		msg.Ack(false)
		return
	}

	t.observe(logger, snap)
	msg.Ack(false)
	logger.Debug("finish", zap.Duration("duration", time.Since(start)))
}

func (t *movementTracker) observe(logger *zap.Logger, snap entities.Snapshot) {
	sum := snap.Summary
	fields := []zap.Field{
		zap.Time("fetched_at", snap.FetchedAt),
		zap.String("invested", format.Money(sum.Invested, snap.Currency)),
		zap.String("current", format.Money(sum.Current, snap.Currency)),
		zap.String("gain_loss", format.SignedMoney(sum.GainLoss, snap.Currency)),
		zap.String("profit", format.Percent(sum.ProfitPercent)),
	}

	if t.previous != nil {
		change := sum.GainLoss.Sub(t.previous.Summary.GainLoss)
		fields = append(fields, zap.String("gain_loss_change", format.SignedMoney(change, snap.Currency)))

		for _, m := range quoteMoves(*t.previous, snap) {
			logger.Info("quote moved",
				zap.String("symbol", m.Symbol),
				zap.Float64("from", m.From),
				zap.Float64("to", m.To),
			)
		}
	}

	logger.Info("portfolio snapshot", fields...)
	t.previous = &snap
}

// quoteMoves lists the symbols whose price changed, in the order of next.
// Symbols missing from prev are not reported.
func quoteMoves(prev, next entities.Snapshot) []quoteMove {
	before := make(map[string]float64, len(prev.Quotes))
	for _, q := range prev.Quotes {
		before[q.Symbol] = q.CMP
	}

	var moves []quoteMove
	for _, q := range next.Quotes {
		from, ok := before[q.Symbol]
		if !ok || from == q.CMP {
			continue
		}
		moves = append(moves, quoteMove{Symbol: q.Symbol, From: from, To: q.CMP})
	}
	return moves
}
