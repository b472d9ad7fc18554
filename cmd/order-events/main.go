// order-events 订阅订单事件并写日志
// 作为 MQ 消费端的示例,下游系统(通知、报表)可以照这个结构接入
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/xiebiao/bookstore-ledger/internal/domain/order"
	"github.com/xiebiao/bookstore-ledger/internal/infrastructure/config"
	"github.com/xiebiao/bookstore-ledger/internal/infrastructure/logger"
	"github.com/xiebiao/bookstore-ledger/pkg/mq"
)

func main() {
	if err := run(); err != nil {
		slog.Error("order-events exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logCloser, err := logger.Init(cfg.Log)
	if err != nil {
		return err
	}
	defer logCloser.Close()

	consumer, err := mq.NewConsumer(mq.Config{
		URL:          cfg.MQ.URL,
		Exchange:     cfg.MQ.Exchange,
		ExchangeType: cfg.MQ.ExchangeType,
	}, cfg.MQ.Queue, []string{string(order.EventCreated), string(order.EventStatusChanged)})
	if err != nil {
		return err
	}
	defer consumer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	slog.Info("consuming order events", "queue", cfg.MQ.Queue, "exchange", cfg.MQ.Exchange)
	err = consumer.Consume(ctx, handleEvent)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// handleEvent 格式错误的消息重试也没用,标记为永久失败直接丢弃
func handleEvent(ctx context.Context, msg mq.Message) error {
	var event order.Event
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		return fmt.Errorf("%w: %v", mq.ErrPermanent, err)
	}

	slog.InfoContext(ctx, "order event",
		"type", event.Type,
		"order_id", event.OrderID,
		"customer", event.CustomerName,
		"status", event.Status,
		"previous_status", event.PreviousStatus,
		"revision", event.Revision,
		"total", event.Total,
		"occurred_at", event.OccurredAt,
		"redelivered", msg.Redelivered,
	)
	return nil
}
