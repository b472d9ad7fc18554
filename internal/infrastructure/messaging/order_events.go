package messaging

import (
	"context"
	"log/slog"

	"github.com/xiebiao/bookstore-ledger/internal/domain/order"
	"github.com/xiebiao/bookstore-ledger/pkg/circuitbreaker"
	apperrors "github.com/xiebiao/bookstore-ledger/pkg/errors"
	"github.com/xiebiao/bookstore-ledger/pkg/tracing"
)

// Sender 底层消息发送(由 *mq.Publisher 实现)
type Sender interface {
	Publish(ctx context.Context, routingKey string, message interface{}) error
}

// OrderEventPublisher 订单事件发布器
// 教学要点:
// 1. 路由键就是事件类型,消费端可以按 order.* 订阅
// 2. 经过熔断器: MQ 故障时快速失败,不拖慢下单接口
// 3. 发布失败只返回错误,是否忽略由调用方决定(下单成功不因消息失败而回滚)
type OrderEventPublisher struct {
	sender  Sender
	breaker *circuitbreaker.CircuitBreaker
}

func NewOrderEventPublisher(sender Sender, breaker *circuitbreaker.CircuitBreaker) *OrderEventPublisher {
	return &OrderEventPublisher{sender: sender, breaker: breaker}
}

func (p *OrderEventPublisher) Publish(ctx context.Context, event order.Event) error {
	ctx, span := tracing.StartSpan(ctx, "messaging", "PublishOrderEvent")
	defer span.End()

	err := p.breaker.Execute(ctx, func(ctx context.Context) error {
		return p.sender.Publish(ctx, string(event.Type), event)
	})
	if err != nil {
		tracing.RecordError(span, err)
		return apperrors.ErrBrokerError.WithDetail("%s", err.Error())
	}
	return nil
}

// NopPublisher 未启用消息队列时使用,只打一条 debug 日志
type NopPublisher struct{}

func (NopPublisher) Publish(ctx context.Context, event order.Event) error {
	slog.DebugContext(ctx, "order event (mq disabled)",
		"type", event.Type,
		"order_id", event.OrderID,
		"status", event.Status,
	)
	return nil
}
