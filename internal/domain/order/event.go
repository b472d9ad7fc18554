package order

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// EventType 订单事件类型,同时用作消息路由键
type EventType string

const (
	EventCreated       EventType = "order.created"
	EventStatusChanged EventType = "order.status_changed"
)

// Event 订单状态变化后发出的领域事件
// 事件在释放锁之后才发布,同一订单的事件到达顺序不保证,
// 消费方按 Revision 判断先后,小于已处理版本的事件直接丢弃
type Event struct {
	Type           EventType       `json:"type"`
	OrderID        string          `json:"order_id"`
	CustomerName   string          `json:"customer_name"`
	Status         Status          `json:"status"`
	PreviousStatus Status          `json:"previous_status,omitempty"`
	Revision       int             `json:"revision"`
	Total          decimal.Decimal `json:"total_amount"`
	OccurredAt     time.Time       `json:"occurred_at"`
}

// NewCreatedEvent 下单事件
func NewCreatedEvent(o Order) Event {
	return Event{
		Type:         EventCreated,
		OrderID:      o.ID,
		CustomerName: o.CustomerName,
		Status:       o.Status,
		Revision:     o.Revision,
		Total:        o.Total,
		OccurredAt:   o.CreatedAt,
	}
}

// NewStatusChangedEvent 状态变更事件
func NewStatusChangedEvent(o Order, previous Status) Event {
	return Event{
		Type:           EventStatusChanged,
		OrderID:        o.ID,
		CustomerName:   o.CustomerName,
		Status:         o.Status,
		PreviousStatus: previous,
		Revision:       o.Revision,
		Total:          o.Total,
		OccurredAt:     o.UpdatedAt,
	}
}

// EventPublisher 事件发布端口,由基础设施层实现
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
}
