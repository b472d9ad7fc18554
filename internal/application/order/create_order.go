package order

import (
	"context"
	"log/slog"
	"time"

	"github.com/xiebiao/bookstore-ledger/internal/application/store"
	"github.com/xiebiao/bookstore-ledger/internal/domain/inventory"
	"github.com/xiebiao/bookstore-ledger/internal/domain/order"
	apperrors "github.com/xiebiao/bookstore-ledger/pkg/errors"
	"github.com/xiebiao/bookstore-ledger/pkg/metrics"
	"github.com/xiebiao/bookstore-ledger/pkg/tracing"
)

// CreateOrderUseCase 创建订单用例
// 教学要点:
// 1. 校验库存、扣减库存、写入订单在同一把写锁里完成,不会超卖
// 2. 任意一行失败整单失败,库存不变
// 3. 订单事件在解锁之后发布,MQ 慢或者挂了都不影响下单结果
type CreateOrderUseCase struct {
	store     *store.Store
	publisher order.EventPublisher
}

func NewCreateOrderUseCase(s *store.Store, publisher order.EventPublisher) *CreateOrderUseCase {
	return &CreateOrderUseCase{store: s, publisher: publisher}
}

// CreateOrderRequest 下单请求DTO
type CreateOrderRequest struct {
	CustomerName   string
	Address        string
	Contact        string
	Items          []CreateOrderItem
	ApplyDiscounts bool // 为true时按折后价下单
}

// CreateOrderItem 同一个ID出现多次时数量合并
type CreateOrderItem struct {
	ID       string
	Quantity int
}

func (uc *CreateOrderUseCase) Execute(ctx context.Context, req CreateOrderRequest) (*OrderResponse, error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "CreateOrder")
	defer span.End()
	start := time.Now()

	lines := make([]inventory.Line, len(req.Items))
	for i, it := range req.Items {
		lines[i] = inventory.Line{ItemID: it.ID, Quantity: it.Quantity}
	}

	var created order.Order
	err := uc.store.Transaction(ctx, func(tx *store.Tx) error {
		var err error
		created, err = tx.Orders.Create(order.CreateParams{
			CustomerName:   req.CustomerName,
			Address:        req.Address,
			Contact:        req.Contact,
			Lines:          lines,
			ApplyDiscounts: req.ApplyDiscounts,
		})
		if err != nil {
			return err
		}
		metrics.SetGauge(metrics.InventoryValue, tx.Ledger.TotalValue().InexactFloat64())
		return nil
	})
	metrics.ObserveHistogram(metrics.OrderCreationDuration, time.Since(start).Seconds())
	if err != nil {
		tracing.RecordError(span, err)
		metrics.IncCounterVec(metrics.OrdersFailedTotal, map[string]string{"reason": failureReason(err)})
		slog.WarnContext(ctx, "order rejected", "customer", req.CustomerName, "error", err)
		return nil, err
	}
	metrics.IncCounter(metrics.OrdersCreatedTotal)

	slog.InfoContext(ctx, "order created",
		"order_id", created.ID,
		"customer", created.CustomerName,
		"total", created.Total,
		"lines", len(created.Items),
	)
	publish(ctx, uc.publisher, order.NewCreatedEvent(created))

	resp := toOrderResponse(created)
	return &resp, nil
}

func failureReason(err error) string {
	if appErr := apperrors.GetAppError(err); appErr != nil {
		return appErr.Kind().String()
	}
	return apperrors.KindInternal.String()
}

// publish 事件发布失败只记日志,订单已经生效
func publish(ctx context.Context, p order.EventPublisher, event order.Event) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, event); err != nil {
		slog.WarnContext(ctx, "publish order event failed",
			"type", event.Type,
			"order_id", event.OrderID,
			"error", err,
		)
	}
}
