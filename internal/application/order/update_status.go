package order

import (
	"context"
	"log/slog"

	"github.com/xiebiao/bookstore-ledger/internal/application/store"
	"github.com/xiebiao/bookstore-ledger/internal/domain/order"
	"github.com/xiebiao/bookstore-ledger/pkg/metrics"
	"github.com/xiebiao/bookstore-ledger/pkg/tracing"
)

// UpdateStatusUseCase 修改订单状态
// 三个合法状态之间可以任意切换,不校验流转顺序
type UpdateStatusUseCase struct {
	store     *store.Store
	publisher order.EventPublisher
}

func NewUpdateStatusUseCase(s *store.Store, publisher order.EventPublisher) *UpdateStatusUseCase {
	return &UpdateStatusUseCase{store: s, publisher: publisher}
}

type UpdateStatusRequest struct {
	OrderID string
	Status  string
}

func (uc *UpdateStatusUseCase) Execute(ctx context.Context, req UpdateStatusRequest) (*OrderResponse, error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "UpdateOrderStatus")
	defer span.End()

	status, err := order.ParseStatus(req.Status)
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}

	var (
		updated  order.Order
		previous order.Status
	)
	err = uc.store.Transaction(ctx, func(tx *store.Tx) error {
		var err error
		updated, previous, err = tx.Orders.UpdateStatus(req.OrderID, status)
		return err
	})
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}

	metrics.IncCounterVec(metrics.OrderStatusChangesTotal, map[string]string{"status": status.String()})
	slog.InfoContext(ctx, "order status updated",
		"order_id", updated.ID,
		"from", previous,
		"to", updated.Status,
	)
	publish(ctx, uc.publisher, order.NewStatusChangedEvent(updated, previous))

	resp := toOrderResponse(updated)
	return &resp, nil
}
