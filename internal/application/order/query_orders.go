package order

import (
	"context"

	"github.com/xiebiao/bookstore-ledger/internal/application/store"
	"github.com/xiebiao/bookstore-ledger/internal/domain/order"
)

// QueryOrdersUseCase 订单查询(只读)
// 列表按下单先后排序,不分页
type QueryOrdersUseCase struct {
	store *store.Store
}

func NewQueryOrdersUseCase(s *store.Store) *QueryOrdersUseCase {
	return &QueryOrdersUseCase{store: s}
}

func (uc *QueryOrdersUseCase) Get(ctx context.Context, id string) (*OrderResponse, error) {
	var found order.Order
	err := uc.store.View(ctx, func(tx *store.Tx) error {
		var err error
		found, err = tx.Orders.Get(id)
		return err
	})
	if err != nil {
		return nil, err
	}
	resp := toOrderResponse(found)
	return &resp, nil
}

// ListByCustomer 客户名精确匹配,没有订单时返回空列表
func (uc *QueryOrdersUseCase) ListByCustomer(ctx context.Context, customer string) (*OrderListResponse, error) {
	var orders []order.Order
	err := uc.store.View(ctx, func(tx *store.Tx) error {
		orders = tx.Orders.ListByCustomer(customer)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toOrderList(orders), nil
}

func (uc *QueryOrdersUseCase) ListByStatus(ctx context.Context, status string) (*OrderListResponse, error) {
	parsed, err := order.ParseStatus(status)
	if err != nil {
		return nil, err
	}

	var orders []order.Order
	err = uc.store.View(ctx, func(tx *store.Tx) error {
		var err error
		orders, err = tx.Orders.ListByStatus(parsed)
		return err
	})
	if err != nil {
		return nil, err
	}
	return toOrderList(orders), nil
}
