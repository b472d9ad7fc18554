package discount

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/xiebiao/bookstore-ledger/internal/application/store"
	"github.com/xiebiao/bookstore-ledger/pkg/tracing"
)

const tracerName = "application/discount"

// DiscountResponse 折扣响应DTO
// DiscountedPrice 只用于展示,库存中的原价不会被修改
type DiscountResponse struct {
	ID              string          `json:"id"`
	Percentage      decimal.Decimal `json:"percentage"`
	Price           decimal.Decimal `json:"price"`
	DiscountedPrice decimal.Decimal `json:"discounted_price"`
}

// SetDiscountUseCase 设置单个商品折扣
// 百分比取值 [0,100],0 表示取消折扣,商品必须已入库
type SetDiscountUseCase struct {
	store *store.Store
}

func NewSetDiscountUseCase(s *store.Store) *SetDiscountUseCase {
	return &SetDiscountUseCase{store: s}
}

type SetDiscountRequest struct {
	ID         string
	Percentage decimal.Decimal
}

func (uc *SetDiscountUseCase) Execute(ctx context.Context, req SetDiscountRequest) (*DiscountResponse, error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "SetDiscount")
	defer span.End()

	var resp *DiscountResponse
	err := uc.store.Transaction(ctx, func(tx *store.Tx) error {
		if err := tx.Discounts.Set(req.ID, req.Percentage); err != nil {
			return err
		}
		var err error
		resp, err = describe(tx, req.ID)
		return err
	})
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}

	slog.InfoContext(ctx, "discount set", "id", req.ID, "percentage", req.Percentage)
	return resp, nil
}

// describe 组装折扣视图,调用方持有锁
func describe(tx *store.Tx, id string) (*DiscountResponse, error) {
	item, err := tx.Ledger.Get(id)
	if err != nil {
		return nil, err
	}
	unit, err := tx.Discounts.UnitPrice(id)
	if err != nil {
		return nil, err
	}
	return &DiscountResponse{
		ID:              id,
		Percentage:      tx.Discounts.Get(id),
		Price:           item.Price,
		DiscountedPrice: unit,
	}, nil
}
