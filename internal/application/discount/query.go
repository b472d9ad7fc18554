package discount

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/xiebiao/bookstore-ledger/internal/application/store"
	"github.com/xiebiao/bookstore-ledger/internal/domain/inventory"
	"github.com/xiebiao/bookstore-ledger/pkg/tracing"
)

// QueryDiscountUseCase 折扣查询与购物车试算(只读)
type QueryDiscountUseCase struct {
	store *store.Store
}

func NewQueryDiscountUseCase(s *store.Store) *QueryDiscountUseCase {
	return &QueryDiscountUseCase{store: s}
}

// Get 没设置过折扣的商品返回 0
// 商品不存在时返回 NotFound
func (uc *QueryDiscountUseCase) Get(ctx context.Context, id string) (*DiscountResponse, error) {
	var resp *DiscountResponse
	err := uc.store.View(ctx, func(tx *store.Tx) error {
		var err error
		resp, err = describe(tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

type BasketLine struct {
	ID       string
	Quantity int
}

type BasketResponse struct {
	Total decimal.Decimal `json:"total"`
}

// ApplyToBasket 按折后价试算购物车总额
// 只算钱,不检查也不扣减库存;空购物车总额为 0
func (uc *QueryDiscountUseCase) ApplyToBasket(ctx context.Context, lines []BasketLine) (*BasketResponse, error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "ApplyToBasket")
	defer span.End()

	basket := make([]inventory.Line, len(lines))
	for i, l := range lines {
		basket[i] = inventory.Line{ItemID: l.ID, Quantity: l.Quantity}
	}

	var total decimal.Decimal
	err := uc.store.View(ctx, func(tx *store.Tx) error {
		var err error
		total, err = tx.Discounts.ApplyToBasket(basket)
		return err
	})
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}
	return &BasketResponse{Total: total}, nil
}
