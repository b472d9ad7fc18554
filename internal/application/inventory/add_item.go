package inventory

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/xiebiao/bookstore-ledger/internal/application/store"
	"github.com/xiebiao/bookstore-ledger/pkg/tracing"
)

// AddItemUseCase 入库用例
// 同一ID重复入库直接拒绝,不会累加数量
type AddItemUseCase struct {
	store *store.Store
}

func NewAddItemUseCase(s *store.Store) *AddItemUseCase {
	return &AddItemUseCase{store: s}
}

// AddItemRequest 入库请求DTO
type AddItemRequest struct {
	ID       string
	Title    string
	Author   string
	Price    decimal.Decimal
	Quantity int
}

func (uc *AddItemUseCase) Execute(ctx context.Context, req AddItemRequest) (*ItemResponse, error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "AddItem")
	defer span.End()

	var resp ItemResponse
	err := uc.store.Transaction(ctx, func(tx *store.Tx) error {
		item, err := tx.Ledger.Add(req.ID, req.Title, req.Author, req.Price, req.Quantity)
		if err != nil {
			return err
		}
		observeInventory(tx)
		resp = toItemResponse(item)
		return nil
	})
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}

	slog.InfoContext(ctx, "item added", "id", resp.ID, "quantity", resp.Quantity, "price", resp.Price)
	return &resp, nil
}
