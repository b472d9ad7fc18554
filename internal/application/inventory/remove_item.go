package inventory

import (
	"context"
	"log/slog"

	"github.com/xiebiao/bookstore-ledger/internal/application/store"
	"github.com/xiebiao/bookstore-ledger/pkg/tracing"
)

// RemoveItemUseCase 下架用例
// 教学要点:
// 1. 幂等: 不存在的ID也算成功,Removed=false
// 2. 下架时一并删除折扣,避免同ID重新入库后继承旧折扣
type RemoveItemUseCase struct {
	store *store.Store
}

func NewRemoveItemUseCase(s *store.Store) *RemoveItemUseCase {
	return &RemoveItemUseCase{store: s}
}

type RemoveItemResponse struct {
	ID      string `json:"id"`
	Removed bool   `json:"removed"`
}

func (uc *RemoveItemUseCase) Execute(ctx context.Context, id string) (*RemoveItemResponse, error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "RemoveItem")
	defer span.End()

	var removed bool
	err := uc.store.Transaction(ctx, func(tx *store.Tx) error {
		removed = tx.Ledger.Remove(id)
		tx.Discounts.Remove(id)
		observeInventory(tx)
		return nil
	})
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}

	if removed {
		slog.InfoContext(ctx, "item removed", "id", id)
	}
	return &RemoveItemResponse{ID: id, Removed: removed}, nil
}
