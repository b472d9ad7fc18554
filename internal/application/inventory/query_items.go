package inventory

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/xiebiao/bookstore-ledger/internal/application/store"
	"github.com/xiebiao/bookstore-ledger/internal/domain/inventory"
)

// QueryItemsUseCase 库存只读查询,全部在读锁内完成
type QueryItemsUseCase struct {
	store *store.Store
}

func NewQueryItemsUseCase(s *store.Store) *QueryItemsUseCase {
	return &QueryItemsUseCase{store: s}
}

// SearchItemsRequest 三个条件取交集,空条件不参与过滤
// Title/Author 为不区分大小写的子串匹配,ID 为精确匹配
type SearchItemsRequest struct {
	Title  string
	Author string
	ID     string
}

type SearchItemsResponse struct {
	List  []ItemResponse `json:"list"`
	Total int            `json:"total"`
}

type InventoryValueResponse struct {
	TotalValue decimal.Decimal `json:"total_value"`
	Items      int             `json:"items"`
}

func (uc *QueryItemsUseCase) Get(ctx context.Context, id string) (*ItemResponse, error) {
	var resp ItemResponse
	err := uc.store.View(ctx, func(tx *store.Tx) error {
		item, err := tx.Ledger.Get(id)
		if err != nil {
			return err
		}
		resp = toItemResponse(item)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (uc *QueryItemsUseCase) Exists(ctx context.Context, id string) (bool, error) {
	var ok bool
	err := uc.store.View(ctx, func(tx *store.Tx) error {
		ok = tx.Ledger.Exists(id)
		return nil
	})
	return ok, err
}

// Search 结果按ID排序
func (uc *QueryItemsUseCase) Search(ctx context.Context, req SearchItemsRequest) (*SearchItemsResponse, error) {
	var items []inventory.Item
	err := uc.store.View(ctx, func(tx *store.Tx) error {
		items = tx.Ledger.Search(inventory.SearchParams{Title: req.Title, Author: req.Author, ID: req.ID})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &SearchItemsResponse{List: toItemResponses(items), Total: len(items)}, nil
}

// TotalValue 按原价计算,不考虑折扣
func (uc *QueryItemsUseCase) TotalValue(ctx context.Context) (*InventoryValueResponse, error) {
	var resp InventoryValueResponse
	err := uc.store.View(ctx, func(tx *store.Tx) error {
		resp = InventoryValueResponse{TotalValue: tx.Ledger.TotalValue(), Items: tx.Ledger.Len()}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}
